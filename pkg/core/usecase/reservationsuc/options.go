// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reservationsuc

import (
	"errors"
	"fmt"

	"github.com/momeni/bookings/pkg/core/model"
)

// Option represents an optional setting for the reservations use case.
type Option func(uc *UseCase) error

// WithReleasingStatuses configures the reservation statuses which do
// not occupy the listing calendar. Reservations with these statuses
// are ignored while checking for conflicts. An empty list makes all
// reservations occupying. By default, cancelled reservations release
// their listing.
func WithReleasingStatuses(statuses ...model.ReservationStatus) Option {
	return func(uc *UseCase) error {
		if uc.occupancy != nil {
			return errors.New("releasing statuses are already configured")
		}
		for _, s := range statuses {
			if err := s.Validate(); err != nil {
				return fmt.Errorf("releasing status: %w", err)
			}
		}
		uc.occupancy = &model.OccupancyPolicy{Releasing: statuses}
		return nil
	}
}

// WithPageSizes configures the default and maximum page sizes of the
// reservations listing.
func WithPageSizes(defSize, maxSize int) Option {
	return func(uc *UseCase) error {
		if defSize <= 0 || maxSize < defSize {
			return fmt.Errorf(
				"invalid page sizes: default=%d max=%d", defSize, maxSize,
			)
		}
		if uc.defPageSize != 0 {
			return errors.New("page sizes are already configured")
		}
		uc.defPageSize, uc.maxPageSize = defSize, maxSize
		return nil
	}
}
