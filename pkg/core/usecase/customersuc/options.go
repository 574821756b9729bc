// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package customersuc

import (
	"errors"
	"fmt"
)

// Option represents an optional setting for the customers use case.
type Option func(uc *UseCase) error

// WithPhoneNormalizer configures the normalizer of phone numbers.
// By default, phone numbers are only stripped from their separators.
func WithPhoneNormalizer(pn PhoneNormalizer) Option {
	return func(uc *UseCase) error {
		if pn == nil {
			return errors.New("phone normalizer is nil")
		}
		if uc.phones != nil {
			return errors.New("phone normalizer is already configured")
		}
		uc.phones = pn
		return nil
	}
}

// WithPageSizes configures the default and maximum page sizes of the
// customers listing.
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
