// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/bookings/pkg/core/model"
)

type ReservationsConnQueryer interface {
	ReservationsQueryer
}

type ReservationsTxQueryer interface {
	ReservationsQueryer
}

// ReservationsQueryer lists the reservation related queries.
// Fetch, Update, and Delete fail with a cerr.NotFound error if the
// reservation does not exist.
type ReservationsQueryer interface {
	Fetch(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	List(ctx context.Context, pr model.PageRequest) (
		*model.Page[model.Reservation], error,
	)
	Create(ctx context.Context, r *model.Reservation) error
	Update(ctx context.Context, r *model.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error

	// HasOverlap reports whether any reservation of q.ListingID,
	// other than q.Exclude and not having a q.Releasing status,
	// overlaps with q.Period.
	HasOverlap(ctx context.Context, q model.ConflictQuery) (bool, error)

	// OccupiedListings returns the distinct identifiers of listings
	// which have at least one reservation, not having a releasing
	// status, which overlaps with the period.
	OccupiedListings(
		ctx context.Context,
		period model.DateRange,
		releasing []model.ReservationStatus,
	) ([]uuid.UUID, error)

	ExistsForCustomer(ctx context.Context, customerID uuid.UUID) (bool, error)
	ExistsForListing(ctx context.Context, listingID uuid.UUID) (bool, error)
}

type Reservations interface {
	Conn(Conn) ReservationsConnQueryer
	Tx(Tx) ReservationsTxQueryer
}
