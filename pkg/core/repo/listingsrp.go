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

type ListingsConnQueryer interface {
	ListingsQueryer
}

// ListingsTxQueryer adds the locking queries which are only
// meaningful within a transaction.
type ListingsTxQueryer interface {
	ListingsQueryer

	// FetchForUpdate fetches a listing and locks its row until the
	// end of the current transaction. Concurrent transactions which
	// try to lock the same listing will wait, so the reservations of
	// one listing may be checked and written exclusively.
	FetchForUpdate(ctx context.Context, id uuid.UUID) (
		*model.Listing, error,
	)
}

// ListingsQueryer lists the listing related queries.
// Fetch, Update, and Delete fail with a cerr.NotFound error if the
// listing does not exist.
type ListingsQueryer interface {
	Fetch(ctx context.Context, id uuid.UUID) (*model.Listing, error)
	List(ctx context.Context, pr model.PageRequest) (
		*model.Page[model.Listing], error,
	)
	Create(ctx context.Context, l *model.Listing) error
	Update(ctx context.Context, l *model.Listing) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Eligible lists the listings which admit the given hours,
	// that is, MinHours <= hours <= MaxHours.
	Eligible(ctx context.Context, hours int64, pr model.PageRequest) (
		*model.Page[model.Listing], error,
	)

	// EligibleExcept lists the listings which admit the given hours
	// and their identifiers are not among the excluded ones.
	// The excluded slice must not be empty.
	EligibleExcept(
		ctx context.Context,
		hours int64,
		excluded []uuid.UUID,
		pr model.PageRequest,
	) (*model.Page[model.Listing], error)
}

type Listings interface {
	Conn(Conn) ListingsConnQueryer
	Tx(Tx) ListingsTxQueryer
}
