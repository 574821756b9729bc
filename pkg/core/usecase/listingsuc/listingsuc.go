// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package listingsuc provides the listings catalog use cases and the
// availability queries which find free and duration-eligible listings
// for a date range.
package listingsuc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/bookings/pkg/core/cerr"
	"github.com/momeni/bookings/pkg/core/log"
	"github.com/momeni/bookings/pkg/core/model"
	"github.com/momeni/bookings/pkg/core/repo"
)

// UseCase represents the listings use cases.
type UseCase struct {
	pool           repo.Pool
	listingsrp     repo.Listings
	reservationsrp repo.Reservations

	occupancy   *model.OccupancyPolicy
	defPageSize int
	maxPageSize int
}

// New instantiates the listings use case.
func New(
	p repo.Pool, l repo.Listings, r repo.Reservations, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, listingsrp: l, reservationsrp: r}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.occupancy == nil {
		op := model.DefaultOccupancyPolicy()
		uc.occupancy = &op
	}
	if uc.defPageSize == 0 {
		uc.defPageSize, uc.maxPageSize = 20, 100
	}
	return uc, nil
}

// Get fetches a listing.
func (uc *UseCase) Get(
	ctx context.Context, id uuid.UUID,
) (l *model.Listing, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		l, err = uc.listingsrp.Conn(c).Fetch(ctx, id)
		return err
	})
	if err != nil {
		l = nil
	}
	return
}

// List returns one page of listings.
func (uc *UseCase) List(
	ctx context.Context, pr model.PageRequest,
) (page *model.Page[model.Listing], err error) {
	if err = uc.normalize(&pr); err != nil {
		return nil, err
	}
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		page, err = uc.listingsrp.Conn(c).List(ctx, pr)
		return err
	})
	if err != nil {
		page = nil
	}
	return
}

// Create validates and stores a new listing. The ID and CreatedAt
// fields of l are filled by this method.
func (uc *UseCase) Create(
	ctx context.Context, l *model.Listing,
) (*model.Listing, error) {
	if err := prepare(l); err != nil {
		return nil, err
	}
	l.ID = uuid.New()
	l.CreatedAt = time.Now().UTC()
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return uc.listingsrp.Conn(c).Create(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "listing created", log.Valuer("listing", l))
	return l, nil
}

// Replace overwrites all mutable fields of the id listing with the
// l fields. Existing reservations are neither repriced nor validated
// against the new duration window.
func (uc *UseCase) Replace(
	ctx context.Context, id uuid.UUID, l *model.Listing,
) (*model.Listing, error) {
	return uc.update(ctx, id, func(cur *model.Listing) {
		l.ID, l.CreatedAt = cur.ID, cur.CreatedAt
		*cur = *l
	})
}

// Patch updates those fields of the id listing which are set in p.
// The MaxHours >= MinHours rule is checked on the merged listing.
func (uc *UseCase) Patch(
	ctx context.Context, id uuid.UUID, p model.ListingPatch,
) (*model.Listing, error) {
	return uc.update(ctx, id, p.Apply)
}

func (uc *UseCase) update(
	ctx context.Context, id uuid.UUID, merge func(cur *model.Listing),
) (l *model.Listing, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := uc.listingsrp.Tx(tx)
			cur, err := q.FetchForUpdate(ctx, id)
			if err != nil {
				return fmt.Errorf("fetching listing: %w", err)
			}
			merge(cur)
			if err = prepare(cur); err != nil {
				return err
			}
			if err = q.Update(ctx, cur); err != nil {
				return err
			}
			l = cur
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "listing updated", log.Valuer("listing", l))
	return l, nil
}

// Delete removes the id listing if it has no reservations.
func (uc *UseCase) Delete(ctx context.Context, id uuid.UUID) error {
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := uc.listingsrp.Tx(tx)
			if _, err := q.FetchForUpdate(ctx, id); err != nil {
				return fmt.Errorf("fetching listing: %w", err)
			}
			found, err := uc.reservationsrp.Tx(tx).ExistsForListing(ctx, id)
			switch {
			case err != nil:
				return fmt.Errorf("looking up reservations: %w", err)
			case found:
				return cerr.Referenced(fmt.Errorf(
					"listing %s has reservations", id,
				))
			}
			return q.Delete(ctx, id)
		})
	})
	if err != nil {
		return err
	}
	log.Info(ctx, "listing deleted", slog.String("id", id.String()))
	return nil
}

// SearchAvailabilityOn finds the listings which are free during the
// whole day of d and admit a one day reservation.
func (uc *UseCase) SearchAvailabilityOn(
	ctx context.Context, d time.Time, pr model.PageRequest,
) (*model.Page[model.Listing], error) {
	if d.IsZero() {
		return nil, cerr.InvalidRange(model.ErrMissingDate)
	}
	r := model.SingleDay(d)
	return uc.SearchAvailability(ctx, r.Start, r.End, pr)
}

// SearchAvailability finds one page of listings which have no
// occupying reservation overlapping with [start, end) and admit its
// duration. Occupied listings are collected by one query and then
// excluded from the eligible listings query. Without any occupied
// listing, the exclusion is skipped entirely instead of passing an
// empty set to the store.
func (uc *UseCase) SearchAvailability(
	ctx context.Context, start, end time.Time, pr model.PageRequest,
) (page *model.Page[model.Listing], err error) {
	period, err := model.NewDateRange(start, end)
	if err != nil {
		return nil, cerr.InvalidRange(err)
	}
	if err = uc.normalize(&pr); err != nil {
		return nil, err
	}
	hours := period.Hours()
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		occupied, err := uc.reservationsrp.Conn(c).OccupiedListings(
			ctx, period, uc.occupancy.Releasing,
		)
		if err != nil {
			return fmt.Errorf("finding occupied listings: %w", err)
		}
		q := uc.listingsrp.Conn(c)
		if len(occupied) == 0 {
			page, err = q.Eligible(ctx, hours, pr)
		} else {
			page, err = q.EligibleExcept(ctx, hours, occupied, pr)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Debug(ctx, "availability searched",
		log.Valuer("period", period),
		slog.Int64("total", page.TotalItems),
	)
	return page, nil
}

func (uc *UseCase) normalize(pr *model.PageRequest) error {
	err := pr.Normalize(
		uc.defPageSize, uc.maxPageSize, model.ListingSortFields...,
	)
	if err != nil {
		return cerr.BadRequest(err)
	}
	return nil
}

func prepare(l *model.Listing) error {
	l.Name = strings.TrimSpace(l.Name)
	l.Description = strings.TrimSpace(l.Description)
	if vs := l.Validate(); len(vs) > 0 {
		return cerr.BadRequest(vs)
	}
	return nil
}
