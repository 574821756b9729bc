// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package memstore

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/bookings/pkg/core/cerr"
	"github.com/momeni/bookings/pkg/core/model"
	"github.com/momeni/bookings/pkg/core/repo"
)

type listings struct {
	s *Store
}

func (ls listings) Conn(repo.Conn) repo.ListingsConnQueryer {
	return listingsQueryer(ls)
}

func (ls listings) Tx(repo.Tx) repo.ListingsTxQueryer {
	return listingsQueryer(ls)
}

type listingsQueryer struct {
	s *Store
}

var listingColumns = columns[model.Listing]{
	byField: map[string]comparer[model.Listing]{
		"name": byString(func(l *model.Listing) string {
			return l.Name
		}),
		"category": byString(func(l *model.Listing) string {
			return l.Category.String()
		}),
		"hourlyRate": func(a, b *model.Listing) int {
			return a.HourlyRate.Cmp(b.HourlyRate)
		},
		"minHours": byOrdered(func(l *model.Listing) int {
			return l.MinHours
		}),
		"maxHours": byOrdered(func(l *model.Listing) int {
			return l.MaxHours
		}),
	},
	id: func(l *model.Listing) uuid.UUID {
		return l.ID
	},
	createdAt: func(l *model.Listing) time.Time {
		return l.CreatedAt
	},
}

func (q listingsQueryer) Fetch(
	_ context.Context, id uuid.UUID,
) (*model.Listing, error) {
	var (
		l  model.Listing
		ok bool
	)
	q.s.read(func() {
		l, ok = q.s.listings[id]
	})
	if !ok {
		return nil, cerr.NotFound(model.ErrListingNotFound)
	}
	return &l, nil
}

// FetchForUpdate is the same as Fetch because the transactions of a
// Store are exclusive already.
func (q listingsQueryer) FetchForUpdate(
	ctx context.Context, id uuid.UUID,
) (*model.Listing, error) {
	return q.Fetch(ctx, id)
}

func (q listingsQueryer) List(
	_ context.Context, pr model.PageRequest,
) (*model.Page[model.Listing], error) {
	return q.filter(pr, func(*model.Listing) bool { return true })
}

func (q listingsQueryer) Eligible(
	_ context.Context, hours int64, pr model.PageRequest,
) (*model.Page[model.Listing], error) {
	return q.filter(pr, func(l *model.Listing) bool {
		return l.Admits(hours)
	})
}

func (q listingsQueryer) EligibleExcept(
	_ context.Context,
	hours int64,
	excluded []uuid.UUID,
	pr model.PageRequest,
) (*model.Page[model.Listing], error) {
	if len(excluded) == 0 {
		return nil, fmt.Errorf("empty excluded listings")
	}
	return q.filter(pr, func(l *model.Listing) bool {
		return l.Admits(hours) && !slices.Contains(excluded, l.ID)
	})
}

func (q listingsQueryer) filter(
	pr model.PageRequest, keep func(*model.Listing) bool,
) (*model.Page[model.Listing], error) {
	var items []model.Listing
	q.s.read(func() {
		for l := range maps.Values(q.s.listings) {
			if keep(&l) {
				items = append(items, l)
			}
		}
	})
	return paginate(items, pr, listingColumns)
}

func (q listingsQueryer) Create(_ context.Context, l *model.Listing) error {
	return q.s.write(func() error {
		if _, ok := q.s.listings[l.ID]; ok {
			return cerr.Conflict(fmt.Errorf("listing %s exists", l.ID))
		}
		q.s.listings[l.ID] = *l
		return nil
	})
}

func (q listingsQueryer) Update(_ context.Context, l *model.Listing) error {
	return q.s.write(func() error {
		cur, ok := q.s.listings[l.ID]
		if !ok {
			return cerr.NotFound(model.ErrListingNotFound)
		}
		u := *l
		u.CreatedAt = cur.CreatedAt
		q.s.listings[l.ID] = u
		return nil
	})
}

func (q listingsQueryer) Delete(_ context.Context, id uuid.UUID) error {
	return q.s.write(func() error {
		if _, ok := q.s.listings[id]; !ok {
			return cerr.NotFound(model.ErrListingNotFound)
		}
		for _, r := range q.s.reservations {
			if r.ListingID == id {
				return cerr.Referenced(fmt.Errorf(
					"listing %s has reservations", id,
				))
			}
		}
		delete(q.s.listings, id)
		return nil
	})
}
