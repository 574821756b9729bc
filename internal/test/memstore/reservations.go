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
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/bookings/pkg/core/cerr"
	"github.com/momeni/bookings/pkg/core/model"
	"github.com/momeni/bookings/pkg/core/repo"
)

type reservations struct {
	s *Store
}

func (rs reservations) Conn(repo.Conn) repo.ReservationsConnQueryer {
	return reservationsQueryer(rs)
}

func (rs reservations) Tx(repo.Tx) repo.ReservationsTxQueryer {
	return reservationsQueryer(rs)
}

type reservationsQueryer struct {
	s *Store
}

var reservationColumns = columns[model.Reservation]{
	byField: map[string]comparer[model.Reservation]{
		"start": func(a, b *model.Reservation) int {
			return a.Period.Start.Compare(b.Period.Start)
		},
		"end": func(a, b *model.Reservation) int {
			return a.Period.End.Compare(b.Period.End)
		},
		"price": func(a, b *model.Reservation) int {
			return a.Price.Cmp(b.Price)
		},
		"status": byString(func(r *model.Reservation) string {
			return r.Status.String()
		}),
	},
	id: func(r *model.Reservation) uuid.UUID {
		return r.ID
	},
	createdAt: func(r *model.Reservation) time.Time {
		return r.CreatedAt
	},
}

func (q reservationsQueryer) Fetch(
	_ context.Context, id uuid.UUID,
) (*model.Reservation, error) {
	var (
		r  model.Reservation
		ok bool
	)
	q.s.read(func() {
		r, ok = q.s.reservations[id]
	})
	if !ok {
		return nil, cerr.NotFound(model.ErrReservationNotFound)
	}
	return &r, nil
}

func (q reservationsQueryer) List(
	_ context.Context, pr model.PageRequest,
) (*model.Page[model.Reservation], error) {
	var items []model.Reservation
	q.s.read(func() {
		items = slices.Collect(maps.Values(q.s.reservations))
	})
	return paginate(items, pr, reservationColumns)
}

func (q reservationsQueryer) Create(
	_ context.Context, r *model.Reservation,
) error {
	return q.s.write(func() error {
		if _, ok := q.s.reservations[r.ID]; ok {
			return cerr.Conflict(fmt.Errorf("reservation %s exists", r.ID))
		}
		if err := q.checkReferences(r); err != nil {
			return err
		}
		q.s.reservations[r.ID] = *r
		return nil
	})
}

func (q reservationsQueryer) Update(
	_ context.Context, r *model.Reservation,
) error {
	return q.s.write(func() error {
		cur, ok := q.s.reservations[r.ID]
		if !ok {
			return cerr.NotFound(model.ErrReservationNotFound)
		}
		if err := q.checkReferences(r); err != nil {
			return err
		}
		u := *r
		u.CreatedAt = cur.CreatedAt
		q.s.reservations[r.ID] = u
		return nil
	})
}

func (q reservationsQueryer) checkReferences(r *model.Reservation) error {
	if _, ok := q.s.customers[r.CustomerID]; !ok {
		return cerr.Referenced(fmt.Errorf(
			"missing customer %s", r.CustomerID,
		))
	}
	if _, ok := q.s.listings[r.ListingID]; !ok {
		return cerr.Referenced(fmt.Errorf(
			"missing listing %s", r.ListingID,
		))
	}
	return nil
}

func (q reservationsQueryer) Delete(_ context.Context, id uuid.UUID) error {
	return q.s.write(func() error {
		if _, ok := q.s.reservations[id]; !ok {
			return cerr.NotFound(model.ErrReservationNotFound)
		}
		delete(q.s.reservations, id)
		return nil
	})
}

func (q reservationsQueryer) HasOverlap(
	_ context.Context, cq model.ConflictQuery,
) (found bool, err error) {
	q.s.read(func() {
		for _, r := range q.s.reservations {
			if r.ListingID == cq.ListingID && r.ID != cq.Exclude &&
				!slices.Contains(cq.Releasing, r.Status) &&
				r.Period.Overlaps(cq.Period) {
				found = true
				return
			}
		}
	})
	return found, nil
}

func (q reservationsQueryer) OccupiedListings(
	_ context.Context,
	period model.DateRange,
	releasing []model.ReservationStatus,
) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	q.s.read(func() {
		for _, r := range q.s.reservations {
			if !slices.Contains(releasing, r.Status) &&
				r.Period.Overlaps(period) &&
				!slices.Contains(ids, r.ListingID) {
				ids = append(ids, r.ListingID)
			}
		}
	})
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return strings.Compare(a.String(), b.String())
	})
	return ids, nil
}

func (q reservationsQueryer) ExistsForCustomer(
	_ context.Context, customerID uuid.UUID,
) (found bool, err error) {
	q.s.read(func() {
		for _, r := range q.s.reservations {
			if r.CustomerID == customerID {
				found = true
				return
			}
		}
	})
	return found, nil
}

func (q reservationsQueryer) ExistsForListing(
	_ context.Context, listingID uuid.UUID,
) (found bool, err error) {
	q.s.read(func() {
		for _, r := range q.s.reservations {
			if r.ListingID == listingID {
				found = true
				return
			}
		}
	})
	return found, nil
}
