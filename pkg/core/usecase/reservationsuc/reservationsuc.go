// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package reservationsuc provides the reservation lifecycle use cases.
// All writes share one validation pipeline which checks the dates,
// the listing duration window, and the overlapping reservations before
// computing the final price. Each write runs in one transaction which
// locks the target listing row first, so concurrent writers of one
// listing are serialized and cannot double-book it.
package reservationsuc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/bookings/pkg/core/cerr"
	"github.com/momeni/bookings/pkg/core/log"
	"github.com/momeni/bookings/pkg/core/model"
	"github.com/momeni/bookings/pkg/core/repo"
	"github.com/shopspring/decimal"
)

// UseCase represents the reservations use cases.
type UseCase struct {
	pool           repo.Pool
	customersrp    repo.Customers
	listingsrp     repo.Listings
	reservationsrp repo.Reservations

	occupancy   *model.OccupancyPolicy
	defPageSize int
	maxPageSize int
}

// New instantiates the reservations use case. The p pool is used for
// acquiring connections while the c, l, and r repositories are used
// for querying customers, listings, and reservations respectively.
func New(
	p repo.Pool,
	c repo.Customers,
	l repo.Listings,
	r repo.Reservations,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{
		pool:           p,
		customersrp:    c,
		listingsrp:     l,
		reservationsrp: r,
	}
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

// Request contains the fields of a reservation which are chosen by
// callers when a reservation is created or fully replaced.
type Request struct {
	CustomerID uuid.UUID
	ListingID  uuid.UUID
	Start      time.Time
	End        time.Time
	Status     model.ReservationStatus
}

// Get fetches a reservation.
func (uc *UseCase) Get(
	ctx context.Context, id uuid.UUID,
) (r *model.Reservation, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		r, err = uc.reservationsrp.Conn(c).Fetch(ctx, id)
		return err
	})
	if err != nil {
		r = nil
	}
	return
}

// List returns one page of reservations.
func (uc *UseCase) List(
	ctx context.Context, pr model.PageRequest,
) (page *model.Page[model.Reservation], err error) {
	err = pr.Normalize(
		uc.defPageSize, uc.maxPageSize, model.ReservationSortFields...,
	)
	if err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		page, err = uc.reservationsrp.Conn(c).List(ctx, pr)
		return err
	})
	if err != nil {
		page = nil
	}
	return
}

// HasConflict reports whether any occupying reservation of the
// listingID listing, other than the exclude reservation, overlaps
// with the [start, end) range. The exclude may be uuid.Nil in order
// to check all reservations. It is a point-in-time check and the
// result may be stale as soon as it is returned.
func (uc *UseCase) HasConflict(
	ctx context.Context,
	listingID uuid.UUID,
	start, end time.Time,
	exclude uuid.UUID,
) (conflict bool, err error) {
	period, err := model.NewDateRange(start, end)
	if err != nil {
		return false, cerr.InvalidRange(err)
	}
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		conflict, err = uc.reservationsrp.Conn(c).HasOverlap(
			ctx, uc.conflictQuery(listingID, period, exclude),
		)
		return err
	})
	return
}

// Create creates a reservation after resolving its customer and
// listing and validating its date range. The price is computed from
// the listing hourly rate.
func (uc *UseCase) Create(
	ctx context.Context, req Request,
) (r *model.Reservation, err error) {
	if err = validateStatus(req.Status); err != nil {
		return nil, err
	}
	err = uc.write(ctx, func(ctx context.Context, tx repo.Tx) error {
		if err := uc.ensureCustomer(ctx, tx, req.CustomerID); err != nil {
			return err
		}
		l, err := uc.listingsrp.Tx(tx).FetchForUpdate(ctx, req.ListingID)
		if err != nil {
			return fmt.Errorf("fetching listing: %w", err)
		}
		q := uc.reservationsrp.Tx(tx)
		r = &model.Reservation{
			ID:         uuid.New(),
			CustomerID: req.CustomerID,
			ListingID:  req.ListingID,
			Status:     req.Status,
			CreatedAt:  time.Now().UTC(),
		}
		r.Period, r.Price, err = uc.validateAndPrice(
			ctx, q, l, req.Start, req.End, r.Status, uuid.Nil,
		)
		if err != nil {
			return err
		}
		return q.Create(ctx, r)
	})
	if err != nil {
		log.Debug(ctx, "reservation creation rejected", log.Err("err", err))
		return nil, err
	}
	log.Info(ctx, "reservation created", log.Valuer("reservation", r))
	return r, nil
}

// Replace overwrites all caller-chosen fields of the id reservation.
// Customer is resolved again only if it is changed, while the listing
// is always locked and fetched because it is needed for validation.
func (uc *UseCase) Replace(
	ctx context.Context, id uuid.UUID, req Request,
) (r *model.Reservation, err error) {
	if err = validateStatus(req.Status); err != nil {
		return nil, err
	}
	err = uc.write(ctx, func(ctx context.Context, tx repo.Tx) error {
		q := uc.reservationsrp.Tx(tx)
		cur, err := q.Fetch(ctx, id)
		if err != nil {
			return fmt.Errorf("fetching reservation: %w", err)
		}
		if req.CustomerID != cur.CustomerID {
			err = uc.ensureCustomer(ctx, tx, req.CustomerID)
			if err != nil {
				return err
			}
		}
		l, err := uc.listingsrp.Tx(tx).FetchForUpdate(ctx, req.ListingID)
		if err != nil {
			return fmt.Errorf("fetching listing: %w", err)
		}
		r = cur
		r.CustomerID = req.CustomerID
		r.ListingID = req.ListingID
		r.Status = req.Status
		r.Period, r.Price, err = uc.validateAndPrice(
			ctx, q, l, req.Start, req.End, r.Status, id,
		)
		if err != nil {
			return err
		}
		return q.Update(ctx, r)
	})
	if err != nil {
		log.Debug(ctx, "reservation replacement rejected",
			log.Err("err", err))
		return nil, err
	}
	log.Info(ctx, "reservation replaced", log.Valuer("reservation", r))
	return r, nil
}

// Patch updates those fields of the id reservation which are set in
// p. Unset fields keep their stored values and the validation runs on
// the merged values, so a patch which only moves the end date is
// still checked against the stored start date and listing.
func (uc *UseCase) Patch(
	ctx context.Context, id uuid.UUID, p model.ReservationPatch,
) (r *model.Reservation, err error) {
	if p.Status != nil {
		if err = validateStatus(*p.Status); err != nil {
			return nil, err
		}
	}
	err = uc.write(ctx, func(ctx context.Context, tx repo.Tx) error {
		q := uc.reservationsrp.Tx(tx)
		cur, err := q.Fetch(ctx, id)
		if err != nil {
			return fmt.Errorf("fetching reservation: %w", err)
		}
		next := *cur
		p.Apply(&next)
		if next.CustomerID != cur.CustomerID {
			err = uc.ensureCustomer(ctx, tx, next.CustomerID)
			if err != nil {
				return err
			}
		}
		l, err := uc.listingsrp.Tx(tx).FetchForUpdate(ctx, next.ListingID)
		if err != nil {
			return fmt.Errorf("fetching listing: %w", err)
		}
		start, end := p.Merge(cur)
		next.Period, next.Price, err = uc.validateAndPrice(
			ctx, q, l, start, end, next.Status, id,
		)
		if err != nil {
			return err
		}
		if err = q.Update(ctx, &next); err != nil {
			return err
		}
		r = &next
		return nil
	})
	if err != nil {
		log.Debug(ctx, "reservation patch rejected", log.Err("err", err))
		return nil, err
	}
	log.Info(ctx, "reservation patched", log.Valuer("reservation", r))
	return r, nil
}

// Delete removes the id reservation unconditionally.
func (uc *UseCase) Delete(ctx context.Context, id uuid.UUID) error {
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return uc.reservationsrp.Conn(c).Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	log.Info(ctx, "reservation deleted", slog.String("id", id.String()))
	return nil
}

func (uc *UseCase) write(ctx context.Context, f repo.TxHandler) error {
	return uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, f)
	})
}

func (uc *UseCase) ensureCustomer(
	ctx context.Context, tx repo.Tx, id uuid.UUID,
) error {
	found, err := uc.customersrp.Tx(tx).Exists(ctx, id)
	switch {
	case err != nil:
		return fmt.Errorf("looking up customer: %w", err)
	case !found:
		return cerr.NotFound(model.ErrCustomerNotFound)
	}
	return nil
}

// validateAndPrice validates the [start, end) range for the l listing
// and computes its price. The conflict check is skipped for a
// reservation with a releasing status since it occupies nothing.
func (uc *UseCase) validateAndPrice(
	ctx context.Context,
	q repo.ReservationsTxQueryer,
	l *model.Listing,
	start, end time.Time,
	status model.ReservationStatus,
	exclude uuid.UUID,
) (model.DateRange, decimal.Decimal, error) {
	var period model.DateRange
	hours, err := model.DurationHours(start, end)
	if err != nil {
		return period, decimal.Zero, cerr.InvalidRange(err)
	}
	if hours <= 0 {
		return period, decimal.Zero, cerr.InvalidRange(
			model.ErrEmptyDuration,
		)
	}
	if err = l.CheckDuration(hours); err != nil {
		return period, decimal.Zero, cerr.OutOfBounds(err)
	}
	period = model.DateRange{
		Start: model.TruncateDate(start), End: model.TruncateDate(end),
	}
	if uc.occupancy.Occupies(status) {
		conflict, err := q.HasOverlap(
			ctx, uc.conflictQuery(l.ID, period, exclude),
		)
		switch {
		case err != nil:
			return period, decimal.Zero, fmt.Errorf(
				"checking for overlaps: %w", err,
			)
		case conflict:
			return period, decimal.Zero, cerr.Conflict(
				model.ErrReservationOverlap,
			)
		}
	}
	return period, model.PriceFor(l.HourlyRate, hours), nil
}

func (uc *UseCase) conflictQuery(
	listingID uuid.UUID, period model.DateRange, exclude uuid.UUID,
) model.ConflictQuery {
	return model.ConflictQuery{
		ListingID: listingID,
		Period:    period,
		Exclude:   exclude,
		Releasing: uc.occupancy.Releasing,
	}
}

func validateStatus(s model.ReservationStatus) error {
	if err := s.Validate(); err != nil {
		var vs model.Violations
		vs.Add("status", err.Error(), int(s))
		return cerr.BadRequest(vs)
	}
	return nil
}
