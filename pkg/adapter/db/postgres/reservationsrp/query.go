// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reservationsrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/bookings/pkg/adapter/db/postgres"
	"github.com/momeni/bookings/pkg/core/cerr"
	"github.com/momeni/bookings/pkg/core/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gReservation struct {
	ID         uuid.UUID       `gorm:"primaryKey;type:uuid"`
	CustomerID uuid.UUID       `gorm:"type:uuid"`
	ListingID  uuid.UUID       `gorm:"type:uuid"`
	StartDate  time.Time       `gorm:"type:date"`
	EndDate    time.Time       `gorm:"type:date"`
	Price      decimal.Decimal `gorm:"type:numeric(10,2)"`
	Status     string
	CreatedAt  time.Time
}

func (gr *gReservation) TableName() string {
	return "reservations"
}

func (gr *gReservation) Model() (*model.Reservation, error) {
	s, err := model.ParseReservationStatus(gr.Status)
	if err != nil {
		return nil, fmt.Errorf("reservation %s: %w", gr.ID, err)
	}
	return &model.Reservation{
		ID:         gr.ID,
		CustomerID: gr.CustomerID,
		ListingID:  gr.ListingID,
		Period: model.DateRange{
			Start: model.TruncateDate(gr.StartDate),
			End:   model.TruncateDate(gr.EndDate),
		},
		Price:     gr.Price,
		Status:    s,
		CreatedAt: gr.CreatedAt.UTC(),
	}, nil
}

func fromModel(r *model.Reservation) *gReservation {
	return &gReservation{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		ListingID:  r.ListingID,
		StartDate:  r.Period.Start,
		EndDate:    r.Period.End,
		Price:      r.Price.Round(model.PricePlaces),
		Status:     r.Status.String(),
		CreatedAt:  r.CreatedAt,
	}
}

var columns = postgres.Columns{
	"start":     "start_date",
	"end":       "end_date",
	"price":     "price",
	"status":    "status",
	"createdAt": "created_at",
}

func Fetch[Q postgres.Queryer](
	ctx context.Context, q Q, id uuid.UUID,
) (*model.Reservation, error) {
	var gr gReservation
	err := q.GORM(ctx).Where("id = ?", id).Take(&gr).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(model.ErrReservationNotFound)
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gr.Model()
}

func List[Q postgres.Queryer](
	ctx context.Context, q Q, pr model.PageRequest,
) (*model.Page[model.Reservation], error) {
	rows, total, err := postgres.Paginate[gReservation](
		q.GORM(ctx), pr, columns, postgres.NoFilter,
	)
	if err != nil {
		return nil, err
	}
	items := make([]model.Reservation, 0, len(rows))
	for _, gr := range rows {
		r, err := gr.Model()
		if err != nil {
			return nil, err
		}
		items = append(items, *r)
	}
	return &model.Page[model.Reservation]{
		Items:      items,
		Number:     pr.Number,
		Size:       pr.Size,
		TotalItems: total,
	}, nil
}

// Create inserts r. Missing customer or listing rows fail with a
// cerr.Referenced error because of the foreign keys.
func Create[Q postgres.Queryer](
	ctx context.Context, q Q, r *model.Reservation,
) error {
	if err := q.GORM(ctx).Create(fromModel(r)).Error; err != nil {
		return postgres.TranslateErr(err)
	}
	return nil
}

// Update overwrites all columns of r except created_at.
func Update[Q postgres.Queryer](
	ctx context.Context, q Q, r *model.Reservation,
) error {
	gr := fromModel(r)
	gdb := q.GORM(ctx).Model(&gReservation{}).Where("id = ?", r.ID).Updates(
		map[string]any{
			"customer_id": gr.CustomerID,
			"listing_id":  gr.ListingID,
			"start_date":  gr.StartDate,
			"end_date":    gr.EndDate,
			"price":       gr.Price,
			"status":      gr.Status,
		},
	)
	if err := gdb.Error; err != nil {
		return postgres.TranslateErr(err)
	}
	if gdb.RowsAffected == 0 {
		return cerr.NotFound(model.ErrReservationNotFound)
	}
	return nil
}

func Delete[Q postgres.Queryer](
	ctx context.Context, q Q, id uuid.UUID,
) error {
	gdb := q.GORM(ctx).Where("id = ?", id).Delete(&gReservation{})
	if err := gdb.Error; err != nil {
		return postgres.TranslateErr(err)
	}
	if gdb.RowsAffected == 0 {
		return cerr.NotFound(model.ErrReservationNotFound)
	}
	return nil
}

// occupying restricts gdb to the reservations which overlap with
// period and do not have a releasing status. Two half-open ranges
// overlap iff each one starts before the other one ends.
func occupying(
	gdb *gorm.DB,
	period model.DateRange,
	releasing []model.ReservationStatus,
) *gorm.DB {
	gdb = gdb.Where(
		"start_date < ? AND end_date > ?", period.End, period.Start,
	)
	if len(releasing) > 0 {
		names := make([]string, 0, len(releasing))
		for _, s := range releasing {
			names = append(names, s.String())
		}
		gdb = gdb.Where("status NOT IN ?", names)
	}
	return gdb
}

// HasOverlap runs one EXISTS query for the conflict check of cq.
func HasOverlap[Q postgres.Queryer](
	ctx context.Context, q Q, cq model.ConflictQuery,
) (found bool, err error) {
	gdb := q.GORM(ctx)
	sub := occupying(
		gdb.Model(&gReservation{}).Select("1").Where(
			"listing_id = ?", cq.ListingID,
		),
		cq.Period,
		cq.Releasing,
	)
	if cq.Exclude != uuid.Nil {
		sub = sub.Where("id <> ?", cq.Exclude)
	}
	err = gdb.Raw("SELECT EXISTS (?)", sub).Scan(&found).Error
	if err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return found, nil
}

// OccupiedListings collects the distinct listing_id values of the
// occupying reservations of period in one query.
func OccupiedListings[Q postgres.Queryer](
	ctx context.Context,
	q Q,
	period model.DateRange,
	releasing []model.ReservationStatus,
) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	gdb := occupying(
		q.GORM(ctx).Model(&gReservation{}), period, releasing,
	)
	err := gdb.Distinct("listing_id").Order(clause.OrderByColumn{
		Column: clause.Column{Name: "listing_id"},
	}).Pluck("listing_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return ids, nil
}

func existsWhere[Q postgres.Queryer](
	ctx context.Context, q Q, column string, id uuid.UUID,
) (found bool, err error) {
	gdb := q.GORM(ctx)
	sub := gdb.Model(&gReservation{}).Select("1").Where(
		clause.Eq{Column: clause.Column{Name: column}, Value: id},
	)
	err = gdb.Raw("SELECT EXISTS (?)", sub).Scan(&found).Error
	if err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return found, nil
}
