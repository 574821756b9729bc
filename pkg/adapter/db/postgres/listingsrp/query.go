// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package listingsrp

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

var errEmptyExcluded = errors.New("excluded listings must not be empty")

type gListing struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid"`
	Name        string
	Category    string
	Description string
	HourlyRate  decimal.Decimal `gorm:"type:numeric(10,2)"`
	MinHours    int
	MaxHours    int
	CreatedAt   time.Time
}

func (gl *gListing) TableName() string {
	return "listings"
}

func (gl *gListing) Model() (*model.Listing, error) {
	lc, err := model.ParseListingCategory(gl.Category)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", gl.ID, err)
	}
	return &model.Listing{
		ID:          gl.ID,
		Name:        gl.Name,
		Category:    lc,
		Description: gl.Description,
		HourlyRate:  gl.HourlyRate,
		MinHours:    gl.MinHours,
		MaxHours:    gl.MaxHours,
		CreatedAt:   gl.CreatedAt.UTC(),
	}, nil
}

func fromModel(l *model.Listing) *gListing {
	return &gListing{
		ID:          l.ID,
		Name:        l.Name,
		Category:    l.Category.String(),
		Description: l.Description,
		HourlyRate:  l.HourlyRate,
		MinHours:    l.MinHours,
		MaxHours:    l.MaxHours,
		CreatedAt:   l.CreatedAt,
	}
}

var columns = postgres.Columns{
	"name":       "name",
	"category":   "category",
	"hourlyRate": "hourly_rate",
	"minHours":   "min_hours",
	"maxHours":   "max_hours",
	"createdAt":  "created_at",
}

// Fetch finds the id listing. If lock is true, the listing row is
// locked (FOR UPDATE) until the end of the current transaction.
func Fetch[Q postgres.Queryer](
	ctx context.Context, q Q, id uuid.UUID, lock bool,
) (*model.Listing, error) {
	gdb := q.GORM(ctx)
	if lock {
		gdb = gdb.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var gl gListing
	err := gdb.Where("id = ?", id).Take(&gl).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(model.ErrListingNotFound)
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gl.Model()
}

func List[Q postgres.Queryer](
	ctx context.Context, q Q, pr model.PageRequest,
) (*model.Page[model.Listing], error) {
	return page(q.GORM(ctx), pr, postgres.NoFilter)
}

// Eligible lists the listings whose [min_hours, max_hours] window
// contains hours and their ids are not in excluded (if non-empty).
func Eligible[Q postgres.Queryer](
	ctx context.Context,
	q Q,
	hours int64,
	excluded []uuid.UUID,
	pr model.PageRequest,
) (*model.Page[model.Listing], error) {
	return page(q.GORM(ctx), pr, func(gdb *gorm.DB) *gorm.DB {
		gdb = gdb.Where("min_hours <= ? AND max_hours >= ?", hours, hours)
		if len(excluded) > 0 {
			gdb = gdb.Where("id NOT IN ?", excluded)
		}
		return gdb
	})
}

func page(
	gdb *gorm.DB, pr model.PageRequest, filter func(*gorm.DB) *gorm.DB,
) (*model.Page[model.Listing], error) {
	rows, total, err := postgres.Paginate[gListing](
		gdb, pr, columns, filter,
	)
	if err != nil {
		return nil, err
	}
	items := make([]model.Listing, 0, len(rows))
	for _, gl := range rows {
		l, err := gl.Model()
		if err != nil {
			return nil, err
		}
		items = append(items, *l)
	}
	return &model.Page[model.Listing]{
		Items:      items,
		Number:     pr.Number,
		Size:       pr.Size,
		TotalItems: total,
	}, nil
}

func Create[Q postgres.Queryer](
	ctx context.Context, q Q, l *model.Listing,
) error {
	if err := q.GORM(ctx).Create(fromModel(l)).Error; err != nil {
		return postgres.TranslateErr(err)
	}
	return nil
}

// Update overwrites all columns of l except created_at.
func Update[Q postgres.Queryer](
	ctx context.Context, q Q, l *model.Listing,
) error {
	gl := fromModel(l)
	gdb := q.GORM(ctx).Model(&gListing{}).Where("id = ?", l.ID).Updates(
		map[string]any{
			"name":        gl.Name,
			"category":    gl.Category,
			"description": gl.Description,
			"hourly_rate": gl.HourlyRate,
			"min_hours":   gl.MinHours,
			"max_hours":   gl.MaxHours,
		},
	)
	if err := gdb.Error; err != nil {
		return postgres.TranslateErr(err)
	}
	if gdb.RowsAffected == 0 {
		return cerr.NotFound(model.ErrListingNotFound)
	}
	return nil
}

func Delete[Q postgres.Queryer](
	ctx context.Context, q Q, id uuid.UUID,
) error {
	gdb := q.GORM(ctx).Where("id = ?", id).Delete(&gListing{})
	if err := gdb.Error; err != nil {
		return postgres.TranslateErr(err)
	}
	if gdb.RowsAffected == 0 {
		return cerr.NotFound(model.ErrListingNotFound)
	}
	return nil
}
