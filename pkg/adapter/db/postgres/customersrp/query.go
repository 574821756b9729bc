// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package customersrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/bookings/pkg/adapter/db/postgres"
	"github.com/momeni/bookings/pkg/core/cerr"
	"github.com/momeni/bookings/pkg/core/model"
	"gorm.io/gorm"
)

type gCustomer struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid"`
	Name      string
	Email     string
	Phone     string
	TaxID     string `gorm:"column:tax_id"`
	CreatedAt time.Time
}

func (gc *gCustomer) TableName() string {
	return "customers"
}

func (gc *gCustomer) Model() *model.Customer {
	return &model.Customer{
		ID:        gc.ID,
		Name:      gc.Name,
		Email:     gc.Email,
		Phone:     gc.Phone,
		TaxID:     gc.TaxID,
		CreatedAt: gc.CreatedAt.UTC(),
	}
}

func fromModel(c *model.Customer) *gCustomer {
	return &gCustomer{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		TaxID:     c.TaxID,
		CreatedAt: c.CreatedAt,
	}
}

var columns = postgres.Columns{
	"name":      "name",
	"email":     "email",
	"createdAt": "created_at",
}

func Fetch[Q postgres.Queryer](
	ctx context.Context, q Q, id uuid.UUID,
) (*model.Customer, error) {
	var gc gCustomer
	err := q.GORM(ctx).Where("id = ?", id).Take(&gc).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(model.ErrCustomerNotFound)
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gc.Model(), nil
}

func Exists[Q postgres.Queryer](
	ctx context.Context, q Q, id uuid.UUID,
) (found bool, err error) {
	gdb := q.GORM(ctx)
	sub := gdb.Model(&gCustomer{}).Select("1").Where("id = ?", id)
	err = gdb.Raw("SELECT EXISTS (?)", sub).Scan(&found).Error
	if err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return found, nil
}

func List[Q postgres.Queryer](
	ctx context.Context, q Q, pr model.PageRequest,
) (*model.Page[model.Customer], error) {
	rows, total, err := postgres.Paginate[gCustomer](
		q.GORM(ctx), pr, columns, postgres.NoFilter,
	)
	if err != nil {
		return nil, err
	}
	items := make([]model.Customer, 0, len(rows))
	for _, gc := range rows {
		items = append(items, *gc.Model())
	}
	return &model.Page[model.Customer]{
		Items:      items,
		Number:     pr.Number,
		Size:       pr.Size,
		TotalItems: total,
	}, nil
}

// Create inserts c. A taken email or tax_id fails with a cerr.Conflict.
func Create[Q postgres.Queryer](
	ctx context.Context, q Q, c *model.Customer,
) error {
	if err := q.GORM(ctx).Create(fromModel(c)).Error; err != nil {
		return postgres.TranslateErr(err)
	}
	return nil
}

// Update overwrites the mutable columns of c. The email and
// created_at columns are kept unchanged.
func Update[Q postgres.Queryer](
	ctx context.Context, q Q, c *model.Customer,
) error {
	gdb := q.GORM(ctx).Model(&gCustomer{}).Where("id = ?", c.ID).Updates(
		map[string]any{
			"name":   c.Name,
			"phone":  c.Phone,
			"tax_id": c.TaxID,
		},
	)
	if err := gdb.Error; err != nil {
		return postgres.TranslateErr(err)
	}
	if gdb.RowsAffected == 0 {
		return cerr.NotFound(model.ErrCustomerNotFound)
	}
	return nil
}

// Delete removes the id customer. The reservations foreign key
// refuses to delete a customer who has reservations, which fails
// with a cerr.Referenced error.
func Delete[Q postgres.Queryer](
	ctx context.Context, q Q, id uuid.UUID,
) error {
	gdb := q.GORM(ctx).Where("id = ?", id).Delete(&gCustomer{})
	if err := gdb.Error; err != nil {
		return postgres.TranslateErr(err)
	}
	if gdb.RowsAffected == 0 {
		return cerr.NotFound(model.ErrCustomerNotFound)
	}
	return nil
}
