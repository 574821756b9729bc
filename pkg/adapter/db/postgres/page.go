// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"fmt"

	"github.com/momeni/bookings/pkg/core/cerr"
	"github.com/momeni/bookings/pkg/core/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Columns maps the sortable model field names to their column names.
type Columns map[string]string

// Paginate counts the rows of the G table which pass the filter scope
// and then fetches the pr page of them. Rows are sorted by pr.Sort,
// or by created_at if it is empty, and then by their id column.
// The gdb must be a fresh session, as returned by the GORM method of
// Conn and Tx, since it is used for two distinct statements.
func Paginate[G any](
	gdb *gorm.DB,
	pr model.PageRequest,
	cols Columns,
	filter func(*gorm.DB) *gorm.DB,
) (rows []G, total int64, err error) {
	var g G
	if err = gdb.Model(&g).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting rows: %w", err)
	}
	orders := pr.Sort
	if len(orders) == 0 {
		orders = []model.SortOrder{{Field: "createdAt"}}
	}
	q := gdb.Scopes(filter)
	for _, so := range orders {
		col, ok := cols[so.Field]
		if !ok {
			return nil, 0, cerr.BadRequest(fmt.Errorf(
				"unknown sort field %q", so.Field,
			))
		}
		q = q.Order(clause.OrderByColumn{
			Column: clause.Column{Name: col}, Desc: so.Desc,
		})
	}
	q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	err = q.Offset(pr.Offset()).Limit(pr.Size).Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("fetching rows: %w", err)
	}
	return rows, total, nil
}

// NoFilter is a Paginate filter which keeps all rows.
func NoFilter(gdb *gorm.DB) *gorm.DB {
	return gdb
}
