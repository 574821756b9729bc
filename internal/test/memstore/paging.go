// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package memstore

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/bookings/pkg/core/model"
)

type comparer[T any] func(a, b *T) int

type columns[T any] struct {
	byField   map[string]comparer[T]
	id        func(*T) uuid.UUID
	createdAt func(*T) time.Time
}

// paginate sorts items as the PostgreSQL repositories do, that is,
// by pr.Sort orders (or creation time if none is given) and then by
// the identifiers, and slices the pr page out of them.
func paginate[T any](
	items []T, pr model.PageRequest, cols columns[T],
) (*model.Page[T], error) {
	orders := pr.Sort
	if len(orders) == 0 {
		orders = []model.SortOrder{{Field: "createdAt"}}
	}
	cmps := make([]comparer[T], 0, len(orders)+1)
	for _, so := range orders {
		c, ok := cols.byField[so.Field]
		if so.Field == "createdAt" {
			c, ok = func(a, b *T) int {
				return cols.createdAt(a).Compare(cols.createdAt(b))
			}, true
		}
		if !ok {
			return nil, fmt.Errorf("unknown sort field %q", so.Field)
		}
		if so.Desc {
			asc := c
			c = func(a, b *T) int { return -asc(a, b) }
		}
		cmps = append(cmps, c)
	}
	cmps = append(cmps, func(a, b *T) int {
		return strings.Compare(cols.id(a).String(), cols.id(b).String())
	})
	slices.SortFunc(items, func(a, b T) int {
		for _, c := range cmps {
			if r := c(&a, &b); r != 0 {
				return r
			}
		}
		return 0
	})
	from := min(pr.Offset(), len(items))
	to := min(from+pr.Size, len(items))
	return &model.Page[T]{
		Items:      slices.Clone(items[from:to]),
		Number:     pr.Number,
		Size:       pr.Size,
		TotalItems: int64(len(items)),
	}, nil
}

func byString[T any](f func(*T) string) comparer[T] {
	return func(a, b *T) int {
		return strings.Compare(f(a), f(b))
	}
}

func byOrdered[T any, V cmp.Ordered](f func(*T) V) comparer[T] {
	return func(a, b *T) int {
		return cmp.Compare(f(a), f(b))
	}
}
