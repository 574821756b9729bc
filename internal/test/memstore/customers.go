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

type customers struct {
	s *Store
}

func (cs customers) Conn(repo.Conn) repo.CustomersConnQueryer {
	return customersQueryer(cs)
}

func (cs customers) Tx(repo.Tx) repo.CustomersTxQueryer {
	return customersQueryer(cs)
}

type customersQueryer struct {
	s *Store
}

var customerColumns = columns[model.Customer]{
	byField: map[string]comparer[model.Customer]{
		"name": byString(func(c *model.Customer) string {
			return c.Name
		}),
		"email": byString(func(c *model.Customer) string {
			return c.Email
		}),
	},
	id: func(c *model.Customer) uuid.UUID {
		return c.ID
	},
	createdAt: func(c *model.Customer) time.Time {
		return c.CreatedAt
	},
}

func (q customersQueryer) Fetch(
	_ context.Context, id uuid.UUID,
) (*model.Customer, error) {
	var (
		c  model.Customer
		ok bool
	)
	q.s.read(func() {
		c, ok = q.s.customers[id]
	})
	if !ok {
		return nil, cerr.NotFound(model.ErrCustomerNotFound)
	}
	return &c, nil
}

func (q customersQueryer) Exists(
	_ context.Context, id uuid.UUID,
) (ok bool, err error) {
	q.s.read(func() {
		_, ok = q.s.customers[id]
	})
	return ok, nil
}

func (q customersQueryer) List(
	_ context.Context, pr model.PageRequest,
) (*model.Page[model.Customer], error) {
	var items []model.Customer
	q.s.read(func() {
		items = slices.Collect(maps.Values(q.s.customers))
	})
	return paginate(items, pr, customerColumns)
}

func (q customersQueryer) Create(
	_ context.Context, c *model.Customer,
) error {
	return q.s.write(func() error {
		if _, ok := q.s.customers[c.ID]; ok {
			return cerr.Conflict(fmt.Errorf("customer %s exists", c.ID))
		}
		if err := q.checkUnique(c); err != nil {
			return err
		}
		q.s.customers[c.ID] = *c
		return nil
	})
}

func (q customersQueryer) Update(
	_ context.Context, c *model.Customer,
) error {
	return q.s.write(func() error {
		cur, ok := q.s.customers[c.ID]
		if !ok {
			return cerr.NotFound(model.ErrCustomerNotFound)
		}
		if err := q.checkUnique(c); err != nil {
			return err
		}
		u := *c
		u.Email, u.CreatedAt = cur.Email, cur.CreatedAt
		q.s.customers[c.ID] = u
		return nil
	})
}

func (q customersQueryer) checkUnique(c *model.Customer) error {
	for id, other := range q.s.customers {
		switch {
		case id == c.ID:
		case other.Email == c.Email:
			return cerr.Conflict(fmt.Errorf(
				"email %q is taken", c.Email,
			))
		case other.TaxID == c.TaxID:
			return cerr.Conflict(fmt.Errorf(
				"tax identifier %q is taken", c.TaxID,
			))
		}
	}
	return nil
}

func (q customersQueryer) Delete(_ context.Context, id uuid.UUID) error {
	return q.s.write(func() error {
		if _, ok := q.s.customers[id]; !ok {
			return cerr.NotFound(model.ErrCustomerNotFound)
		}
		for _, r := range q.s.reservations {
			if r.CustomerID == id {
				return cerr.Referenced(fmt.Errorf(
					"customer %s has reservations", id,
				))
			}
		}
		delete(q.s.customers, id)
		return nil
	})
}
