// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/bookings/pkg/core/model"
)

type CustomersConnQueryer interface {
	CustomersQueryer
}

type CustomersTxQueryer interface {
	CustomersQueryer
}

// CustomersQueryer lists the customer related queries.
// Fetch, Update, and Delete fail with a cerr.NotFound error if the
// customer does not exist. Create and Update fail with a
// cerr.Conflict error if the email or tax identifier is taken.
type CustomersQueryer interface {
	Fetch(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, pr model.PageRequest) (
		*model.Page[model.Customer], error,
	)
	Create(ctx context.Context, c *model.Customer) error
	Update(ctx context.Context, c *model.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Customers interface {
	Conn(Conn) CustomersConnQueryer
	Tx(Tx) CustomersTxQueryer
}
