// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package customersrp implements the repo.Customers interface for
// the customers table.
package customersrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/bookings/pkg/adapter/db/postgres"
	"github.com/momeni/bookings/pkg/core/model"
	"github.com/momeni/bookings/pkg/core/repo"
)

// Repo represents the customers repository.
type Repo struct {
}

// New instantiates a customers repository.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

// Conn wraps c, which must be a *postgres.Conn, as a customers queryer.
func (customers *Repo) Conn(c repo.Conn) repo.CustomersConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Fetch(
	ctx context.Context, id uuid.UUID,
) (*model.Customer, error) {
	return Fetch(ctx, cq.Conn, id)
}

func (cq connQueryer) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return Exists(ctx, cq.Conn, id)
}

func (cq connQueryer) List(
	ctx context.Context, pr model.PageRequest,
) (*model.Page[model.Customer], error) {
	return List(ctx, cq.Conn, pr)
}

func (cq connQueryer) Create(ctx context.Context, c *model.Customer) error {
	return Create(ctx, cq.Conn, c)
}

func (cq connQueryer) Update(ctx context.Context, c *model.Customer) error {
	return Update(ctx, cq.Conn, c)
}

func (cq connQueryer) Delete(ctx context.Context, id uuid.UUID) error {
	return Delete(ctx, cq.Conn, id)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx wraps tx, which must be a *postgres.Tx, as a customers queryer.
func (customers *Repo) Tx(tx repo.Tx) repo.CustomersTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Fetch(
	ctx context.Context, id uuid.UUID,
) (*model.Customer, error) {
	return Fetch(ctx, tq.Tx, id)
}

func (tq txQueryer) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return Exists(ctx, tq.Tx, id)
}

func (tq txQueryer) List(
	ctx context.Context, pr model.PageRequest,
) (*model.Page[model.Customer], error) {
	return List(ctx, tq.Tx, pr)
}

func (tq txQueryer) Create(ctx context.Context, c *model.Customer) error {
	return Create(ctx, tq.Tx, c)
}

func (tq txQueryer) Update(ctx context.Context, c *model.Customer) error {
	return Update(ctx, tq.Tx, c)
}

func (tq txQueryer) Delete(ctx context.Context, id uuid.UUID) error {
	return Delete(ctx, tq.Tx, id)
}
