// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package listingsrp implements the repo.Listings interface for the
// listings table, including the duration eligibility queries.
package listingsrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/bookings/pkg/adapter/db/postgres"
	"github.com/momeni/bookings/pkg/core/model"
	"github.com/momeni/bookings/pkg/core/repo"
)

// Repo represents the listings repository.
type Repo struct {
}

// New instantiates a listings repository.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

// Conn wraps c, which must be a *postgres.Conn, as a listings queryer.
func (listings *Repo) Conn(c repo.Conn) repo.ListingsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Fetch(
	ctx context.Context, id uuid.UUID,
) (*model.Listing, error) {
	return Fetch(ctx, cq.Conn, id, false)
}

func (cq connQueryer) List(
	ctx context.Context, pr model.PageRequest,
) (*model.Page[model.Listing], error) {
	return List(ctx, cq.Conn, pr)
}

func (cq connQueryer) Create(ctx context.Context, l *model.Listing) error {
	return Create(ctx, cq.Conn, l)
}

func (cq connQueryer) Update(ctx context.Context, l *model.Listing) error {
	return Update(ctx, cq.Conn, l)
}

func (cq connQueryer) Delete(ctx context.Context, id uuid.UUID) error {
	return Delete(ctx, cq.Conn, id)
}

func (cq connQueryer) Eligible(
	ctx context.Context, hours int64, pr model.PageRequest,
) (*model.Page[model.Listing], error) {
	return Eligible(ctx, cq.Conn, hours, nil, pr)
}

func (cq connQueryer) EligibleExcept(
	ctx context.Context,
	hours int64,
	excluded []uuid.UUID,
	pr model.PageRequest,
) (*model.Page[model.Listing], error) {
	if len(excluded) == 0 {
		return nil, errEmptyExcluded
	}
	return Eligible(ctx, cq.Conn, hours, excluded, pr)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx wraps tx, which must be a *postgres.Tx, as a listings queryer.
func (listings *Repo) Tx(tx repo.Tx) repo.ListingsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Fetch(
	ctx context.Context, id uuid.UUID,
) (*model.Listing, error) {
	return Fetch(ctx, tq.Tx, id, false)
}

func (tq txQueryer) FetchForUpdate(
	ctx context.Context, id uuid.UUID,
) (*model.Listing, error) {
	return Fetch(ctx, tq.Tx, id, true)
}

func (tq txQueryer) List(
	ctx context.Context, pr model.PageRequest,
) (*model.Page[model.Listing], error) {
	return List(ctx, tq.Tx, pr)
}

func (tq txQueryer) Create(ctx context.Context, l *model.Listing) error {
	return Create(ctx, tq.Tx, l)
}

func (tq txQueryer) Update(ctx context.Context, l *model.Listing) error {
	return Update(ctx, tq.Tx, l)
}

func (tq txQueryer) Delete(ctx context.Context, id uuid.UUID) error {
	return Delete(ctx, tq.Tx, id)
}

func (tq txQueryer) Eligible(
	ctx context.Context, hours int64, pr model.PageRequest,
) (*model.Page[model.Listing], error) {
	return Eligible(ctx, tq.Tx, hours, nil, pr)
}

func (tq txQueryer) EligibleExcept(
	ctx context.Context,
	hours int64,
	excluded []uuid.UUID,
	pr model.PageRequest,
) (*model.Page[model.Listing], error) {
	if len(excluded) == 0 {
		return nil, errEmptyExcluded
	}
	return Eligible(ctx, tq.Tx, hours, excluded, pr)
}
