// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package reservationsrp implements the repo.Reservations interface
// for the reservations table, including the overlap queries which
// back the conflict checks and availability searches.
package reservationsrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/bookings/pkg/adapter/db/postgres"
	"github.com/momeni/bookings/pkg/core/model"
	"github.com/momeni/bookings/pkg/core/repo"
)

// Repo represents the reservations repository.
type Repo struct {
}

// New instantiates a reservations repository.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

// Conn wraps c, which must be a *postgres.Conn, as a reservations
// queryer.
func (reservations *Repo) Conn(c repo.Conn) repo.ReservationsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Fetch(
	ctx context.Context, id uuid.UUID,
) (*model.Reservation, error) {
	return Fetch(ctx, cq.Conn, id)
}

func (cq connQueryer) List(
	ctx context.Context, pr model.PageRequest,
) (*model.Page[model.Reservation], error) {
	return List(ctx, cq.Conn, pr)
}

func (cq connQueryer) Create(
	ctx context.Context, r *model.Reservation,
) error {
	return Create(ctx, cq.Conn, r)
}

func (cq connQueryer) Update(
	ctx context.Context, r *model.Reservation,
) error {
	return Update(ctx, cq.Conn, r)
}

func (cq connQueryer) Delete(ctx context.Context, id uuid.UUID) error {
	return Delete(ctx, cq.Conn, id)
}

func (cq connQueryer) HasOverlap(
	ctx context.Context, q model.ConflictQuery,
) (bool, error) {
	return HasOverlap(ctx, cq.Conn, q)
}

func (cq connQueryer) OccupiedListings(
	ctx context.Context,
	period model.DateRange,
	releasing []model.ReservationStatus,
) ([]uuid.UUID, error) {
	return OccupiedListings(ctx, cq.Conn, period, releasing)
}

func (cq connQueryer) ExistsForCustomer(
	ctx context.Context, customerID uuid.UUID,
) (bool, error) {
	return existsWhere(ctx, cq.Conn, "customer_id", customerID)
}

func (cq connQueryer) ExistsForListing(
	ctx context.Context, listingID uuid.UUID,
) (bool, error) {
	return existsWhere(ctx, cq.Conn, "listing_id", listingID)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx wraps tx, which must be a *postgres.Tx, as a reservations
// queryer.
func (reservations *Repo) Tx(tx repo.Tx) repo.ReservationsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Fetch(
	ctx context.Context, id uuid.UUID,
) (*model.Reservation, error) {
	return Fetch(ctx, tq.Tx, id)
}

func (tq txQueryer) List(
	ctx context.Context, pr model.PageRequest,
) (*model.Page[model.Reservation], error) {
	return List(ctx, tq.Tx, pr)
}

func (tq txQueryer) Create(
	ctx context.Context, r *model.Reservation,
) error {
	return Create(ctx, tq.Tx, r)
}

func (tq txQueryer) Update(
	ctx context.Context, r *model.Reservation,
) error {
	return Update(ctx, tq.Tx, r)
}

func (tq txQueryer) Delete(ctx context.Context, id uuid.UUID) error {
	return Delete(ctx, tq.Tx, id)
}

func (tq txQueryer) HasOverlap(
	ctx context.Context, q model.ConflictQuery,
) (bool, error) {
	return HasOverlap(ctx, tq.Tx, q)
}

func (tq txQueryer) OccupiedListings(
	ctx context.Context,
	period model.DateRange,
	releasing []model.ReservationStatus,
) ([]uuid.UUID, error) {
	return OccupiedListings(ctx, tq.Tx, period, releasing)
}

func (tq txQueryer) ExistsForCustomer(
	ctx context.Context, customerID uuid.UUID,
) (bool, error) {
	return existsWhere(ctx, tq.Tx, "customer_id", customerID)
}

func (tq txQueryer) ExistsForListing(
	ctx context.Context, listingID uuid.UUID,
) (bool, error) {
	return existsWhere(ctx, tq.Tx, "listing_id", listingID)
}
