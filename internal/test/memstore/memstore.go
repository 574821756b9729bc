// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memstore provides an in-memory implementation of the repo
// interfaces for testing the use cases without a DBMS.
//
// Transactions are serialized by one mutex, so they behave as if
// every transaction had locked all rows, and a failed transaction
// restores a snapshot of all tables. Queries which run on a bare
// connection are atomic one by one. The unique and foreign key
// constraints of the PostgreSQL schema are checked too.
package memstore

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/google/uuid"
	"github.com/momeni/bookings/pkg/core/model"
	"github.com/momeni/bookings/pkg/core/repo"
)

// ErrRawSQL is returned by the Exec methods since there is
// no SQL engine behind a Store.
var ErrRawSQL = errors.New("memstore does not run raw SQL queries")

// Store keeps customers, listings, and reservations in maps.
// It implements the repo.Pool interface and its Customers, Listings,
// and Reservations methods return the matching repositories.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	customers    map[uuid.UUID]model.Customer
	listings     map[uuid.UUID]model.Listing
	reservations map[uuid.UUID]model.Reservation
}

type tables struct {
	customers    map[uuid.UUID]model.Customer
	listings     map[uuid.UUID]model.Listing
	reservations map[uuid.UUID]model.Reservation
}

// New instantiates an empty Store.
func New() *Store {
	return &Store{
		customers:    make(map[uuid.UUID]model.Customer),
		listings:     make(map[uuid.UUID]model.Listing),
		reservations: make(map[uuid.UUID]model.Reservation),
	}
}

// Conn passes a connection to handler.
func (s *Store) Conn(ctx context.Context, handler repo.ConnHandler) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return handler(ctx, &conn{s: s})
}

// Close is a no-op. A Store may be used after being closed.
func (s *Store) Close() error {
	return nil
}

// Customers returns the customers repository of s.
func (s *Store) Customers() repo.Customers {
	return customers{s: s}
}

// Listings returns the listings repository of s.
func (s *Store) Listings() repo.Listings {
	return listings{s: s}
}

// Reservations returns the reservations repository of s.
func (s *Store) Reservations() repo.Reservations {
	return reservations{s: s}
}

func (s *Store) snapshot() tables {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return tables{
		customers:    maps.Clone(s.customers),
		listings:     maps.Clone(s.listings),
		reservations: maps.Clone(s.reservations),
	}
}

func (s *Store) restore(t tables) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = t.customers
	s.listings = t.listings
	s.reservations = t.reservations
}

func (s *Store) read(f func()) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f()
}

func (s *Store) write(f func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return f()
}

type conn struct {
	s *Store
}

func (c *conn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrRawSQL
}

// Tx runs handler exclusively. Its changes are reverted if handler
// returns an error or panics.
func (c *conn) Tx(ctx context.Context, handler repo.TxHandler) (err error) {
	s := c.s
	s.txMu.Lock()
	defer s.txMu.Unlock()
	if err = ctx.Err(); err != nil {
		return err
	}
	snap := s.snapshot()
	defer func() {
		if r := recover(); r != nil {
			s.restore(snap)
			panic(r)
		}
		if err != nil {
			s.restore(snap)
		}
	}()
	return handler(ctx, &tx{s: s})
}

func (c *conn) IsConn() {
}

type tx struct {
	s *Store
}

func (t *tx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrRawSQL
}

func (t *tx) IsTx() {
}
