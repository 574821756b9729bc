// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package initializer creates the bookings tables in an empty schema
// and optionally fills them with development sample data.
//
// Each Initializer wraps one transaction of the normal role, whose
// search_path points to the bookings schema, and the caller is
// responsible to commit that transaction.
package initializer

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/momeni/bookings/pkg/core/repo"
)

//go:embed schema.sql
var schemaSQL string

//go:embed devdata.sql
var devDataSQL string

// Initializer implements the repo.SchemaInitializer interface.
type Initializer struct {
	tx repo.Tx // normal role transaction
}

// New creates an Initializer which runs its queries in tx.
func New(tx repo.Tx) *Initializer {
	return &Initializer{tx: tx}
}

// InitDevSchema creates the tables and fills them with a few sample
// customers, listings, and reservations.
func (i *Initializer) InitDevSchema(ctx context.Context) error {
	if err := i.InitProdSchema(ctx); err != nil {
		return err
	}
	if _, err := i.tx.Exec(ctx, devDataSQL); err != nil {
		return fmt.Errorf("inserting development data: %w", err)
	}
	return nil
}

// InitProdSchema creates empty tables.
func (i *Initializer) InitProdSchema(ctx context.Context) error {
	if _, err := i.tx.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}
