// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// SchemaInitializer creates the bookings tables in an existing and
// empty database schema and fills them with initial data. The target
// transaction is known since the SchemaInitializer instantiation.
type SchemaInitializer interface {
	// InitDevSchema creates tables and fills them with sample
	// customers, listings, and reservations for development.
	InitDevSchema(ctx context.Context) error

	// InitProdSchema creates empty tables for production.
	InitProdSchema(ctx context.Context) error
}

// Schema is the database schema and roles management repository.
// It is used by the admin role in order to prepare an empty schema
// for the normal role.
type Schema interface {
	Conn(Conn) SchemaConnQueryer
	Tx(Tx) SchemaTxQueryer
}

type SchemaConnQueryer interface {
	SchemaQueryer
}

// SchemaTxQueryer adds those operations which must run in the same
// transaction as their preceding schema changes.
type SchemaTxQueryer interface {
	SchemaQueryer

	// ChangePasswords sets the passwords of roles, pair by pair.
	// Passwords are hashed before being sent to the DBMS, so they
	// will not appear in the server logs.
	ChangePasswords(
		ctx context.Context, roles []Role, passwords []string,
	) error
}

// SchemaQueryer lists the common schema management operations.
// Callers are responsible to pass trusted schema names.
// Role names may be suffixed automatically by the implementation.
type SchemaQueryer interface {
	// DropIfExists drops schema with all of its tables.
	// A missing schema is not an error.
	DropIfExists(ctx context.Context, schema string) error

	CreateSchema(ctx context.Context, schema string) error

	// CreateRoleIfNotExists creates a login role without password.
	CreateRoleIfNotExists(ctx context.Context, role Role) error

	// GrantPrivileges grants ALL privileges on schema to role.
	GrantPrivileges(ctx context.Context, schema string, role Role) error

	// SetSearchPath makes schema the default search_path of role.
	SetSearchPath(ctx context.Context, schema string, role Role) error
}
