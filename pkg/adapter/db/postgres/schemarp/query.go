// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemarp

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/momeni/bookings/pkg/adapter/db/postgres"
	"github.com/momeni/bookings/pkg/core/repo"
	"github.com/momeni/bookings/pkg/core/scram"
)

// ScramIterations is the number of hash iterations of role passwords.
// RFC 7677 recommends 15000 or more.
const ScramIterations = 15000

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func roleIdent(roleSuffix, role repo.Role) string {
	return ident(string(role + roleSuffix))
}

// DropIfExists drops the schema with all of its tables if it exists.
func DropIfExists[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	sql := fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", ident(schema))
	if _, err := q.Exec(ctx, sql); err != nil {
		return fmt.Errorf("dropping schema: %w", err)
	}
	return nil
}

// CreateSchema creates the schema. It fails if the schema exists.
func CreateSchema[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	sql := fmt.Sprintf("CREATE SCHEMA %s", ident(schema))
	if _, err := q.Exec(ctx, sql); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// CreateRoleIfNotExists creates the role+roleSuffix login role
// without any password, unless it exists already.
func CreateRoleIfNotExists[Q postgres.Queryer](
	ctx context.Context, q Q, roleSuffix, role repo.Role,
) error {
	var found bool
	err := q.GORM(ctx).Raw(
		"SELECT EXISTS (SELECT 1 FROM pg_roles WHERE rolname = ?)",
		string(role+roleSuffix),
	).Scan(&found).Error
	if err != nil {
		return fmt.Errorf("looking up role: %w", err)
	}
	if found {
		return nil
	}
	sql := fmt.Sprintf("CREATE ROLE %s LOGIN", roleIdent(roleSuffix, role))
	if _, err := q.Exec(ctx, sql); err != nil {
		return fmt.Errorf("creating role: %w", err)
	}
	return nil
}

// GrantPrivileges grants ALL privileges on the schema to the
// role+roleSuffix role, so it may create tables in that schema.
func GrantPrivileges[Q postgres.Queryer](
	ctx context.Context, q Q, roleSuffix repo.Role, schema string,
	role repo.Role,
) error {
	sql := fmt.Sprintf(
		"GRANT ALL PRIVILEGES ON SCHEMA %s TO %s",
		ident(schema), roleIdent(roleSuffix, role),
	)
	if _, err := q.Exec(ctx, sql); err != nil {
		return fmt.Errorf("granting privileges: %w", err)
	}
	return nil
}

// SetSearchPath sets the default search_path of the role+roleSuffix
// role to the schema alone.
func SetSearchPath[Q postgres.Queryer](
	ctx context.Context, q Q, roleSuffix repo.Role, schema string,
	role repo.Role,
) error {
	sql := fmt.Sprintf(
		"ALTER ROLE %s SET search_path TO %s",
		roleIdent(roleSuffix, role), ident(schema),
	)
	if _, err := q.Exec(ctx, sql); err != nil {
		return fmt.Errorf("setting search_path: %w", err)
	}
	return nil
}

// ChangePasswords sets the passwords of roles, pair by pair. The
// passwords are hashed by hasher, so the plaintext passwords are
// never sent to the DBMS and cannot leak into its logs.
func ChangePasswords(
	ctx context.Context,
	tx *postgres.Tx,
	roleSuffix repo.Role,
	hasher scram.Hasher,
	roles []repo.Role,
	passwords []string,
) error {
	if len(roles) != len(passwords) {
		return fmt.Errorf(
			"got %d roles and %d passwords", len(roles), len(passwords),
		)
	}
	for i, role := range roles {
		h, err := hasher.Hash(passwords[i], "", ScramIterations)
		if err != nil {
			return fmt.Errorf("hashing password of %q: %w", role, err)
		}
		// The hash has no quotes, see the scram.Hasher format.
		sql := fmt.Sprintf(
			"ALTER ROLE %s WITH PASSWORD '%s'",
			roleIdent(roleSuffix, role), h,
		)
		if _, err := tx.Exec(ctx, sql); err != nil {
			return fmt.Errorf("altering role %q: %w", role, err)
		}
	}
	return nil
}
