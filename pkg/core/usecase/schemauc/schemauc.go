// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemauc provides the database initialization use case.
// It prepares an empty schema using the admin role, renews the roles
// passwords, and then creates the bookings tables using the normal
// role, so the normal role owns them.
package schemauc

import (
	"context"
	"fmt"

	"github.com/momeni/bookings/pkg/core/log"
	"github.com/momeni/bookings/pkg/core/repo"
)

// Settings represents the expectations of the database initialization
// use case from the configuration settings.
type Settings interface {
	// ConnectionPool connects to the configured database as the r role.
	ConnectionPool(ctx context.Context, r repo.Role) (repo.Pool, error)

	// NewSchemaRepo instantiates a schema management repository which
	// suffixes the role names as configured.
	NewSchemaRepo() repo.Schema

	// SchemaInitializer wraps the tx transaction of the normal role.
	SchemaInitializer(tx repo.Tx) (repo.SchemaInitializer, error)

	// RenewPasswords generates fresh passwords for roles, writes them
	// in a temporary pass-file, and calls change in order to update
	// them in the database. The returned finalizer must be called
	// after committing the change, so the temporary pass-file replaces
	// the main one. If the process stops before that, ConnectionPool
	// can still connect using the temporary pass-file.
	RenewPasswords(
		ctx context.Context,
		change func(
			ctx context.Context, roles []repo.Role, passwords []string,
		) error,
		roles ...repo.Role,
	) (finalizer func() error, err error)

	// SchemaName returns the name of the bookings schema.
	SchemaName() string
}

// UseCase represents the database initialization use case.
type UseCase struct {
	settings   Settings
	schemaRepo repo.Schema
}

// New instantiates the database initialization use case.
func New(s Settings) *UseCase {
	return &UseCase{settings: s, schemaRepo: s.NewSchemaRepo()}
}

// InitDev recreates the schema and fills it with sample data.
// All existing bookings data will be lost.
func (uc *UseCase) InitDev(ctx context.Context) error {
	return uc.initDB(ctx, repo.SchemaInitializer.InitDevSchema)
}

// InitProd recreates the schema with empty tables.
// All existing bookings data will be lost.
func (uc *UseCase) InitProd(ctx context.Context) error {
	return uc.initDB(ctx, repo.SchemaInitializer.InitProdSchema)
}

func (uc *UseCase) initDB(
	ctx context.Context,
	fill func(si repo.SchemaInitializer, ctx context.Context) error,
) error {
	if err := uc.dropAndCreateAgain(ctx); err != nil {
		return fmt.Errorf("dropping/recreating schema: %w", err)
	}
	p, err := uc.settings.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for normal role: %w", err)
	}
	defer p.Close()
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			si, err := uc.settings.SchemaInitializer(tx)
			if err != nil {
				return fmt.Errorf("creating SchemaInitializer: %w", err)
			}
			return fill(si, ctx)
		})
	})
	if err != nil {
		return fmt.Errorf("normal connection: %w", err)
	}
	log.Info(ctx, "database schema initialized")
	return nil
}

func (uc *UseCase) dropAndCreateAgain(ctx context.Context) error {
	p, err := uc.settings.ConnectionPool(ctx, repo.AdminRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for admin: %w", err)
	}
	defer p.Close()
	var finalizer func() error
	sn := uc.settings.SchemaName()
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := uc.schemaRepo.Tx(tx)
			if err := q.DropIfExists(ctx, sn); err != nil {
				return fmt.Errorf("dropping %q: %w", sn, err)
			}
			if err := q.CreateSchema(ctx, sn); err != nil {
				return fmt.Errorf("creating %q: %w", sn, err)
			}
			err := q.CreateRoleIfNotExists(ctx, repo.NormalRole)
			if err != nil {
				return fmt.Errorf("creating normal role: %w", err)
			}
			err = q.GrantPrivileges(ctx, sn, repo.NormalRole)
			if err != nil {
				return fmt.Errorf("granting normal role privs: %w", err)
			}
			err = q.SetSearchPath(ctx, sn, repo.NormalRole)
			if err != nil {
				return fmt.Errorf(
					"setting search_path of normal role to %q: %w",
					sn, err,
				)
			}
			finalizer, err = uc.settings.RenewPasswords(
				ctx, q.ChangePasswords, repo.AdminRole, repo.NormalRole,
			)
			if err != nil {
				return fmt.Errorf("RenewPasswords: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("admin connection: %w", err)
	}
	if err := finalizer(); err != nil {
		return fmt.Errorf("finalizing passwords renewal: %w", err)
	}
	return nil
}
