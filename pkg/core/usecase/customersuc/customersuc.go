// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package customersuc provides the customers management use cases.
package customersuc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/bookings/pkg/core/cerr"
	"github.com/momeni/bookings/pkg/core/log"
	"github.com/momeni/bookings/pkg/core/model"
	"github.com/momeni/bookings/pkg/core/repo"
)

// PhoneNormalizer converts a phone number to its canonical form, so
// equal numbers which are written differently are stored identically.
type PhoneNormalizer interface {
	Normalize(phone string) (string, error)
}

type separatorsStripper struct{}

func (separatorsStripper) Normalize(phone string) (string, error) {
	return strings.NewReplacer(
		" ", "", "-", "", "(", "", ")", "", ".", "",
	).Replace(phone), nil
}

// UseCase represents the customers use cases.
type UseCase struct {
	pool           repo.Pool
	customersrp    repo.Customers
	reservationsrp repo.Reservations

	phones      PhoneNormalizer
	defPageSize int
	maxPageSize int
}

// New instantiates the customers use case.
func New(
	p repo.Pool, c repo.Customers, r repo.Reservations, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, customersrp: c, reservationsrp: r}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.phones == nil {
		uc.phones = separatorsStripper{}
	}
	if uc.defPageSize == 0 {
		uc.defPageSize, uc.maxPageSize = 20, 100
	}
	return uc, nil
}

// ReplaceRequest contains the mutable customer fields.
// Email may not be changed after creation.
type ReplaceRequest struct {
	Name  string
	Phone string
	TaxID string
}

// Get fetches a customer.
func (uc *UseCase) Get(
	ctx context.Context, id uuid.UUID,
) (cu *model.Customer, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		cu, err = uc.customersrp.Conn(c).Fetch(ctx, id)
		return err
	})
	if err != nil {
		cu = nil
	}
	return
}

// List returns one page of customers.
func (uc *UseCase) List(
	ctx context.Context, pr model.PageRequest,
) (page *model.Page[model.Customer], err error) {
	err = pr.Normalize(
		uc.defPageSize, uc.maxPageSize, model.CustomerSortFields...,
	)
	if err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		page, err = uc.customersrp.Conn(c).List(ctx, pr)
		return err
	})
	if err != nil {
		page = nil
	}
	return
}

// Create normalizes, validates, and stores a new customer.
// A taken email or tax identifier fails with a cerr.Conflict error.
func (uc *UseCase) Create(
	ctx context.Context, cu *model.Customer,
) (*model.Customer, error) {
	cu.Email = strings.ToLower(strings.TrimSpace(cu.Email))
	if err := uc.prepare(cu); err != nil {
		return nil, err
	}
	cu.ID = uuid.New()
	cu.CreatedAt = time.Now().UTC()
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return uc.customersrp.Conn(c).Create(ctx, cu)
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "customer created", log.Valuer("customer", cu))
	return cu, nil
}

// Replace overwrites the mutable fields of the id customer.
func (uc *UseCase) Replace(
	ctx context.Context, id uuid.UUID, req ReplaceRequest,
) (*model.Customer, error) {
	return uc.Patch(ctx, id, model.CustomerPatch{
		Name: &req.Name, Phone: &req.Phone, TaxID: &req.TaxID,
	})
}

// Patch updates those fields of the id customer which are set in p.
func (uc *UseCase) Patch(
	ctx context.Context, id uuid.UUID, p model.CustomerPatch,
) (cu *model.Customer, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := uc.customersrp.Tx(tx)
			cur, err := q.Fetch(ctx, id)
			if err != nil {
				return fmt.Errorf("fetching customer: %w", err)
			}
			p.Apply(cur)
			if err = uc.prepare(cur); err != nil {
				return err
			}
			if err = q.Update(ctx, cur); err != nil {
				return err
			}
			cu = cur
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "customer updated", log.Valuer("customer", cu))
	return cu, nil
}

// Delete removes the id customer if they own no reservations.
func (uc *UseCase) Delete(ctx context.Context, id uuid.UUID) error {
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			found, err := uc.reservationsrp.Tx(tx).ExistsForCustomer(ctx, id)
			switch {
			case err != nil:
				return fmt.Errorf("looking up reservations: %w", err)
			case found:
				return cerr.Referenced(fmt.Errorf(
					"customer %s has reservations", id,
				))
			}
			return uc.customersrp.Tx(tx).Delete(ctx, id)
		})
	})
	if err != nil {
		return err
	}
	log.Info(ctx, "customer deleted", slog.String("id", id.String()))
	return nil
}

func (uc *UseCase) prepare(cu *model.Customer) error {
	cu.Name = strings.TrimSpace(cu.Name)
	cu.TaxID = model.NormalizeTaxID(strings.TrimSpace(cu.TaxID))
	phone, err := uc.phones.Normalize(strings.TrimSpace(cu.Phone))
	if err == nil {
		cu.Phone = phone
	}
	vs := cu.Validate()
	if err != nil {
		vs.Add("phone", err.Error(), cu.Phone)
	}
	if len(vs) > 0 {
		return cerr.BadRequest(vs)
	}
	return nil
}
