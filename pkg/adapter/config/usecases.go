// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"

	"github.com/momeni/bookings/pkg/adapter/config/settings"
	"github.com/momeni/bookings/pkg/adapter/phone/e164"
	"github.com/momeni/bookings/pkg/core/model"
	"github.com/momeni/bookings/pkg/core/repo"
	"github.com/momeni/bookings/pkg/core/usecase/customersuc"
	"github.com/momeni/bookings/pkg/core/usecase/listingsuc"
	"github.com/momeni/bookings/pkg/core/usecase/reservationsuc"
)

var (
	minPageSize     = 1
	pageSizeLimit   = 1000
	defaultPageSize = 20
	defaultMaxSize  = 100
)

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Pagination   Pagination   // shared by all listing endpoints
	Reservations Reservations // calendar occupancy settings
	Customers    Customers    // customers related settings
}

// Pagination contains the page size settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized and fill them by their default values.
type Pagination struct {
	// DefaultSize is used when a request does not ask for a size.
	// It must be positive and at most MaxSize. Defaults to 20.
	DefaultSize *int `yaml:"default-size"`
	// MaxSize caps the requested page sizes. It must be in the
	// [1, 1000] range and defaults to 100.
	MaxSize *int `yaml:"max-size"`
}

// Reservations contains the reservation related settings.
type Reservations struct {
	// ReleasingStatuses lists the reservation statuses which do not
	// occupy the listing calendar. A missing value means [cancelled],
	// while an explicit empty list makes every reservation occupying.
	ReleasingStatuses []string `yaml:"releasing-statuses"`

	statuses []model.ReservationStatus `yaml:"-"`
}

// Customers contains the customer related settings.
type Customers struct {
	// PhoneRegion is the ISO 3166-1 region which is assumed for the
	// phone numbers without a country calling code. Defaults to BR.
	PhoneRegion string `yaml:"phone-region"`

	phones *e164.Normalizer `yaml:"-"`
}

// ValidateAndNormalize validates the use cases settings and fills
// their default values.
func (u *Usecases) ValidateAndNormalize() error {
	p := &u.Pagination
	settings.Default(&p.MaxSize, defaultMaxSize)
	err := settings.Clamp("max-size", &p.MaxSize, &minPageSize, &pageSizeLimit)
	if err != nil {
		return err
	}
	settings.Default(&p.DefaultSize, min(defaultPageSize, *p.MaxSize))
	err = settings.Clamp("default-size", &p.DefaultSize, &minPageSize, p.MaxSize)
	if err != nil {
		return err
	}

	r := &u.Reservations
	if r.ReleasingStatuses == nil {
		r.ReleasingStatuses = []string{
			model.ReservationStatusCancelled.String(),
		}
	}
	r.statuses = make([]model.ReservationStatus, 0, len(r.ReleasingStatuses))
	for _, s := range r.ReleasingStatuses {
		rs, err := model.ParseReservationStatus(s)
		if err != nil {
			return fmt.Errorf("releasing-statuses: %w", err)
		}
		r.statuses = append(r.statuses, rs)
	}

	c := &u.Customers
	if c.PhoneRegion == "" {
		c.PhoneRegion = "BR"
	}
	pn, err := e164.New(c.PhoneRegion)
	if err != nil {
		return fmt.Errorf("phone-region: %w", err)
	}
	c.phones = pn
	return nil
}

// NewCustomersUseCase instantiates a new customers use case based on
// the settings in the c struct.
func (c *Config) NewCustomersUseCase(
	p repo.Pool, cr repo.Customers, rr repo.Reservations,
) (*customersuc.UseCase, error) {
	pg := c.Usecases.Pagination
	return customersuc.New(
		p, cr, rr,
		customersuc.WithPhoneNormalizer(c.Usecases.Customers.phones),
		customersuc.WithPageSizes(*pg.DefaultSize, *pg.MaxSize),
	)
}

// NewListingsUseCase instantiates a new listings use case based on
// the settings in the c struct.
func (c *Config) NewListingsUseCase(
	p repo.Pool, lr repo.Listings, rr repo.Reservations,
) (*listingsuc.UseCase, error) {
	pg := c.Usecases.Pagination
	return listingsuc.New(
		p, lr, rr,
		listingsuc.WithReleasingStatuses(
			c.Usecases.Reservations.statuses...,
		),
		listingsuc.WithPageSizes(*pg.DefaultSize, *pg.MaxSize),
	)
}

// NewReservationsUseCase instantiates a new reservations use case
// based on the settings in the c struct.
func (c *Config) NewReservationsUseCase(
	p repo.Pool,
	cr repo.Customers,
	lr repo.Listings,
	rr repo.Reservations,
) (*reservationsuc.UseCase, error) {
	pg := c.Usecases.Pagination
	return reservationsuc.New(
		p, cr, lr, rr,
		reservationsuc.WithReleasingStatuses(
			c.Usecases.Reservations.statuses...,
		),
		reservationsuc.WithPageSizes(*pg.DefaultSize, *pg.MaxSize),
	)
}
