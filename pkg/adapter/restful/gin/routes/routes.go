// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/bookings/pkg/adapter/config"
	"github.com/momeni/bookings/pkg/adapter/db/postgres/customersrp"
	"github.com/momeni/bookings/pkg/adapter/db/postgres/listingsrp"
	"github.com/momeni/bookings/pkg/adapter/db/postgres/reservationsrp"
	"github.com/momeni/bookings/pkg/adapter/restful/gin/authrs"
	"github.com/momeni/bookings/pkg/adapter/restful/gin/customersrs"
	"github.com/momeni/bookings/pkg/adapter/restful/gin/listingsrs"
	"github.com/momeni/bookings/pkg/adapter/restful/gin/reservationsrs"
	"github.com/momeni/bookings/pkg/core/repo"
	"github.com/momeni/bookings/pkg/core/usecase/authuc"
	"github.com/momeni/bookings/pkg/core/usecase/customersuc"
	"github.com/momeni/bookings/pkg/core/usecase/listingsuc"
	"github.com/momeni/bookings/pkg/core/usecase/reservationsuc"
)

// BasePath is the common prefix of all REST APIs.
const BasePath = "/api/bkweb/v1"

// UseCases contains the use case instances which are adapted by the
// resources. A nil Auth disables the authentication.
type UseCases struct {
	Auth         *authuc.UseCase
	Customers    *customersuc.UseCase
	Listings     *listingsuc.UseCase
	Reservations *reservationsuc.UseCase
}

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries on
// them and accomplish those use cases. Each use case package is named
// like customersuc and each repository package is named like
// customersrp. Actual instantiation of use case objects is delegated
// to the c Config instance and the created use cases are registered
// by RegisterUseCases.
func Register(e *gin.Engine, p repo.Pool, c *config.Config) error {
	customersRepo := customersrp.New()
	listingsRepo := listingsrp.New()
	reservationsRepo := reservationsrp.New()

	var ucs UseCases
	var err error
	if ucs.Auth, err = c.NewAuthUseCase(); err != nil {
		return fmt.Errorf("creating auth use case: %w", err)
	}
	ucs.Customers, err = c.NewCustomersUseCase(
		p, customersRepo, reservationsRepo,
	)
	if err != nil {
		return fmt.Errorf("creating customers use case: %w", err)
	}
	ucs.Listings, err = c.NewListingsUseCase(
		p, listingsRepo, reservationsRepo,
	)
	if err != nil {
		return fmt.Errorf("creating listings use case: %w", err)
	}
	ucs.Reservations, err = c.NewReservationsUseCase(
		p, customersRepo, listingsRepo, reservationsRepo,
	)
	if err != nil {
		return fmt.Errorf("creating reservations use case: %w", err)
	}
	RegisterUseCases(e, ucs)
	return nil
}

// RegisterUseCases instantiates a series of "resource" structs, from
// packages which are named like customersrs, in order to adapt the
// use cases interfaces with the REST APIs. These resources are
// registered as request handlers using the e gin-gonic engine.
// When ucs.Auth is not nil, the login API is registered and all other
// APIs require a bearer token.
func RegisterUseCases(e *gin.Engine, ucs UseCases) {
	r := e.Group(BasePath)
	if ucs.Auth != nil {
		authrs.Register(r, ucs.Auth)
		r = r.Group("", authrs.Middleware(ucs.Auth))
	}
	customersrs.Register(r, ucs.Customers)
	listingsrs.Register(r, ucs.Listings)
	reservationsrs.Register(r, ucs.Reservations)
}
