// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/bookings/internal/test/dbcontainer"
	"github.com/momeni/bookings/pkg/adapter/db/postgres"
	"github.com/momeni/bookings/pkg/adapter/db/postgres/customersrp"
	"github.com/momeni/bookings/pkg/adapter/db/postgres/listingsrp"
	"github.com/momeni/bookings/pkg/adapter/db/postgres/reservationsrp"
	"github.com/momeni/bookings/pkg/core/cerr"
	"github.com/momeni/bookings/pkg/core/model"
	"github.com/momeni/bookings/pkg/core/usecase/customersuc"
	"github.com/momeni/bookings/pkg/core/usecase/listingsuc"
	"github.com/momeni/bookings/pkg/core/usecase/reservationsuc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type IntegrationPostgresTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pool *postgres.Pool

	customers    *customersuc.UseCase
	listings     *listingsuc.UseCase
	reservations *reservationsuc.UseCase
}

func TestIntegrationPostgresTestSuite(t *testing.T) {
	ctx := context.Background()
	_, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationPostgresTestSuite{
		Ctx:  ctx,
		Pool: pool,
	})
}

func (ipts *IntegrationPostgresTestSuite) SetupSuite() {
	err := dbcontainer.CreateTables(ipts.Ctx, ipts.Pool)
	ipts.Require().NoError(err, "failed to create tables")
	c, l, r := customersrp.New(), listingsrp.New(), reservationsrp.New()
	ipts.customers, err = customersuc.New(ipts.Pool, c, r)
	ipts.Require().NoError(err)
	ipts.listings, err = listingsuc.New(ipts.Pool, l, r)
	ipts.Require().NoError(err)
	ipts.reservations, err = reservationsuc.New(ipts.Pool, c, l, r)
	ipts.Require().NoError(err)
}

func (ipts *IntegrationPostgresTestSuite) SetupTest() {
	err := dbcontainer.TruncateTables(ipts.Ctx, ipts.Pool)
	ipts.Require().NoError(err, "failed to truncate tables")
}

func (ipts *IntegrationPostgresTestSuite) customer(
	email, taxID string,
) *model.Customer {
	c, err := ipts.customers.Create(ipts.Ctx, &model.Customer{
		Name:  "Ana",
		Email: email,
		Phone: "+5511999998888",
		TaxID: taxID,
	})
	ipts.Require().NoError(err)
	return c
}

func (ipts *IntegrationPostgresTestSuite) listing(
	name string, minHours, maxHours int, rate string,
) *model.Listing {
	l, err := ipts.listings.Create(ipts.Ctx, &model.Listing{
		Name:       name,
		Category:   model.ListingCategoryResidential,
		HourlyRate: decimal.RequireFromString(rate),
		MinHours:   minHours,
		MaxHours:   maxHours,
	})
	ipts.Require().NoError(err)
	return l
}

func day(n int) time.Time {
	return model.Date(2025, time.January, 1).AddDate(0, 0, n)
}

func (ipts *IntegrationPostgresTestSuite) TestCustomerConstraints() {
	c := ipts.customer("ana@example.com", "52998224725")
	got, err := ipts.customers.Get(ipts.Ctx, c.ID)
	ipts.Require().NoError(err)
	ipts.Equal(c.Email, got.Email)
	ipts.Equal(c.TaxID, got.TaxID)

	_, err = ipts.customers.Create(ipts.Ctx, &model.Customer{
		Name: "Bia", Email: "ana@example.com",
		Phone: "+5511999998888", TaxID: "11144477735",
	})
	ipts.Equal(cerr.KindConflict, cerr.KindOf(err))

	_, err = ipts.customers.Get(ipts.Ctx, uuid.New())
	ipts.Equal(cerr.KindNotFound, cerr.KindOf(err))
}

func (ipts *IntegrationPostgresTestSuite) TestReservationLifecycle() {
	c := ipts.customer("ana@example.com", "52998224725")
	l := ipts.listing("Studio", 1, 48, "10.00")
	req := reservationsuc.Request{
		CustomerID: c.ID,
		ListingID:  l.ID,
		Start:      day(0),
		End:        day(1),
		Status:     model.ReservationStatusConfirmed,
	}
	r, err := ipts.reservations.Create(ipts.Ctx, req)
	ipts.Require().NoError(err)
	ipts.Equal("240.00", r.Price.StringFixed(2))

	got, err := ipts.reservations.Get(ipts.Ctx, r.ID)
	ipts.Require().NoError(err)
	ipts.Equal(day(0), got.Period.Start)
	ipts.Equal(day(1), got.Period.End)
	ipts.True(r.Price.Equal(got.Price))
	ipts.Equal(model.ReservationStatusConfirmed, got.Status)

	req.End = day(2)
	_, err = ipts.reservations.Create(ipts.Ctx, req)
	ipts.Equal(cerr.KindConflict, cerr.KindOf(err))

	end := day(3)
	_, err = ipts.reservations.Patch(ipts.Ctx, r.ID, model.ReservationPatch{
		End: &end,
	})
	ipts.Equal(cerr.KindOutOfBounds, cerr.KindOf(err))
	ipts.ErrorIs(err, model.ErrAboveMaximum)

	end = day(2)
	p, err := ipts.reservations.Patch(ipts.Ctx, r.ID, model.ReservationPatch{
		End: &end,
	})
	ipts.Require().NoError(err)
	ipts.Equal("480.00", p.Price.StringFixed(2))

	err = ipts.listings.Delete(ipts.Ctx, l.ID)
	ipts.Equal(cerr.KindReferenced, cerr.KindOf(err))
	err = ipts.customers.Delete(ipts.Ctx, c.ID)
	ipts.Equal(cerr.KindReferenced, cerr.KindOf(err))

	ipts.Require().NoError(ipts.reservations.Delete(ipts.Ctx, r.ID))
	err = ipts.reservations.Delete(ipts.Ctx, r.ID)
	ipts.Equal(cerr.KindNotFound, cerr.KindOf(err))
	ipts.NoError(ipts.listings.Delete(ipts.Ctx, l.ID))
}

func (ipts *IntegrationPostgresTestSuite) TestHasConflictQuery() {
	c := ipts.customer("ana@example.com", "52998224725")
	l := ipts.listing("Studio", 1, 240, "10.00")
	r, err := ipts.reservations.Create(ipts.Ctx, reservationsuc.Request{
		CustomerID: c.ID,
		ListingID:  l.ID,
		Start:      day(2),
		End:        day(5),
		Status:     model.ReservationStatusPending,
	})
	ipts.Require().NoError(err)
	cases := []struct {
		start, end int
		exclude    uuid.UUID
		conflict   bool
	}{
		{0, 2, uuid.Nil, false},
		{5, 6, uuid.Nil, false},
		{1, 3, uuid.Nil, true},
		{4, 8, uuid.Nil, true},
		{1, 8, r.ID, false},
	}
	for _, tc := range cases {
		conflict, err := ipts.reservations.HasConflict(
			ipts.Ctx, l.ID, day(tc.start), day(tc.end), tc.exclude,
		)
		ipts.Require().NoError(err)
		ipts.Equal(tc.conflict, conflict, "[%d, %d)", tc.start, tc.end)
	}
}

func (ipts *IntegrationPostgresTestSuite) TestAvailability() {
	c := ipts.customer("ana@example.com", "52998224725")
	a := ipts.listing("A", 1, 48, "10.00")
	ipts.listing("B", 1, 48, "10.00")
	ipts.listing("C", 72, 96, "10.00")
	for _, s := range []model.ReservationStatus{
		model.ReservationStatusConfirmed, model.ReservationStatusCancelled,
	} {
		_, err := ipts.reservations.Create(ipts.Ctx, reservationsuc.Request{
			CustomerID: c.ID,
			ListingID:  a.ID,
			Start:      day(0),
			End:        day(2),
			Status:     s,
		})
		ipts.Require().NoError(err)
	}
	pr := model.PageRequest{Sort: []model.SortOrder{{Field: "name"}}}
	page, err := ipts.listings.SearchAvailability(
		ipts.Ctx, day(1), day(2), pr,
	)
	ipts.Require().NoError(err)
	ipts.Require().Len(page.Items, 1)
	ipts.Equal("B", page.Items[0].Name)
	ipts.Equal(int64(1), page.TotalItems)

	page, err = ipts.listings.SearchAvailabilityOn(ipts.Ctx, day(5), pr)
	ipts.Require().NoError(err)
	ipts.Equal(int64(2), page.TotalItems)
}

func (ipts *IntegrationPostgresTestSuite) TestConcurrentCreates() {
	c := ipts.customer("ana@example.com", "52998224725")
	l := ipts.listing("Studio", 1, 96, "10.00")
	const n = 6
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = ipts.reservations.Create(
				ipts.Ctx, reservationsuc.Request{
					CustomerID: c.ID,
					ListingID:  l.ID,
					Start:      day(i % 2),
					End:        day(3),
					Status:     model.ReservationStatusConfirmed,
				},
			)
		}()
	}
	wg.Wait()
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		ipts.Equal(cerr.KindConflict, cerr.KindOf(err), "err: %v", err)
	}
	ipts.Equal(1, succeeded, "the row lock must serialize the writers")
}
