// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package listingsuc_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/bookings/internal/test/memstore"
	"github.com/momeni/bookings/pkg/core/cerr"
	"github.com/momeni/bookings/pkg/core/model"
	"github.com/momeni/bookings/pkg/core/usecase/listingsuc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

var d0 = model.Date(2025, time.March, 1)

func day(n int) time.Time {
	return d0.AddDate(0, 0, n)
}

type ListingsUseCaseTestSuite struct {
	suite.Suite

	Ctx   context.Context
	Store *memstore.Store
	UC    *listingsuc.UseCase
}

func TestListingsUseCaseTestSuite(t *testing.T) {
	suite.Run(t, &ListingsUseCaseTestSuite{Ctx: context.Background()})
}

func (lts *ListingsUseCaseTestSuite) SetupTest() {
	lts.Store = memstore.New()
	uc, err := listingsuc.New(
		lts.Store, lts.Store.Listings(), lts.Store.Reservations(),
		listingsuc.WithPageSizes(10, 50),
	)
	lts.Require().NoError(err)
	lts.UC = uc
}

func (lts *ListingsUseCaseTestSuite) create(
	name string, minHours, maxHours int,
) *model.Listing {
	l, err := lts.UC.Create(lts.Ctx, &model.Listing{
		Name:       name,
		Category:   model.ListingCategoryNonResidential,
		HourlyRate: decimal.RequireFromString("12.50"),
		MinHours:   minHours,
		MaxHours:   maxHours,
	})
	lts.Require().NoError(err)
	return l
}

func (lts *ListingsUseCaseTestSuite) reserve(
	listing uuid.UUID, start, end time.Time, s model.ReservationStatus,
) {
	c := &model.Customer{
		ID:        uuid.New(),
		Name:      "Caio",
		Email:     uuid.NewString() + "@example.com",
		Phone:     "+5511988887777",
		TaxID:     uuid.NewString(),
		CreatedAt: time.Now(),
	}
	err := lts.Store.Customers().Conn(nil).Create(lts.Ctx, c)
	lts.Require().NoError(err)
	err = lts.Store.Reservations().Conn(nil).Create(lts.Ctx,
		&model.Reservation{
			ID:         uuid.New(),
			CustomerID: c.ID,
			ListingID:  listing,
			Period:     model.DateRange{Start: start, End: end},
			Price:      decimal.Zero,
			Status:     s,
			CreatedAt:  time.Now(),
		},
	)
	lts.Require().NoError(err)
}

func names(p *model.Page[model.Listing]) []string {
	ns := make([]string, 0, len(p.Items))
	for _, l := range p.Items {
		ns = append(ns, l.Name)
	}
	return ns
}

var byName = model.PageRequest{Sort: []model.SortOrder{{Field: "name"}}}

func (lts *ListingsUseCaseTestSuite) TestCreateValidates() {
	l, err := lts.UC.Create(lts.Ctx, &model.Listing{
		Name:       "  Hall  ",
		Category:   model.ListingCategorySeasonal,
		HourlyRate: decimal.RequireFromString("1.99"),
		MinHours:   2,
		MaxHours:   2,
	})
	lts.Require().NoError(err)
	lts.Equal("Hall", l.Name)
	lts.NotEqual(uuid.Nil, l.ID)
	lts.False(l.CreatedAt.IsZero())

	_, err = lts.UC.Create(lts.Ctx, &model.Listing{
		Name:       "Hall",
		Category:   model.ListingCategorySeasonal,
		HourlyRate: decimal.RequireFromString("1.99"),
		MinHours:   5,
		MaxHours:   2,
	})
	lts.Require().Error(err)
	lts.Equal(cerr.KindBadRequest, cerr.KindOf(err))
	var vs model.Violations
	lts.Require().ErrorAs(err, &vs)
	lts.Equal("maxHours", vs[0].Field)
}

func (lts *ListingsUseCaseTestSuite) TestPatchChecksMergedBounds() {
	l := lts.create("Hall", 2, 10)
	minHours := 20
	_, err := lts.UC.Patch(lts.Ctx, l.ID, model.ListingPatch{
		MinHours: &minHours,
	})
	lts.Equal(cerr.KindBadRequest, cerr.KindOf(err))

	maxHours := 30
	got, err := lts.UC.Patch(lts.Ctx, l.ID, model.ListingPatch{
		MinHours: &minHours, MaxHours: &maxHours,
	})
	lts.Require().NoError(err)
	lts.Equal(20, got.MinHours)
	lts.Equal(30, got.MaxHours)
	lts.Equal("Hall", got.Name)
	lts.Equal(l.CreatedAt, got.CreatedAt)

	_, err = lts.UC.Patch(lts.Ctx, uuid.New(), model.ListingPatch{})
	lts.Equal(cerr.KindNotFound, cerr.KindOf(err))
}

func (lts *ListingsUseCaseTestSuite) TestReplace() {
	l := lts.create("Hall", 2, 10)
	got, err := lts.UC.Replace(lts.Ctx, l.ID, &model.Listing{
		Name:        "Garage",
		Category:    model.ListingCategoryResidential,
		Description: "near the park",
		HourlyRate:  decimal.RequireFromString("3"),
		MinHours:    1,
		MaxHours:    1,
	})
	lts.Require().NoError(err)
	lts.Equal(l.ID, got.ID)
	lts.Equal("Garage", got.Name)
	lts.Equal(model.ListingCategoryResidential, got.Category)
	lts.Equal(l.CreatedAt, got.CreatedAt)
}

func (lts *ListingsUseCaseTestSuite) TestDeleteGuard() {
	l := lts.create("Hall", 1, 100)
	lts.reserve(l.ID, day(0), day(1), model.ReservationStatusCancelled)
	err := lts.UC.Delete(lts.Ctx, l.ID)
	lts.Equal(cerr.KindReferenced, cerr.KindOf(err))

	free := lts.create("Garage", 1, 100)
	lts.Require().NoError(lts.UC.Delete(lts.Ctx, free.ID))
	_, err = lts.UC.Get(lts.Ctx, free.ID)
	lts.Equal(cerr.KindNotFound, cerr.KindOf(err))
	lts.ErrorIs(err, model.ErrListingNotFound)
}

func (lts *ListingsUseCaseTestSuite) TestAvailabilityExcludesOccupied() {
	a := lts.create("A", 1, 48)
	lts.create("B", 1, 48)
	lts.reserve(a.ID, day(0), day(2), model.ReservationStatusConfirmed)

	page, err := lts.UC.SearchAvailability(lts.Ctx, day(1), day(2), byName)
	lts.Require().NoError(err)
	lts.Equal([]string{"B"}, names(page))
	lts.Equal(int64(1), page.TotalItems)
	lts.Equal(10, page.Size)

	again, err := lts.UC.SearchAvailability(lts.Ctx, day(1), day(2), byName)
	lts.Require().NoError(err)
	lts.Equal(page, again)

	page, err = lts.UC.SearchAvailability(lts.Ctx, day(2), day(3), byName)
	lts.Require().NoError(err)
	lts.Equal([]string{"A", "B"}, names(page), "touching is not occupying")
}

func (lts *ListingsUseCaseTestSuite) TestAvailabilityChecksBounds() {
	lts.create("Short", 1, 24)
	lts.create("Long", 48, 96)
	lts.create("Any", 1, 1000)

	page, err := lts.UC.SearchAvailability(lts.Ctx, day(0), day(1), byName)
	lts.Require().NoError(err)
	lts.Equal([]string{"Any", "Short"}, names(page))

	page, err = lts.UC.SearchAvailability(lts.Ctx, day(0), day(3), byName)
	lts.Require().NoError(err)
	lts.Equal([]string{"Any", "Long"}, names(page))
}

func (lts *ListingsUseCaseTestSuite) TestAvailabilityIgnoresReleasing() {
	a := lts.create("A", 1, 48)
	lts.reserve(a.ID, day(0), day(2), model.ReservationStatusCancelled)
	page, err := lts.UC.SearchAvailabilityOn(lts.Ctx, day(1), byName)
	lts.Require().NoError(err)
	lts.Equal([]string{"A"}, names(page))

	lts.reserve(a.ID, day(1), day(2), model.ReservationStatusPending)
	page, err = lts.UC.SearchAvailabilityOn(lts.Ctx, day(1), byName)
	lts.Require().NoError(err)
	lts.Empty(page.Items)
	lts.Equal(int64(0), page.TotalItems)
}

func (lts *ListingsUseCaseTestSuite) TestAvailabilityRejectsBadInput() {
	_, err := lts.UC.SearchAvailability(lts.Ctx, day(2), day(1), byName)
	lts.Equal(cerr.KindInvalidRange, cerr.KindOf(err))
	lts.ErrorIs(err, model.ErrEndNotAfterStart)

	_, err = lts.UC.SearchAvailabilityOn(lts.Ctx, time.Time{}, byName)
	lts.Equal(cerr.KindInvalidRange, cerr.KindOf(err))

	_, err = lts.UC.SearchAvailability(
		lts.Ctx, day(0), day(1), model.PageRequest{Size: 51},
	)
	lts.Equal(cerr.KindBadRequest, cerr.KindOf(err))
}

func (lts *ListingsUseCaseTestSuite) TestAvailabilityPages() {
	for _, n := range []string{"E", "D", "C", "B", "A"} {
		lts.create(n, 1, 48)
	}
	page, err := lts.UC.SearchAvailability(lts.Ctx, day(0), day(1),
		model.PageRequest{
			Number: 1, Size: 2, Sort: byName.Sort,
		},
	)
	lts.Require().NoError(err)
	lts.Equal([]string{"C", "D"}, names(page))
	lts.Equal(int64(5), page.TotalItems)
	lts.Equal(3, page.TotalPages())
}
