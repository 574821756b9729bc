// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package customersuc_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/bookings/internal/test/memstore"
	"github.com/momeni/bookings/pkg/core/cerr"
	"github.com/momeni/bookings/pkg/core/model"
	"github.com/momeni/bookings/pkg/core/usecase/customersuc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CustomersUseCaseTestSuite struct {
	suite.Suite

	Ctx   context.Context
	Store *memstore.Store
	UC    *customersuc.UseCase
}

func TestCustomersUseCaseTestSuite(t *testing.T) {
	suite.Run(t, &CustomersUseCaseTestSuite{Ctx: context.Background()})
}

func (cts *CustomersUseCaseTestSuite) SetupTest() {
	cts.Store = memstore.New()
	uc, err := customersuc.New(
		cts.Store, cts.Store.Customers(), cts.Store.Reservations(),
	)
	cts.Require().NoError(err)
	cts.UC = uc
}

func (cts *CustomersUseCaseTestSuite) ana() *model.Customer {
	return &model.Customer{
		Name:  " Ana Souza ",
		Email: " Ana@Example.com",
		Phone: "+55 (11) 99999-8888",
		TaxID: "529.982.247-25",
	}
}

func (cts *CustomersUseCaseTestSuite) TestCreateNormalizes() {
	c, err := cts.UC.Create(cts.Ctx, cts.ana())
	cts.Require().NoError(err)
	cts.Equal("Ana Souza", c.Name)
	cts.Equal("ana@example.com", c.Email)
	cts.Equal("+5511999998888", c.Phone)
	cts.Equal("52998224725", c.TaxID)
	cts.NotEqual(uuid.Nil, c.ID)

	got, err := cts.UC.Get(cts.Ctx, c.ID)
	cts.Require().NoError(err)
	cts.Equal(*c, *got)
}

func (cts *CustomersUseCaseTestSuite) TestCreateCollectsViolations() {
	_, err := cts.UC.Create(cts.Ctx, &model.Customer{
		Email: "not-an-email",
		Phone: "123",
		TaxID: "11111111111",
	})
	cts.Require().Error(err)
	cts.Equal(cerr.KindBadRequest, cerr.KindOf(err))
	var vs model.Violations
	cts.Require().ErrorAs(err, &vs)
	fields := make([]string, 0, len(vs))
	for _, v := range vs {
		fields = append(fields, v.Field)
	}
	cts.ElementsMatch([]string{"name", "email", "phone", "taxId"}, fields)
}

func (cts *CustomersUseCaseTestSuite) TestCreateUniqueness() {
	_, err := cts.UC.Create(cts.Ctx, cts.ana())
	cts.Require().NoError(err)

	dup := cts.ana()
	dup.TaxID = "111.444.777-35"
	_, err = cts.UC.Create(cts.Ctx, dup)
	cts.Equal(cerr.KindConflict, cerr.KindOf(err), "duplicate email")

	dup = cts.ana()
	dup.Email = "other@example.com"
	_, err = cts.UC.Create(cts.Ctx, dup)
	cts.Equal(cerr.KindConflict, cerr.KindOf(err), "duplicate tax id")
}

func (cts *CustomersUseCaseTestSuite) TestPatchKeepsEmail() {
	c, err := cts.UC.Create(cts.Ctx, cts.ana())
	cts.Require().NoError(err)
	name := "Ana S."
	got, err := cts.UC.Patch(cts.Ctx, c.ID, model.CustomerPatch{
		Name: &name,
	})
	cts.Require().NoError(err)
	cts.Equal("Ana S.", got.Name)
	cts.Equal(c.Email, got.Email)
	cts.Equal(c.Phone, got.Phone)

	bad := "12"
	_, err = cts.UC.Patch(cts.Ctx, c.ID, model.CustomerPatch{Phone: &bad})
	cts.Equal(cerr.KindBadRequest, cerr.KindOf(err))
	stored, err := cts.UC.Get(cts.Ctx, c.ID)
	cts.Require().NoError(err)
	cts.Equal("Ana S.", stored.Name)
	cts.Equal("+5511999998888", stored.Phone)
}

func (cts *CustomersUseCaseTestSuite) TestReplace() {
	c, err := cts.UC.Create(cts.Ctx, cts.ana())
	cts.Require().NoError(err)
	got, err := cts.UC.Replace(cts.Ctx, c.ID, customersuc.ReplaceRequest{
		Name:  "Bia",
		Phone: "11 98888-7777",
		TaxID: "11144477735",
	})
	cts.Require().NoError(err)
	cts.Equal("Bia", got.Name)
	cts.Equal("11988887777", got.Phone)
	cts.Equal("11144477735", got.TaxID)
	cts.Equal(c.Email, got.Email)

	_, err = cts.UC.Replace(
		cts.Ctx, uuid.New(), customersuc.ReplaceRequest{},
	)
	cts.Equal(cerr.KindNotFound, cerr.KindOf(err))
}

type rejectingNormalizer struct{}

func (rejectingNormalizer) Normalize(string) (string, error) {
	return "", errors.New("unknown region")
}

func (cts *CustomersUseCaseTestSuite) TestPhoneNormalizerOption() {
	uc, err := customersuc.New(
		cts.Store, cts.Store.Customers(), cts.Store.Reservations(),
		customersuc.WithPhoneNormalizer(rejectingNormalizer{}),
	)
	cts.Require().NoError(err)
	_, err = uc.Create(cts.Ctx, cts.ana())
	cts.Equal(cerr.KindBadRequest, cerr.KindOf(err))
	var vs model.Violations
	cts.Require().ErrorAs(err, &vs)
	cts.Equal("phone", vs[len(vs)-1].Field)
}

func (cts *CustomersUseCaseTestSuite) TestDeleteGuard() {
	c, err := cts.UC.Create(cts.Ctx, cts.ana())
	cts.Require().NoError(err)
	l := &model.Listing{
		ID:         uuid.New(),
		Name:       "Hall",
		Category:   model.ListingCategorySeasonal,
		HourlyRate: decimal.NewFromInt(1),
		MinHours:   1,
		MaxHours:   24,
	}
	cts.Require().NoError(cts.Store.Listings().Conn(nil).Create(cts.Ctx, l))
	r := &model.Reservation{
		ID:         uuid.New(),
		CustomerID: c.ID,
		ListingID:  l.ID,
		Period: model.SingleDay(
			model.Date(2025, time.May, 5),
		),
		Price:  decimal.NewFromInt(24),
		Status: model.ReservationStatusCompleted,
	}
	rs := cts.Store.Reservations().Conn(nil)
	cts.Require().NoError(rs.Create(cts.Ctx, r))

	err = cts.UC.Delete(cts.Ctx, c.ID)
	cts.Equal(cerr.KindReferenced, cerr.KindOf(err))

	cts.Require().NoError(rs.Delete(cts.Ctx, r.ID))
	cts.Require().NoError(cts.UC.Delete(cts.Ctx, c.ID))
	err = cts.UC.Delete(cts.Ctx, c.ID)
	cts.Equal(cerr.KindNotFound, cerr.KindOf(err))
}

func (cts *CustomersUseCaseTestSuite) TestList() {
	for _, tc := range []struct{ name, email, taxID string }{
		{"Caio", "caio@example.com", "52998224725"},
		{"Ana", "ana@example.com", "11144477735"},
	} {
		_, err := cts.UC.Create(cts.Ctx, &model.Customer{
			Name: tc.name, Email: tc.email,
			Phone: "+5511999998888", TaxID: tc.taxID,
		})
		cts.Require().NoError(err)
	}
	page, err := cts.UC.List(cts.Ctx, model.PageRequest{
		Sort: []model.SortOrder{{Field: "name"}},
	})
	cts.Require().NoError(err)
	cts.Equal(20, page.Size)
	cts.Require().Len(page.Items, 2)
	cts.Equal("Ana", page.Items[0].Name)
	cts.Equal("Caio", page.Items[1].Name)

	_, err = cts.UC.List(cts.Ctx, model.PageRequest{Number: -1})
	cts.Equal(cerr.KindBadRequest, cerr.KindOf(err))
}
