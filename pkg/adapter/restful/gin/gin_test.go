// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/bookings/internal/test/memstore"
	"github.com/momeni/bookings/pkg/adapter/hash/bcrypt"
	"github.com/momeni/bookings/pkg/adapter/restful/gin"
	"github.com/momeni/bookings/pkg/adapter/restful/gin/authrs"
	"github.com/momeni/bookings/pkg/adapter/restful/gin/customersrs"
	"github.com/momeni/bookings/pkg/adapter/restful/gin/listingsrs"
	"github.com/momeni/bookings/pkg/adapter/restful/gin/reservationsrs"
	"github.com/momeni/bookings/pkg/adapter/restful/gin/routes"
	"github.com/momeni/bookings/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/bookings/pkg/adapter/token/jwt"
	"github.com/momeni/bookings/pkg/core/usecase/authuc"
	"github.com/momeni/bookings/pkg/core/usecase/customersuc"
	"github.com/momeni/bookings/pkg/core/usecase/listingsuc"
	"github.com/momeni/bookings/pkg/core/usecase/reservationsuc"
	"github.com/stretchr/testify/suite"
)

const base = routes.BasePath

type GinTestSuite struct {
	suite.Suite

	Store *memstore.Store
	Gin   *gin.Engine
	token string
}

func TestGinTestSuite(t *testing.T) {
	gin.SetReleaseMode()
	suite.Run(t, &GinTestSuite{})
}

func (gts *GinTestSuite) SetupTest() {
	gts.Store = memstore.New()
	s := gts.Store
	hash, err := bcrypt.Hash("s3cret")
	gts.Require().NoError(err)
	issuer, err := jwt.New("0123456789abcdef0123456789abcdef", "bkweb")
	gts.Require().NoError(err)

	var ucs routes.UseCases
	ucs.Auth, err = authuc.New(
		bcrypt.Checker{}, issuer, authuc.WithUser("admin", hash),
	)
	gts.Require().NoError(err)
	ucs.Customers, err = customersuc.New(
		s, s.Customers(), s.Reservations(),
	)
	gts.Require().NoError(err)
	ucs.Listings, err = listingsuc.New(
		s, s.Listings(), s.Reservations(),
		listingsuc.WithPageSizes(2, 10),
	)
	gts.Require().NoError(err)
	ucs.Reservations, err = reservationsuc.New(
		s, s.Customers(), s.Listings(), s.Reservations(),
	)
	gts.Require().NoError(err)

	gts.Gin = gin.New(gin.Recovery())
	routes.RegisterUseCases(gts.Gin, ucs)
	gts.token = gts.login("admin", "s3cret")
}

func (gts *GinTestSuite) login(username, password string) string {
	gts.token = ""
	res := &authrs.TokenResp{}
	w := gts.send(http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, res)
	gts.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	gts.Require().NotEmpty(res.Token)
	return res.Token
}

// send serializes body (if not nil) as JSON, sends the request with the
// bearer token (if any), and deserializes the response body into res
// (if not nil).
func (gts *GinTestSuite) send(
	method, path string, body, res any,
) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		gts.Require().NoError(err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, base+path, r)
	gts.Require().NoError(err, "cannot create %s request", method)
	req.Header.Set("Content-Type", "application/json")
	if gts.token != "" {
		req.Header.Set("Authorization", "Bearer "+gts.token)
	}
	w := httptest.NewRecorder()
	gts.Gin.ServeHTTP(w, req)
	if res != nil && w.Body.Len() > 0 {
		gts.Require().NoError(
			json.Unmarshal(w.Body.Bytes(), res), "body is not json",
		)
	}
	return w
}

func (gts *GinTestSuite) sendErr(
	method, path string, body any, status int, kind string,
) *serdser.ErrorBody {
	res := &serdser.ErrorBody{}
	w := gts.send(method, path, body, res)
	gts.Equal(status, w.Code, w.Body.String())
	gts.Equal(status, res.Status)
	gts.Equal(kind, res.Kind)
	p, _, _ := strings.Cut(path, "?")
	gts.Equal(base+p, res.Path)
	return res
}

func (gts *GinTestSuite) createCustomer() *customersrs.CustomerResp {
	res := &customersrs.CustomerResp{}
	w := gts.send(http.MethodPost, "/customers", map[string]string{
		"name":  "Ana Souza",
		"email": "Ana@Example.com",
		"phone": "+55 (11) 99999-8888",
		"taxId": "529.982.247-25",
	}, res)
	gts.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	gts.Equal(base+"/customers/"+res.ID, w.Header().Get("Location"))
	return res
}

func (gts *GinTestSuite) createListing(
	name string, minHours, maxHours int,
) *listingsrs.ListingResp {
	res := &listingsrs.ListingResp{}
	w := gts.send(http.MethodPost, "/listings", map[string]any{
		"name":       name,
		"category":   "residential",
		"hourlyRate": "10",
		"minHours":   minHours,
		"maxHours":   maxHours,
	}, res)
	gts.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return res
}

func (gts *GinTestSuite) TestAuthentication() {
	gts.token = ""
	res := gts.sendErr(
		http.MethodGet, "/customers", nil,
		http.StatusUnauthorized, "unauthorized",
	)
	gts.Equal("missing bearer token", res.Message)

	gts.token = "not-a-jwt"
	gts.sendErr(
		http.MethodGet, "/customers", nil,
		http.StatusUnauthorized, "unauthorized",
	)

	gts.token = ""
	gts.sendErr(http.MethodPost, "/auth/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	}, http.StatusUnauthorized, "unauthorized")

	res = gts.sendErr(http.MethodPost, "/auth/login", map[string]string{
		"username": "admin",
	}, http.StatusBadRequest, "bad_request")
	gts.Require().Len(res.Errors, 1)
	gts.Equal("password", res.Errors[0].Field)
}

func (gts *GinTestSuite) TestCustomers() {
	c := gts.createCustomer()
	gts.Equal("ana@example.com", c.Email)
	gts.Equal("+5511999998888", c.Phone)
	gts.Equal("52998224725", c.TaxID)

	got := &customersrs.CustomerResp{}
	w := gts.send(http.MethodGet, "/customers/"+c.ID, nil, got)
	gts.Equal(http.StatusOK, w.Code)
	gts.Equal(c.ID, got.ID)
	_, err := uuid.Parse(w.Header().Get(gin.RequestIDHeader))
	gts.NoError(err, "request id must be a UUID")

	name := "Ana S."
	w = gts.send(http.MethodPatch, "/customers/"+c.ID, map[string]any{
		"name": name,
	}, got)
	gts.Equal(http.StatusOK, w.Code, w.Body.String())
	gts.Equal(name, got.Name)
	gts.Equal("ana@example.com", got.Email)

	res := gts.sendErr(http.MethodPost, "/customers", map[string]string{
		"name":  "Other",
		"email": "ana@example.com",
		"phone": "+5521988887777",
		"taxId": "11144477735",
	}, http.StatusConflict, "conflict")
	gts.Empty(res.Errors)

	page := &serdser.PageResp[customersrs.CustomerResp]{}
	w = gts.send(http.MethodGet, "/customers?sort=name,desc", nil, page)
	gts.Equal(http.StatusOK, w.Code, w.Body.String())
	gts.Equal(int64(1), page.TotalItems)

	w = gts.send(http.MethodDelete, "/customers/"+c.ID, nil, nil)
	gts.Equal(http.StatusNoContent, w.Code)
	gts.sendErr(
		http.MethodGet, "/customers/"+c.ID, nil,
		http.StatusNotFound, "not_found",
	)
}

func (gts *GinTestSuite) TestBadRequests() {
	res := gts.sendErr(http.MethodPost, "/customers", map[string]string{
		"name":  "Ana",
		"email": "not-an-email",
		"phone": "+5511999998888",
		"taxId": "52998224725",
	}, http.StatusBadRequest, "bad_request")
	gts.Require().Len(res.Errors, 1)
	gts.Equal("email", res.Errors[0].Field)
	gts.Equal("not-an-email", res.Errors[0].RejectedValue)

	res = gts.sendErr(http.MethodPost, "/customers", map[string]string{
		"name":  "Ana",
		"email": "ana@example.com",
		"phone": "123",
		"taxId": "11111111111",
	}, http.StatusBadRequest, "bad_request")
	fields := make([]string, 0, len(res.Errors))
	for _, fe := range res.Errors {
		fields = append(fields, fe.Field)
	}
	gts.ElementsMatch([]string{"phone", "taxId"}, fields)

	res = gts.sendErr(
		http.MethodGet, "/customers/42", nil,
		http.StatusBadRequest, "bad_request",
	)
	gts.Require().Len(res.Errors, 1)
	gts.Equal("id", res.Errors[0].Field)

	for _, q := range []string{"?sort=bogus", "?sort=name,up", "?page=-1"} {
		gts.sendErr(
			http.MethodGet, "/customers"+q, nil,
			http.StatusBadRequest, "bad_request",
		)
	}

	res = gts.sendErr(http.MethodPost, "/listings", map[string]any{
		"name":       "Studio",
		"category":   "castle",
		"hourlyRate": "10",
		"minHours":   1,
		"maxHours":   2,
	}, http.StatusBadRequest, "bad_request")
	gts.Require().Len(res.Errors, 1)
	gts.Equal("category", res.Errors[0].Field)

	gts.sendErr(
		http.MethodGet, "/listings/available?date=2025-13-01", nil,
		http.StatusBadRequest, "bad_request",
	)
	gts.sendErr(
		http.MethodGet, "/listings/available?start=2025-01-02", nil,
		http.StatusBadRequest, "invalid_range",
	)
	gts.sendErr(
		http.MethodGet, "/reservations/conflicts?listing=x", nil,
		http.StatusBadRequest, "bad_request",
	)
}

func (gts *GinTestSuite) TestReservationLifecycle() {
	c := gts.createCustomer()
	l := gts.createListing("Studio", 24, 96)
	gts.Equal("10.00", l.HourlyRate)
	other := gts.createListing("Loft", 24, 96)

	req := map[string]string{
		"customerId": c.ID,
		"listingId":  l.ID,
		"start":      "2025-01-01",
		"end":        "2025-01-03",
		"status":     "confirmed",
	}
	r := &reservationsrs.ReservationResp{}
	w := gts.send(http.MethodPost, "/reservations", req, r)
	gts.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	gts.Equal("480.00", r.Price)
	gts.Equal("2025-01-01", r.Start)
	gts.Equal(base+"/reservations/"+r.ID, w.Header().Get("Location"))

	req["start"], req["end"] = "2025-01-02", "2025-01-04"
	res := gts.sendErr(
		http.MethodPost, "/reservations", req,
		http.StatusConflict, "conflict",
	)
	gts.NotEmpty(res.Message)

	req["start"], req["end"] = "2025-01-03", "2025-01-03"
	gts.sendErr(
		http.MethodPost, "/reservations", req,
		http.StatusBadRequest, "invalid_range",
	)
	req["end"] = "2025-01-08"
	gts.sendErr(
		http.MethodPost, "/reservations", req,
		http.StatusUnprocessableEntity, "out_of_bounds",
	)
	req["end"] = "2025-01-04"
	req["customerId"] = uuid.NewString()
	gts.sendErr(
		http.MethodPost, "/reservations", req,
		http.StatusNotFound, "not_found",
	)

	conflict := &reservationsrs.ConflictResp{}
	q := "/reservations/conflicts?listing=" + l.ID +
		"&start=2025-01-02&end=2025-01-05"
	w = gts.send(http.MethodGet, q, nil, conflict)
	gts.Equal(http.StatusOK, w.Code, w.Body.String())
	gts.True(conflict.Conflict)
	w = gts.send(http.MethodGet, q+"&exclude="+r.ID, nil, conflict)
	gts.Equal(http.StatusOK, w.Code, w.Body.String())
	gts.False(conflict.Conflict)

	page := &serdser.PageResp[listingsrs.ListingResp]{}
	w = gts.send(
		http.MethodGet, "/listings/available?date=2025-01-02", nil, page,
	)
	gts.Equal(http.StatusOK, w.Code, w.Body.String())
	gts.Require().Len(page.Items, 1)
	gts.Equal(other.ID, page.Items[0].ID)

	w = gts.send(http.MethodPatch, "/reservations/"+r.ID, map[string]any{
		"status": "cancelled",
	}, r)
	gts.Equal(http.StatusOK, w.Code, w.Body.String())
	gts.Equal("cancelled", r.Status)
	gts.Equal("480.00", r.Price)

	w = gts.send(
		http.MethodGet,
		"/listings/available?start=2025-01-01&end=2025-01-03&sort=name",
		nil, page,
	)
	gts.Equal(http.StatusOK, w.Code, w.Body.String())
	gts.Equal(int64(2), page.TotalItems)
	gts.Equal(1, page.TotalPages)
	gts.Require().Len(page.Items, 2)
	gts.Equal("Loft", page.Items[0].Name)

	gts.sendErr(
		http.MethodDelete, "/listings/"+l.ID, nil,
		http.StatusConflict, "referenced",
	)
	w = gts.send(http.MethodDelete, "/reservations/"+r.ID, nil, nil)
	gts.Equal(http.StatusNoContent, w.Code)
	w = gts.send(http.MethodDelete, "/listings/"+l.ID, nil, nil)
	gts.Equal(http.StatusNoContent, w.Code)
	gts.sendErr(
		http.MethodGet, "/reservations/"+r.ID, nil,
		http.StatusNotFound, "not_found",
	)
}

func (gts *GinTestSuite) TestListingsPaging() {
	for _, name := range []string{"C", "A", "B"} {
		gts.createListing(name, 1, 24)
	}
	page := &serdser.PageResp[listingsrs.ListingResp]{}
	w := gts.send(http.MethodGet, "/listings?sort=name&page=1", nil, page)
	gts.Equal(http.StatusOK, w.Code, w.Body.String())
	gts.Equal(1, page.Page)
	gts.Equal(2, page.Size, "default page size")
	gts.Equal(int64(3), page.TotalItems)
	gts.Equal(2, page.TotalPages)
	gts.Require().Len(page.Items, 1)
	gts.Equal("C", page.Items[0].Name)

	gts.sendErr(
		http.MethodGet, "/listings?size=11", nil,
		http.StatusBadRequest, "bad_request",
	)
}

func (gts *GinTestSuite) TestListingUpdates() {
	l := gts.createListing("Studio", 24, 48)
	got := &listingsrs.ListingResp{}
	w := gts.send(http.MethodPut, "/listings/"+l.ID, map[string]any{
		"name":        "Studio 2",
		"category":    "seasonal",
		"description": "renovated",
		"hourlyRate":  12.5,
		"minHours":    24,
		"maxHours":    72,
	}, got)
	gts.Equal(http.StatusOK, w.Code, w.Body.String())
	gts.Equal("seasonal", got.Category)
	gts.Equal("12.50", got.HourlyRate)

	res := gts.sendErr(http.MethodPatch, "/listings/"+l.ID, map[string]any{
		"minHours": 100,
	}, http.StatusBadRequest, "bad_request")
	gts.Require().Len(res.Errors, 1)
	gts.Equal("maxHours", res.Errors[0].Field)
}
