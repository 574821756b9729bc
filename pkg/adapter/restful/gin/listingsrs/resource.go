// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package listingsrs realizes the listings resource, allowing the
// listings management and availability search REST APIs to be accepted
// and delegated to the listings use cases respectively.
package listingsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/bookings/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/bookings/pkg/core/model"
	"github.com/momeni/bookings/pkg/core/usecase/listingsuc"
)

type resource struct {
	listings *listingsuc.UseCase
}

// Register instantiates a resource adapting the listings use case
// instance with the relevant REST APIs including:
//  1. GET, POST, PUT, PATCH, and DELETE requests to
//     /api/bkweb/v1/listings and /api/bkweb/v1/listings/:id
//     for the listings management, and
//  2. GET request to /api/bkweb/v1/listings/available with either
//     a date=YYYY-MM-DD or start=YYYY-MM-DD&end=YYYY-MM-DD query
//     in order to find the listings which may be reserved.
func Register(r *gin.RouterGroup, listings *listingsuc.UseCase) {
	rs := &resource{listings: listings}
	r.GET("listings", rs.List)
	r.GET("listings/available", rs.Available)
	r.GET("listings/:id", rs.Get)
	r.POST("listings", rs.Create)
	r.PUT("listings/:id", rs.Replace)
	r.PATCH("listings/:id", rs.Patch)
	r.DELETE("listings/:id", rs.Delete)
}

func (rs *resource) List(c *gin.Context) {
	pr, ok := serdser.DserPageRequest(c)
	if !ok {
		return
	}
	page, err := rs.listings.List(c, pr)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serdser.SerPage(page, SerListing))
}

func (rs *resource) Available(c *gin.Context) {
	req, ok := rs.DserAvailableReq(c)
	if !ok {
		return
	}
	pr, ok := serdser.DserPageRequest(c)
	if !ok {
		return
	}
	var page *model.Page[model.Listing]
	var err error
	if req.Date != nil {
		page, err = rs.listings.SearchAvailabilityOn(c, *req.Date, pr)
	} else {
		page, err = rs.listings.SearchAvailability(
			c, serdser.Deref(req.Start), serdser.Deref(req.End), pr,
		)
	}
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serdser.SerPage(page, SerListing))
}

func (rs *resource) Get(c *gin.Context) {
	id, ok := serdser.DserID(c, "id")
	if !ok {
		return
	}
	l, err := rs.listings.Get(c, id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerListing(l))
}

func (rs *resource) Create(c *gin.Context) {
	l, ok := rs.DserListingReq(c)
	if !ok {
		return
	}
	l, err := rs.listings.Create(c, l)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Header("Location", c.Request.URL.Path+"/"+l.ID.String())
	c.JSON(http.StatusCreated, SerListing(l))
}

func (rs *resource) Replace(c *gin.Context) {
	id, ok := serdser.DserID(c, "id")
	if !ok {
		return
	}
	l, ok := rs.DserListingReq(c)
	if !ok {
		return
	}
	l, err := rs.listings.Replace(c, id, l)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerListing(l))
}

func (rs *resource) Patch(c *gin.Context) {
	id, ok := serdser.DserID(c, "id")
	if !ok {
		return
	}
	p, ok := rs.DserPatchReq(c)
	if !ok {
		return
	}
	l, err := rs.listings.Patch(c, id, *p)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerListing(l))
}

func (rs *resource) Delete(c *gin.Context) {
	id, ok := serdser.DserID(c, "id")
	if !ok {
		return
	}
	if err := rs.listings.Delete(c, id); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
