// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package reservationsrs realizes the reservations resource, allowing
// the reservation lifecycle and conflict check REST APIs to be accepted
// and delegated to the reservations use cases respectively.
package reservationsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/bookings/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/bookings/pkg/core/usecase/reservationsuc"
)

type resource struct {
	reservations *reservationsuc.UseCase
}

// Register instantiates a resource adapting the reservations use case
// instance with the relevant REST APIs including:
//  1. GET, POST, PUT, PATCH, and DELETE requests to
//     /api/bkweb/v1/reservations and /api/bkweb/v1/reservations/:id
//     for the reservations lifecycle, and
//  2. GET request to /api/bkweb/v1/reservations/conflicts with the
//     listing, start, end, and optional exclude query parameters
//     in order to check a date range before reserving it.
func Register(r *gin.RouterGroup, reservations *reservationsuc.UseCase) {
	rs := &resource{reservations: reservations}
	r.GET("reservations", rs.List)
	r.GET("reservations/conflicts", rs.Conflicts)
	r.GET("reservations/:id", rs.Get)
	r.POST("reservations", rs.Create)
	r.PUT("reservations/:id", rs.Replace)
	r.PATCH("reservations/:id", rs.Patch)
	r.DELETE("reservations/:id", rs.Delete)
}

func (rs *resource) List(c *gin.Context) {
	pr, ok := serdser.DserPageRequest(c)
	if !ok {
		return
	}
	page, err := rs.reservations.List(c, pr)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serdser.SerPage(page, SerReservation))
}

// ConflictResp is the JSON body of a conflict check.
type ConflictResp struct {
	Conflict bool `json:"conflict"`
}

func (rs *resource) Conflicts(c *gin.Context) {
	req, ok := rs.DserConflictReq(c)
	if !ok {
		return
	}
	conflict, err := rs.reservations.HasConflict(
		c, req.ListingID, req.Start, req.End, req.Exclude,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, &ConflictResp{Conflict: conflict})
}

func (rs *resource) Get(c *gin.Context) {
	id, ok := serdser.DserID(c, "id")
	if !ok {
		return
	}
	r, err := rs.reservations.Get(c, id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerReservation(r))
}

func (rs *resource) Create(c *gin.Context) {
	req, ok := rs.DserRequest(c)
	if !ok {
		return
	}
	r, err := rs.reservations.Create(c, *req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Header("Location", c.Request.URL.Path+"/"+r.ID.String())
	c.JSON(http.StatusCreated, SerReservation(r))
}

func (rs *resource) Replace(c *gin.Context) {
	id, ok := serdser.DserID(c, "id")
	if !ok {
		return
	}
	req, ok := rs.DserRequest(c)
	if !ok {
		return
	}
	r, err := rs.reservations.Replace(c, id, *req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerReservation(r))
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
	r, err := rs.reservations.Patch(c, id, *p)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerReservation(r))
}

func (rs *resource) Delete(c *gin.Context) {
	id, ok := serdser.DserID(c, "id")
	if !ok {
		return
	}
	if err := rs.reservations.Delete(c, id); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
