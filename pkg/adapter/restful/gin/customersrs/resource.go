// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package customersrs realizes the customers resource, allowing the
// customers management REST APIs to be accepted and delegated to the
// customers use cases respectively.
package customersrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/bookings/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/bookings/pkg/core/usecase/customersuc"
)

type resource struct {
	customers *customersuc.UseCase
}

// Register instantiates a resource adapting the customers use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/bkweb/v1/customers for listing them,
//  2. GET request to /api/bkweb/v1/customers/:id,
//  3. POST request to /api/bkweb/v1/customers for creating one,
//  4. PUT and PATCH requests to /api/bkweb/v1/customers/:id for
//     replacing all or some of the mutable fields,
//  5. DELETE request to /api/bkweb/v1/customers/:id which is refused
//     while the customer has some reservations.
func Register(r *gin.RouterGroup, customers *customersuc.UseCase) {
	rs := &resource{customers: customers}
	r.GET("customers", rs.List)
	r.GET("customers/:id", rs.Get)
	r.POST("customers", rs.Create)
	r.PUT("customers/:id", rs.Replace)
	r.PATCH("customers/:id", rs.Patch)
	r.DELETE("customers/:id", rs.Delete)
}

func (rs *resource) List(c *gin.Context) {
	pr, ok := serdser.DserPageRequest(c)
	if !ok {
		return
	}
	page, err := rs.customers.List(c, pr)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serdser.SerPage(page, SerCustomer))
}

func (rs *resource) Get(c *gin.Context) {
	id, ok := serdser.DserID(c, "id")
	if !ok {
		return
	}
	cu, err := rs.customers.Get(c, id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerCustomer(cu))
}

func (rs *resource) Create(c *gin.Context) {
	req, ok := rs.DserCreateReq(c)
	if !ok {
		return
	}
	cu, err := rs.customers.Create(c, req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Header("Location", c.Request.URL.Path+"/"+cu.ID.String())
	c.JSON(http.StatusCreated, SerCustomer(cu))
}

func (rs *resource) Replace(c *gin.Context) {
	id, ok := serdser.DserID(c, "id")
	if !ok {
		return
	}
	req, ok := rs.DserReplaceReq(c)
	if !ok {
		return
	}
	cu, err := rs.customers.Replace(c, id, *req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerCustomer(cu))
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
	cu, err := rs.customers.Patch(c, id, *p)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerCustomer(cu))
}

func (rs *resource) Delete(c *gin.Context) {
	id, ok := serdser.DserID(c, "id")
	if !ok {
		return
	}
	if err := rs.customers.Delete(c, id); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
