// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package customersrs

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/bookings/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/bookings/pkg/core/model"
	"github.com/momeni/bookings/pkg/core/usecase/customersuc"
)

type createReq struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
	TaxID string `json:"taxId" binding:"required"`
}

type replaceReq struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	TaxID string `json:"taxId" binding:"required"`
}

type patchReq struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	TaxID *string `json:"taxId"`
}

func (rs *resource) DserCreateReq(c *gin.Context) (*model.Customer, bool) {
	req := &createReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil, false
	}
	return &model.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		TaxID: req.TaxID,
	}, true
}

func (rs *resource) DserReplaceReq(
	c *gin.Context,
) (*customersuc.ReplaceRequest, bool) {
	req := &replaceReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil, false
	}
	return &customersuc.ReplaceRequest{
		Name:  req.Name,
		Phone: req.Phone,
		TaxID: req.TaxID,
	}, true
}

func (rs *resource) DserPatchReq(c *gin.Context) (*model.CustomerPatch, bool) {
	req := &patchReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil, false
	}
	return &model.CustomerPatch{
		Name:  req.Name,
		Phone: req.Phone,
		TaxID: req.TaxID,
	}, true
}

// CustomerResp is the JSON representation of a customer.
type CustomerResp struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	TaxID     string    `json:"taxId"`
	CreatedAt time.Time `json:"createdAt"`
}

// SerCustomer converts cu to its JSON representation.
func SerCustomer(cu *model.Customer) *CustomerResp {
	return &CustomerResp{
		ID:        cu.ID.String(),
		Name:      cu.Name,
		Email:     cu.Email,
		Phone:     cu.Phone,
		TaxID:     cu.TaxID,
		CreatedAt: cu.CreatedAt,
	}
}
