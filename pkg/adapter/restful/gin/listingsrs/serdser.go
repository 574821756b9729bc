// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package listingsrs

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/bookings/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/bookings/pkg/core/cerr"
	"github.com/momeni/bookings/pkg/core/model"
	"github.com/shopspring/decimal"
)

type listingReq struct {
	Name        string           `json:"name" binding:"required"`
	Category    string           `json:"category" binding:"required,oneof=residential non-residential seasonal"`
	Description string           `json:"description"`
	HourlyRate  *decimal.Decimal `json:"hourlyRate" binding:"required"`
	MinHours    int              `json:"minHours" binding:"required"`
	MaxHours    int              `json:"maxHours" binding:"required"`
}

type patchReq struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category" binding:"omitempty,oneof=residential non-residential seasonal"`
	Description *string          `json:"description"`
	HourlyRate  *decimal.Decimal `json:"hourlyRate"`
	MinHours    *int             `json:"minHours"`
	MaxHours    *int             `json:"maxHours"`
}

type rawAvailableReq struct {
	Date  *string `form:"date"`
	Start *string `form:"start"`
	End   *string `form:"end"`
}

type availableReq struct {
	Date       *time.Time
	Start, End *time.Time
}

func (rs *resource) DserListingReq(c *gin.Context) (*model.Listing, bool) {
	req := &listingReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil, false
	}
	lc, err := model.ParseListingCategory(req.Category)
	if err != nil {
		serdser.SerErr(c, cerr.BadRequest(err))
		return nil, false
	}
	return &model.Listing{
		Name:        req.Name,
		Category:    lc,
		Description: req.Description,
		HourlyRate:  *req.HourlyRate,
		MinHours:    req.MinHours,
		MaxHours:    req.MaxHours,
	}, true
}

func (rs *resource) DserPatchReq(c *gin.Context) (*model.ListingPatch, bool) {
	req := &patchReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil, false
	}
	p := &model.ListingPatch{
		Name:        req.Name,
		Description: req.Description,
		HourlyRate:  req.HourlyRate,
		MinHours:    req.MinHours,
		MaxHours:    req.MaxHours,
	}
	if req.Category != nil {
		lc, err := model.ParseListingCategory(*req.Category)
		if err != nil {
			serdser.SerErr(c, cerr.BadRequest(err))
			return nil, false
		}
		p.Category = &lc
	}
	return p, true
}

// DserAvailableReq accepts either a date or a start and end pair.
// Missing start or end dates are passed to the use case, so they are
// reported as an invalid range.
func (rs *resource) DserAvailableReq(c *gin.Context) (*availableReq, bool) {
	raw := &rawAvailableReq{}
	if ok := serdser.Bind(c, raw, binding.Query); !ok {
		return nil, false
	}
	var vs model.Violations
	if raw.Date != nil {
		vs.Assert(raw.Start == nil && raw.End == nil, "date",
			"must not be combined with start and end", *raw.Date)
	}
	req := &availableReq{
		Date:  serdser.ParseDate(&vs, "date", raw.Date),
		Start: serdser.ParseDate(&vs, "start", raw.Start),
		End:   serdser.ParseDate(&vs, "end", raw.End),
	}
	if err := vs.Err(); err != nil {
		serdser.SerErr(c, cerr.BadRequest(err))
		return nil, false
	}
	return req, true
}

// ListingResp is the JSON representation of a listing.
type ListingResp struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	HourlyRate  string    `json:"hourlyRate"`
	MinHours    int       `json:"minHours"`
	MaxHours    int       `json:"maxHours"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SerListing converts l to its JSON representation.
func SerListing(l *model.Listing) *ListingResp {
	return &ListingResp{
		ID:          l.ID.String(),
		Name:        l.Name,
		Category:    l.Category.String(),
		Description: l.Description,
		HourlyRate:  serdser.Money(l.HourlyRate),
		MinHours:    l.MinHours,
		MaxHours:    l.MaxHours,
		CreatedAt:   l.CreatedAt,
	}
}
