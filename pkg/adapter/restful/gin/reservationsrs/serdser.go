// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reservationsrs

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/bookings/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/bookings/pkg/core/cerr"
	"github.com/momeni/bookings/pkg/core/model"
	"github.com/momeni/bookings/pkg/core/usecase/reservationsuc"
)

type rawRequest struct {
	CustomerID string  `json:"customerId" binding:"required,uuid"`
	ListingID  string  `json:"listingId" binding:"required,uuid"`
	Start      *string `json:"start" binding:"required"`
	End        *string `json:"end" binding:"required"`
	Status     string  `json:"status" binding:"required,oneof=pending confirmed cancelled completed"`
}

type rawPatchReq struct {
	CustomerID *string `json:"customerId" binding:"omitempty,uuid"`
	ListingID  *string `json:"listingId" binding:"omitempty,uuid"`
	Start      *string `json:"start"`
	End        *string `json:"end"`
	Status     *string `json:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
}

type rawConflictReq struct {
	ListingID *string `form:"listing" binding:"required"`
	Start     *string `form:"start" binding:"required"`
	End       *string `form:"end" binding:"required"`
	Exclude   *string `form:"exclude"`
}

type conflictReq struct {
	ListingID  uuid.UUID
	Start, End time.Time
	Exclude    uuid.UUID
}

func (rs *resource) DserRequest(c *gin.Context) (*reservationsuc.Request, bool) {
	raw := &rawRequest{}
	if ok := serdser.Bind(c, raw, binding.JSON); !ok {
		return nil, false
	}
	var vs model.Violations
	start := serdser.ParseDate(&vs, "start", raw.Start)
	end := serdser.ParseDate(&vs, "end", raw.End)
	if err := vs.Err(); err != nil {
		serdser.SerErr(c, cerr.BadRequest(err))
		return nil, false
	}
	status, err := model.ParseReservationStatus(raw.Status)
	if err != nil {
		serdser.SerErr(c, cerr.BadRequest(err))
		return nil, false
	}
	return &reservationsuc.Request{
		CustomerID: uuid.MustParse(raw.CustomerID),
		ListingID:  uuid.MustParse(raw.ListingID),
		Start:      *start,
		End:        *end,
		Status:     status,
	}, true
}

func (rs *resource) DserPatchReq(
	c *gin.Context,
) (*model.ReservationPatch, bool) {
	raw := &rawPatchReq{}
	if ok := serdser.Bind(c, raw, binding.JSON); !ok {
		return nil, false
	}
	var vs model.Violations
	p := &model.ReservationPatch{
		CustomerID: serdser.ParseUUID(&vs, "customerId", raw.CustomerID),
		ListingID:  serdser.ParseUUID(&vs, "listingId", raw.ListingID),
		Start:      serdser.ParseDate(&vs, "start", raw.Start),
		End:        serdser.ParseDate(&vs, "end", raw.End),
	}
	if raw.Status != nil {
		status, err := model.ParseReservationStatus(*raw.Status)
		if vs.Assert(err == nil, "status",
			"must be pending, confirmed, cancelled, or completed",
			*raw.Status) {
			p.Status = &status
		}
	}
	if err := vs.Err(); err != nil {
		serdser.SerErr(c, cerr.BadRequest(err))
		return nil, false
	}
	return p, true
}

func (rs *resource) DserConflictReq(c *gin.Context) (*conflictReq, bool) {
	raw := &rawConflictReq{}
	if ok := serdser.Bind(c, raw, binding.Query); !ok {
		return nil, false
	}
	var vs model.Violations
	listingID := serdser.ParseUUID(&vs, "listing", raw.ListingID)
	start := serdser.ParseDate(&vs, "start", raw.Start)
	end := serdser.ParseDate(&vs, "end", raw.End)
	exclude := serdser.ParseUUID(&vs, "exclude", raw.Exclude)
	if err := vs.Err(); err != nil {
		serdser.SerErr(c, cerr.BadRequest(err))
		return nil, false
	}
	return &conflictReq{
		ListingID: *listingID,
		Start:     *start,
		End:       *end,
		Exclude:   serdser.Deref(exclude),
	}, true
}

// ReservationResp is the JSON representation of a reservation.
type ReservationResp struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId"`
	ListingID  string    `json:"listingId"`
	Start      string    `json:"start"`
	End        string    `json:"end"`
	Price      string    `json:"price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SerReservation converts r to its JSON representation.
func SerReservation(r *model.Reservation) *ReservationResp {
	return &ReservationResp{
		ID:         r.ID.String(),
		CustomerID: r.CustomerID.String(),
		ListingID:  r.ListingID.String(),
		Start:      serdser.Date(r.Period.Start),
		End:        serdser.Date(r.Period.End),
		Price:      serdser.Money(r.Price),
		Status:     r.Status.String(),
		CreatedAt:  r.CreatedAt,
	}
}
