// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package serdser

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/bookings/pkg/core/cerr"
	"github.com/momeni/bookings/pkg/core/model"
	"github.com/shopspring/decimal"
)

// DserID parses the name path parameter as a UUID. In case of errors,
// the 400 response is written and false is returned.
func DserID(c *gin.Context, name string) (uuid.UUID, bool) {
	s := c.Param(name)
	id, err := uuid.Parse(s)
	if err != nil {
		var vs model.Violations
		vs.Add(name, "must be a UUID", s)
		SerErr(c, cerr.BadRequest(vs))
		return uuid.Nil, false
	}
	return id, true
}

// ParseDate parses the optional YYYY-MM-DD date s, recording its
// failure in vs. A nil s yields a nil date.
func ParseDate(vs *model.Violations, field string, s *string) *time.Time {
	if s == nil {
		return nil
	}
	d, err := model.ParseDate(*s)
	if !vs.Assert(err == nil, field, "must be a YYYY-MM-DD date", *s) {
		return nil
	}
	return &d
}

// ParseUUID parses the optional UUID s, recording its failure in vs.
func ParseUUID(vs *model.Violations, field string, s *string) *uuid.UUID {
	if s == nil {
		return nil
	}
	id, err := uuid.Parse(*s)
	if !vs.Assert(err == nil, field, "must be a UUID", *s) {
		return nil
	}
	return &id
}

// Deref returns the value which p points to, or the zero value of T
// if p is nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Date formats t as a YYYY-MM-DD calendar date.
func Date(t time.Time) string {
	return t.Format(model.DateLayout)
}

// Money formats d with exactly two decimal places.
func Money(d decimal.Decimal) string {
	return d.StringFixed(model.PricePlaces)
}
