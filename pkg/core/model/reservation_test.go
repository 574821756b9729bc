// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/momeni/bookings/pkg/core/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func logReservation(r *model.Reservation) string {
	var buf bytes.Buffer
	slog.New(slog.NewJSONHandler(&buf, nil)).Info(
		"saved", slog.Any("reservation", r),
	)
	return buf.String()
}

func TestReservationLogValue(t *testing.T) {
	r := &model.Reservation{
		Period: model.DateRange{Start: day(0), End: day(2)},
		Price:  decimal.RequireFromString("480"),
		Status: model.ReservationStatusConfirmed,
	}
	out := logReservation(r)
	assert.Contains(t, out, `"status":"confirmed"`)
	assert.Contains(t, out, `"price":"480.00"`)
	assert.Contains(t, out, `"start":"2025-01-01"`)

	r.Status = model.ReservationStatusInvalid
	assert.Contains(t, logReservation(r), `"status":0`)
}
