// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "github.com/shopspring/decimal"

// PricePlaces is the number of fractional digits of all prices.
const PricePlaces = 2

// PriceFor computes the final price of renting a listing with the
// given hourly rate for the given number of hours. The product is
// rounded half-up to two decimal places. Rate and hours are expected
// to be non-negative, so the half-away-from-zero rounding of the
// decimal package coincides with the half-up rounding.
func PriceFor(rate decimal.Decimal, hours int64) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(hours)).Round(PricePlaces)
}
