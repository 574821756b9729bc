// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListingCategory classifies a listing based on its intended usage.
type ListingCategory int

// These constants define the supported listing categories.
const (
	ListingCategoryInvalid ListingCategory = iota // zero value is invalid

	ListingCategoryResidential
	ListingCategoryNonResidential
	ListingCategorySeasonal
)

// ErrUnknownListingCategory indicates that a string could not be
// parsed as a ListingCategory.
var ErrUnknownListingCategory = errors.New("unknown listing category")

// ListingCategoryError is an invalid ListingCategory value.
type ListingCategoryError int

func (e ListingCategoryError) Error() string {
	return fmt.Sprintf("invalid listing category: %d", e)
}

// Validate returns nil if lc is one of the known categories.
func (lc ListingCategory) Validate() error {
	switch lc {
	case ListingCategoryResidential,
		ListingCategoryNonResidential,
		ListingCategorySeasonal:
		return nil
	default:
		return ListingCategoryError(lc)
	}
}

// String returns the textual representation of lc.
// It panics for an invalid category.
func (lc ListingCategory) String() string {
	switch lc {
	case ListingCategoryResidential:
		return "residential"
	case ListingCategoryNonResidential:
		return "non-residential"
	case ListingCategorySeasonal:
		return "seasonal"
	default:
		panic(ListingCategoryError(lc))
	}
}

// ParseListingCategory is the inverse of ListingCategory.String.
func ParseListingCategory(s string) (ListingCategory, error) {
	switch s {
	case "residential":
		return ListingCategoryResidential, nil
	case "non-residential":
		return ListingCategoryNonResidential, nil
	case "seasonal":
		return ListingCategorySeasonal, nil
	default:
		return ListingCategoryInvalid, ErrUnknownListingCategory
	}
}

// These errors distinguish the two ways that a duration may fall
// outside of the [MinHours, MaxHours] window of a listing.
var (
	ErrBelowMinimum = errors.New("duration is below the listing minimum")
	ErrAboveMaximum = errors.New("duration is above the listing maximum")
)

// ErrListingNotFound indicates that no listing has the asked ID.
var ErrListingNotFound = errors.New("listing not found")

// ListingSortFields lists the fields which listings may be sorted by.
var ListingSortFields = []string{
	"name", "category", "hourlyRate", "minHours", "maxHours", "createdAt",
}

// Listing is a rentable resource. It may be reserved for a number of
// hours in the inclusive [MinHours, MaxHours] window and the price of
// each hour is HourlyRate.
type Listing struct {
	ID          uuid.UUID
	Name        string
	Category    ListingCategory
	Description string
	HourlyRate  decimal.Decimal
	MinHours    int
	MaxHours    int
	CreatedAt   time.Time
}

// Admits reports whether a reservation of the given hours may be
// made for l considering its duration window.
func (l *Listing) Admits(hours int64) bool {
	return int64(l.MinHours) <= hours && hours <= int64(l.MaxHours)
}

// CheckDuration returns nil if l admits the given hours, and
// ErrBelowMinimum or ErrAboveMaximum otherwise.
func (l *Listing) CheckDuration(hours int64) error {
	switch {
	case hours < int64(l.MinHours):
		return fmt.Errorf(
			"%w: %d < %d hours", ErrBelowMinimum, hours, l.MinHours,
		)
	case hours > int64(l.MaxHours):
		return fmt.Errorf(
			"%w: %d > %d hours", ErrAboveMaximum, hours, l.MaxHours,
		)
	}
	return nil
}

// Validate checks the l fields and collects all violations.
func (l *Listing) Validate() Violations {
	var vs Violations
	n := utf8.RuneCountInString(l.Name)
	vs.Assert(n > 0 && n <= 50, "name",
		"must have 1 to 50 characters", l.Name)
	vs.Assert(l.Category.Validate() == nil, "category",
		"must be residential, non-residential, or seasonal", int(l.Category))
	vs.Assert(utf8.RuneCountInString(l.Description) <= 255,
		"description", "must not exceed 255 characters", l.Description)
	if vs.Assert(l.HourlyRate.IsPositive(), "hourlyRate",
		"must be strictly positive", l.HourlyRate.String()) {
		vs.Assert(l.HourlyRate.Equal(l.HourlyRate.Round(PricePlaces)),
			"hourlyRate", "must have at most two decimal places",
			l.HourlyRate.String())
		vs.Assert(l.HourlyRate.LessThan(maxMoney), "hourlyRate",
			"must be less than 100000000", l.HourlyRate.String())
	}
	minOK := vs.Assert(l.MinHours > 0, "minHours",
		"must be strictly positive", l.MinHours)
	maxOK := vs.Assert(l.MaxHours > 0, "maxHours",
		"must be strictly positive", l.MaxHours)
	if minOK && maxOK {
		vs.Assert(l.MaxHours >= l.MinHours, "maxHours",
			"must not be less than minHours", l.MaxHours)
	}
	return vs
}

// maxMoney is the exclusive upper bound of numeric(10,2) amounts.
var maxMoney = decimal.NewFromInt(100_000_000)

// ListingPatch holds the optional fields of a partial listing update.
// Nil fields keep their current values.
type ListingPatch struct {
	Name        *string
	Category    *ListingCategory
	Description *string
	HourlyRate  *decimal.Decimal
	MinHours    *int
	MaxHours    *int
}

// Apply overwrites the l fields which are set in p.
func (p *ListingPatch) Apply(l *Listing) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Category != nil {
		l.Category = *p.Category
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.HourlyRate != nil {
		l.HourlyRate = *p.HourlyRate
	}
	if p.MinHours != nil {
		l.MinHours = *p.MinHours
	}
	if p.MaxHours != nil {
		l.MaxHours = *p.MaxHours
	}
}

// LogValue implements the slog.LogValuer interface.
func (l *Listing) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", l.ID.String()),
		slog.String("name", l.Name),
		slog.String("rate", l.HourlyRate.StringFixed(PricePlaces)),
		slog.Int("min", l.MinHours),
		slog.Int("max", l.MaxHours),
	)
}
