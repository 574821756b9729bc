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
)

// DateLayout is the calendar date format which is used for parsing
// and reporting the reservation and availability query dates.
const DateLayout = "2006-01-02"

// HoursPerDay is the number of billable hours in one calendar day.
// Reservations are made for whole days, so all durations are some
// multiple of this constant.
const HoursPerDay = 24

// These errors describe why a pair of dates may not form a usable
// date range. All of them belong to the invalid range category.
var (
	ErrMissingDate      = errors.New("start and end dates are required")
	ErrEndNotAfterStart = errors.New("end date must be after start date")
	ErrEmptyDuration    = errors.New("date range has no billable hours")
)

// Date returns the UTC midnight instant of the given calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TruncateDate drops the time-of-day component of t and returns its
// calendar date (as observed in the t location) at UTC midnight.
// The zero time is returned unchanged, so it can still be detected
// as a missing date.
func TruncateDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return Date(y, m, d)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DurationHours computes the number of billable hours between the
// start and end dates, that is, the number of whole calendar days
// between them times 24. It fails if either date is missing or when
// end is not strictly after start, either as an instant or by its
// calendar date in its own location. Time-of-day components are not
// billable, so two instants of the same calendar date yield zero
// hours without an error and callers which need a positive duration
// must check it separately.
func DurationHours(start, end time.Time) (int64, error) {
	if start.IsZero() || end.IsZero() {
		return 0, ErrMissingDate
	}
	ds, de := TruncateDate(start), TruncateDate(end)
	if !end.After(start) || de.Before(ds) {
		return 0, ErrEndNotAfterStart
	}
	days := de.Sub(ds) / (24 * time.Hour)
	return int64(days) * HoursPerDay, nil
}

// Overlaps reports whether the half-open [s1, e1) and [s2, e2) ranges
// share at least one instant. Ranges which only touch each other, so
// that one ends exactly where the other one starts, do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// DateRange is a half-open [Start, End) range of calendar dates.
// Both fields are kept at UTC midnight. A DateRange which is created
// by NewDateRange or SingleDay spans at least one whole day.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange validates the start and end dates, drops their
// time-of-day components, and returns the resulting DateRange.
// Returned errors are one of ErrMissingDate, ErrEndNotAfterStart, or
// ErrEmptyDuration and can be detected using errors.Is.
func NewDateRange(start, end time.Time) (DateRange, error) {
	hours, err := DurationHours(start, end)
	if err != nil {
		return DateRange{}, err
	}
	if hours <= 0 {
		return DateRange{}, ErrEmptyDuration
	}
	return DateRange{Start: TruncateDate(start), End: TruncateDate(end)}, nil
}

// SingleDay returns the one day range which starts at the d date
// and ends at its following day.
func SingleDay(d time.Time) DateRange {
	s := TruncateDate(d)
	return DateRange{Start: s, End: s.AddDate(0, 0, 1)}
}

// Hours returns the billable hours of r.
// It returns zero for an invalid range.
func (r DateRange) Hours() int64 {
	h, err := DurationHours(r.Start, r.End)
	if err != nil {
		return 0
	}
	return h
}

// Overlaps reports whether r and o share at least one day.
func (r DateRange) Overlaps(o DateRange) bool {
	return Overlaps(r.Start, r.End, o.Start, o.End)
}

// String formats r as [start, end).
func (r DateRange) String() string {
	return fmt.Sprintf(
		"[%s, %s)", r.Start.Format(DateLayout), r.End.Format(DateLayout),
	)
}

// LogValue implements the slog.LogValuer interface.
func (r DateRange) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("start", r.Start.Format(DateLayout)),
		slog.String("end", r.End.Format(DateLayout)),
	)
}
