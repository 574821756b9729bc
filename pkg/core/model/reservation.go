// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReservationStatus classifies a reservation. The status is chosen by
// callers and there is no transition graph among statuses. However,
// some statuses may be configured as releasing, so their reservations
// stop occupying the listing calendar.
type ReservationStatus int

// These constants define the supported reservation statuses.
const (
	ReservationStatusInvalid ReservationStatus = iota // zero value is invalid

	ReservationStatusPending
	ReservationStatusConfirmed
	ReservationStatusCancelled
	ReservationStatusCompleted
)

// ErrUnknownReservationStatus indicates that a string could not be
// parsed as a ReservationStatus.
var ErrUnknownReservationStatus = errors.New("unknown reservation status")

// ReservationStatusError is an invalid ReservationStatus value.
type ReservationStatusError int

func (e ReservationStatusError) Error() string {
	return fmt.Sprintf("invalid reservation status: %d", e)
}

// Validate returns nil if s is one of the known statuses.
func (s ReservationStatus) Validate() error {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed,
		ReservationStatusCancelled, ReservationStatusCompleted:
		return nil
	default:
		return ReservationStatusError(s)
	}
}

// String returns the textual representation of s.
// It panics for an invalid status.
func (s ReservationStatus) String() string {
	switch s {
	case ReservationStatusPending:
		return "pending"
	case ReservationStatusConfirmed:
		return "confirmed"
	case ReservationStatusCancelled:
		return "cancelled"
	case ReservationStatusCompleted:
		return "completed"
	default:
		panic(ReservationStatusError(s))
	}
}

// ParseReservationStatus is the inverse of ReservationStatus.String.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch s {
	case "pending":
		return ReservationStatusPending, nil
	case "confirmed":
		return ReservationStatusConfirmed, nil
	case "cancelled":
		return ReservationStatusCancelled, nil
	case "completed":
		return ReservationStatusCompleted, nil
	default:
		return ReservationStatusInvalid, ErrUnknownReservationStatus
	}
}

// These errors are reported by the reservation use cases.
var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReservationOverlap  = errors.New(
		"date range overlaps another reservation of the listing",
	)
)

// ReservationSortFields lists the fields which reservations may be
// sorted by.
var ReservationSortFields = []string{
	"start", "end", "price", "status", "createdAt",
}

// Reservation binds one customer to one listing for Period.
// Price is computed from the listing hourly rate and Period hours.
type Reservation struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	ListingID  uuid.UUID
	Period     DateRange
	Price      decimal.Decimal
	Status     ReservationStatus
	CreatedAt  time.Time
}

// LogValue implements the slog.LogValuer interface.
func (r *Reservation) LogValue() slog.Value {
	status := slog.Int("status", int(r.Status))
	if r.Status.Validate() == nil {
		status = slog.String("status", r.Status.String())
	}
	return slog.GroupValue(
		slog.String("id", r.ID.String()),
		slog.String("customer", r.CustomerID.String()),
		slog.String("listing", r.ListingID.String()),
		slog.Any("period", r.Period),
		slog.String("price", r.Price.StringFixed(PricePlaces)),
		status,
	)
}

// ReservationPatch holds the optional fields of a partial reservation
// update. Nil fields keep their current values.
type ReservationPatch struct {
	CustomerID *uuid.UUID
	ListingID  *uuid.UUID
	Start      *time.Time
	End        *time.Time
	Status     *ReservationStatus
}

// Merge returns the start and end dates which result from applying p
// on the r reservation period. Other fields are merged by Apply.
func (p *ReservationPatch) Merge(r *Reservation) (start, end time.Time) {
	start, end = r.Period.Start, r.Period.End
	if p.Start != nil {
		start = *p.Start
	}
	if p.End != nil {
		end = *p.End
	}
	return start, end
}

// Apply overwrites the reference and status fields of r which are
// set in p. Dates and price are not touched because they need to be
// validated and recomputed after the merge.
func (p *ReservationPatch) Apply(r *Reservation) {
	if p.CustomerID != nil {
		r.CustomerID = *p.CustomerID
	}
	if p.ListingID != nil {
		r.ListingID = *p.ListingID
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
}

// OccupancyPolicy decides which reservations occupy the calendar of
// their listings. Reservations with one of the Releasing statuses
// are ignored by conflict checks and availability queries.
type OccupancyPolicy struct {
	Releasing []ReservationStatus
}

// DefaultOccupancyPolicy releases the cancelled reservations.
func DefaultOccupancyPolicy() OccupancyPolicy {
	return OccupancyPolicy{
		Releasing: []ReservationStatus{ReservationStatusCancelled},
	}
}

// Occupies reports whether a reservation with the s status blocks
// other reservations from overlapping with it.
func (op OccupancyPolicy) Occupies(s ReservationStatus) bool {
	return !slices.Contains(op.Releasing, s)
}

// ConflictQuery asks if any occupying reservation of ListingID
// overlaps with Period. The Exclude reservation is ignored, so an
// existing reservation will not conflict with itself while it is
// being updated. A uuid.Nil Exclude excludes nothing.
type ConflictQuery struct {
	ListingID uuid.UUID
	Period    DateRange
	Exclude   uuid.UUID
	Releasing []ReservationStatus
}
