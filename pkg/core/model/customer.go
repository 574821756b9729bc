// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"log/slog"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Customer is a person who may reserve listings.
// Email and TaxID are unique among all customers and the Email may
// not be changed after creation.
type Customer struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	TaxID     string
	CreatedAt time.Time
}

// ErrCustomerNotFound indicates that no customer has the asked ID.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerSortFields lists the fields which customers may be sorted by.
var CustomerSortFields = []string{"name", "email", "createdAt"}

var phonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)

// Validate checks the c fields and collects all violations.
// Phone and TaxID are expected to be normalized beforehand.
func (c *Customer) Validate() Violations {
	var vs Violations
	n := utf8.RuneCountInString(c.Name)
	vs.Assert(n > 0 && n <= 100, "name",
		"must have 1 to 100 characters", c.Name)
	vs.Assert(IsEmail(c.Email), "email",
		"must be a valid e-mail address", c.Email)
	vs.Assert(phonePattern.MatchString(c.Phone), "phone",
		"must have 10 to 15 digits with an optional leading +", c.Phone)
	vs.Assert(IsTaxID(c.TaxID), "taxId",
		"must be a valid CPF number", c.TaxID)
	return vs
}

// LogValue implements the slog.LogValuer interface.
// Contact fields are not logged.
func (c *Customer) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", c.ID.String()),
		slog.String("name", c.Name),
	)
}

// IsEmail reports whether s is a bare e-mail address.
func IsEmail(s string) bool {
	if len(s) > 254 {
		return false
	}
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s && a.Name == ""
}

// NormalizeTaxID drops the usual CPF punctuation from s,
// so 529.982.247-25 becomes 52998224725.
func NormalizeTaxID(s string) string {
	return strings.NewReplacer(".", "", "-", "", " ", "").Replace(s)
}

// IsTaxID reports whether s is an 11 digits CPF number with valid
// check digits. Numbers made of one repeated digit are rejected.
func IsTaxID(s string) bool {
	if len(s) != 11 {
		return false
	}
	var d [11]int
	same := true
	for i := 0; i < 11; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
		d[i] = int(s[i] - '0')
		if d[i] != d[0] {
			same = false
		}
	}
	if same {
		return false
	}
	return cpfDigit(d[:9]) == d[9] && cpfDigit(d[:10]) == d[10]
}

func cpfDigit(d []int) int {
	sum := 0
	w := len(d) + 1
	for i, v := range d {
		sum += v * (w - i)
	}
	r := sum * 10 % 11
	if r == 10 {
		return 0
	}
	return r
}

// CustomerPatch holds the optional fields of a partial customer
// update. Nil fields keep their current values.
type CustomerPatch struct {
	Name  *string
	Phone *string
	TaxID *string
}

// Apply overwrites the c fields which are set in p.
func (p *CustomerPatch) Apply(c *Customer) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.TaxID != nil {
		c.TaxID = *p.TaxID
	}
}
