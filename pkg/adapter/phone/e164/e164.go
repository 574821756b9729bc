// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package e164 normalizes phone numbers into the E.164 format, e.g.,
// +5511999998888, using the github.com/nyaruka/phonenumbers module.
// Numbers without a country calling code are interpreted in the
// default region of the Normalizer.
package e164

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ErrInvalidNumber indicates that a phone number could be parsed, but
// it is not assigned in its region.
var ErrInvalidNumber = errors.New("invalid phone number")

// Normalizer implements the customersuc.PhoneNormalizer interface.
type Normalizer struct {
	region string // ISO 3166-1 alpha-2 code, like BR
}

// New creates a Normalizer with the given default region.
func New(region string) (*Normalizer, error) {
	region = strings.ToUpper(region)
	if phonenumbers.GetCountryCodeForRegion(region) == 0 {
		return nil, fmt.Errorf("unknown phone region: %q", region)
	}
	return &Normalizer{region: region}, nil
}

// Normalize parses phone and formats it as E.164.
func (n *Normalizer) Normalize(phone string) (string, error) {
	pn, err := phonenumbers.Parse(strings.TrimSpace(phone), n.region)
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", phone, err)
	}
	if !phonenumbers.IsValidNumber(pn) {
		return "", fmt.Errorf("%q: %w", phone, ErrInvalidNumber)
	}
	return phonenumbers.Format(pn, phonenumbers.E164), nil
}
