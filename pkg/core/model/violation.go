// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"strings"
)

// Violation describes why the value of one field was not acceptable.
type Violation struct {
	Field    string
	Message  string
	Rejected any
}

// Violations collects field-level violations of one entity.
// A non-empty Violations value is an error.
type Violations []Violation

// Add appends a violation for the field name.
func (vs *Violations) Add(field, msg string, rejected any) {
	*vs = append(*vs, Violation{
		Field: field, Message: msg, Rejected: rejected,
	})
}

// Assert adds a violation if ok is false and returns ok.
func (vs *Violations) Assert(ok bool, field, msg string, rejected any) bool {
	if !ok {
		vs.Add(field, msg, rejected)
	}
	return ok
}

// Err returns vs as an error, or nil if it is empty.
func (vs Violations) Err() error {
	if len(vs) == 0 {
		return nil
	}
	return vs
}

func (vs Violations) Error() string {
	msgs := make([]string, 0, len(vs))
	for _, v := range vs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "invalid fields: " + strings.Join(msgs, "; ")
}
