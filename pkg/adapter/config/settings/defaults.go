// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"cmp"
	"fmt"
)

// Default makes a missing (nil) *dst setting point to a copy of def.
// Present settings are kept as they are.
func Default[T any](dst **T, def T) {
	if *dst == nil {
		*dst = &def
	}
}

// RangeError reports a Name setting whose Value is not in the
// [Min, Max] range. A nil Min or Max leaves that side unbounded.
type RangeError[T cmp.Ordered] struct {
	Name     string
	Value    T
	Min, Max *T
}

func (e *RangeError[T]) Error() string {
	switch {
	case e.Min != nil && e.Max != nil && *e.Min > *e.Max:
		return fmt.Sprintf("%s: empty range [%v, %v]", e.Name, *e.Min, *e.Max)
	case e.Min != nil && e.Value < *e.Min:
		return fmt.Sprintf("%s=%v is less than %v", e.Name, e.Value, *e.Min)
	default:
		return fmt.Sprintf("%s=%v is greater than %v", e.Name, e.Value, *e.Max)
	}
}

// Clamp checks that the name setting which is pointed to by value is
// nil or falls in [minb, maxb]. Out of range values are moved to the
// violated boundary, so callers which only warn about the returned
// *RangeError may still use them.
func Clamp[T cmp.Ordered](name string, value **T, minb, maxb *T) error {
	if minb != nil && maxb != nil && *minb > *maxb {
		return &RangeError[T]{Name: name, Min: minb, Max: maxb}
	}
	if *value == nil {
		return nil
	}
	v := **value
	switch {
	case minb != nil && v < *minb:
		**value = *minb
	case maxb != nil && v > *maxb:
		**value = *maxb
	default:
		return nil
	}
	return &RangeError[T]{Name: name, Value: v, Min: minb, Max: maxb}
}
