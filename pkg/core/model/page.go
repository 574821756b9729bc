// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"slices"
)

// SortOrder asks for sorting a page by one field.
type SortOrder struct {
	Field string
	Desc  bool
}

// PageRequest asks for one page of a sorted list of items.
// Number is zero-based. Items are sorted by the Sort orders, one
// after another, and finally by their identifiers, so the pages of
// one list are stable.
type PageRequest struct {
	Number int
	Size   int
	Sort   []SortOrder
}

// Normalize fills a zero Size with defSize and validates pr.
// Sort fields must be among the allowed ones.
func (pr *PageRequest) Normalize(
	defSize, maxSize int, allowed ...string,
) error {
	var vs Violations
	if pr.Size == 0 {
		pr.Size = defSize
	}
	vs.Assert(pr.Number >= 0, "page", "must not be negative", pr.Number)
	vs.Assert(pr.Size > 0 && pr.Size <= maxSize, "size",
		fmt.Sprintf("must be in [1, %d] range", maxSize), pr.Size)
	for _, so := range pr.Sort {
		vs.Assert(slices.Contains(allowed, so.Field), "sort",
			fmt.Sprintf("must be one of %v", allowed), so.Field)
	}
	return vs.Err()
}

// Offset returns the number of items which precede the pr page.
func (pr PageRequest) Offset() int {
	return pr.Number * pr.Size
}

// Page is one page of a list of T items. TotalItems counts all the
// list items, including those which are not in this page.
type Page[T any] struct {
	Items      []T
	Number     int
	Size       int
	TotalItems int64
}

// TotalPages returns the number of pages of the whole list.
func (p *Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalItems + int64(p.Size) - 1) / int64(p.Size))
}

