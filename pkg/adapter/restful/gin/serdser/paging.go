// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package serdser

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/bookings/pkg/core/cerr"
	"github.com/momeni/bookings/pkg/core/model"
)

type rawPageReq struct {
	Page int      `form:"page" binding:"omitempty,min=0"`
	Size int      `form:"size" binding:"omitempty,min=1"`
	Sort []string `form:"sort"`
}

// DserPageRequest parses the page, size, and sort query parameters.
// The page is 0-based and each sort parameter has a field[,asc|desc]
// format, so sort=name,desc&sort=createdAt orders by name descending
// and then by createdAt ascending. A missing size is left as zero, so
// the use case may choose its default page size. Allowed sort fields
// are verified by the use cases.
func DserPageRequest(c *gin.Context) (model.PageRequest, bool) {
	req := &rawPageReq{}
	if ok := Bind(c, req, binding.Query); !ok {
		return model.PageRequest{}, false
	}
	pr := model.PageRequest{Number: req.Page, Size: req.Size}
	var vs model.Violations
	for _, s := range req.Sort {
		field, dir, _ := strings.Cut(s, ",")
		switch strings.ToLower(dir) {
		case "", "asc":
			pr.Sort = append(pr.Sort, model.SortOrder{Field: field})
		case "desc":
			pr.Sort = append(pr.Sort, model.SortOrder{
				Field: field, Desc: true,
			})
		default:
			vs.Add("sort", "direction must be asc or desc", s)
		}
	}
	if err := vs.Err(); err != nil {
		SerErr(c, cerr.BadRequest(err))
		return model.PageRequest{}, false
	}
	return pr, true
}

// PageResp is the JSON representation of one page of items.
type PageResp[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// SerPage converts each item of p using the ser function.
func SerPage[T, U any](p *model.Page[T], ser func(*T) U) *PageResp[U] {
	items := make([]U, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, ser(&p.Items[i]))
	}
	return &PageResp[U]{
		Items:      items,
		Page:       p.Number,
		Size:       p.Size,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages(),
	}
}
