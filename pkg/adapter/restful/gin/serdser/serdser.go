// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser contains the serialization and deserialization
// helpers which are shared by the resource packages, such as the
// request binding, the error body, and the paging parameters.
package serdser

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/bookings/pkg/core/cerr"
	"github.com/momeni/bookings/pkg/core/log"
	"github.com/momeni/bookings/pkg/core/model"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

// fieldName reports a struct field by the name which clients use for
// it, so validation errors can be matched with the request fields.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		}
		return name
	}
	return f.Name
}

// FieldError describes one rejected field of a request.
type FieldError struct {
	Field         string `json:"field"`
	Message       string `json:"message"`
	RejectedValue any    `json:"rejectedValue"`
}

// ErrorBody is the JSON body of all failed responses.
type ErrorBody struct {
	Timestamp time.Time    `json:"timestamp"`
	Status    int          `json:"status"`
	Kind      string       `json:"kind"`
	Message   string       `json:"message"`
	Errors    []FieldError `json:"errors,omitempty"`
	Path      string       `json:"path"`
}

// Bind binds the request into req using the b binding. In case of
// errors, the 400 response is written and false is returned.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	switch err := c.ShouldBindWith(req, b).(type) {
	case nil:
		return true
	case *validator.InvalidValidationError:
		SerErr(c, err)
	case validator.ValidationErrors:
		var vs model.Violations
		for _, ferr := range err {
			vs.Add(ferr.Field(), message(ferr), ferr.Value())
		}
		SerErr(c, cerr.BadRequest(vs))
	default:
		SerErr(c, cerr.BadRequest(err))
	}
	return false
}

func message(ferr validator.FieldError) string {
	switch ferr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a UUID"
	case "oneof":
		return "must be one of " + ferr.Param()
	case "min", "gte":
		return "must not be less than " + ferr.Param()
	case "max", "lte":
		return "must not be greater than " + ferr.Param()
	default:
		return "failed on the '" + ferr.Tag() + "' tag"
	}
}

// SerErr writes err as an ErrorBody. The response status is chosen by
// the cerr.Kind of err and the model.Violations in the err chain are
// reported as the field errors. Internal errors are logged and their
// details are not exposed to clients.
func SerErr(c *gin.Context, err error) {
	kind := cerr.KindOf(err)
	body := &ErrorBody{
		Timestamp: time.Now().UTC(),
		Status:    kind.HTTPStatusCode(),
		Kind:      kind.String(),
		Path:      c.Request.URL.Path,
	}
	var ce *cerr.Error
	switch {
	case kind == cerr.KindInternal:
		log.Error(
			c, "request failed",
			log.Err("err", err),
			slog.String("path", body.Path),
		)
		body.Message = http.StatusText(body.Status)
	case errors.As(err, &ce):
		body.Message = ce.Err.Error()
	default:
		body.Message = err.Error()
	}
	var vs model.Violations
	if errors.As(err, &vs) {
		body.Message = "invalid fields"
		for _, v := range vs {
			body.Errors = append(body.Errors, FieldError{
				Field:         v.Field,
				Message:       v.Message,
				RejectedValue: v.Rejected,
			})
		}
	}
	c.JSON(body.Status, body)
}

// Abort writes err using SerErr and aborts the handlers chain.
func Abort(c *gin.Context, err error) {
	SerErr(c, err)
	c.Abort()
}
