// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic engine instantiation, so the config
// package can create engines with the configured middlewares.
// The REST resources are kept in the sub-packages and are registered
// by the routes package.
package gin

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/bookings/pkg/core/log"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

// RequestIDHeader is the response header which carries the request id.
const RequestIDHeader = "X-Request-Id"

// New creates an engine without any default middleware and registers
// the RequestID middleware followed by the given middlewares.
// The gin.Context instances of the engine fall back to their request
// contexts, so attributes which are attached by log.With reach the
// use cases log records.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.ContextWithFallback = true
	e.Use(RequestID())
	e.Use(middlewares...)
	return e
}

func Logger() HandlerFunc {
	return gin.Logger()
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}

// RequestID assigns a random identifier to each request, reports it
// in the X-Request-Id header, and logs it with all records of that
// request.
func RequestID() HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Header(RequestIDHeader, id)
		ctx := log.With(c.Request.Context(), slog.String("request", id))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// SetReleaseMode silences the gin-gonic debug logs.
func SetReleaseMode() {
	gin.SetMode(gin.ReleaseMode)
}
