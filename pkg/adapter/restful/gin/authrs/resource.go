// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package authrs realizes the authentication resource, allowing the
// operators to login and obtain a bearer token, and provides the
// middleware which verifies that token for the other resources.
package authrs

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/bookings/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/bookings/pkg/core/cerr"
	"github.com/momeni/bookings/pkg/core/log"
	"github.com/momeni/bookings/pkg/core/usecase/authuc"
)

// UsernameKey is the gin context key of the authenticated username.
const UsernameKey = "username"

var errMissingToken = errors.New("missing bearer token")

type resource struct {
	auth *authuc.UseCase
}

// Register instantiates a resource adapting the authentication use
// case with the relevant REST APIs including:
//  1. POST request to /api/bkweb/v1/auth/login
//     in order to exchange a username and password with a token.
func Register(r *gin.RouterGroup, auth *authuc.UseCase) {
	rs := &resource{auth: auth}
	r.POST("auth/login", rs.Login)
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResp is the JSON body of a successful login.
type TokenResp struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (rs *resource) Login(c *gin.Context) {
	req := &loginReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return
	}
	tok, err := rs.auth.Login(c, req.Username, req.Password)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, &TokenResp{
		Token:     tok.Value,
		ExpiresAt: tok.ExpiresAt,
	})
}

// Middleware rejects the requests which do not carry a valid
// "Authorization: Bearer <token>" header with a 401 response.
// The authenticated username is stored with the UsernameKey key and
// is attached to the log records of the request.
func Middleware(auth *authuc.UseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		scheme, token, _ := strings.Cut(h, " ")
		if !strings.EqualFold(scheme, "Bearer") || token == "" {
			serdser.Abort(c, cerr.Authentication(errMissingToken))
			return
		}
		username, err := auth.Authenticate(c, token)
		if err != nil {
			serdser.Abort(c, err)
			return
		}
		c.Set(UsernameKey, username)
		ctx := log.With(
			c.Request.Context(), slog.String(UsernameKey, username),
		)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
