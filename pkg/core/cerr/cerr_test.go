// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/momeni/bookings/pkg/core/cerr"
	"github.com/stretchr/testify/assert"
)

func TestKindOfWrappedErrors(t *testing.T) {
	base := errors.New("overlap")
	err := fmt.Errorf("creating: %w", cerr.Conflict(base))
	assert.Equal(t, cerr.KindConflict, cerr.KindOf(err))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, cerr.KindInternal, cerr.KindOf(base))
	assert.Equal(t, "[conflict] overlap", cerr.Conflict(base).Error())
}

func TestKindHTTPStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, cerr.KindNotFound.HTTPStatusCode())
	assert.Equal(t, http.StatusBadRequest, cerr.KindInvalidRange.HTTPStatusCode())
	assert.Equal(t, http.StatusUnprocessableEntity, cerr.KindOutOfBounds.HTTPStatusCode())
	assert.Equal(t, http.StatusConflict, cerr.KindReferenced.HTTPStatusCode())
	assert.Equal(t, http.StatusInternalServerError, cerr.KindInternal.HTTPStatusCode())
}
