// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings_test

import (
	"testing"
	"time"

	"github.com/momeni/bookings/pkg/adapter/config/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration(t *testing.T) {
	var d settings.Duration
	require.NoError(t, d.UnmarshalText([]byte("90m")))
	assert.Equal(t, settings.Duration(90*time.Minute), d)
	assert.Equal(t, "1h30m", d.String())
	assert.Equal(t, "2h", settings.Duration(2*time.Hour).String())
	assert.Equal(t, "45s", settings.Duration(45*time.Second).String())

	assert.Error(t, d.UnmarshalText([]byte("soon")))
	assert.Equal(t, settings.Duration(90*time.Minute), d, "unchanged")
}

func TestClamp(t *testing.T) {
	minb, maxb := 1, 10
	v := 20
	p := &v
	err := settings.Clamp("size", &p, &minb, &maxb)
	var re *settings.RangeError[int]
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 20, re.Value)
	assert.EqualError(t, err, "size=20 is greater than 10")
	assert.Equal(t, 10, *p, "clamped to max")

	v = 0
	p = &v
	err = settings.Clamp("size", &p, &minb, nil)
	assert.EqualError(t, err, "size=0 is less than 1")
	assert.Equal(t, 1, *p)

	p = nil
	assert.NoError(t, settings.Clamp("size", &p, &minb, &maxb))

	v = 5
	p = &v
	assert.NoError(t, settings.Clamp("size", &p, nil, nil))
	err = settings.Clamp("size", &p, &maxb, &minb)
	assert.EqualError(t, err, "size: empty range [10, 1]")

	ttl := settings.Duration(48 * time.Hour)
	d, lo, hi := &ttl, settings.Duration(time.Minute), settings.Duration(24*time.Hour)
	err = settings.Clamp("token-ttl", &d, &lo, &hi)
	assert.EqualError(t, err, "token-ttl=48h is greater than 24h")
}

func TestDefault(t *testing.T) {
	var b *bool
	settings.Default(&b, false)
	require.NotNil(t, b)
	assert.False(t, *b)

	var n *int
	settings.Default(&n, 5)
	assert.Equal(t, 5, *n)
	settings.Default(&n, 6)
	assert.Equal(t, 5, *n, "present values are kept")
}
