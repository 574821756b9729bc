// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package scram_test

import (
	"regexp"
	"testing"

	"github.com/momeni/bookings/pkg/adapter/hash/scram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var verifier = regexp.MustCompile(
	`^SCRAM-SHA-256\$15000:[A-Za-z0-9+/=]+\$[A-Za-z0-9+/=]+:[A-Za-z0-9+/=]+$`,
)

func TestHashFormat(t *testing.T) {
	m, err := scram.ForAuthMethod("scram-sha-256")
	require.NoError(t, err)
	h, err := m.Hash("s3cret", "", 15000)
	require.NoError(t, err)
	assert.Regexp(t, verifier, h)
}

func TestHashIsDeterministicForSalt(t *testing.T) {
	m := scram.SHA1()
	salt := "c2FsdHNhbHRzYWx0"
	h1, err := m.Hash("s3cret", salt, 4096)
	require.NoError(t, err)
	h2, err := m.Hash("s3cret", salt, 4096)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Contains(t, h1, "SCRAM-SHA-1$4096:"+salt+"$")

	h3, err := m.Hash("other", salt, 4096)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestHashRejections(t *testing.T) {
	m := scram.SHA256()
	_, err := m.Hash("", "", 15000)
	assert.Error(t, err)
	_, err = m.Hash("s3cret", "", 1000)
	assert.Error(t, err)
	_, err = m.Hash("s3cret", "%%%", 15000)
	assert.Error(t, err)
	_, err = scram.ForAuthMethod("md5")
	assert.Error(t, err)
}
