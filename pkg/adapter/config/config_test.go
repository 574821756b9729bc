// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config_test

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/momeni/bookings/pkg/adapter/config"
	"github.com/momeni/bookings/pkg/adapter/hash/bcrypt"
	"github.com/momeni/bookings/pkg/core/repo"
	"github.com/momeni/bookings/pkg/core/usecase/schemauc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// This conversion ensures that *config.Config implements the settings
// which are expected by the database initialization use case.
var _ schemauc.Settings = (*config.Config)(nil)

const minimal = `
database:
    host: 127.0.0.1
    port: 5432
    name: bookings
`

func noEnv(string) (string, bool) {
	return "", false
}

func envOf(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func ExampleParse() {
	c, err := config.Parse([]byte(minimal), noEnv)
	fmt.Println(err)
	fmt.Println(c.Database, c.Database.AuthMethod, c.Database.PassDir)
	fmt.Println(*c.Gin.Logger, *c.Auth.Enabled, *c.Auth.TokenTTL)
	u := c.Usecases
	fmt.Println(*u.Pagination.DefaultSize, *u.Pagination.MaxSize)
	fmt.Println(u.Reservations.ReleasingStatuses, u.Customers.PhoneRegion)
	// Output:
	// <nil>
	// 127.0.0.1:5432/bookings scram-sha-256 .
	// false false 1h
	// 20 100
	// [cancelled] BR
}

func TestParseFull(t *testing.T) {
	hash, err := bcrypt.Hash("s3cret")
	require.NoError(t, err)
	data := fmt.Sprintf(`
database:
    host: db.local
    port: 5433
    name: bookings
    pass-dir: /var/lib/bkweb
    role-suffix: _test
    auth-method: scram-sha-1
gin:
    logger: true
    recovery: true
auth:
    enabled: true
    secret: 0123456789abcdef0123456789abcdef
    token-ttl: 30m
    users:
        - username: admin
          password-hash: %q
usecases:
    pagination:
        default-size: 5
        max-size: 50
    reservations:
        releasing-statuses: [cancelled, completed]
    customers:
        phone-region: pt
`, hash)
	c, err := config.Parse([]byte(data), noEnv)
	require.NoError(t, err)
	assert.Equal(t, repo.Role("_test"), c.Database.RoleSuffix)
	assert.True(t, *c.Gin.Logger)
	assert.Equal(t, 30*time.Minute, time.Duration(*c.Auth.TokenTTL))
	assert.Equal(t, 5, *c.Usecases.Pagination.DefaultSize)
	assert.Equal(t,
		[]string{"cancelled", "completed"},
		c.Usecases.Reservations.ReleasingStatuses,
	)

	auth, err := c.NewAuthUseCase()
	require.NoError(t, err)
	require.NotNil(t, auth)
	tok, err := auth.Login(context.Background(), "admin", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Value)

	e := c.Gin.NewEngine()
	assert.NotNil(t, e)
}

func TestParseEnvOverrides(t *testing.T) {
	c, err := config.Parse([]byte(minimal), envOf(map[string]string{
		config.EnvDBHost:     "10.0.0.7",
		config.EnvDBPort:     "6432",
		config.EnvDBName:     "other",
		config.EnvAuthSecret: "from-env",
	}))
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7:6432/other", c.Database.String())
	assert.Equal(t, "from-env", c.Auth.Secret)

	_, err = config.Parse([]byte(minimal), envOf(map[string]string{
		config.EnvDBPort: "http",
	}))
	assert.Error(t, err)
}

func TestParseRejections(t *testing.T) {
	cases := map[string]string{
		"empty":       ``,
		"no host":     "database: {port: 5432, name: x}",
		"bad port":    "database: {host: h, port: 0, name: x}",
		"auth method": minimal + "    auth-method: md5\n",
		"ttl":         minimal + "auth: {token-ttl: 48h}\n",
		"short secret": minimal +
			"auth: {enabled: true, secret: abc, users: [{username: a}]}\n",
		"no users": minimal +
			"auth: {enabled: true, secret: 0123456789abcdef0123456789abcdef}\n",
		"bad hash": minimal + "auth: {enabled: true, " +
			"secret: 0123456789abcdef0123456789abcdef, " +
			"users: [{username: a, password-hash: plain}]}\n",
		"max size":     minimal + "usecases: {pagination: {max-size: 5000}}\n",
		"default size": minimal + "usecases: {pagination: {default-size: 0}}\n",
		"default above max": minimal +
			"usecases: {pagination: {default-size: 30, max-size: 10}}\n",
		"status": minimal +
			"usecases: {reservations: {releasing-statuses: [gone]}}\n",
		"region": minimal + "usecases: {customers: {phone-region: XX}}\n",
	}
	for name, data := range cases {
		_, err := config.Parse([]byte(data), noEnv)
		assert.Error(t, err, name)
	}
}

func TestDefaultSizeFollowsSmallMax(t *testing.T) {
	c, err := config.Parse(
		[]byte(minimal+"usecases: {pagination: {max-size: 10}}\n"), noEnv,
	)
	require.NoError(t, err)
	assert.Equal(t, 10, *c.Usecases.Pagination.DefaultSize)
}

func TestExplicitlyEmptyReleasingStatuses(t *testing.T) {
	c, err := config.Parse([]byte(minimal+
		"usecases: {reservations: {releasing-statuses: []}}\n"), noEnv,
	)
	require.NoError(t, err)
	assert.Empty(t, c.Usecases.Reservations.ReleasingStatuses)
}

func TestDisabledAuth(t *testing.T) {
	c, err := config.Parse([]byte(minimal), noEnv)
	require.NoError(t, err)
	auth, err := c.NewAuthUseCase()
	assert.NoError(t, err)
	assert.Nil(t, auth)
}

func TestRenewPasswords(t *testing.T) {
	dir := t.TempDir()
	c, err := config.Parse([]byte(minimal+
		fmt.Sprintf("    pass-dir: %s\n    role-suffix: _x\n", dir),
	), noEnv)
	require.NoError(t, err)

	var gotRoles []repo.Role
	var gotPasswords []string
	finalizer, err := c.RenewPasswords(
		context.Background(),
		func(_ context.Context, roles []repo.Role, pws []string) error {
			gotRoles, gotPasswords = roles, pws
			return nil
		},
		repo.AdminRole, repo.NormalRole,
	)
	require.NoError(t, err)
	assert.Equal(t, []repo.Role{repo.AdminRole, repo.NormalRole}, gotRoles)
	require.Len(t, gotPasswords, 2)
	assert.NotEqual(t, gotPasswords[0], gotPasswords[1])

	newPath := filepath.Join(dir, ".pgpass.new")
	u, err := c.Database.ConnectionURL(repo.NormalRole, newPath)
	require.NoError(t, err)
	pu, err := url.Parse(u)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:5432", pu.Host)
	assert.Equal(t, "/bookings", pu.Path)
	assert.Equal(t, string(repo.NormalRole)+"_x", pu.User.Username())
	pw, _ := pu.User.Password()
	assert.Equal(t, gotPasswords[1], pw)

	require.NoError(t, finalizer())
	_, err = os.Stat(newPath)
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = c.Database.ConnectionURL(
		repo.AdminRole, filepath.Join(dir, ".pgpass"),
	)
	assert.NoError(t, err)
	_, err = c.Database.ConnectionURL(
		repo.Role("nobody"), filepath.Join(dir, ".pgpass"),
	)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimal), 0o600))
	t.Setenv(config.EnvDBName, "loaded")
	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "loaded", c.Database.Name)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
