// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/bookings/pkg/adapter/config"
	"github.com/momeni/bookings/pkg/core/usecase/schemauc"
	"github.com/spf13/cobra"
)

const credsRenewalMessage = `
The admin role credentials are read from the .pgpass file in the
configured pass-dir and fresh passwords are generated for the admin
and normal roles. New passwords are written in a .pgpass.new file
first and replace the .pgpass file after they are committed in the
database, so an interrupted run can be retried.`

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For fresh installation in a development or production environment,
the init-dev or init-prod may be used.`,
}

func initDB(
	fill func(uc *schemauc.UseCase, ctx context.Context) error,
) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	return fill(schemauc.New(c), ctx)
}

func init() {
	rootCmd.AddCommand(dbCmd)
}
