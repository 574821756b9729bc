// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands of the bookings
// web server. Commands are organized using the cobra library.
// The root command starts the web server itself, the "db" sub-command
// initializes the database schema, and the "hash-password" sub-command
// prepares bcrypt hashes for the auth.users config entries.
//
//	./bkweb [-c /path/of/main/config.yaml]           # start web server
//	./bkweb db init-dev [-c /path/of/main/config.yaml]
//	./bkweb db init-prod [-c /path/of/main/config.yaml]
//	./bkweb hash-password < password.txt
package command

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/momeni/bookings/pkg/adapter/config"
	"github.com/momeni/bookings/pkg/adapter/restful/gin"
	"github.com/momeni/bookings/pkg/adapter/restful/gin/routes"
	"github.com/momeni/bookings/pkg/core/log"
	"github.com/momeni/bookings/pkg/core/repo"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "bkweb",
	Short: "A reservations management web server",
	Long: `A reservations management web server which keeps customers,
rentable listings, and their date-range reservations in PostgreSQL.
It rejects overlapping reservations of a listing, prices them by the
listing hourly rate, and searches listings which are available in a
given period. The REST API is served by the Gin Gonic web framework
and may be protected by JWT bearer tokens.`,
	RunE: startWebServer,
	Args: cobra.NoArgs,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	log.Info(ctx, "configs loaded",
		slog.String("path", cfgPath),
		slog.String("database", c.Database.String()),
	)
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	var e *gin.Engine = c.Gin.NewEngine()
	if err = routes.Register(e, p, c); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	if err = e.Run(); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
