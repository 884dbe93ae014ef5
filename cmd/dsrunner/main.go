/**
 * Copyright Ascensio System SIA 2026. All rights reserved.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License. You may obtain a copy
 * of the License at http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under
 * the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR REPRESENTATIONS
 * OF ANY KIND, either express or implied. See the License for the specific language
 * governing permissions and limitations under the License.
 */

// Command dsrunner manages DocSpace test portals outside of a test run:
// validating the run configuration and creating or removing portals ad-hoc,
// for example to clean up after an aborted CI job.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/auth"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/client"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/config"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/log"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/portal"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/store"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/types"
)

var (
	cfgPath string
	cfg     *config.Config
)

func loadConfig() error {
	var err error
	cfg, err = config.Load(cfgPath)
	if err != nil {
		return err
	}
	if cfg.Log != nil {
		return log.Initialize(cfg.Log)
	}
	return nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "dsrunner",
		Short:         "DocSpace test portal management",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to the run config file")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Run configuration helpers",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Resolve the configuration and report problems",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "configuration ok: registration %s, %d workers, browser %s\n",
				cfg.RegistrationURL, cfg.Workers, cfg.Browser)
			return nil
		},
	})

	portalCmd := &cobra.Command{
		Use:   "portal",
		Short: "Ad-hoc portal lifecycle",
	}
	portalCmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Provision a portal and print its domain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(); err != nil {
				return err
			}
			p, err := portal.Setup(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.Tenant.Domain)
			return nil
		},
	})
	portalCmd.AddCommand(&cobra.Command{
		Use:   "delete <domain>",
		Short: "Remove a portal by domain using the configured owner credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(); err != nil {
				return err
			}
			domain := args[0]

			cli := client.New(fmt.Sprintf("%s://%s", cfg.Scheme(), domain),
				client.WithTimeout(cfg.RequestTimeout.Std()))
			st := store.New(domain)

			owner := types.Credentials{Email: cfg.AdminEmail, Password: cfg.AdminPassword}
			if err := auth.Login(cmd.Context(), cli, st, types.RoleOwner, owner); err != nil {
				return err
			}
			ownerCli, err := auth.Session(cli, st, types.RoleOwner)
			if err != nil {
				return err
			}

			res, err := ownerCli.Delete(cmd.Context(), "/api/2.0/portal/deleteportalimmediately", nil)
			if err != nil {
				return err
			}
			if !res.OK() {
				return fmt.Errorf("portal delete answered status %d: %s", res.Status, res.ErrorMessage())
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted", domain)
			return nil
		},
	})

	rootCmd.AddCommand(configCmd, portalCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}
