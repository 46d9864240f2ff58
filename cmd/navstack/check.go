package main

import (
	"github.com/spf13/cobra"

	"github.com/navstack-dev/navstack/internal/config"
	"github.com/navstack-dev/navstack/internal/routes"
)

func checkCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate navstack.json and the routes manifest",
		Long: `Validate the project configuration without starting the server.

Loads navstack.json, validates it, and parses the routes manifest.
Exits non-zero with a formatted error when anything is wrong.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to navstack.json (default: walk up from cwd)")

	return cmd
}

func runCheck(configPath string) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return err
	}
	success("loaded %s", cfg.Path())

	if err := cfg.Validate(); err != nil {
		return err
	}
	success("configuration valid (listen %s, snapshot %s)", cfg.Address(), cfg.Snapshot.Backend)

	manifest, err := routes.Load(cfg.RoutesPath())
	if err != nil {
		return err
	}
	success("routes manifest valid (%d routes)", len(manifest.Routes))
	for _, r := range manifest.Routes {
		marker := ""
		if r.Prefix {
			marker = "/*"
		}
		info("%s%s  %s", r.Path, marker, r.Title)
	}

	return nil
}
