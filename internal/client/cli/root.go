package cli

import (
	"fmt"

	"github.com/dmitrijs2005/forkvault/internal/buildinfo"
	"github.com/dmitrijs2005/forkvault/internal/client/config"
	"github.com/dmitrijs2005/forkvault/internal/client/vault"
	"github.com/spf13/cobra"
)

// runApp is a test seam: it builds the App and serves the REPL.
var runApp = func(cmd *cobra.Command, cfg *config.Config) error {
	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	return app.Run(cmd.Context())
}

// NewRootCmd builds the command tree. The root command runs the
// interactive vault; configuration flags are parsed by the config package,
// so cobra ignores flags it does not know.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:                "forkvault",
		Short:              "Interactive client for the Forks file vault",
		Args:               cobra.ArbitraryArgs,
		SilenceUsage:       true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, _ []string) error {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
			return runApp(cmd, cfg)
		},
	}

	root.AddCommand(&cobra.Command{
		Use:                "keygen",
		Short:              "Print a new random product key",
		Args:               cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := vault.GenerateProductKey()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	})

	return root
}
