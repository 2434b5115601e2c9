// Command ithosctl is a thin driver over the engine, Chain Authority, and
// Bolt adapter: every subcommand opens the configured chain database,
// performs one operation, and exits. No server or network surface is
// exposed, consistent with the core's Non-goals. Patterned on
// cmd/synnergy/main.go's root-command-plus-subcommand-constructor shape.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	ithoslog "github.com/ithos-org/ithos/internal/log"
	pkgconfig "github.com/ithos-org/ithos/pkg/config"
)

var env string

func main() {
	rootCmd := &cobra.Command{
		Use:   "ithosctl",
		Short: "inspect and append to an ithos directory chain",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load() // optional; missing .env is not an error
			cfg := pkgconfig.MustLoad(env)
			if err := ithoslog.Configure(cfg.Logging.Level, cfg.Logging.File); err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "configuration overlay to merge over config/default.yaml")

	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(showCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
