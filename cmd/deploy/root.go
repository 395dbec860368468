// Package deploy builds the axelard-deploy command tree: one sub-tree per
// chain family, one leaf per operational step of a rollout. Every leaf
// resolves flags, loads the environment manifest, submits a single
// transaction (after an operator confirmation), verifies the resulting
// state where the chain exposes it, and patches the manifest.
package deploy

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// BuildRootCmd assembles the full command tree.
func BuildRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "axelard-deploy",
		Short:         "Deploy and administer axelar amplifier contracts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
				Level(level).
				With().Timestamp().Logger()
			cmd.SetContext(logger.WithContext(cmd.Context()))

			return nil
		},
	}

	cmd.PersistentFlags().StringP("env", "e", "", "target environment (ENV)")
	cmd.PersistentFlags().StringP("chain-name", "n", "", "chain to operate on (CHAIN)")
	cmd.PersistentFlags().String("private-key", "", "signing key material (PRIVATE_KEY)")
	cmd.PersistentFlags().BoolP("yes", "y", false, "skip confirmation prompts")
	cmd.PersistentFlags().String("config-dir", "./config", "directory holding the environment manifests")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		buildEVMCmd(),
		buildStellarCmd(),
		buildSuiCmd(),
		buildSolanaCmd(),
		buildCosmWasmCmd(),
	)

	return cmd
}
