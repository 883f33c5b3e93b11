// Package cli implements the iamport command line tool
package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/flexprice/iamport-go/iamport"
	"github.com/flexprice/iamport-go/internal/config"
	ierr "github.com/flexprice/iamport-go/internal/errors"
	"github.com/flexprice/iamport-go/internal/logger"
	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

type globalOptions struct {
	configFile string
	envFile    string
	tokenCache bool
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "iamport",
		Short: "Query and manage payments on the I'mport gateway",
		Long: `iamport talks to the I'mport REST API with the credentials found in the
config file or the IAMPORT_IAMPORT_API_KEY and IAMPORT_IAMPORT_API_SECRET
environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFile(opts.envFile)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Config file (default: config.yaml in ., ./config or /etc/iamport)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Dotenv file loaded before reading configuration")
	root.PersistentFlags().BoolVar(&opts.tokenCache, "token-cache", false, "Reuse access tokens across the calls of one command")

	root.AddCommand(
		newFindCmd(opts),
		newIsPaidCmd(opts),
		newCancelCmd(opts),
		newPrepareCmd(opts),
		newCustomerCmd(opts),
		newUnscheduleCmd(opts),
	)
	return root
}

// Execute runs the root command
func Execute(version string) error {
	root := NewRootCmd()
	root.Version = version
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// loadEnvFile loads path if it exists; variables already set win
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !ierr.Is(err, fs.ErrNotExist) {
		return ierr.WithError(err).
			WithHintf("Could not load env file %s", path).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (o *globalOptions) loadConfig() (*config.Configuration, error) {
	var (
		cfg *config.Configuration
		err error
	)
	if o.configFile != "" {
		cfg, err = config.NewConfigFromFile(o.configFile)
	} else {
		cfg, err = config.NewConfig()
	}
	if err != nil {
		return nil, err
	}
	if o.tokenCache {
		cfg.TokenCache.Enabled = true
	}
	return cfg, nil
}

// run wires a client through fx and hands it to fn
func (o *globalOptions) run(ctx context.Context, fn func(context.Context, *iamport.Client) error) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	var client *iamport.Client
	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		fx.Provide(logger.NewLogger),
		iamport.Module,
		fx.Invoke(func(lc fx.Lifecycle, log *logger.Logger) {
			lc.Append(fx.StopHook(log.Sync))
		}),
		fx.Populate(&client),
	)
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = app.Stop(context.Background()) }()

	return fn(ctx, client)
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
