package main

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/cometbft/cometbft/libs/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/baron-chain/cwscripts/app"
	"github.com/baron-chain/cwscripts/app/params"
)

const (
	envPrefix         = "CWSCRIPTS"
	defaultConfigFile = "cwscripts.yaml"
	exitCodeConfig    = 2
)

const (
	flagConfig        = "config"
	flagNode          = "node"
	flagGRPC          = "grpc"
	flagChainID       = "chain-id"
	flagLogLevel      = "log_level"
	flagOutput        = "output"
	flagTimeout       = "timeout"
	flagGas           = "gas"
	flagGasAdjustment = "gas-adjustment"
	flagGasPrices     = "gas-prices"
	flagFees          = "fees"
	flagMemo          = "memo"
	flagWait          = "wait"
	flagFrom          = "from"
)

// configKeys maps flags onto configuration keys.
var configKeys = map[string]string{
	flagNode:          "node",
	flagGRPC:          "grpc",
	flagChainID:       "chain_id",
	flagGas:           "gas",
	flagGasAdjustment: "gas_adjustment",
	flagGasPrices:     "gas_prices",
	flagFees:          "fees",
	flagMemo:          "memo",
}

// the sdk address config is process wide and sealed after first use
var sealConfig sync.Once

// cli is shared by all subcommands of one root command. The App is built on
// first use so that commands like "keys new" work without a config file.
type cli struct {
	v      *viper.Viper
	logger log.Logger
	app    *app.App
}

// NewRootCmd creates the cwscripts root command.
func NewRootCmd() *cobra.Command {
	rootCmd, _ := newRootCmd()
	return rootCmd
}

// newRootCmd also returns the shared state so the caller can close the App
// once the command finished, successfully or not.
func newRootCmd() (*cobra.Command, *cli) {
	c := &cli{v: viper.New(), logger: log.NewNopLogger()}

	rootCmd := &cobra.Command{
		Use:           "cwscripts",
		Short:         "Query and execute the counter, cw20, swap and oracle contracts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	initFlags(rootCmd.PersistentFlags())
	initRootCmd(rootCmd, c)
	return rootCmd, c
}

func initFlags(fs *pflag.FlagSet) {
	fs.String(flagConfig, defaultConfigFile, "configuration file")
	fs.String(flagNode, "", "CometBFT RPC endpoint (default "+params.DefaultNode+")")
	fs.String(flagGRPC, "", "gRPC endpoint used for queries instead of the RPC endpoint")
	fs.String(flagChainID, "", "chain id (default "+params.DefaultChainID+")")
	fs.String(flagLogLevel, "info", "log level: debug, info, error or none")
	fs.StringP(flagOutput, "o", outputJSON, "transaction output format: json or yaml")
	fs.Duration(flagTimeout, params.DefaultTimeout, "time limit for the whole command")
	fs.String(flagGas, "", "gas limit, or auto to simulate (default "+params.DefaultGas+")")
	fs.Float64(flagGasAdjustment, params.DefaultGasAdjustment, "multiplier applied to simulated gas")
	fs.String(flagGasPrices, "", "gas prices (default "+params.DefaultGasPrices+")")
	fs.String(flagFees, "", "fixed fee, replaces the gas prices")
	fs.String(flagMemo, "", "transaction memo")
	fs.Bool(flagWait, false, "wait until the transaction is committed")
	fs.String(flagFrom, "", "wallet to sign with instead of the script's default")
}

func initRootCmd(rootCmd *cobra.Command, c *cli) {
	rootCmd.AddCommand(
		queryCmd(c),
		executeCmd(c),
		getCountCmd(c),
		incrementCmd(c),
		resetCmd(c),
		mintCmd(c),
		transferCmd(c),
		balanceCmd(c),
		tokenInfoCmd(c),
		swapCmd(c),
		withdrawCmd(c),
		getPriceCmd(c),
		updatePriceCmd(c),
		keysCmd(c),
		historyCmd(c),
	)
}

func (c *cli) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()

	logger, err := newLogger(flags)
	if err != nil {
		return exitError{err, exitCodeConfig}
	}
	c.logger = logger

	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	c.v.AutomaticEnv()

	// flags win over env and file, but only when given
	for flag, key := range configKeys {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			c.v.Set(key, f.Value.String())
		}
	}

	path, _ := flags.GetString(flagConfig)
	if err := c.readConfigFile(path, flags.Changed(flagConfig)); err != nil {
		return exitError{err, exitCodeConfig}
	}
	return nil
}

func (c *cli) readConfigFile(path string, explicit bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			c.logger.Debug("no config file", "path", path)
			return nil
		}
		return errors.Wrap(err, "config file")
	}

	c.v.SetConfigFile(path)
	if err := c.v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	c.logger.Debug("loaded config", "path", path)
	return nil
}

// load builds the App from the configuration.
func (c *cli) load() (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}

	cfg, err := app.ReadConfig(c.v)
	if err != nil {
		return nil, exitError{err, exitCodeConfig}
	}

	sealConfig.Do(func() {
		params.SetAddressPrefixes(cfg.Bech32Prefix)
		sdk.GetConfig().Seal()
	})

	a, err := app.NewApp(c.logger, cfg, app.MakeEncodingConfig())
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

func newLogger(flags *pflag.FlagSet) (log.Logger, error) {
	level, _ := flags.GetString(flagLogLevel)
	if level == "none" {
		return log.NewNopLogger(), nil
	}

	allowed, err := log.AllowLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewFilter(log.NewTMLogger(log.NewSyncWriter(os.Stderr)), allowed), nil
}

// commandContext applies --timeout to the command's context.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeout, _ := cmd.Flags().GetDuration(flagTimeout)
	if timeout <= 0 {
		timeout = params.DefaultTimeout
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

func pollInterval(timeout time.Duration) time.Duration {
	if timeout < params.DefaultPollInterval {
		return timeout / 4
	}
	return params.DefaultPollInterval
}
