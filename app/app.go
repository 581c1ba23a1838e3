package app

import (
	"crypto/tls"
	"strings"

	"github.com/cometbft/cometbft/libs/log"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/codec"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/baron-chain/cwscripts/app/params"
	"github.com/baron-chain/cwscripts/contracts"
	"github.com/baron-chain/cwscripts/journal"
	"github.com/baron-chain/cwscripts/rpc"
	"github.com/baron-chain/cwscripts/scripts"
	"github.com/baron-chain/cwscripts/wallet"
)

const appName = "cwscripts"

// App holds everything one cwscripts invocation needs, built once from the
// configuration.
type App struct {
	logger    log.Logger
	cfg       Config
	clientCtx client.Context
	metrics   *prometheus.Registry

	Wallets   *wallet.Registry
	Contracts *contracts.Registry
	Client    *rpc.Client
	Scripts   *scripts.Scripts
	Journal   *journal.Journal
}

type options struct {
	rpcOpts []rpc.Option
	journal *journal.Journal
}

// Option adjusts how NewApp wires its components.
type Option func(*options)

// WithRPCOptions appends options to the ones derived from the config.
func WithRPCOptions(opts ...rpc.Option) Option {
	return func(o *options) {
		o.rpcOpts = append(o.rpcOpts, opts...)
	}
}

// WithJournal uses j instead of opening journal_dir.
func WithJournal(j *journal.Journal) Option {
	return func(o *options) {
		o.journal = j
	}
}

func NewApp(logger log.Logger, cfg Config, encodingConfig params.EncodingConfig, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	app := &App{logger: logger, cfg: cfg}

	var err error
	app.Wallets, err = wallet.NewRegistry(encodingConfig.Marshaler, cfg.Wallets,
		wallet.WithCoinType(cfg.CoinType),
		wallet.WithBech32Prefix(cfg.Bech32Prefix),
		wallet.WithLogger(logger.With("module", "wallet")),
	)
	if err != nil {
		return nil, err
	}

	addrs := cfg.Contracts
	if cfg.RefsFile != "" {
		refs, err := contracts.LoadRefs(cfg.RefsFile, cfg.Network)
		if err != nil {
			return nil, err
		}
		addrs = contracts.Merge(refs, cfg.Contracts)
	}
	if app.Contracts, err = contracts.NewRegistry(addrs, cfg.Bech32Prefix); err != nil {
		return nil, err
	}

	if app.clientCtx, err = NewClientContext(cfg, encodingConfig); err != nil {
		return nil, err
	}

	rpcOpts := []rpc.Option{
		rpc.WithLogger(logger),
		rpc.WithGas(cfg.Gas),
		rpc.WithGasAdjustment(cfg.GasAdjustment),
		rpc.WithMemo(cfg.Memo),
	}
	switch {
	case cfg.Fees != "":
		rpcOpts = append(rpcOpts, rpc.WithFees(cfg.Fees))
	case cfg.GasPrices != "":
		rpcOpts = append(rpcOpts, rpc.WithGasPrices(cfg.GasPrices))
	}
	if cfg.Telemetry.Enabled {
		app.metrics = prometheus.NewRegistry()
		rpcOpts = append(rpcOpts, rpc.WithMetrics(app.metrics))
	}
	if app.Client, err = rpc.NewClient(app.clientCtx, append(rpcOpts, o.rpcOpts...)...); err != nil {
		return nil, err
	}

	app.Journal = o.journal
	if app.Journal == nil && cfg.JournalDir != "" {
		if app.Journal, err = journal.Open(cfg.JournalDir); err != nil {
			return nil, err
		}
	}

	scriptOpts := []scripts.Option{scripts.WithLogger(logger.With("module", "scripts"))}
	if app.Journal != nil {
		scriptOpts = append(scriptOpts, scripts.WithJournal(app.Journal))
	}
	app.Scripts = scripts.New(app.Wallets, app.Contracts, app.Client, scriptOpts...)

	logger.Debug("app ready",
		"chain_id", cfg.ChainID,
		"node", cfg.Node,
		"wallets", len(app.Wallets.Names()),
		"contracts", len(app.Contracts.Names()),
	)
	return app, nil
}

// NewClientContext builds the cosmos client context for cfg. The node client
// is created lazily by the cometbft http client, so nothing is dialed here
// except an explicit gRPC endpoint.
func NewClientContext(cfg Config, encodingConfig params.EncodingConfig) (client.Context, error) {
	clientCtx := client.Context{}.
		WithCodec(encodingConfig.Marshaler).
		WithInterfaceRegistry(encodingConfig.InterfaceRegistry).
		WithTxConfig(encodingConfig.TxConfig).
		WithLegacyAmino(encodingConfig.Amino).
		WithAccountRetriever(authtypes.AccountRetriever{}).
		WithChainID(cfg.ChainID).
		WithBroadcastMode(flags.BroadcastSync)

	if cfg.Node != "" {
		node, err := client.NewClientFromNode(cfg.Node)
		if err != nil {
			return clientCtx, errors.Wrapf(err, "node %s", cfg.Node)
		}
		clientCtx = clientCtx.WithNodeURI(cfg.Node).WithClient(node)
	}

	if cfg.GRPC != "" {
		conn, err := dialGRPC(cfg.GRPC, encodingConfig)
		if err != nil {
			return clientCtx, err
		}
		clientCtx = clientCtx.WithGRPCClient(conn)
	}
	return clientCtx, nil
}

func dialGRPC(endpoint string, encodingConfig params.EncodingConfig) (*grpc.ClientConn, error) {
	transport := grpc.WithTransportCredentials(insecure.NewCredentials())
	if strings.HasSuffix(endpoint, ":443") {
		transport = grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12}))
	}

	cdc := codec.NewProtoCodec(encodingConfig.InterfaceRegistry)
	conn, err := grpc.Dial(endpoint, transport, grpc.WithDefaultCallOptions(grpc.ForceCodec(cdc.GRPCCodec())))
	if err != nil {
		return nil, errors.Wrapf(err, "grpc %s", endpoint)
	}
	return conn, nil
}

func (app *App) Config() Config { return app.cfg }

func (app *App) ClientContext() client.Context { return app.clientCtx }

// Gatherer returns the metrics registry, nil unless telemetry is enabled.
func (app *App) Gatherer() prometheus.Gatherer {
	if app.metrics == nil {
		return nil
	}
	return app.metrics
}

// Close releases the journal and the gRPC connection and writes the metrics
// textfile when one is configured.
func (app *App) Close() error {
	var errs []string
	if app.metrics != nil && app.cfg.Telemetry.Textfile != "" {
		if err := prometheus.WriteToTextfile(app.cfg.Telemetry.Textfile, app.metrics); err != nil {
			errs = append(errs, "metrics: "+err.Error())
		}
	}
	if app.Journal != nil {
		if err := app.Journal.Close(); err != nil {
			errs = append(errs, "journal: "+err.Error())
		}
	}
	if app.clientCtx.GRPCClient != nil {
		if err := app.clientCtx.GRPCClient.Close(); err != nil {
			errs = append(errs, "grpc: "+err.Error())
		}
	}
	if len(errs) > 0 {
		return errors.Errorf("%s close: %s", appName, strings.Join(errs, "; "))
	}
	return nil
}
