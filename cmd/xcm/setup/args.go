package setup

import (
	"context"
	"fmt"
	"os"
	"time"

	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type ContextKey string

const ContextConfig ContextKey = "config"
const ContextChain ContextKey = "chain"
const ContextArgs ContextKey = "args"

func WrapConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ContextConfig, cfg)
}
func WrapChain(ctx context.Context, chain *xc.ChainConfig) context.Context {
	return context.WithValue(ctx, ContextChain, chain)
}
func WrapArgs(ctx context.Context, args *Args) context.Context {
	return context.WithValue(ctx, ContextArgs, args)
}

func UnwrapConfig(ctx context.Context) *config.Config {
	return ctx.Value(ContextConfig).(*config.Config)
}
func UnwrapChain(ctx context.Context) *xc.ChainConfig {
	return ctx.Value(ContextChain).(*xc.ChainConfig)
}
func UnwrapArgs(ctx context.Context) *Args {
	return ctx.Value(ContextArgs).(*Args)
}

func CreateContext(ctx context.Context, args *Args, cfg *config.Config, chain *xc.ChainConfig) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = WrapArgs(ctx, args)
	ctx = WrapConfig(ctx, cfg)
	ctx = WrapChain(ctx, chain)
	return ctx
}

type Args struct {
	ConfigPath     string
	Chain          string
	VerbosityCount int
	Submit         bool
	// Zero values keep the configured batch policy.
	ChunkSize int
	Delay     *time.Duration
}

const ChainEnv = "XCM_CHAIN"

func AddArgs(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Path to xcm.yaml (may set XCM_CONFIG env var).")
	cmd.PersistentFlags().String("chain", os.Getenv(ChainEnv), fmt.Sprintf("Chain to use (may set %s env var). Required.", ChainEnv))
	cmd.PersistentFlags().CountP("verbose", "v", "Set verbosity.")
	cmd.PersistentFlags().Bool("submit", false, "Sign and submit the built calls instead of only printing them.")
	cmd.PersistentFlags().Int("chunk-size", 0, "Calls per batch. Overrides the configured batch policy.")
	cmd.PersistentFlags().Duration("delay", 0, "Wait between batch submissions. Overrides the configured batch policy.")
}

func ArgsFromCmd(cmd *cobra.Command) (*Args, error) {
	configPath, _ := cmd.Flags().GetString("config")
	chain, _ := cmd.Flags().GetString("chain")
	if chain == "" {
		return nil, fmt.Errorf("--chain required")
	}
	count, _ := cmd.Flags().GetCount("verbose")
	submit, err := cmd.Flags().GetBool("submit")
	if err != nil {
		return nil, err
	}
	chunkSize, err := cmd.Flags().GetInt("chunk-size")
	if err != nil {
		return nil, err
	}
	if chunkSize < 0 {
		return nil, fmt.Errorf("--chunk-size must be positive")
	}
	args := &Args{
		ConfigPath:     configPath,
		Chain:          chain,
		VerbosityCount: count,
		Submit:         submit,
		ChunkSize:      chunkSize,
	}
	if cmd.Flags().Changed("delay") {
		delay, err := cmd.Flags().GetDuration("delay")
		if err != nil {
			return nil, err
		}
		if delay < 0 {
			return nil, fmt.Errorf("--delay must not be negative")
		}
		args.Delay = &delay
	}
	return args, nil
}

// ConfigureLogger uses the -v count, unless no -v was passed and
// XCM_LOG_LEVEL is set.
func ConfigureLogger(args *Args) {
	level := os.Getenv(config.LogLevelEnv)
	if args.VerbosityCount > 0 || level == "" {
		level = config.VerbosityLevel(args.VerbosityCount)
	}
	config.ConfigureLogger(level)
}

// LoadConfig reads the configuration and applies the batch flags over it.
func LoadConfig(args *Args) (*config.Config, error) {
	config.LoadEnv()
	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		return nil, err
	}
	if args.ChunkSize > 0 {
		cfg.Batch.ChunkSize = args.ChunkSize
	}
	if args.Delay != nil {
		cfg.Batch.Delay = *args.Delay
	}
	logrus.WithFields(logrus.Fields{
		"chunk_size": cfg.Batch.ChunkSize,
		"delay":      cfg.Batch.Delay,
	}).Debug("batch policy")
	return cfg, nil
}
