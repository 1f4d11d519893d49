package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strings"

	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/assets"
	"github.com/cordialsys/xcmtransfer/batch"
	"github.com/cordialsys/xcmtransfer/builder"
	"github.com/cordialsys/xcmtransfer/config/constants"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type MintConfig struct {
	// Decimal u128 id of the asset to mint.
	AssetID string `yaml:"asset_id" validate:"required,number"`
	// Subtracted from every record's amount to cover execution.
	ExecuteFee xc.AmountBlockchain `yaml:"execute_fee"`
}

type SudoConfig struct {
	// Public key (0x hex) to dispatch as with sudo_as.  Empty dispatches as root.
	Origin string `yaml:"origin,omitempty" validate:"omitempty,hexadecimal"`
}

type Config struct {
	// Overrides the endpoint of a chain, by chain name.
	Endpoints map[string]string          `yaml:"endpoints,omitempty"`
	Chains    map[string]*xc.ChainConfig `yaml:"chains" validate:"required,dive"`
	Batch     batch.Policy               `yaml:"batch"`
	Mint      MintConfig                 `yaml:"mint"`
	Sudo      SudoConfig                 `yaml:"sudo"`
	Signer    Secret                     `yaml:"signer"`

	// How asset ids are classified when listing registries.
	AssetRanges assets.Ranges `yaml:"asset_ranges"`
}

var noSuchFile = "no such file"
var notFoundIn = "not found in"

func getViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(constants.ConfigName)
	v.SetConfigType("yaml")

	// If the config location env is set, use that.
	v.SetConfigFile(os.Getenv(constants.ConfigEnv))

	// otherwise, prioritize current path or parent
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	// Lastly, check home dir
	v.AddConfigPath(constants.DefaultHome)

	v.SetEnvPrefix("XCM")
	_ = v.BindEnv("signer")
	return v
}

// LoadEnv reads a .env file if there is one.
func LoadEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logrus.WithError(err).WithField("path", path).Warn("could not load env file")
		}
	}
}

// Load reads the configuration from path, or searches for xcm.yaml when path
// is empty. Values in the file are applied over Default(); a chain listed in
// the file replaces the built-in chain of the same name. A missing file is not
// an error when searching.
func Load(path string) (*Config, error) {
	cfg := Default()
	v := getViper()
	if path != "" {
		v.SetConfigFile(path)
	}
	err := v.ReadInConfig()
	if err != nil {
		msg := strings.ToLower(err.Error())
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || strings.Contains(msg, noSuchFile) || strings.Contains(msg, notFoundIn)
		if path != "" || !missing {
			return nil, fmt.Errorf("fatal error reading config file: %w", err)
		}
		logrus.Debug("no config file found, using defaults")
	} else {
		// viper lower cases keys, which token symbols must not be, so the
		// file is decoded directly
		bz, err := os.ReadFile(v.ConfigFileUsed())
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(bz, cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", v.ConfigFileUsed(), err)
		}
		logrus.WithField("path", v.ConfigFileUsed()).Debug("loaded config")
	}
	if signer := v.GetString("signer"); signer != "" {
		cfg.Signer = Secret(signer)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) normalize() {
	for name, chain := range cfg.Chains {
		if chain == nil {
			delete(cfg.Chains, name)
			continue
		}
		chain.Name = name
	}
	for name, endpoint := range cfg.Endpoints {
		chain, ok := cfg.Chains[name]
		if !ok {
			logrus.WithField("chain", name).Warn("could not find chain to apply endpoint to")
			continue
		}
		logrus.WithField("chain", name).Info("overriding endpoint")
		chain.Endpoint = endpoint
	}
}

func (cfg *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	for name, chain := range cfg.Chains {
		if chain.Kind == xc.KindRelay && chain.Family != xc.FamilyRelay {
			return fmt.Errorf("invalid config: relay chain %s must use the relay family", name)
		}
		if _, err := builder.TransferMethod(chain); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}
	if cfg.Mint.ExecuteFee.Sign() < 0 {
		return fmt.Errorf("invalid config: mint execute_fee must not be negative, got %s", cfg.Mint.ExecuteFee.String())
	}
	return nil
}

func (cfg *Config) ChainNames() []string {
	names := make([]string, 0, len(cfg.Chains))
	for name := range cfg.Chains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (cfg *Config) GetChain(name string) (*xc.ChainConfig, error) {
	chain, ok := cfg.Chains[name]
	if !ok {
		return nil, fmt.Errorf("unknown chain %q, options are %v", name, cfg.ChainNames())
	}
	return chain, nil
}

// SudoOrigin is nil when calls are dispatched as root.
func (cfg *Config) SudoOrigin() (*xc.AccountID, error) {
	if cfg.Sudo.Origin == "" {
		return nil, nil
	}
	origin, err := xc.ParseAccountIDHex(cfg.Sudo.Origin)
	if err != nil {
		return nil, fmt.Errorf("invalid sudo origin: %w", err)
	}
	return &origin, nil
}

func (cfg *Config) MintAssetID() (*big.Int, error) {
	id, ok := new(big.Int).SetString(cfg.Mint.AssetID, 10)
	if !ok {
		return nil, fmt.Errorf("invalid mint asset id %q", cfg.Mint.AssetID)
	}
	return id, nil
}

// DevSigner is used when no signer secret is configured.
const DevSigner = "//Alice"

// LoadSigner returns the mnemonic, seed or derivation uri of the signer.
func (cfg *Config) LoadSigner() (string, error) {
	secret, err := cfg.Signer.Load()
	if err != nil {
		return "", fmt.Errorf("could not load signer: %w", err)
	}
	if secret == "" {
		logrus.WithField("signer", cfg.Signer).Warn("signer secret is empty, using the development account")
		return DevSigner, nil
	}
	return secret, nil
}
