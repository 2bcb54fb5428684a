package setla

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/sara-star-quant/setla/internal/constants"
	qerrors "github.com/sara-star-quant/setla/internal/errors"
	"github.com/sara-star-quant/setla/pkg/metrics"
)

const (
	defaultLogLevel  = "WARN"
	defaultLogFormat = "text"
)

// Config is the TOML configuration of a Scheme.
type Config struct {
	// MaxAttempts caps the Signcrypt rejection loop.
	MaxAttempts int

	// CipherMode is "reference-cfb", "aes-256-gcm" or "chacha20-poly1305".
	CipherMode string

	// ParametersSeed is a hex seed from which a1 and a2 are derived. If
	// empty, fresh parameters are sampled and must be distributed out of band.
	ParametersSeed string

	// PairwiseTest enables the pairwise consistency test on key generation.
	PairwiseTest bool

	// Logging configures the scheme logger.
	Logging *Logging
}

// Logging is the logging configuration.
type Logging struct {
	// Disable disables logging entirely.
	Disable bool

	// Level is one of DEBUG, INFO, WARN, ERROR.
	Level string

	// Format is "text" or "json".
	Format string
}

func (lCfg *Logging) validate() error {
	if lCfg.Level == "" {
		lCfg.Level = defaultLogLevel
	}
	lvl, ok := metrics.LookupLevel(lCfg.Level)
	if !ok {
		return fmt.Errorf("%w: Logging: Level '%v' is invalid", qerrors.ErrInvalidConfig, lCfg.Level)
	}
	lCfg.Level = lvl.String()

	if lCfg.Format == "" {
		lCfg.Format = defaultLogFormat
	}
	if _, ok := metrics.LookupFormat(lCfg.Format); !ok {
		return fmt.Errorf("%w: Logging: Format '%v' is invalid", qerrors.ErrInvalidConfig, lCfg.Format)
	}
	lCfg.Format = strings.ToLower(lCfg.Format)
	return nil
}

func (lCfg *Logging) logger() *metrics.Logger {
	if lCfg.Disable {
		return metrics.NullLogger()
	}
	format, _ := metrics.LookupFormat(lCfg.Format)
	return metrics.NewLogger(
		metrics.WithOutput(os.Stderr),
		metrics.WithLevel(metrics.ParseLevel(lCfg.Level)),
		metrics.WithFormat(format),
	)
}

// DefaultConfig returns a validated configuration with default values.
func DefaultConfig() *Config {
	cfg := new(Config)
	if err := cfg.FixupAndValidate(); err != nil {
		panic(err)
	}
	return cfg
}

// FixupAndValidate applies defaults to unset values and validates the
// configuration.
func (cfg *Config) FixupAndValidate() error {
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = constants.DefaultMaxAttempts
	}
	if cfg.MaxAttempts < 0 {
		return fmt.Errorf("%w: MaxAttempts %d is negative", qerrors.ErrInvalidConfig, cfg.MaxAttempts)
	}

	mode, ok := constants.ParseCipherMode(strings.ToLower(cfg.CipherMode))
	if !ok {
		return fmt.Errorf("%w: CipherMode '%v' is invalid", qerrors.ErrInvalidConfig, cfg.CipherMode)
	}
	cfg.CipherMode = mode.String()

	if cfg.ParametersSeed != "" {
		seed, err := hex.DecodeString(cfg.ParametersSeed)
		if err != nil {
			return fmt.Errorf("%w: ParametersSeed is not hex", qerrors.ErrInvalidConfig)
		}
		if len(seed) < constants.SeedSize {
			return fmt.Errorf("%w: ParametersSeed must be at least %d bytes", qerrors.ErrInvalidConfig, constants.SeedSize)
		}
	}

	if cfg.Logging == nil {
		cfg.Logging = &Logging{}
	}
	return cfg.Logging.validate()
}

// LoadConfig parses and validates the provided buffer b as a config file body
// and returns the Config.
func LoadConfig(b []byte) (*Config, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: nil buffer", qerrors.ErrInvalidConfig)
	}

	cfg := new(Config)
	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", qerrors.ErrInvalidConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown keys %v", qerrors.ErrInvalidConfig, undecoded)
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadConfigFile loads, parses and validates the provided file and returns
// the Config.
func LoadConfigFile(f string) (*Config, error) {
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}
	return LoadConfig(b)
}

// NewFromConfig builds a Scheme from cfg. Options in opts are applied after
// the configuration and take precedence.
//
// With a ParametersSeed every scheme built from the same configuration shares
// a1 and a2; without one the parameters are sampled from the randomness
// source and are only usable by parties that obtain them via
// PublicParameters.Bytes.
func NewFromConfig(cfg *Config, opts ...Option) (*Scheme, error) {
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}

	var pre schemeOptions
	for _, opt := range opts {
		opt(&pre)
	}

	var (
		params *PublicParameters
		err    error
	)
	if cfg.ParametersSeed != "" {
		seed, _ := hex.DecodeString(cfg.ParametersSeed)
		params, err = DerivePublicParameters(DefaultParameterSet(), seed)
	} else {
		params, err = NewPublicParameters(DefaultParameterSet(), pre.rng)
	}
	if err != nil {
		return nil, err
	}

	mode, _ := constants.ParseCipherMode(cfg.CipherMode)
	base := []Option{
		WithMaxAttempts(cfg.MaxAttempts),
		WithCipherMode(mode),
		WithPairwiseTest(cfg.PairwiseTest),
		WithLogger(cfg.Logging.logger()),
	}
	return New(params, append(base, opts...)...)
}
