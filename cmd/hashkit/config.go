package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/unkn0wn-root/hashkit"
	"github.com/unkn0wn-root/hashkit/internal/mathutil"
)

const (
	configName = ".hashkit"
	configType = "yaml"
	envPrefix  = "HASHKIT"

	defaultAlgorithm = "default"
	defaultSeed      = "0"
	defaultBuckets   = 100
	defaultCount     = 1000
	defaultFormat    = formatTable
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var (
	errInvalidBuckets = errors.New("buckets must be at least 1")
	errInvalidCount   = errors.New("count must not be negative")
	errInvalidFormat  = errors.New("unknown output format")
)

// Config holds the settings shared by every command.
type Config struct {
	Algorithm string `mapstructure:"algorithm"`
	Seed      string `mapstructure:"seed"`
	Buckets   int    `mapstructure:"buckets"`
	Pow2      bool   `mapstructure:"pow2"`
	Input     string `mapstructure:"input"`
	Count     int    `mapstructure:"count"`
	Format    string `mapstructure:"format"`
}

// LoadConfig layers defaults, an optional config file, HASHKIT_* env vars
// and explicitly set flags, in increasing precedence.
// A missing config file is not an error unless configPath names it.
func LoadConfig(fs afero.Fs, configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)

	v.SetDefault("algorithm", defaultAlgorithm)
	v.SetDefault("seed", defaultSeed)
	v.SetDefault("buckets", defaultBuckets)
	v.SetDefault("pow2", false)
	v.SetDefault("input", "")
	v.SetDefault("count", defaultCount)
	v.SetDefault("format", defaultFormat)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Buckets < 1 {
		return fmt.Errorf("%w: %d", errInvalidBuckets, c.Buckets)
	}
	if c.Count < 0 {
		return fmt.Errorf("%w: %d", errInvalidCount, c.Count)
	}
	switch c.Format {
	case formatTable, formatJSON, formatYAML:
	default:
		return fmt.Errorf("%w: %q", errInvalidFormat, c.Format)
	}
	if _, err := c.Function(); err != nil {
		return err
	}
	return nil
}

// Function builds the configured hash function.
func (c *Config) Function() (hashkit.Function, error) {
	alg, err := hashkit.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return hashkit.Function{}, err
	}
	seed, err := c.SeedValue()
	if err != nil {
		return hashkit.Function{}, err
	}
	return hashkit.NewWithSeed(alg, seed), nil
}

func (c *Config) SeedValue() (uint64, error) {
	return hashkit.ParseSeed(c.Seed)
}

// BucketCount is Buckets, rounded up to a power of two when Pow2 is set
// to mirror mask-indexed bit arrays.
func (c *Config) BucketCount() int {
	if c.Pow2 {
		return mathutil.NextPowerOf2(c.Buckets)
	}
	return c.Buckets
}
