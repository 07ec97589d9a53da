package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. BOUNDLESS_RSA_DATABASE_DSN.
const EnvPrefix = "BOUNDLESS_RSA"

// RestConfig is the configuration of the REST service.
type RestConfig struct {
	Port           string           `mapstructure:"port" validate:"required,numeric"`
	AllowedOrigins []string         `mapstructure:"allowed_origins"`
	Database       DatabaseSettings `mapstructure:"database"`
	Logger         LoggerSettings   `mapstructure:"logger"`
	RSA            RSASettings      `mapstructure:"rsa"`
	Vault          VaultSettings    `mapstructure:"vault"`
}

// Validate checks the service settings and every nested section.
func (c *RestConfig) Validate() error {
	if err := validateStruct(c); err != nil {
		return fmt.Errorf("validation failed for RestConfig: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.RSA.Validate(); err != nil {
		return err
	}
	return c.Vault.Validate()
}

// InitializeRestConfig reads the YAML file at path, applies environment
// overrides on top and validates the result.
func InitializeRestConfig(path string) (*RestConfig, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// newViper returns a viper instance with the defaults of every known key set,
// so AutomaticEnv can override keys that are missing from the file.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	rsa := DefaultRSASettings()
	v.SetDefault("port", "8080")
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "boundless-rsa.db")
	v.SetDefault("database.name", "")
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size", 0)
	v.SetDefault("logger.max_backups", 0)
	v.SetDefault("logger.max_age", 0)
	v.SetDefault("rsa.public_exponent", rsa.PublicExponent)
	v.SetDefault("rsa.min_prime_digits", rsa.MinPrimeDigits)
	v.SetDefault("rsa.max_prime_digits", rsa.MaxPrimeDigits)
	v.SetDefault("rsa.primality_rounds", rsa.PrimalityRounds)
	v.SetDefault("rsa.workers", rsa.Workers)
	v.SetDefault("rsa.max_attempts", rsa.MaxAttempts)
	v.SetDefault("rsa.generation_timeout", rsa.GenerationTimeout)
	v.SetDefault("vault.key_dir", "keys")
	return v
}
