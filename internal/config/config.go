package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flexprice/iamport-go/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DefaultBaseURL is the published production endpoint of the gateway
const DefaultBaseURL = "https://api.iamport.kr/"

type Configuration struct {
	Iamport    IamportConfig    `mapstructure:"iamport"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	TokenCache TokenCacheConfig `mapstructure:"token_cache"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type IamportConfig struct {
	APIKey    string `mapstructure:"api_key" validate:"required"`
	APISecret string `mapstructure:"api_secret" validate:"required"`
	BaseURL   string `mapstructure:"base_url" validate:"required,url"`
}

type HTTPConfig struct {
	Timeout  time.Duration `mapstructure:"timeout" validate:"gte=0"`
	RetryMax int           `mapstructure:"retry_max" validate:"gte=0,lte=10"`
	// RateLimit is the request rate allowed per second; 0 disables limiting
	RateLimit float64 `mapstructure:"rate_limit" validate:"gte=0"`
	Burst     int     `mapstructure:"burst" validate:"gte=0"`
}

// TokenCacheConfig enables reuse of the access token until shortly before
// the expiry the gateway declares for it.
type TokenCacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Margin  time.Duration `mapstructure:"margin" validate:"gte=0"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/iamport")

	return load(v)
}

// NewConfigFromFile loads configuration from an explicit file path
func NewConfigFromFile(path string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Configuration, error) {
	setDefaults(v)

	v.SetEnvPrefix("IAMPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()
	// AutomaticEnv only resolves keys viper already knows about
	for _, key := range []string{"iamport.api_key", "iamport.api_secret"} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("iamport.base_url", DefaultBaseURL)
	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("http.retry_max", 3)
	v.SetDefault("http.rate_limit", 0)
	v.SetDefault("http.burst", 1)
	v.SetDefault("token_cache.enabled", false)
	v.SetDefault("token_cache.margin", time.Minute)
	v.SetDefault("logging.level", string(types.LogLevelInfo))
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns the defaults without credentials.
// It does not pass Validate on its own.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Iamport: IamportConfig{BaseURL: DefaultBaseURL},
		HTTP: HTTPConfig{
			Timeout:  30 * time.Second,
			RetryMax: 3,
			Burst:    1,
		},
		TokenCache: TokenCacheConfig{Margin: time.Minute},
		Logging:    LoggingConfig{Level: types.LogLevelInfo},
	}
}
