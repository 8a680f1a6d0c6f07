package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finecut/platform/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Cache      CacheConfig
	Pricing    PricingConfig    `validate:"required"`
	Commission CommissionConfig `validate:"required"`
	Stripe     StripeConfig
	Email      EmailConfig
	Sentry     SentryConfig
	VIES       VIESConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type CacheConfig struct {
	Enabled bool
	// TierLadderTTL bounds how stale tier configuration may be served
	TierLadderTTL time.Duration
}

// PricingConfig holds the per-SKU quantity caps for each pricing regime.
// The tier ladders themselves live in the database and are loaded through
// the tier ladder loader.
type PricingConfig struct {
	MaxQuantityStandard int `validate:"required,gt=0"`
	MaxQuantityPremium  int `validate:"required,gt=0"`
}

// CommissionConfig holds partner and sales rep commission rates as fractions
// (0.20 = 20%).
type CommissionConfig struct {
	PartnerRateTool       float64 `validate:"gte=0,lte=1"`
	PartnerRateConsumable float64 `validate:"gte=0,lte=1"`
	SalesRepRate          float64 `validate:"gte=0,lte=1"`
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

type EmailConfig struct {
	Enabled     bool
	APIKey      string
	FromAddress string
	SalesInbox  string
}

type SentryConfig struct {
	Enabled     bool
	DSN         string
	Environment string
	SampleRate  float64
}

type VIESConfig struct {
	BaseURL string
	// RequestsPerSecond throttles outbound VAT lookups
	RequestsPerSecond float64
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/finecut")

	v.SetEnvPrefix("FINECUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
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
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.maxopenconns", 10)
	v.SetDefault("postgres.maxidleconns", 5)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.tierladderttl", 5*time.Minute)
	v.SetDefault("pricing.maxquantitystandard", 15)
	v.SetDefault("pricing.maxquantitypremium", 10)
	v.SetDefault("commission.partnerratetool", 0.20)
	v.SetDefault("commission.partnerrateconsumable", 0.10)
	v.SetDefault("commission.salesreprate", 0.05)
	v.SetDefault("vies.baseurl", "https://ec.europa.eu/taxation_customs/vies/rest-api")
	v.SetDefault("vies.requestspersecond", 1.0)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// and tests. This is useful for running scripts or other non-web applications.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Cache: CacheConfig{
			Enabled:       true,
			TierLadderTTL: 5 * time.Minute,
		},
		Pricing: PricingConfig{
			MaxQuantityStandard: 15,
			MaxQuantityPremium:  10,
		},
		Commission: CommissionConfig{
			PartnerRateTool:       0.20,
			PartnerRateConsumable: 0.10,
			SalesRepRate:          0.05,
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
