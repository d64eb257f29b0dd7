// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Cascade modes for multi-product recipes.
const (
	CascadeJoint  = "joint"
	CascadeLegacy = "legacy"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	API       APIConfig       `mapstructure:"api"`
	Market    MarketConfig    `mapstructure:"market"`
	Arbitrage ArbitrageConfig `mapstructure:"arbitrage"`
	Crafting  CraftingConfig  `mapstructure:"crafting"`
	Report    ReportConfig    `mapstructure:"report"`
	Discord   DiscordConfig   `mapstructure:"discord"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Schedule  ScheduleConfig  `mapstructure:"schedule"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	HealthPort  int    `mapstructure:"health_port" validate:"gte=0,lte=65535"`
	TUIMode     bool   `mapstructure:"-"` // Set at runtime, not from config file
}

// APIConfig holds the game economy API settings.
type APIConfig struct {
	BaseURL        string        `mapstructure:"base_url" validate:"required,url"`
	StoresPath     string        `mapstructure:"stores_path" validate:"required"`
	RecipesPath    string        `mapstructure:"recipes_path" validate:"required"`
	Timeout        time.Duration `mapstructure:"timeout" validate:"gt=0"`
	FallbackFile   string        `mapstructure:"fallback_file"`
	RecipeCacheTTL time.Duration `mapstructure:"recipe_cache_ttl"`
	RateLimitRPM   int           `mapstructure:"rate_limit_rpm" validate:"gte=0"`
}

// MarketConfig holds snapshot filters.
type MarketConfig struct {
	Currencies            []string `mapstructure:"currencies"`
	ExcludedBuyerStores   []string `mapstructure:"excluded_buyer_stores"`
	AllowZeroPriceSellers bool     `mapstructure:"allow_zero_price_sellers"`
}

// ArbitrageConfig holds arbitrage detection thresholds.
type ArbitrageConfig struct {
	MinTotalProfit    float64 `mapstructure:"min_total_profit" validate:"gte=0"`
	Epsilon           float64 `mapstructure:"epsilon" validate:"gte=0"`
	LiquidityMargin   float64 `mapstructure:"liquidity_margin" validate:"gte=0"`
	BalanceAware      bool    `mapstructure:"balance_aware"`
	GoodDealThreshold float64 `mapstructure:"good_deal_threshold" validate:"gte=0"`
}

// MinTotalProfitDecimal returns the report threshold as decimal.Decimal.
func (c *ArbitrageConfig) MinTotalProfitDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.MinTotalProfit)
}

// EpsilonDecimal returns the minimum per-unit spread as decimal.Decimal.
func (c *ArbitrageConfig) EpsilonDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.Epsilon)
}

// LiquidityMarginDecimal returns the seller balance safety margin as decimal.Decimal.
func (c *ArbitrageConfig) LiquidityMarginDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.LiquidityMargin)
}

// GoodDealThresholdDecimal returns the monitor threshold as decimal.Decimal.
func (c *ArbitrageConfig) GoodDealThresholdDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.GoodDealThreshold)
}

// CraftingConfig holds crafting engine policy.
type CraftingConfig struct {
	MinTotalProfit        float64 `mapstructure:"min_total_profit" validate:"gte=0"`
	MinUnitProfit         float64 `mapstructure:"min_unit_profit" validate:"gte=0"`
	MinIngredientQuantity int64   `mapstructure:"min_ingredient_quantity" validate:"gte=0"`
	MinRecipeBatches      int64   `mapstructure:"min_recipe_batches" validate:"gte=0"`
	MinProfessionProfit   float64 `mapstructure:"min_profession_profit" validate:"gte=0"`
	CascadeMode           string  `mapstructure:"cascade_mode" validate:"oneof=joint legacy"`
	Conservative          bool    `mapstructure:"conservative"`
}

// MinTotalProfitDecimal returns the cascaded profit threshold as decimal.Decimal.
func (c *CraftingConfig) MinTotalProfitDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.MinTotalProfit)
}

// MinUnitProfitDecimal returns the per-batch profit threshold as decimal.Decimal.
func (c *CraftingConfig) MinUnitProfitDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.MinUnitProfit)
}

// MinProfessionProfitDecimal returns the profession-mode threshold as decimal.Decimal.
func (c *CraftingConfig) MinProfessionProfitDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.MinProfessionProfit)
}

// ReportConfig holds ranking and output limits.
type ReportConfig struct {
	TopN         int `mapstructure:"top_n" validate:"gt=0"`
	CraftingTopN int `mapstructure:"crafting_top_n" validate:"gt=0"`
	CategoryTopN int `mapstructure:"category_top_n" validate:"gt=0"`
	ChunkSize    int `mapstructure:"chunk_size" validate:"gte=100"`
}

// DiscordConfig holds Discord bot credentials.
type DiscordConfig struct {
	Token     string `mapstructure:"token"`
	ChannelID string `mapstructure:"channel_id"`
	GuildID   string `mapstructure:"guild_id"`
}

// Enabled reports whether Discord delivery is configured.
func (c *DiscordConfig) Enabled() bool {
	return c.Token != "" && c.ChannelID != ""
}

// TelegramConfig holds Telegram bot credentials.
type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
}

// Enabled reports whether Telegram delivery is configured.
func (c *TelegramConfig) Enabled() bool {
	return c.Token != "" && c.ChatID != 0
}

// ScheduleConfig holds periodic job settings.
type ScheduleConfig struct {
	ReportCron      string        `mapstructure:"report_cron" validate:"required"`
	MonitorInterval time.Duration `mapstructure:"monitor_interval" validate:"gt=0"`
	SkipFirstReport bool          `mapstructure:"skip_first_report"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	Provider       string `mapstructure:"provider" validate:"omitempty,oneof=zipkin otlp-grpc otlp-http console"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPHeaders    string `mapstructure:"otlp_headers"`
	PrometheusPort int    `mapstructure:"prometheus_port" validate:"gte=0,lte=65535"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("ECO")
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "ECO_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "ECO_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "ECO_LOG_LEVEL", "LOG_LEVEL")
	v.BindEnv("app.health_port", "ECO_HEALTH_PORT", "HEALTH_PORT")

	// API
	v.BindEnv("api.base_url", "ECO_BASE_URL")
	v.BindEnv("api.timeout", "ECO_API_TIMEOUT")
	v.BindEnv("api.fallback_file", "ECO_FALLBACK_FILE")

	// Market
	v.BindEnv("market.currencies", "ECO_CURRENCIES")
	v.BindEnv("market.excluded_buyer_stores", "ECO_EXCLUDED_BUYER_STORES")

	// Chat
	v.BindEnv("discord.token", "ECO_DISCORD_TOKEN", "DISCORD_TOKEN")
	v.BindEnv("discord.channel_id", "ECO_DISCORD_CHANNEL_ID", "DISCORD_CHANNEL_ID")
	v.BindEnv("discord.guild_id", "ECO_DISCORD_GUILD_ID", "DISCORD_GUILD_ID")
	v.BindEnv("telegram.token", "ECO_TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "ECO_TELEGRAM_CHAT_ID", "TELEGRAM_CHAT_ID")

	// Telemetry
	v.BindEnv("telemetry.enabled", "ECO_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "ECO_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.provider", "ECO_OTEL_PROVIDER")
	v.BindEnv("telemetry.otlp_headers", "ECO_OTEL_HEADERS", "OTEL_EXPORTER_OTLP_HEADERS")
	v.BindEnv("telemetry.otlp_endpoint", "ECO_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "eco-market-bot")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.health_port", 8081)

	// API defaults
	v.SetDefault("api.base_url", "http://144.217.255.182:3001")
	v.SetDefault("api.stores_path", "/api/v1/plugins/EcoPriceCalculator/stores")
	v.SetDefault("api.recipes_path", "/api/v1/plugins/EcoPriceCalculator/recipes")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("api.fallback_file", "stores_data.json")
	v.SetDefault("api.recipe_cache_ttl", "10m")
	v.SetDefault("api.rate_limit_rpm", 30)

	// Market defaults
	v.SetDefault("market.currencies", []string{})
	v.SetDefault("market.excluded_buyer_stores", []string{"Low Hanging Fruit"})
	v.SetDefault("market.allow_zero_price_sellers", false)

	// Arbitrage defaults
	v.SetDefault("arbitrage.min_total_profit", 10)
	v.SetDefault("arbitrage.epsilon", 0.1)
	v.SetDefault("arbitrage.liquidity_margin", 50)
	v.SetDefault("arbitrage.balance_aware", false)
	v.SetDefault("arbitrage.good_deal_threshold", 50)

	// Crafting defaults
	v.SetDefault("crafting.min_total_profit", 1)
	v.SetDefault("crafting.min_unit_profit", 1)
	v.SetDefault("crafting.min_ingredient_quantity", 50)
	v.SetDefault("crafting.min_recipe_batches", 5)
	v.SetDefault("crafting.min_profession_profit", 10)
	v.SetDefault("crafting.cascade_mode", CascadeJoint)
	v.SetDefault("crafting.conservative", true)

	// Report defaults
	v.SetDefault("report.top_n", 10)
	v.SetDefault("report.crafting_top_n", 20)
	v.SetDefault("report.category_top_n", 5)
	v.SetDefault("report.chunk_size", 2000)

	// Schedule defaults
	v.SetDefault("schedule.report_cron", "0 0,30 * * * *")
	v.SetDefault("schedule.monitor_interval", "5m")
	v.SetDefault("schedule.skip_first_report", true)

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "eco-market-bot")
	v.SetDefault("telemetry.provider", "zipkin")
	v.SetDefault("telemetry.otlp_endpoint", "http://localhost:9411/api/v2/spans")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

// Validate runs struct tag validation and cross-field rules.
func (c *Config) Validate() error {
	if err := NewValidator().Validate(c); err != nil {
		return err
	}
	if c.Crafting.MinRecipeBatches == 0 && c.Crafting.Conservative {
		return fmt.Errorf("crafting.min_recipe_batches must be positive in conservative mode")
	}
	if c.Telegram.Token != "" && c.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram.chat_id is required when telegram.token is set")
	}
	if c.Discord.Token != "" && c.Discord.ChannelID == "" {
		return fmt.Errorf("discord.channel_id is required when discord.token is set")
	}
	return nil
}
