package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/SscSPs/budget_approval_app/internal/apperrors"
	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	"github.com/SscSPs/budget_approval_app/internal/utils"
)

// Audit store backends selectable via AUDIT_STORE.
const (
	AuditStoreFile  = "file"
	AuditStorePgsql = "pgsql"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Audit log backend: "file" (append-only JSONL) or "pgsql".
	AuditStore   string
	AuditLogPath string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	OperatorUsername     string
	OperatorPasswordHash string

	RateLimitRequests int64
	RateLimitPeriod   time.Duration

	// Approval rule thresholds, validated into a domain.RuleSet by RuleSet().
	MaxTotal              string
	MaxCategoryPct        string
	MaxItemPct            string
	MinEmergencyFundPct   string
	RequiredCategories    []string
	EmergencyFundCategory string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("AUDIT_STORE", AuditStoreFile)
	viper.SetDefault("AUDIT_LOG_PATH", "output/approval_log.jsonl")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "budget-approval-app")
	viper.SetDefault("OPERATOR_USERNAME", "operator")
	viper.SetDefault("OPERATOR_PASSWORD", "")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_PERIOD", "1m")
	viper.SetDefault("APPROVAL_MAX_TOTAL", "1000000")
	viper.SetDefault("APPROVAL_MAX_CATEGORY_PCT", "50")
	viper.SetDefault("APPROVAL_MAX_ITEM_PCT", "30")
	viper.SetDefault("APPROVAL_MIN_EMERGENCY_PCT", "10")
	viper.SetDefault("APPROVAL_REQUIRED_CATEGORIES", "Emergency Fund,Savings")
	viper.SetDefault("APPROVAL_EMERGENCY_CATEGORY", "Emergency Fund")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("%w: PGSQL_URL is required", apperrors.ErrConfiguration)
	}
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.AuditStore = strings.ToLower(viper.GetString("AUDIT_STORE"))
	if cfg.AuditStore != AuditStoreFile && cfg.AuditStore != AuditStorePgsql {
		return nil, fmt.Errorf("%w: AUDIT_STORE must be %q or %q, got %q", apperrors.ErrConfiguration, AuditStoreFile, AuditStorePgsql, cfg.AuditStore)
	}
	cfg.AuditLogPath = viper.GetString("AUDIT_LOG_PATH")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if !cfg.IsProduction && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.OperatorUsername = viper.GetString("OPERATOR_USERNAME")
	operatorPassword := viper.GetString("OPERATOR_PASSWORD")
	if operatorPassword == "" {
		operatorPassword = "changeme"
		log.Println("Warning: OPERATOR_PASSWORD not set. Using default insecure password.")
	}
	cfg.OperatorPasswordHash, err = utils.HashPassword(operatorPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash operator password: %w", err)
	}

	cfg.RateLimitRequests = viper.GetInt64("RATE_LIMIT_REQUESTS")
	ratePeriodStr := viper.GetString("RATE_LIMIT_PERIOD")
	ratePeriod, err := time.ParseDuration(ratePeriodStr)
	if err != nil {
		ratePeriod = time.Minute
		log.Printf("Warning: Invalid value for RATE_LIMIT_PERIOD ('%s'). Defaulting to %s.\n", ratePeriodStr, ratePeriod.String())
	}
	cfg.RateLimitPeriod = ratePeriod

	cfg.MaxTotal = viper.GetString("APPROVAL_MAX_TOTAL")
	cfg.MaxCategoryPct = viper.GetString("APPROVAL_MAX_CATEGORY_PCT")
	cfg.MaxItemPct = viper.GetString("APPROVAL_MAX_ITEM_PCT")
	cfg.MinEmergencyFundPct = viper.GetString("APPROVAL_MIN_EMERGENCY_PCT")
	cfg.EmergencyFundCategory = viper.GetString("APPROVAL_EMERGENCY_CATEGORY")
	for _, cat := range strings.Split(viper.GetString("APPROVAL_REQUIRED_CATEGORIES"), ",") {
		if cat = strings.TrimSpace(cat); cat != "" {
			cfg.RequiredCategories = append(cfg.RequiredCategories, cat)
		}
	}

	return cfg, nil
}

// RuleSet parses and validates the configured approval thresholds.
// It fails fast with apperrors.ErrConfiguration before any evaluation runs.
func (c *Config) RuleSet() (domain.RuleSet, error) {
	maxTotal, err := decimal.NewFromString(c.MaxTotal)
	if err != nil {
		return domain.RuleSet{}, fmt.Errorf("%w: invalid APPROVAL_MAX_TOTAL %q", apperrors.ErrConfiguration, c.MaxTotal)
	}
	maxCategoryPct, err := decimal.NewFromString(c.MaxCategoryPct)
	if err != nil {
		return domain.RuleSet{}, fmt.Errorf("%w: invalid APPROVAL_MAX_CATEGORY_PCT %q", apperrors.ErrConfiguration, c.MaxCategoryPct)
	}
	maxItemPct, err := decimal.NewFromString(c.MaxItemPct)
	if err != nil {
		return domain.RuleSet{}, fmt.Errorf("%w: invalid APPROVAL_MAX_ITEM_PCT %q", apperrors.ErrConfiguration, c.MaxItemPct)
	}
	minEmergencyPct, err := decimal.NewFromString(c.MinEmergencyFundPct)
	if err != nil {
		return domain.RuleSet{}, fmt.Errorf("%w: invalid APPROVAL_MIN_EMERGENCY_PCT %q", apperrors.ErrConfiguration, c.MinEmergencyFundPct)
	}

	return domain.NewRuleSet(maxTotal, maxCategoryPct, maxItemPct, minEmergencyPct, c.RequiredCategories, c.EmergencyFundCategory)
}
