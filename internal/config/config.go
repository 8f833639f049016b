package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Scoring    ScoringConfig    `yaml:"scoring" mapstructure:"scoring"`
	Collectors CollectorsConfig `yaml:"collectors" mapstructure:"collectors"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the overlay/domain database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port              int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins    []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	MutationRatePerS  float64  `yaml:"mutation_rate_per_s" mapstructure:"mutation_rate_per_s"`
	MutationRateBurst int      `yaml:"mutation_rate_burst" mapstructure:"mutation_rate_burst"`
	MaxWindowHours    int      `yaml:"max_window_hours" mapstructure:"max_window_hours"`
}

// ScoringConfig holds every scoring tunable. Defaults live in
// scorer.DefaultScoringConfig; a weights file can override them at startup.
type ScoringConfig struct {
	SeverityBase       float64 `yaml:"severity_base" mapstructure:"severity_base"`
	SeverityLowMul     float64 `yaml:"severity_low_mul" mapstructure:"severity_low_mul"`
	SeverityMediumMul  float64 `yaml:"severity_medium_mul" mapstructure:"severity_medium_mul"`
	SeverityHighMul    float64 `yaml:"severity_high_mul" mapstructure:"severity_high_mul"`
	SeverityCritMul    float64 `yaml:"severity_crit_mul" mapstructure:"severity_crit_mul"`
	OverduePerDay      float64 `yaml:"overdue_per_day" mapstructure:"overdue_per_day"`
	DueSoonBonus       float64 `yaml:"due_soon_bonus" mapstructure:"due_soon_bonus"`
	DueSoonWindowHours int     `yaml:"due_soon_window_hours" mapstructure:"due_soon_window_hours"`
	OwnerBonus         float64 `yaml:"owner_bonus" mapstructure:"owner_bonus"`
	ParticipantBonus   float64 `yaml:"participant_bonus" mapstructure:"participant_bonus"`
	DecisionWeight     float64 `yaml:"decision_weight" mapstructure:"decision_weight"`
	ActionWeight       float64 `yaml:"action_weight" mapstructure:"action_weight"`
	BlockedBonus       float64 `yaml:"blocked_bonus" mapstructure:"blocked_bonus"`
	RecentBonus        float64 `yaml:"recent_bonus" mapstructure:"recent_bonus"`
	RecentWindowHours  int     `yaml:"recent_window_hours" mapstructure:"recent_window_hours"`
	StalePenalty       float64 `yaml:"stale_penalty" mapstructure:"stale_penalty"`
	StaleAfterHours    int     `yaml:"stale_after_hours" mapstructure:"stale_after_hours"`
	WeightsFile        string  `yaml:"weights_file" mapstructure:"weights_file"`
}

// CollectorsConfig configures the scatter-gather phase.
type CollectorsConfig struct {
	TimeoutSecs      int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	BreakerThreshold int `yaml:"breaker_threshold" mapstructure:"breaker_threshold"`
	BreakerCooldownS int `yaml:"breaker_cooldown_secs" mapstructure:"breaker_cooldown_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ATTENTION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "attention.db")
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.mutation_rate_per_s", 5)
	v.SetDefault("server.mutation_rate_burst", 10)
	v.SetDefault("server.max_window_hours", 168)
	v.SetDefault("collectors.timeout_secs", 5)
	v.SetDefault("collectors.breaker_threshold", 5)
	v.SetDefault("collectors.breaker_cooldown_secs", 30)
	v.SetDefault("scoring.severity_base", 10)
	v.SetDefault("scoring.severity_low_mul", 1.0)
	v.SetDefault("scoring.severity_medium_mul", 1.25)
	v.SetDefault("scoring.severity_high_mul", 1.5)
	v.SetDefault("scoring.severity_crit_mul", 2.0)
	v.SetDefault("scoring.overdue_per_day", 10)
	v.SetDefault("scoring.due_soon_bonus", 20)
	v.SetDefault("scoring.due_soon_window_hours", 72)
	v.SetDefault("scoring.owner_bonus", 15)
	v.SetDefault("scoring.participant_bonus", 10)
	v.SetDefault("scoring.decision_weight", 30)
	v.SetDefault("scoring.action_weight", 20)
	v.SetDefault("scoring.blocked_bonus", 25)
	v.SetDefault("scoring.recent_bonus", 10)
	v.SetDefault("scoring.recent_window_hours", 24)
	v.SetDefault("scoring.stale_penalty", -5)
	v.SetDefault("scoring.stale_after_hours", 72)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
