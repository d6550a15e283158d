package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	MetricsPort int    `toml:"metrics_port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	RunMigrations  bool   `toml:"run_migrations"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// rate limiting, per IP and minute
	CheckinRateLimit int `toml:"checkin_rate_limit"`
	LoginRateLimit   int `toml:"login_rate_limit"`

	// calendar day boundary for daily check-ins
	Timezone string `toml:"timezone"`

	AllowedOrigins []string `toml:"allowed_origins"`

	Readiness  Readiness  `toml:"readiness"`
	Session    Session    `toml:"session"`
	Checkout   Checkout   `toml:"checkout"`
	Adaptation Adaptation `toml:"adaptation"`
}

type Readiness struct {
	SleepQualityWeight float64 `toml:"sleep_quality_weight"`
	SleepHoursWeight   float64 `toml:"sleep_hours_weight"`
	SorenessWeight     float64 `toml:"soreness_weight"`
	StressWeight       float64 `toml:"stress_weight"`
	EnergyWeight       float64 `toml:"energy_weight"`
	OptimalSleepHours  float64 `toml:"optimal_sleep_hours"`
	SleepPenaltyPerHr  float64 `toml:"sleep_penalty_per_hour"`
	GreenThreshold     float64 `toml:"green_threshold"`
	YellowThreshold    float64 `toml:"yellow_threshold"`
}

type Session struct {
	IdleTimeoutMinutes   int `toml:"idle_timeout_minutes"`
	SweepIntervalSeconds int `toml:"sweep_interval_seconds"`
}

func (s Session) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

func (s Session) SweepInterval() time.Duration {
	return time.Duration(s.SweepIntervalSeconds) * time.Second
}

type Checkout struct {
	PersistMaxAttempts    int `toml:"persist_max_attempts"`
	PersistTimeoutSeconds int `toml:"persist_timeout_seconds"`
}

func (c Checkout) PersistTimeout() time.Duration {
	return time.Duration(c.PersistTimeoutSeconds) * time.Second
}

type Adaptation struct {
	RuleCacheTTLSeconds int `toml:"rule_cache_ttl_seconds"`
	RuleCacheSizeMB     int `toml:"rule_cache_size_mb"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

func Load(env, configPath string) (*Config, error) {
	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file [%s]: %w", configPath, err)
	}
	return Parse(env, string(content))
}

func Parse(env, content string) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.Decode(content, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg, err := tomlConfig.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Location returns the timezone used to compute a student's calendar day.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.CheckinRateLimit == 0 {
		c.CheckinRateLimit = 10
	}
	if c.LoginRateLimit == 0 {
		c.LoginRateLimit = 5
	}

	r := &c.Readiness
	if r.SleepQualityWeight == 0 && r.SleepHoursWeight == 0 && r.SorenessWeight == 0 &&
		r.StressWeight == 0 && r.EnergyWeight == 0 {
		r.SleepQualityWeight, r.SleepHoursWeight, r.SorenessWeight, r.StressWeight, r.EnergyWeight = 1, 1, 1, 1, 1
	}
	if r.OptimalSleepHours == 0 {
		r.OptimalSleepHours = 8
	}
	if r.SleepPenaltyPerHr == 0 {
		r.SleepPenaltyPerHr = 2.5
	}
	if r.GreenThreshold == 0 {
		r.GreenThreshold = 7
	}
	if r.YellowThreshold == 0 {
		r.YellowThreshold = 4
	}

	if c.Session.IdleTimeoutMinutes == 0 {
		c.Session.IdleTimeoutMinutes = 180
	}
	if c.Session.SweepIntervalSeconds == 0 {
		c.Session.SweepIntervalSeconds = 60
	}
	if c.Checkout.PersistMaxAttempts == 0 {
		c.Checkout.PersistMaxAttempts = 3
	}
	if c.Checkout.PersistTimeoutSeconds == 0 {
		c.Checkout.PersistTimeoutSeconds = 10
	}
	if c.Adaptation.RuleCacheTTLSeconds == 0 {
		c.Adaptation.RuleCacheTTLSeconds = 300
	}
	if c.Adaptation.RuleCacheSizeMB == 0 {
		c.Adaptation.RuleCacheSizeMB = 1
	}
}

func (c *Config) validate() error {
	var err error
	if c.Port <= 0 || c.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("port out of range: %d", c.Port))
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		err = multierr.Append(err, fmt.Errorf("metrics port out of range: %d", c.MetricsPort))
	}
	if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDBName == "" {
		err = multierr.Append(err, errors.New("postgres host, port and db name are required"))
	}
	if c.RedisHost == "" || c.RedisPort == "" {
		err = multierr.Append(err, errors.New("redis host and port are required"))
	}
	if _, locErr := time.LoadLocation(c.Timezone); locErr != nil {
		err = multierr.Append(err, fmt.Errorf("timezone [%s]: %w", c.Timezone, locErr))
	}

	r := c.Readiness
	for name, w := range map[string]float64{
		"sleep_quality_weight": r.SleepQualityWeight,
		"sleep_hours_weight":   r.SleepHoursWeight,
		"soreness_weight":      r.SorenessWeight,
		"stress_weight":        r.StressWeight,
		"energy_weight":        r.EnergyWeight,
	} {
		if w < 0 {
			err = multierr.Append(err, fmt.Errorf("readiness %s must not be negative", name))
		}
	}
	if r.GreenThreshold <= r.YellowThreshold {
		err = multierr.Append(err, errors.New("readiness green threshold must be above yellow threshold"))
	}
	if r.YellowThreshold < 0 || r.GreenThreshold > 10 {
		err = multierr.Append(err, errors.New("readiness thresholds must be within 0-10"))
	}

	if c.Checkout.PersistMaxAttempts < 1 {
		err = multierr.Append(err, errors.New("checkout persist_max_attempts must be at least 1"))
	}
	if c.Session.IdleTimeoutMinutes < 1 {
		err = multierr.Append(err, errors.New("session idle_timeout_minutes must be at least 1"))
	}

	return err
}
