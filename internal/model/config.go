package model

import "time"

// Config is the full configuration surface for the analysis pipeline
type Config struct {
	Oracle      OracleConfig      `yaml:"oracle" mapstructure:"oracle"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Triage      TriageConfig      `yaml:"triage" mapstructure:"triage"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// OracleConfig configures the external content oracle
type OracleConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // "openai" or "" (disabled)
	Model    string `yaml:"model" mapstructure:"model"`
	APIKey   string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty" mapstructure:"base_url"`

	// Timeout bounds every individual oracle call; on expiry the fallback
	// classifier takes over instead of blocking the batch.
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
}

// ConcurrencyConfig bounds parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"` // max concurrent oracle calls
}

// TriageConfig holds the router thresholds. The combined-trigger rule is
// configurable because overlapping signals (e.g. bio brand mentions driving
// both commercial_intent and profile_suspicion) can double-count.
type TriageConfig struct {
	CommercialIntentThreshold  float64 `yaml:"commercial_intent_threshold" mapstructure:"commercial_intent_threshold"`
	AttackPatternThreshold     float64 `yaml:"attack_pattern_threshold" mapstructure:"attack_pattern_threshold"`
	EngagementAnomalyThreshold float64 `yaml:"engagement_anomaly_threshold" mapstructure:"engagement_anomaly_threshold"`
	ProfileSuspicionThreshold  float64 `yaml:"profile_suspicion_threshold" mapstructure:"profile_suspicion_threshold"`

	CombinedTriggerFloor float64 `yaml:"combined_trigger_floor" mapstructure:"combined_trigger_floor"`
	CombinedTriggerCount int     `yaml:"combined_trigger_count" mapstructure:"combined_trigger_count"`

	FollowerRatioConstant float64 `yaml:"follower_ratio_constant" mapstructure:"follower_ratio_constant"`
	NewAccountDays        int     `yaml:"new_account_days" mapstructure:"new_account_days"`
}

// CacheConfig configures the oracle response cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig configures report rendering
type OutputConfig struct {
	JSON    string `yaml:"json" mapstructure:"json"`
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the documented defaults
func DefaultConfig() *Config {
	return &Config{
		Oracle: OracleConfig{
			Provider:          "",
			Model:             "gpt-4o-mini",
			Timeout:           15 * time.Second,
			RequestsPerSecond: 5,
			Burst:             5,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 8,
		},
		Triage: TriageConfig{
			CommercialIntentThreshold:  0.6,
			AttackPatternThreshold:     0.5,
			EngagementAnomalyThreshold: 0.7,
			ProfileSuspicionThreshold:  0.6,
			CombinedTriggerFloor:       0.3,
			CombinedTriggerCount:       2,
			FollowerRatioConstant:      10.0,
			NewAccountDays:             30,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
		Output: OutputConfig{
			JSON: "report.json",
		},
	}
}

// Validate fails fast on configuration that would produce nonsense scores
func (c *Config) Validate() error {
	thresholds := []struct {
		name  string
		value float64
	}{
		{"triage.commercial_intent_threshold", c.Triage.CommercialIntentThreshold},
		{"triage.attack_pattern_threshold", c.Triage.AttackPatternThreshold},
		{"triage.engagement_anomaly_threshold", c.Triage.EngagementAnomalyThreshold},
		{"triage.profile_suspicion_threshold", c.Triage.ProfileSuspicionThreshold},
		{"triage.combined_trigger_floor", c.Triage.CombinedTriggerFloor},
	}
	for _, th := range thresholds {
		if th.value < 0 || th.value > 1 {
			return &ConfigurationError{Field: th.name, Reason: "must be in [0,1]"}
		}
	}
	if c.Triage.CombinedTriggerCount < 1 {
		return &ConfigurationError{Field: "triage.combined_trigger_count", Reason: "must be at least 1"}
	}
	if c.Triage.FollowerRatioConstant <= 0 {
		return &ConfigurationError{Field: "triage.follower_ratio_constant", Reason: "must be positive"}
	}
	if c.Triage.NewAccountDays < 0 {
		return &ConfigurationError{Field: "triage.new_account_days", Reason: "must be non-negative"}
	}
	if c.Oracle.Timeout <= 0 {
		return &ConfigurationError{Field: "oracle.timeout", Reason: "must be positive"}
	}
	if c.Oracle.RequestsPerSecond <= 0 {
		return &ConfigurationError{Field: "oracle.requests_per_second", Reason: "must be positive"}
	}
	if c.Concurrency.Workers < 1 {
		return &ConfigurationError{Field: "concurrency.workers", Reason: "must be at least 1"}
	}
	return nil
}
