package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/agency-atlas/pkg/services/analysis"
	"github.com/de-tools/agency-atlas/pkg/services/network"
	"github.com/de-tools/agency-atlas/pkg/services/realtime"
	"github.com/spf13/viper"
)

const envPrefix = "ATLAS"

type ReportSettings struct {
	Timeout               time.Duration `mapstructure:"timeout"`
	UpcomingDeadlineDays  int           `mapstructure:"upcoming_deadline_days"`
	UpcomingDeadlineLimit int           `mapstructure:"upcoming_deadline_limit"`
	RecentActivityLimit   int           `mapstructure:"recent_activity_limit"`
	TrendMonths           int           `mapstructure:"trend_months"`
}

type AnalysisSettings struct {
	MinCorrelationSamples int     `mapstructure:"min_correlation_samples"`
	HoursPerBrief         float64 `mapstructure:"hours_per_brief"`
	GrowthRate            float64 `mapstructure:"growth_rate"`
	ForecastWeeks         int     `mapstructure:"forecast_weeks"`
	BottleneckMinHours    float64 `mapstructure:"bottleneck_min_hours"`
}

type NetworkSettings struct {
	KeyConnectorLimit int           `mapstructure:"key_connector_limit"`
	ProbeTimeout      time.Duration `mapstructure:"probe_timeout"`
}

type SyncSettings struct {
	Interval      time.Duration `mapstructure:"interval"`
	Organizations []string      `mapstructure:"organizations"`
}

type ServerSettings struct {
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Settings struct {
	Reports  ReportSettings   `mapstructure:"reports"`
	Analysis AnalysisSettings `mapstructure:"analysis"`
	Network  NetworkSettings  `mapstructure:"network"`
	Sync     SyncSettings     `mapstructure:"sync"`
	Server   ServerSettings   `mapstructure:"server"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("reports.timeout", 30*time.Second)
	v.SetDefault("reports.upcoming_deadline_days", 7)
	v.SetDefault("reports.upcoming_deadline_limit", 10)
	v.SetDefault("reports.recent_activity_limit", 20)
	v.SetDefault("reports.trend_months", 6)

	v.SetDefault("analysis.min_correlation_samples", 6)
	v.SetDefault("analysis.hours_per_brief", 8.0)
	v.SetDefault("analysis.growth_rate", 0.05)
	v.SetDefault("analysis.forecast_weeks", 4)
	v.SetDefault("analysis.bottleneck_min_hours", 24.0)

	v.SetDefault("network.key_connector_limit", 5)
	v.SetDefault("network.probe_timeout", 2*time.Second)

	v.SetDefault("sync.interval", time.Duration(0))
	v.SetDefault("sync.organizations", []string{})

	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}

// LoadSettings reads report settings from path, or only defaults and the
// environment when path is empty. ATLAS_-prefixed variables override the
// file, e.g. ATLAS_REPORTS_TIMEOUT=45s.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := settings.validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *Settings) validate() error {
	switch {
	case s.Reports.Timeout <= 0:
		return fmt.Errorf("reports.timeout must be positive")
	case s.Reports.TrendMonths <= 0:
		return fmt.Errorf("reports.trend_months must be positive")
	case s.Analysis.HoursPerBrief <= 0:
		return fmt.Errorf("analysis.hours_per_brief must be positive")
	case s.Analysis.MinCorrelationSamples < 2:
		return fmt.Errorf("analysis.min_correlation_samples must be at least 2")
	case s.Sync.Interval < 0:
		return fmt.Errorf("sync.interval must not be negative")
	}
	return nil
}

func (s *Settings) Realtime() realtime.Settings {
	return realtime.Settings{
		UpcomingDeadlineDays:  s.Reports.UpcomingDeadlineDays,
		UpcomingDeadlineLimit: s.Reports.UpcomingDeadlineLimit,
		RecentActivityLimit:   s.Reports.RecentActivityLimit,
	}
}

func (s *Settings) AnalysisEngine() analysis.Settings {
	return analysis.Settings{
		MinCorrelationSamples: s.Analysis.MinCorrelationSamples,
		HoursPerBrief:         s.Analysis.HoursPerBrief,
		GrowthRate:            s.Analysis.GrowthRate,
		ForecastWeeks:         s.Analysis.ForecastWeeks,
		BottleneckMinHours:    s.Analysis.BottleneckMinHours,
	}
}

func (s *Settings) GraphBuilder() network.Settings {
	return network.Settings{
		KeyConnectorLimit: s.Network.KeyConnectorLimit,
		ProbeTimeout:      s.Network.ProbeTimeout,
	}
}
