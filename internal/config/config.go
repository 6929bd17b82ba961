package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"MarketDigest/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Slack struct {
		WebhookURL string `yaml:"webhook_url"`
	} `yaml:"slack"`
	Report struct {
		Title          string `yaml:"title"`
		WeeklyLookback int    `yaml:"weekly_lookback"`
		MaxConcurrency int    `yaml:"max_concurrency"`
	} `yaml:"report"`
	FX struct {
		Strategy string `yaml:"strategy"` // "table" or "series"
		TableURL string `yaml:"table_url"`
		model.FxGroup `yaml:",inline"`
	} `yaml:"fx"`
	Groups   []model.Group `yaml:"groups"`
	Schedule struct {
		Cron string `yaml:"cron"` // empty means one-shot
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"` // empty means no run history
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SLACK_WEBHOOK_URL"); v != "" {
		cfg.Slack.WebhookURL = v
	}
	if v := os.Getenv("FX_STRATEGY"); v != "" {
		cfg.FX.Strategy = v
	}
	if v := os.Getenv("FX_BASE"); v != "" {
		cfg.FX.Base = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("MAX_CONCURRENCY"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil && n > 0 {
			cfg.Report.MaxConcurrency = n
		}
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Report.Title == "" {
		cfg.Report.Title = "일일 주식/환율 자동 보고서"
	}
	if cfg.Report.WeeklyLookback == 0 {
		cfg.Report.WeeklyLookback = 5
	}
	if cfg.Report.MaxConcurrency == 0 {
		cfg.Report.MaxConcurrency = 1
	}
	if cfg.FX.Strategy == "" {
		cfg.FX.Strategy = "table"
	}
	if cfg.FX.Title == "" {
		cfg.FX.Title = "🌍 주요국 환율 (원화 KRW 기준)"
	}
	if cfg.FX.Base == "" {
		cfg.FX.Base = "KRW"
	}
	if cfg.FX.Precision == 0 {
		cfg.FX.Precision = 5
	}
	if len(cfg.FX.Targets) == 0 {
		cfg.FX.Targets = []string{
			"USD", "JPY", "EUR", "GBP", "CNY", "CAD", "AUD", "CHF", "SGD",
			"HKD", "NZD", "SEK", "NOK", "MXN", "BRL", "INR", "TRY", "PLN",
		}
	}
	if len(cfg.Groups) == 0 {
		cfg.Groups = defaultGroups()
	}
	for i := range cfg.Groups {
		if cfg.Groups[i].Precision == 0 {
			cfg.Groups[i].Precision = 2
		}
	}
}

func defaultGroups() []model.Group {
	return []model.Group{
		{
			Title:     "🇰🇷 국내 주식 및 지수",
			Currency:  "₩",
			Precision: 2,
			Tickers: []model.Ticker{
				{Name: "삼성전자", Symbol: "005930.KS"},
				{Name: "LG디스플레이", Symbol: "034220.KS"},
				{Name: "코스피", Symbol: "^KS11"},
				{Name: "코스닥", Symbol: "^KQ11"},
			},
		},
		{
			Title:     "🇺🇸 미국 주식 및 지수",
			Currency:  "$",
			Precision: 2,
			Tickers: []model.Ticker{
				{Name: "S&P 500", Symbol: "^GSPC"},
				{Name: "나스닥 종합", Symbol: "^IXIC"},
				{Name: "다우존스", Symbol: "^DJI"},
				{Name: "애플", Symbol: "AAPL"},
				{Name: "마이크로소프트", Symbol: "MSFT"},
				{Name: "엔비디아", Symbol: "NVDA"},
				{Name: "테슬라", Symbol: "TSLA"},
				{Name: "QQQ (나스닥100)", Symbol: "QQQ"},
			},
		},
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Slack.WebhookURL == "" {
		return fmt.Errorf("slack.webhook_url is required (set SLACK_WEBHOOK_URL)")
	}
	if c.FX.Strategy != "table" && c.FX.Strategy != "series" {
		return fmt.Errorf("fx.strategy must be \"table\" or \"series\", got %q", c.FX.Strategy)
	}
	if c.Report.WeeklyLookback < 1 {
		return fmt.Errorf("report.weekly_lookback must be positive")
	}
	if c.FX.Precision < 0 || c.FX.Precision > 10 {
		return fmt.Errorf("fx.precision out of range: %d", c.FX.Precision)
	}
	return nil
}
