package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Form styles a card template can be presented with.
const (
	FormSingle = "single"
	FormMulti  = "multi"
)

// Languages the web UI can be toggled between.
const (
	LangEnglish = "English"
	LangArabic  = "Arabic"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logger      LoggerConfig      `yaml:"logger"`
	Cache       CacheConfig       `yaml:"cache"`
	RateLimiter RateLimiterConfig `yaml:"rate_limiter"`
	Auth        AuthConfig        `yaml:"auth"`
	Limits      LimitsConfig      `yaml:"limits"`
	Assets      AssetsConfig      `yaml:"assets"`
	Cards       CardsConfig       `yaml:"cards"`
}

type ServerConfig struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	Prefork bool   `yaml:"prefork"`
	// BodyLimit caps form submissions, in bytes.
	BodyLimit int `yaml:"body_limit"`
}

type LoggerConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

type CacheConfig struct {
	RedisHost        string        `yaml:"redis_host"`
	CardCacheEnabled bool          `yaml:"card_cache_enabled"`
	CardCacheTTL     time.Duration `yaml:"card_cache_ttl"`
	RateLimitDB      int           `yaml:"redis_rate_db"`
	CardCacheDB      int           `yaml:"redis_card_db"`
}

type RateLimiterConfig struct {
	Interval          time.Duration `yaml:"interval"`
	EnableUserLimiter bool          `yaml:"enable_user_limiter"`
	UserLimit         int           `yaml:"user_limit"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// Enabled reports whether a Postgres token store is configured.
func (p PostgresConfig) Enabled() bool { return p.Host != "" }

type AuthConfig struct {
	// StaticTokens maps API keys to their per-interval request limit.
	StaticTokens   map[string]int `yaml:"static_tokens"`
	Postgres       PostgresConfig `yaml:"postgres"`
	ReloadInterval time.Duration  `yaml:"reload_interval"`
}

type LimitsConfig struct {
	MaxNames     int `yaml:"max_names"`
	MaxNameRunes int `yaml:"max_name_runes"`
}

type AssetsConfig struct {
	Dir  string `yaml:"dir"`
	Logo string `yaml:"logo"`
}

type CardsConfig struct {
	DefaultTemplate string                    `yaml:"default_template"`
	DefaultLanguage string                    `yaml:"default_language"`
	Templates       map[string]TemplateConfig `yaml:"templates"`
}

// TemplateIDs returns the configured template ids in a stable order.
func (c CardsConfig) TemplateIDs() []string {
	ids := make([]string, 0, len(c.Templates))
	for id := range c.Templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type TemplateConfig struct {
	Title        string   `yaml:"title"`
	Image        string   `yaml:"image"`
	Font         string   `yaml:"font"`
	FontSize     float64  `yaml:"font_size"`
	Color        string   `yaml:"color"`
	OffsetY      int      `yaml:"offset_y"`
	Form         string   `yaml:"form"`
	DownloadName string   `yaml:"download_name"`
	FilePrefix   string   `yaml:"file_prefix"`
	QR           QRConfig `yaml:"qr"`
}

type QRConfig struct {
	Text string `yaml:"text"`
	Size int    `yaml:"size"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Load reads the file named by CONFIG_PATH, or config.yaml in the working
// directory.
func Load() Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	return LoadFrom(path)
}

// LoadFrom parses the YAML file at path, applies defaults and validates the
// result. It panics on unreadable files and invalid values.
func LoadFrom(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("config: read %s: %v", path, err))
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		panic(fmt.Sprintf("config: parse %s: %v", path, err))
	}

	applyDefaults(&cfg)
	if err := validate(cfg); err != nil {
		panic(fmt.Sprintf("config: %s: %v", path, err))
	}
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Server.BodyLimit == 0 {
		cfg.Server.BodyLimit = 1 << 20
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.Cache.CardCacheTTL == 0 {
		cfg.Cache.CardCacheTTL = 24 * time.Hour
	}
	if cfg.RateLimiter.Interval == 0 {
		cfg.RateLimiter.Interval = time.Minute
	}
	if cfg.Auth.ReloadInterval == 0 {
		cfg.Auth.ReloadInterval = time.Minute
	}
	if cfg.Limits.MaxNames == 0 {
		cfg.Limits.MaxNames = 50
	}
	if cfg.Limits.MaxNameRunes == 0 {
		cfg.Limits.MaxNameRunes = 64
	}
	if cfg.Cards.DefaultLanguage == "" {
		cfg.Cards.DefaultLanguage = LangEnglish
	}
	if cfg.Cards.DefaultTemplate == "" && len(cfg.Cards.Templates) == 1 {
		for id := range cfg.Cards.Templates {
			cfg.Cards.DefaultTemplate = id
		}
	}

	for id, t := range cfg.Cards.Templates {
		if t.FontSize == 0 {
			t.FontSize = 80
		}
		if t.Color == "" {
			t.Color = "#4DD6E9"
		}
		if t.Form == "" {
			t.Form = FormSingle
		}
		if t.DownloadName == "" {
			t.DownloadName = "eid_image.png"
		}
		if t.FilePrefix == "" {
			t.FilePrefix = "Invitation_Card_"
		}
		if t.QR.Text != "" && t.QR.Size == 0 {
			t.QR.Size = 160
		}
		cfg.Cards.Templates[id] = t
	}
}

func validate(cfg Config) error {
	if cfg.RateLimiter.Interval < 0 {
		return fmt.Errorf("rate_limiter.interval must not be negative")
	}
	if cfg.RateLimiter.UserLimit < 0 {
		return fmt.Errorf("rate_limiter.user_limit must not be negative")
	}
	if cfg.Auth.ReloadInterval < 0 {
		return fmt.Errorf("auth.reload_interval must not be negative")
	}
	for token, limit := range cfg.Auth.StaticTokens {
		if token == "" || limit < 0 {
			return fmt.Errorf("auth.static_tokens: invalid entry %q=%d", token, limit)
		}
	}
	if cfg.Limits.MaxNames < 0 || cfg.Limits.MaxNameRunes < 0 {
		return fmt.Errorf("limits must not be negative")
	}
	if cfg.Cards.DefaultLanguage != LangEnglish && cfg.Cards.DefaultLanguage != LangArabic {
		return fmt.Errorf("cards.default_language must be %s or %s", LangEnglish, LangArabic)
	}
	if len(cfg.Cards.Templates) == 0 {
		return fmt.Errorf("cards.templates must not be empty")
	}
	if _, ok := cfg.Cards.Templates[cfg.Cards.DefaultTemplate]; !ok {
		return fmt.Errorf("cards.default_template %q is not configured", cfg.Cards.DefaultTemplate)
	}
	for id, t := range cfg.Cards.Templates {
		if t.Image == "" {
			return fmt.Errorf("cards.templates.%s.image is required", id)
		}
		if t.FontSize < 0 {
			return fmt.Errorf("cards.templates.%s.font_size must be positive", id)
		}
		if !hexColor.MatchString(t.Color) {
			return fmt.Errorf("cards.templates.%s.color %q is not a hex colour", id, t.Color)
		}
		if t.Form != FormSingle && t.Form != FormMulti {
			return fmt.Errorf("cards.templates.%s.form must be %s or %s", id, FormSingle, FormMulti)
		}
		if t.QR.Size < 0 {
			return fmt.Errorf("cards.templates.%s.qr.size must be positive", id)
		}
	}
	return nil
}
