package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

const minimalCards = `
cards:
  default_template: eid
  templates:
    eid:
      image: "./001-Moneymoon-Eid-Greeting.jpg"
`

func TestLoadFrom_Valid(t *testing.T) {
	p := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: ":9000"
cache:
  redis_host: "localhost:6379"
  card_cache_enabled: true
  card_cache_ttl: 2h
  redis_card_db: 3
rate_limiter:
  interval: 1h
  enable_user_limiter: true
  user_limit: 20
auth:
  static_tokens:
    partner-key: 30
limits:
  max_names: 10
cards:
  default_template: eid
  default_language: Arabic
  templates:
    eid:
      title: "Eid Al-Adha"
      image: "./001-Moneymoon-Eid-Greeting.jpg"
      font: "fonts/DINNextLTArabic-Regular_0.ttf"
      color: "#43FFAE"
      offset_y: -50
      form: multi
      qr:
        text: "https://example.com"
`)
	cfg := LoadFrom(p)

	assert.Equal(t, ":9000", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.Cache.CardCacheTTL)
	assert.Equal(t, 3, cfg.Cache.CardCacheDB)
	assert.Equal(t, time.Hour, cfg.RateLimiter.Interval)
	assert.Equal(t, 20, cfg.RateLimiter.UserLimit)
	assert.Equal(t, 30, cfg.Auth.StaticTokens["partner-key"])
	assert.Equal(t, 10, cfg.Limits.MaxNames)
	assert.Equal(t, 64, cfg.Limits.MaxNameRunes)
	assert.Equal(t, LangArabic, cfg.Cards.DefaultLanguage)

	tpl := cfg.Cards.Templates["eid"]
	assert.Equal(t, "#43FFAE", tpl.Color)
	assert.Equal(t, -50, tpl.OffsetY)
	assert.Equal(t, FormMulti, tpl.Form)
	assert.Equal(t, float64(80), tpl.FontSize)
	assert.Equal(t, 160, tpl.QR.Size)
}

func TestLoadFrom_Defaults(t *testing.T) {
	p := writeConfig(t, `
cards:
  templates:
    only:
      image: "card.jpg"
`)
	cfg := LoadFrom(p)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, time.Minute, cfg.RateLimiter.Interval)
	assert.Equal(t, "only", cfg.Cards.DefaultTemplate)
	assert.Equal(t, LangEnglish, cfg.Cards.DefaultLanguage)

	tpl := cfg.Cards.Templates["only"]
	assert.Equal(t, "#4DD6E9", tpl.Color)
	assert.Equal(t, FormSingle, tpl.Form)
	assert.Equal(t, "eid_image.png", tpl.DownloadName)
	assert.Equal(t, "Invitation_Card_", tpl.FilePrefix)
	assert.Equal(t, 0, tpl.QR.Size)
}

func TestLoadFrom_PanicsOnInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{name: "no templates", yml: "server:\n  port: ':1'\n"},
		{name: "unknown default template", yml: "cards:\n  default_template: nope\n  templates:\n    eid:\n      image: a.jpg\n"},
		{name: "missing image", yml: "cards:\n  templates:\n    eid:\n      color: '#fff'\n"},
		{name: "bad colour", yml: "cards:\n  templates:\n    eid:\n      image: a.jpg\n      color: teal\n"},
		{name: "bad form", yml: "cards:\n  templates:\n    eid:\n      image: a.jpg\n      form: grid\n"},
		{name: "negative user limit", yml: "rate_limiter:\n  user_limit: -1\n" + minimalCards},
		{name: "negative rate interval", yml: "rate_limiter:\n  interval: -1s\n" + minimalCards},
		{name: "bad language", yml: "cards:\n  default_language: French\n  templates:\n    eid:\n      image: a.jpg\n"},
		{name: "negative static token limit", yml: "auth:\n  static_tokens:\n    k: -2\n" + minimalCards},
		{name: "malformed yaml", yml: "cards: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := writeConfig(t, tc.yml)
			assert.Panics(t, func() { _ = LoadFrom(p) })
		})
	}
}

func TestLoadFrom_ZeroIntervalsDefault(t *testing.T) {
	p := writeConfig(t, "rate_limiter:\n  interval: 0s\nauth:\n  reload_interval: 0s\n"+minimalCards)

	var cfg Config
	require.NotPanics(t, func() { cfg = LoadFrom(p) })
	assert.Equal(t, time.Minute, cfg.RateLimiter.Interval)
	assert.Equal(t, time.Minute, cfg.Auth.ReloadInterval)
}

func TestLoadFrom_PanicsOnMissingFile(t *testing.T) {
	assert.Panics(t, func() { _ = LoadFrom(filepath.Join(t.TempDir(), "absent.yaml")) })
}

func TestLoad_UsesConfigPathEnv(t *testing.T) {
	p := writeConfig(t, `
cards:
  default_template: env
  templates:
    env:
      image: "env.jpg"
`)
	t.Setenv("CONFIG_PATH", p)
	cfg := Load()
	require.Contains(t, cfg.Cards.Templates, "env")
	assert.Equal(t, "env", cfg.Cards.DefaultTemplate)
}

func TestTemplateIDs_Sorted(t *testing.T) {
	c := CardsConfig{Templates: map[string]TemplateConfig{"b": {}, "c": {}, "a": {}}}
	assert.Equal(t, []string{"a", "b", "c"}, c.TemplateIDs())
}

func TestPostgresConfig_Enabled(t *testing.T) {
	assert.False(t, PostgresConfig{}.Enabled())
	assert.True(t, PostgresConfig{Host: "db"}.Enabled())
}
