// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/weblog-go/internal/model"
)

// Config holds the application configuration loaded from environment
// variables. Pagination sizes of 0 disable pagination for that listing.
type Config struct {
	DBPath     string `env:"WEBLOG_DB_PATH" envDefault:"./data/weblog.db"`
	ServerHost string `env:"WEBLOG_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"WEBLOG_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"WEBLOG_ENV" envDefault:"development"`
	LogLevel   string `env:"WEBLOG_LOG_LEVEL" envDefault:"info"`
	UploadsDir string `env:"WEBLOG_UPLOADS_DIR" envDefault:"./uploads"`

	// Languages: ordered codes, the default, and optional per-language
	// URL prefixes as "code=prefix" pairs ("fr=/fr").
	Languages       []string          `env:"WEBLOG_LANGUAGES" envDefault:"en"`
	DefaultLanguage string            `env:"WEBLOG_DEFAULT_LANGUAGE" envDefault:"en"`
	LocalePrefixes  map[string]string `env:"WEBLOG_LOCALE_PREFIXES"`

	// Listing page sizes; 0 disables pagination for the listing.
	ArticlePagination  int64 `env:"WEBLOG_ARTICLE_PAGINATION" envDefault:"10"`
	CategoryPagination int64 `env:"WEBLOG_CATEGORY_PAGINATION" envDefault:"20"`
	AuthorPagination   int64 `env:"WEBLOG_AUTHOR_PAGINATION" envDefault:"20"`
	TagPagination      int64 `env:"WEBLOG_TAG_PAGINATION" envDefault:"40"`

	EnableTagIndex bool `env:"WEBLOG_ENABLE_TAG_INDEX" envDefault:"true"`

	// ArticleStateNames overrides the displayed state names as
	// "key=name" pairs; an explicit empty name removes the state.
	ArticleStateNames map[string]string `env:"WEBLOG_ARTICLE_STATE_NAMES"`

	PreviewKeyword string `env:"WEBLOG_PREVIEW_KEYWORD" envDefault:"preview"`
	PreviewVarname string `env:"WEBLOG_PREVIEW_VARNAME" envDefault:"preview_mode"`

	// Cache configuration
	RedisURL     string `env:"WEBLOG_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"WEBLOG_CACHE_PREFIX" envDefault:"weblog:"` // Redis key prefix
	CacheTTL     int    `env:"WEBLOG_CACHE_TTL" envDefault:"3600"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"WEBLOG_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Sitemap options, shared by every section unless overridden.
	SitemapProtocol       string            `env:"WEBLOG_SITEMAP_PROTOCOL" envDefault:"https"`
	SitemapLimit          int               `env:"WEBLOG_SITEMAP_LIMIT" envDefault:"50000"`
	SitemapChangefreq     string            `env:"WEBLOG_SITEMAP_CHANGEFREQ" envDefault:"monthly"`
	SitemapPriority       float64           `env:"WEBLOG_SITEMAP_PRIORITY" envDefault:"0.5"`
	SitemapTranslations   bool              `env:"WEBLOG_SITEMAP_TRANSLATIONS" envDefault:"false"`
	SitemapSectionOptions map[string]string `env:"WEBLOG_SITEMAP_SECTION_OPTIONS"`

	// API rate limiting (requests per second per client, with burst).
	APIRateLimit float64 `env:"WEBLOG_API_RATE_LIMIT" envDefault:"10"`
	APIRateBurst int     `env:"WEBLOG_API_RATE_BURST" envDefault:"20"`

	// APIDetailLanguageSafe keeps API detail endpoints reachable in any
	// language; when false, detail lookups 404 outside the negotiated one.
	APIDetailLanguageSafe bool `env:"WEBLOG_API_DETAIL_LANGUAGE_SAFE" envDefault:"true"`

	// Seeding configuration
	DoSeed bool `env:"WEBLOG_DO_SEED" envDefault:"false"` // Enable demo seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// StateNames resolves the article state name mapping: the defaults with
// configured overrides applied, empty overrides removing the state.
func (c Config) StateNames() map[string]string {
	names := model.DefaultStateNames()
	for key, name := range c.ArticleStateNames {
		if name == "" {
			delete(names, key)
			continue
		}
		names[key] = name
	}
	return names
}

// LanguageSet builds the ordered language list with the default flagged
// and locale prefixes attached.
func (c Config) LanguageSet() model.Languages {
	langs := make(model.Languages, 0, len(c.Languages))
	for _, code := range c.Languages {
		langs = append(langs, model.Language{
			Code:      code,
			IsDefault: code == c.DefaultLanguage,
			URLPrefix: c.LocalePrefixes[code],
		})
	}
	return langs
}

// SitemapOptions are the effective sitemap settings for one section.
// PinnedPriority and FeaturedPriority of 0 mean "use Priority".
type SitemapOptions struct {
	Protocol         string
	Limit            int
	Changefreq       string
	Priority         float64
	PinnedPriority   float64
	FeaturedPriority float64
	Translations     bool
}

// SitemapOptionsFor resolves the shared sitemap settings with per-section
// overrides applied. Override keys are "<section>.<option>" pairs in
// WEBLOG_SITEMAP_SECTION_OPTIONS, for example
// "article.changefreq:daily,article.translations:true".
func (c Config) SitemapOptionsFor(section string) SitemapOptions {
	opts := SitemapOptions{
		Protocol:     c.SitemapProtocol,
		Limit:        c.SitemapLimit,
		Changefreq:   c.SitemapChangefreq,
		Priority:     c.SitemapPriority,
		Translations: c.SitemapTranslations,
	}

	prefix := section + "."
	for key, value := range c.SitemapSectionOptions {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		switch strings.TrimPrefix(key, prefix) {
		case "protocol":
			opts.Protocol = value
		case "limit":
			if n, err := strconv.Atoi(value); err == nil {
				opts.Limit = n
			}
		case "changefreq":
			opts.Changefreq = value
		case "priority":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				opts.Priority = f
			}
		case "pinned_priority":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				opts.PinnedPriority = f
			}
		case "featured_priority":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				opts.FeaturedPriority = f
			}
		case "translations":
			if b, err := strconv.ParseBool(value); err == nil {
				opts.Translations = b
			}
		}
	}
	return opts
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if !contains(cfg.Languages, cfg.DefaultLanguage) {
		return nil, fmt.Errorf("WEBLOG_DEFAULT_LANGUAGE %q is not in WEBLOG_LANGUAGES (%s)",
			cfg.DefaultLanguage, strings.Join(cfg.Languages, ", "))
	}

	return cfg, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
