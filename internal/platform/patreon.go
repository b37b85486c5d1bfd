package platform

import (
	"context"
	"time"

	"github.com/pressfolio/internal/config"
	"github.com/pressfolio/internal/db"
)

// PatreonAdapter 将 Patreon 帖子转换为外部载荷。
type PatreonAdapter struct {
	cfg config.PatreonConfig
}

// NewPatreonAdapter 用显式配置构造适配器。
func NewPatreonAdapter(cfg config.PatreonConfig) *PatreonAdapter {
	return &PatreonAdapter{cfg: cfg}
}

// Source 返回适配器对应的文章来源。
func (a *PatreonAdapter) Source() string {
	return db.SourcePatreon
}

// Fetch 在凭据缺失时返回停用结果，否则返回样例帖子。
func (a *PatreonAdapter) Fetch(_ context.Context) (FetchResult, error) {
	var missing []string
	if a.cfg.AccessToken == "" {
		missing = append(missing, "PATREON_ACCESS_TOKEN")
	}
	if a.cfg.CampaignID == "" {
		missing = append(missing, "PATREON_CAMPAIGN_ID")
	}
	if len(missing) > 0 {
		return disabledResult(a.Source(), missing), nil
	}

	return FetchResult{
		Source:      a.Source(),
		Enabled:     true,
		MissingKeys: []string{},
		Posts:       patreonSamplePosts(),
		Message:     "using sample patreon data",
	}, nil
}

func patreonSamplePosts() []ExternalPost {
	published := time.Date(2025, 4, 8, 16, 0, 0, 0, time.UTC)
	return []ExternalPost{
		{
			Title:           "Behind the scenes: how this blog ingests itself",
			Excerpt:         "A supporter-only deep dive into the import pipeline.",
			Content:         "This month's supporter post walks through the ingestion pipeline end to end: each platform adapter produces the same payload shape, a normalizer fills the defaults, and the store enforces slug uniqueness so re-imports stay idempotent.",
			Source:          db.SourcePatreon,
			Category:        "Deep Dive",
			Tags:            []string{"patreon", "architecture"},
			ExternalID:      "post-82047713",
			ExternalURL:     "https://www.patreon.com/posts/82047713",
			ReadTimeMinutes: 8,
			CreatedAt:       &published,
		},
	}
}
