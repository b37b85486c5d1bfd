package platform

import (
	"context"
	"time"

	"github.com/pressfolio/internal/config"
	"github.com/pressfolio/internal/db"
)

// LinkedInAdapter 将 LinkedIn 动态转换为外部载荷。
// LinkedIn 的分享接口需要成员授权，这里在配置齐全时返回内置样例数据。
type LinkedInAdapter struct {
	cfg config.LinkedInConfig
}

// NewLinkedInAdapter 用显式配置构造适配器。
func NewLinkedInAdapter(cfg config.LinkedInConfig) *LinkedInAdapter {
	return &LinkedInAdapter{cfg: cfg}
}

// Source 返回适配器对应的文章来源。
func (a *LinkedInAdapter) Source() string {
	return db.SourceLinkedIn
}

// Fetch 在凭据缺失时返回停用结果，否则返回样例动态。
func (a *LinkedInAdapter) Fetch(_ context.Context) (FetchResult, error) {
	var missing []string
	if a.cfg.AccessToken == "" {
		missing = append(missing, "LINKEDIN_ACCESS_TOKEN")
	}
	if a.cfg.AuthorURN == "" {
		missing = append(missing, "LINKEDIN_AUTHOR_URN")
	}
	if len(missing) > 0 {
		return disabledResult(a.Source(), missing), nil
	}

	return FetchResult{
		Source:      a.Source(),
		Enabled:     true,
		MissingKeys: []string{},
		Posts:       linkedInSamplePosts(),
		Message:     "using sample linkedin data",
	}, nil
}

func linkedInSamplePosts() []ExternalPost {
	published := time.Date(2025, 5, 20, 8, 30, 0, 0, time.UTC)
	return []ExternalPost{
		{
			Title:       "Shipping a content pipeline in a week",
			Excerpt:     "Notes from consolidating five content sources into one backend.",
			Content:     "Last week I consolidated my writing from five different platforms into a single backend. The trick was refusing to model each platform faithfully and instead normalizing everything into one canonical post shape at the boundary.",
			Source:      db.SourceLinkedIn,
			Category:    "Career",
			Tags:        []string{"linkedin", "engineering"},
			ExternalID:  "urn:li:share:7198882211",
			ExternalURL: "https://www.linkedin.com/feed/update/urn:li:share:7198882211/",
			CreatedAt:   &published,
		},
	}
}
