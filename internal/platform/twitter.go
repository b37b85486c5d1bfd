package platform

import (
	"context"
	"time"

	"github.com/pressfolio/internal/config"
	"github.com/pressfolio/internal/db"
)

// TwitterAdapter 将推文串转换为外部载荷。
type TwitterAdapter struct {
	cfg config.TwitterConfig
}

// NewTwitterAdapter 用显式配置构造适配器。
func NewTwitterAdapter(cfg config.TwitterConfig) *TwitterAdapter {
	return &TwitterAdapter{cfg: cfg}
}

// Source 返回适配器对应的文章来源。
func (a *TwitterAdapter) Source() string {
	return db.SourceTwitter
}

// Fetch 在凭据缺失时返回停用结果，否则返回样例推文串。
func (a *TwitterAdapter) Fetch(_ context.Context) (FetchResult, error) {
	var missing []string
	if a.cfg.BearerToken == "" {
		missing = append(missing, "TWITTER_BEARER_TOKEN")
	}
	if a.cfg.UserID == "" {
		missing = append(missing, "TWITTER_USER_ID")
	}
	if len(missing) > 0 {
		return disabledResult(a.Source(), missing), nil
	}

	return FetchResult{
		Source:      a.Source(),
		Enabled:     true,
		MissingKeys: []string{},
		Posts:       twitterSamplePosts(),
		Message:     "using sample twitter data",
	}, nil
}

func twitterSamplePosts() []ExternalPost {
	published := time.Date(2025, 7, 21, 21, 45, 0, 0, time.UTC)
	return []ExternalPost{
		{
			Title:       "Thread: five rules for slugs that never break",
			Excerpt:     "A short thread on URL design for personal sites.",
			Content:     "1. Lowercase everything. 2. Normalize before you compare. 3. Never reuse a slug, even after deletion. 4. Reject an empty slug loudly instead of inventing one. 5. Keep the slug stable when the title gets a typo fix.",
			Source:      db.SourceTwitter,
			Category:    "Threads",
			Tags:        []string{"twitter", "webdev"},
			ExternalID:  "1812345678901234567",
			ExternalURL: "https://twitter.com/i/status/1812345678901234567",
			CreatedAt:   &published,
		},
	}
}
