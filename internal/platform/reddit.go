package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pressfolio/internal/config"
	"github.com/pressfolio/internal/db"
)

// RedditAdapter 将 Reddit 帖子转换为外部载荷。
// 配置齐全且开启 Live 时请求公开的 submitted JSON 接口，否则返回内置样例。
type RedditAdapter struct {
	cfg    config.RedditConfig
	client *http.Client
}

// NewRedditAdapter 用显式配置构造适配器。
func NewRedditAdapter(cfg config.RedditConfig) *RedditAdapter {
	return &RedditAdapter{
		cfg:    cfg,
		client: newHTTPClient(10 * time.Second),
	}
}

// Source 返回适配器对应的文章来源。
func (a *RedditAdapter) Source() string {
	return db.SourceReddit
}

// Fetch 按配置状态返回停用结果、样例数据或真实取数结果。
func (a *RedditAdapter) Fetch(ctx context.Context) (FetchResult, error) {
	missing := a.missingKeys()
	if len(missing) > 0 {
		return disabledResult(a.Source(), missing), nil
	}

	if a.cfg.Live {
		posts, err := a.fetchLive(ctx)
		if err != nil {
			return FetchResult{}, fmt.Errorf("reddit fetch: %w", err)
		}
		return FetchResult{
			Source:      a.Source(),
			Enabled:     true,
			MissingKeys: []string{},
			Posts:       posts,
			Message:     fmt.Sprintf("fetched %d posts from reddit", len(posts)),
		}, nil
	}

	return FetchResult{
		Source:      a.Source(),
		Enabled:     true,
		MissingKeys: []string{},
		Posts:       redditSamplePosts(),
		Message:     "using sample reddit data",
	}, nil
}

func (a *RedditAdapter) missingKeys() []string {
	var missing []string
	if a.cfg.ClientID == "" {
		missing = append(missing, "REDDIT_CLIENT_ID")
	}
	if a.cfg.ClientSecret == "" {
		missing = append(missing, "REDDIT_CLIENT_SECRET")
	}
	if a.cfg.Username == "" {
		missing = append(missing, "REDDIT_USERNAME")
	}
	return missing
}

// redditListing 对应 Reddit 公开接口返回的 JSON 结构，仅保留需要的字段。
type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID         string  `json:"id"`
				Title      string  `json:"title"`
				SelfText   string  `json:"selftext"`
				Subreddit  string  `json:"subreddit"`
				Permalink  string  `json:"permalink"`
				CreatedUTC float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (a *RedditAdapter) fetchLive(ctx context.Context) ([]ExternalPost, error) {
	listingURL := fmt.Sprintf("https://www.reddit.com/user/%s/submitted.json?limit=25", a.cfg.Username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listingURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "pressfolio/1.0 (+https://github.com/pressfolio)")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("reddit returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var listing redditListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, err
	}

	posts := make([]ExternalPost, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		item := child.Data
		createdAt := time.Unix(int64(item.CreatedUTC), 0).UTC()
		content := item.SelfText
		if content == "" {
			// 链接帖没有正文，退化为标题
			content = item.Title
		}
		posts = append(posts, ExternalPost{
			Title:       item.Title,
			Excerpt:     excerptOf(content),
			Content:     content,
			Source:      db.SourceReddit,
			Category:    "Community",
			Tags:        []string{"reddit", item.Subreddit},
			ExternalID:  item.ID,
			ExternalURL: "https://www.reddit.com" + item.Permalink,
			CreatedAt:   &createdAt,
		})
	}
	return posts, nil
}

func redditSamplePosts() []ExternalPost {
	first := time.Date(2025, 6, 14, 18, 22, 0, 0, time.UTC)
	second := time.Date(2025, 7, 2, 9, 5, 0, 0, time.UTC)
	return []ExternalPost{
		{
			Title:       "What I learned rewriting my side project in Go",
			Excerpt:     "A retrospective on porting a hobby CMS from a scripting language to Go.",
			Content:     "After three weekends the rewrite is done. The biggest wins were the type system catching payload mismatches early and the single static binary deploy. The biggest loss was hot reload during template work.",
			Source:      db.SourceReddit,
			Category:    "Community",
			Tags:        []string{"reddit", "golang"},
			ExternalID:  "t3_1kqx9z",
			ExternalURL: "https://www.reddit.com/r/golang/comments/1kqx9z/",
			CreatedAt:   &first,
		},
		{
			Title:       "Ask r/selfhosted: is a personal blog still worth it in 2025?",
			Excerpt:     "Thread summary on owning your content versus posting on platforms.",
			Content:     "The consensus in the thread: platforms come and go, a domain you own does not. Cross-post everywhere, but keep the canonical copy on your own site.",
			Source:      db.SourceReddit,
			Category:    "Community",
			Tags:        []string{"reddit", "selfhosted"},
			ExternalID:  "t3_1m2b7c",
			ExternalURL: "https://www.reddit.com/r/selfhosted/comments/1m2b7c/",
			CreatedAt:   &second,
		},
	}
}
