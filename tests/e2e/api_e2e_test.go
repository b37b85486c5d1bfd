package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pressfolio/internal/db"
	"github.com/pressfolio/internal/platform"
	"github.com/pressfolio/internal/router"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	adminUser = "root"
	adminPass = "super-secret"
)

type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(handler http.Handler, withJar bool) *localClient {
	var jar http.CookieJar
	if withJar {
		if j, err := cookiejar.New(nil); err == nil {
			jar = j
		}
	}
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) Do(req *http.Request) (*http.Response, error) {
	if c.jar != nil {
		for _, cookie := range c.jar.Cookies(req.URL) {
			req.AddCookie(cookie)
		}
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	if c.jar != nil {
		c.jar.SetCookies(req.URL, resp.Cookies())
	}
	return resp, nil
}

func (c *localClient) doJSON(t *testing.T, method, path string, payload any) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, "http://local.test"+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp, raw
}

type fixedAdapter struct {
	source string
	result platform.FetchResult
}

func (f *fixedAdapter) Source() string { return f.source }

func (f *fixedAdapter) Fetch(_ context.Context) (platform.FetchResult, error) {
	return f.result, nil
}

func setupE2E(t *testing.T, adapters []platform.Adapter) (*localClient, *localClient) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:e2e-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.User{}, &db.Post{}); err != nil {
		t.Fatalf("migrate database: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := gdb.Create(&db.User{Username: adminUser, Password: string(hashed)}).Error; err != nil {
		t.Fatalf("create admin user: %v", err)
	}

	handler := router.SetupRouter(gdb, "e2e-secret", adapters, zerolog.Nop())

	public := newLocalClient(handler, false)
	admin := newLocalClient(handler, true)

	resp, body := admin.doJSON(t, http.MethodPost, "/api/login", map[string]string{
		"username": adminUser,
		"password": adminPass,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d %s", resp.StatusCode, body)
	}

	return public, admin
}

func TestAPIPostLifecycle(t *testing.T) {
	public, admin := setupE2E(t, nil)

	// 创建草稿
	resp, body := admin.doJSON(t, http.MethodPost, "/api/admin/posts", map[string]any{
		"title":    "Lifecycle post",
		"excerpt":  "An excerpt",
		"content":  "# Heading\n\nBody text with **markdown**.",
		"category": "Dev",
		"tags":     []string{"go", " e2e "},
		"source":   "blog",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create post: %d %s", resp.StatusCode, body)
	}

	var created struct {
		Post db.Post `json:"post"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Post.Slug != "lifecycle-post" {
		t.Fatalf("unexpected slug: %q", created.Post.Slug)
	}
	if created.Post.Status != db.StatusDraft {
		t.Fatalf("expected draft status, got %q", created.Post.Status)
	}
	if len(created.Post.Tags) != 2 || created.Post.Tags[1] != "e2e" {
		t.Fatalf("unexpected tags: %v", created.Post.Tags)
	}

	// 草稿对匿名访问不可见
	resp, _ = public.doJSON(t, http.MethodGet, "/api/posts/lifecycle-post", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("draft should be hidden from public, got %d", resp.StatusCode)
	}

	// 登录会话可以在同一路径预览草稿
	resp, body = admin.doJSON(t, http.MethodGet, "/api/posts/lifecycle-post", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("draft should be visible to admin session: %d %s", resp.StatusCode, body)
	}

	// 发布后可见
	resp, body = admin.doJSON(t, http.MethodPut, fmt.Sprintf("/api/admin/posts/%d", created.Post.ID), map[string]any{
		"status": "published",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("publish post: %d %s", resp.StatusCode, body)
	}

	resp, body = public.doJSON(t, http.MethodGet, "/api/posts/lifecycle-post", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get published post: %d %s", resp.StatusCode, body)
	}
	var fetched struct {
		Post db.Post `json:"post"`
		HTML string  `json:"html"`
	}
	if err := json.Unmarshal(body, &fetched); err != nil {
		t.Fatalf("decode get response: %v", err)
	}
	if fetched.HTML == "" {
		t.Fatalf("expected rendered html in response")
	}

	// 重复 slug 冲突
	resp, _ = admin.doJSON(t, http.MethodPost, "/api/admin/posts", map[string]any{
		"title":   "Lifecycle, Post",
		"excerpt": "dup",
		"content": "dup",
		"source":  "blog",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate slug, got %d", resp.StatusCode)
	}

	// 删除
	resp, body = admin.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/admin/posts/%d", created.Post.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete post: %d %s", resp.StatusCode, body)
	}
	var deleted struct {
		Deleted bool `json:"deleted"`
	}
	if err := json.Unmarshal(body, &deleted); err != nil {
		t.Fatalf("decode delete response: %v", err)
	}
	if !deleted.Deleted {
		t.Fatalf("expected deleted=true")
	}

	resp, _ = public.doJSON(t, http.MethodGet, "/api/posts/lifecycle-post", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("deleted post should be gone, got %d", resp.StatusCode)
	}
}

func TestAPIImportEndpoint(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	adapters := []platform.Adapter{
		&fixedAdapter{
			source: db.SourceReddit,
			result: platform.FetchResult{
				Source:  db.SourceReddit,
				Enabled: true,
				Posts: []platform.ExternalPost{
					{
						Title:     "Imported from reddit",
						Excerpt:   "An imported excerpt",
						Content:   "Imported body",
						Source:    db.SourceReddit,
						CreatedAt: &createdAt,
					},
					{
						// 缺标题的载荷会被跳过，但不会中断整批导入
						Excerpt: "no title",
						Content: "no title body",
						Source:  db.SourceReddit,
					},
				},
			},
		},
		&fixedAdapter{
			source: db.SourceLinkedIn,
			result: platform.FetchResult{
				Source:      db.SourceLinkedIn,
				Enabled:     false,
				MissingKeys: []string{"LINKEDIN_ACCESS_TOKEN", "LINKEDIN_AUTHOR_URN"},
			},
		},
	}

	public, admin := setupE2E(t, adapters)

	resp, body := admin.doJSON(t, http.MethodPost, "/api/admin/import", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("run import: %d %s", resp.StatusCode, body)
	}

	var result struct {
		Imported []db.Post `json:"imported"`
		Summary  []struct {
			Source      string   `json:"source"`
			Enabled     bool     `json:"enabled"`
			MissingKeys []string `json:"missingKeys"`
			Fetched     int      `json:"fetched"`
			Imported    int      `json:"imported"`
			Skipped     int      `json:"skipped"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("decode import response: %v", err)
	}

	if len(result.Imported) != 1 {
		t.Fatalf("expected 1 imported post, got %d", len(result.Imported))
	}
	if len(result.Summary) != 2 {
		t.Fatalf("expected 2 platform reports, got %d", len(result.Summary))
	}
	if result.Summary[0].Fetched != 2 || result.Summary[0].Imported != 1 || result.Summary[0].Skipped != 1 {
		t.Fatalf("unexpected reddit report: %+v", result.Summary[0])
	}
	if result.Summary[1].Enabled || len(result.Summary[1].MissingKeys) != 2 {
		t.Fatalf("unexpected linkedin report: %+v", result.Summary[1])
	}

	// 导入的文章默认已发布，公开接口立即可见
	resp, body = public.doJSON(t, http.MethodGet, "/api/posts/imported-from-reddit", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get imported post: %d %s", resp.StatusCode, body)
	}
}

func TestAPIValidationErrors(t *testing.T) {
	_, admin := setupE2E(t, nil)

	resp, _ := admin.doJSON(t, http.MethodPost, "/api/admin/posts", map[string]any{
		"title":   "",
		"excerpt": "e",
		"content": "c",
		"source":  "blog",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing title, got %d", resp.StatusCode)
	}

	resp, _ = admin.doJSON(t, http.MethodPost, "/api/admin/posts", map[string]any{
		"title":   "Bad source",
		"excerpt": "e",
		"content": "c",
		"source":  "myspace",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid source, got %d", resp.StatusCode)
	}
}

func TestAPIUnauthorizedMutationsRejected(t *testing.T) {
	public, _ := setupE2E(t, nil)

	resp, _ := public.doJSON(t, http.MethodPost, "/api/admin/posts", map[string]any{
		"title":   "Sneaky post",
		"excerpt": "e",
		"content": "c",
		"source":  "blog",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", resp.StatusCode)
	}
}
