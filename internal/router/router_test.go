package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pressfolio/internal/db"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouterTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:router-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.User{}, &db.Post{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func TestSetupRouterPing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := SetupRouter(setupRouterTestDB(t), "test-secret", nil, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestSetupRouterGuardsAdminRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := SetupRouter(setupRouterTestDB(t), "test-secret", nil, zerolog.Nop())

	adminPaths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/posts"},
		{http.MethodPost, "/api/admin/posts"},
		{http.MethodPost, "/api/admin/import"},
		{http.MethodDelete, "/api/admin/posts/1"},
	}

	for _, route := range adminPaths {
		req := httptest.NewRequest(route.method, route.path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 without session, got %d", route.method, route.path, rr.Code)
		}
	}
}

func TestSetupRouterSessionWorksOverPlainHTTP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gdb := setupRouterTestDB(t)
	hashed, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := gdb.Create(&db.User{Username: "root", Password: string(hashed)}).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	r := SetupRouter(gdb, "test-secret", nil, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"root","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("login: expected %d, got %d", http.StatusOK, rr.Code)
	}

	var session *http.Cookie
	for _, ck := range rr.Result().Cookies() {
		if ck.Name == "pressfolio_session" {
			session = ck
		}
	}
	if session == nil {
		t.Fatalf("login response did not set a session cookie")
	}

	// 默认部署走纯 HTTP，Secure cookie 会被客户端直接丢弃
	if session.Secure {
		t.Fatalf("session cookie must not require TLS")
	}
	if !session.HttpOnly {
		t.Fatalf("session cookie should be http-only")
	}
	if session.Path != "/" {
		t.Fatalf("expected cookie path /, got %q", session.Path)
	}
	if session.SameSite != http.SameSiteLaxMode {
		t.Fatalf("expected SameSite=Lax, got %v", session.SameSite)
	}

	// 带上会话后可以访问后台接口
	req = httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	req.AddCookie(session)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("admin list with session: expected %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestSetupRouterPublicPostsReachable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := SetupRouter(setupRouterTestDB(t), "test-secret", nil, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}
