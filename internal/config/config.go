package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr        string
	Port              string
	DatabasePath      string
	SessionSecret     string
	GinMode           string
	SuperRootUserName string
	SuperRootPassword string

	Reddit   RedditConfig
	LinkedIn LinkedInConfig
	Patreon  PatreonConfig
	Twitter  TwitterConfig
}

// RedditConfig 保存 Reddit 适配器所需的凭据与取数目标。
// Live 为 true 时走公开 JSON 接口真实取数，否则返回内置样例数据。
type RedditConfig struct {
	ClientID     string
	ClientSecret string
	Username     string
	Live         bool
}

// LinkedInConfig 保存 LinkedIn 适配器所需的凭据。
type LinkedInConfig struct {
	AccessToken string
	AuthorURN   string
}

// PatreonConfig 保存 Patreon 适配器所需的凭据。
type PatreonConfig struct {
	AccessToken string
	CampaignID  string
}

// TwitterConfig 保存 Twitter 适配器所需的凭据。
type TwitterConfig struct {
	BearerToken string
	UserID      string
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// 存在 .env 文件时优先加载，便于本地开发。
func Load() AppConfig {
	// .env 不存在不算错误
	_ = godotenv.Load()

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "pressfolio.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "pressfolio-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	superRootUserName := strings.TrimSpace(os.Getenv("SUPER_ROOT_USER_NAME"))
	superRootPassword := strings.TrimSpace(os.Getenv("SUPER_ROOT_PASSWORD"))

	return AppConfig{
		ListenAddr:        listenAddr,
		Port:              port,
		DatabasePath:      databasePath,
		SessionSecret:     sessionSecret,
		GinMode:           ginMode,
		SuperRootUserName: superRootUserName,
		SuperRootPassword: superRootPassword,
		Reddit: RedditConfig{
			ClientID:     strings.TrimSpace(os.Getenv("REDDIT_CLIENT_ID")),
			ClientSecret: strings.TrimSpace(os.Getenv("REDDIT_CLIENT_SECRET")),
			Username:     strings.TrimSpace(os.Getenv("REDDIT_USERNAME")),
			Live:         strings.EqualFold(strings.TrimSpace(os.Getenv("REDDIT_LIVE")), "true"),
		},
		LinkedIn: LinkedInConfig{
			AccessToken: strings.TrimSpace(os.Getenv("LINKEDIN_ACCESS_TOKEN")),
			AuthorURN:   strings.TrimSpace(os.Getenv("LINKEDIN_AUTHOR_URN")),
		},
		Patreon: PatreonConfig{
			AccessToken: strings.TrimSpace(os.Getenv("PATREON_ACCESS_TOKEN")),
			CampaignID:  strings.TrimSpace(os.Getenv("PATREON_CAMPAIGN_ID")),
		},
		Twitter: TwitterConfig{
			BearerToken: strings.TrimSpace(os.Getenv("TWITTER_BEARER_TOKEN")),
			UserID:      strings.TrimSpace(os.Getenv("TWITTER_USER_ID")),
		},
	}
}
