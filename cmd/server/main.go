package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/pressfolio/internal/config"
	"github.com/pressfolio/internal/db"
	"github.com/pressfolio/internal/platform"
	"github.com/pressfolio/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	log.Logger = logger

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}

	// 初始管理员账号（用户名或密码为空时跳过）
	if err := db.EnsureUser(cfg.SuperRootUserName, cfg.SuperRootPassword); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure super root user")
	}

	adapters := []platform.Adapter{
		platform.NewRedditAdapter(cfg.Reddit),
		platform.NewLinkedInAdapter(cfg.LinkedIn),
		platform.NewPatreonAdapter(cfg.Patreon),
		platform.NewTwitterAdapter(cfg.Twitter),
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(db.DB, cfg.SessionSecret, adapters, logger)
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Fatal().Err(err).Msg("failed to run server")
	}
}
