package main

import (
	"fmt"
	"log"
	"time"

	"github.com/pressfolio/internal/config"
	"github.com/pressfolio/internal/db"
	"github.com/pressfolio/internal/service"
)

// 测试数据生成器：写入几篇不同状态与来源的文章，方便本地联调前端。
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成测试数据...")

	posts := service.NewPostService(db.DB)

	january := time.Date(2025, 1, 12, 9, 0, 0, 0, time.UTC)
	february := time.Date(2025, 2, 3, 18, 30, 0, 0, time.UTC)

	seeds := []service.PostInput{
		{
			Title:     "Why I moved my blog to a single binary",
			Excerpt:   "Migrating from a hosted platform to a self-contained Go backend.",
			Content:   "# The move\n\nHosting my own backend means the canonical copy of everything I write lives in one place. This post covers the migration, the data model, and the import pipeline that pulls in my posts from other platforms.",
			Category:  "Dev",
			Tags:      []string{"go", "meta"},
			Source:    db.SourceBlog,
			Status:    db.StatusPublished,
			CreatedAt: &january,
		},
		{
			Title:     "Reading list, February",
			Excerpt:   "Short notes on what I read this month.",
			Content:   "A mixed bag this month: two systems papers, one novel, and far too many blog posts about build systems.",
			Category:  "Notes",
			Tags:      []string{"reading"},
			Source:    db.SourceBlog,
			Status:    db.StatusPublished,
			CreatedAt: &february,
		},
		{
			Title:    "Draft: thoughts on tagging",
			Excerpt:  "Unfinished notes on taxonomy.",
			Content:  "Tags are easy to add and hard to garden. Some loose thoughts before this becomes a real post.",
			Category: "Notes",
			Tags:     []string{"meta"},
			Source:   db.SourceBlog,
		},
	}

	created := 0
	for _, seed := range seeds {
		if _, err := posts.Create(seed); err != nil {
			fmt.Printf("跳过 %q: %v\n", seed.Title, err)
			continue
		}
		created++
	}

	fmt.Printf("测试数据生成完成，共写入 %d 篇文章\n", created)
}
