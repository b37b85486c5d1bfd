package db

import (
	"fmt"
	"time"
)

// 文章来源的封闭集合。博客以外的来源均由导入管道写入。
const (
	SourceBlog     = "blog"
	SourceReddit   = "reddit"
	SourceTwitter  = "twitter"
	SourceLinkedIn = "linkedin"
	SourcePatreon  = "patreon"
)

// 文章状态的封闭集合。
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Post 定义了文章模型。Tags 以 JSON 序列化保存，保持插入顺序。
type Post struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"not null" json:"title"`
	Excerpt         string    `gorm:"not null" json:"excerpt"`
	Content         string    `gorm:"not null" json:"content"`
	Category        string    `json:"category"`
	Tags            []string  `gorm:"serializer:json" json:"tags"`
	Source          string    `gorm:"index" json:"source"`
	Status          string    `gorm:"index" json:"status"`
	Slug            string    `gorm:"uniqueIndex;not null" json:"slug"`
	ReadTimeMinutes int       `json:"readTimeMinutes"`
	ReadTime        string    `gorm:"-" json:"readTime"`
	HeroImage       string    `json:"heroImage,omitempty"`
	SourceURL       string    `json:"sourceURL,omitempty"`
	ExternalID      string    `json:"externalID,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// IsValidSource 判断来源是否属于封闭集合。
func IsValidSource(source string) bool {
	switch source {
	case SourceBlog, SourceReddit, SourceTwitter, SourceLinkedIn, SourcePatreon:
		return true
	}
	return false
}

// IsValidStatus 判断状态是否属于封闭集合。
func IsValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusPublished:
		return true
	}
	return false
}

// PopulateDerivedFields 填充展示用的派生字段。
func (p *Post) PopulateDerivedFields() {
	p.ReadTime = fmt.Sprintf("%d min read", p.ReadTimeMinutes)
}
