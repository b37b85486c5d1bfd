package service

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pressfolio/internal/db"
)

// PostInput represents fields accepted when creating a post.
// CreatedAt may be supplied by the import pipeline to preserve the original
// publish date; ReadTimeMinutes, when positive, overrides the content estimate.
type PostInput struct {
	Title           string     `json:"title"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content"`
	Category        string     `json:"category"`
	Tags            []string   `json:"tags"`
	ReadTimeMinutes float64    `json:"readTimeMinutes"`
	Source          string     `json:"source"`
	SourceURL       string     `json:"sourceURL"`
	HeroImage       string     `json:"heroImage"`
	Slug            string     `json:"slug"`
	CreatedAt       *time.Time `json:"createdAt"`
	ExternalID      string     `json:"externalID"`
	Status          string     `json:"status"`
}

// PostPatch represents a partial update; nil fields are left untouched.
type PostPatch struct {
	Title           *string    `json:"title"`
	Excerpt         *string    `json:"excerpt"`
	Content         *string    `json:"content"`
	Category        *string    `json:"category"`
	Tags            *[]string  `json:"tags"`
	ReadTimeMinutes *float64   `json:"readTimeMinutes"`
	Source          *string    `json:"source"`
	SourceURL       *string    `json:"sourceURL"`
	HeroImage       *string    `json:"heroImage"`
	Slug            *string    `json:"slug"`
	CreatedAt       *time.Time `json:"createdAt"`
	ExternalID      *string    `json:"externalID"`
	Status          *string    `json:"status"`
}

// normalizeInput 在校验前收敛输入：去除首尾空白、清洗标签、补默认分类与状态。
func normalizeInput(input PostInput) PostInput {
	input.Title = strings.TrimSpace(input.Title)
	input.Excerpt = strings.TrimSpace(input.Excerpt)
	input.Content = strings.TrimSpace(input.Content)
	input.Category = strings.TrimSpace(input.Category)
	if input.Category == "" {
		input.Category = "General"
	}
	input.Tags = CleanTags(input.Tags)
	if input.Status == "" {
		input.Status = db.StatusDraft
	}
	return input
}

// validateInput 校验一份完整的创建输入。输入应已经过 normalizeInput 处理。
func validateInput(input PostInput) error {
	if input.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if input.Excerpt == "" {
		return fmt.Errorf("%w: excerpt is required", ErrValidation)
	}
	if input.Content == "" {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	if !db.IsValidSource(input.Source) {
		return fmt.Errorf("%w: source %q is not valid", ErrValidation, input.Source)
	}
	if !db.IsValidStatus(input.Status) {
		return fmt.Errorf("%w: status %q is not valid", ErrValidation, input.Status)
	}
	if err := validateURLField("sourceURL", input.SourceURL); err != nil {
		return err
	}
	if err := validateURLField("heroImage", input.HeroImage); err != nil {
		return err
	}
	return nil
}

// CleanTags 去除每个标签的首尾空白并丢弃空条目，保持插入顺序（允许重复）。
func CleanTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	return cleaned
}

func validateURLField(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%w: %s must be an absolute URL", ErrValidation, field)
	}
	return nil
}
