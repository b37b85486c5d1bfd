package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pressfolio/internal/db"
	"github.com/pressfolio/internal/platform"
	"github.com/rs/zerolog"
)

// 外部内容默认按发布态入库：导入的文章默认被认为是已发布的成品。
// 博主手写的文章则默认为草稿，两者的差异是刻意保留的。
const externalDefaultStatus = db.StatusPublished

// 管道级的阅读时长默认值，与仓库自身基于正文的估算相互独立。
const externalDefaultReadTime = 5

// PlatformReport 汇总单个平台在一次导入中的结果。
type PlatformReport struct {
	Source      string   `json:"source"`
	Enabled     bool     `json:"enabled"`
	MissingKeys []string `json:"missingKeys"`
	Fetched     int      `json:"fetched"`
	Imported    int      `json:"imported"`
	Skipped     int      `json:"skipped"`
	Message     string   `json:"message,omitempty"`
}

// ImportResult 是一次完整导入的产出：成功入库的文章与逐平台报告。
type ImportResult struct {
	Imported []db.Post        `json:"imported"`
	Summary  []PlatformReport `json:"summary"`
}

// ImportService 驱动各平台适配器取数、归一化并写入文章仓库。
// 单个载荷的失败只累计该平台的 skipped 计数，单个平台的失败不影响其它平台。
type ImportService struct {
	store    PostStore
	adapters []platform.Adapter
	logger   zerolog.Logger
}

// NewImportService creates an ImportService instance.
func NewImportService(store PostStore, adapters []platform.Adapter, logger zerolog.Logger) *ImportService {
	return &ImportService{store: store, adapters: adapters, logger: logger}
}

// NormalizeExternalPost 将平台载荷转换为仓库接受的标准创建输入并补齐默认值。
func NormalizeExternalPost(payload platform.ExternalPost) PostInput {
	category := strings.TrimSpace(payload.Category)
	if category == "" {
		category = "General"
	}

	readTime := payload.ReadTimeMinutes
	if readTime <= 0 {
		readTime = externalDefaultReadTime
	}

	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = externalDefaultStatus
	}

	return PostInput{
		Title:           strings.TrimSpace(payload.Title),
		Excerpt:         strings.TrimSpace(payload.Excerpt),
		Content:         strings.TrimSpace(payload.Content),
		Category:        category,
		Tags:            CleanTags(payload.Tags),
		ReadTimeMinutes: readTime,
		Source:          payload.Source,
		SourceURL:       payload.ExternalURL,
		HeroImage:       payload.HeroImage,
		Slug:            payload.Slug,
		CreatedAt:       payload.CreatedAt,
		ExternalID:      payload.ExternalID,
		Status:          status,
	}
}

// ImportExternalPosts 逐平台执行取数、归一化与入库，返回成功列表与逐平台报告。
// 平台按适配器顺序串行处理，已入库的文章不因后续失败回滚。
func (s *ImportService) ImportExternalPosts(ctx context.Context) ImportResult {
	runID := uuid.NewString()
	logger := s.logger.With().Str("run_id", runID).Logger()

	result := ImportResult{
		Imported: []db.Post{},
		Summary:  make([]PlatformReport, 0, len(s.adapters)),
	}

	for _, adapter := range s.adapters {
		report := s.importPlatform(ctx, adapter, logger, &result.Imported)
		result.Summary = append(result.Summary, report)
	}

	logger.Info().
		Int("platforms", len(result.Summary)).
		Int("imported", len(result.Imported)).
		Msg("external import finished")

	return result
}

func (s *ImportService) importPlatform(ctx context.Context, adapter platform.Adapter, logger zerolog.Logger, imported *[]db.Post) PlatformReport {
	source := adapter.Source()

	fetched, err := adapter.Fetch(ctx)
	if err != nil {
		// 平台自身的取数失败只体现在该平台的报告里
		logger.Error().Err(err).Str("platform", source).Msg("platform fetch failed")
		return PlatformReport{
			Source:      source,
			Enabled:     true,
			MissingKeys: []string{},
			Message:     "fetch failed: " + err.Error(),
		}
	}

	report := PlatformReport{
		Source:      source,
		Enabled:     fetched.Enabled,
		MissingKeys: fetched.MissingKeys,
		Fetched:     len(fetched.Posts),
		Message:     fetched.Message,
	}
	if report.MissingKeys == nil {
		report.MissingKeys = []string{}
	}

	if !fetched.Enabled {
		logger.Info().Str("platform", source).Strs("missing_keys", report.MissingKeys).Msg("platform disabled")
		return report
	}

	for _, payload := range fetched.Posts {
		post, err := s.store.Create(NormalizeExternalPost(payload))
		if err != nil {
			report.Skipped++
			logger.Warn().Err(err).Str("platform", source).Str("title", payload.Title).Msg("payload skipped")
			continue
		}
		report.Imported++
		*imported = append(*imported, *post)
	}

	logger.Info().
		Str("platform", source).
		Int("fetched", report.Fetched).
		Int("imported", report.Imported).
		Int("skipped", report.Skipped).
		Msg("platform import complete")

	return report
}
