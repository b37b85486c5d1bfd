package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pressfolio/internal/db"
	"gorm.io/gorm"
)

// PostService wraps post related database operations. It owns id assignment,
// slug uniqueness and the normalization rules shared by authored and imported
// content.
type PostService struct {
	db *gorm.DB
}

// PostFilter describes filters for listing posts. All supplied predicates are
// ANDed together.
type PostFilter struct {
	Tag                string
	Source             string
	Status             string
	MaxReadTimeMinutes int
	CreatedAtPrefix    string
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// Create validates the input, derives the slug and read time, assigns the next
// id and inserts the post. Slug 冲突返回 ErrSlugConflict，校验失败返回 ErrValidation。
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	input = normalizeInput(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	slugSource := input.Slug
	if strings.TrimSpace(slugSource) == "" {
		slugSource = input.Title
	}
	postSlug, err := NormalizeSlug(slugSource)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	createdAt := now
	if input.CreatedAt != nil && !input.CreatedAt.IsZero() {
		createdAt = input.CreatedAt.UTC()
	}

	post := db.Post{
		Title:           input.Title,
		Excerpt:         input.Excerpt,
		Content:         input.Content,
		Category:        input.Category,
		Tags:            input.Tags,
		Source:          input.Source,
		Status:          input.Status,
		Slug:            postSlug,
		ReadTimeMinutes: EstimateReadTime(input.Content, input.ReadTimeMinutes),
		HeroImage:       input.HeroImage,
		SourceURL:       input.SourceURL,
		ExternalID:      input.ExternalID,
		CreatedAt:       createdAt,
		UpdatedAt:       now,
	}

	// id 分配与 slug 唯一性检查必须和插入处于同一个事务，保证并发下的原子性。
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		taken, err := slugTaken(tx, post.Slug, 0)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: %q", ErrSlugConflict, post.Slug)
		}

		nextID, err := nextPostID(tx)
		if err != nil {
			return err
		}
		post.ID = nextID

		return asSlugConflict(tx.Create(&post).Error, post.Slug)
	}); err != nil {
		return nil, err
	}

	post.PopulateDerivedFields()
	return &post, nil
}

// Update applies a partial update to an existing post. Only supplied fields
// are validated and merged; the slug uniqueness check excludes the post's own
// previous slug. Returns ErrPostNotFound when id is absent.
func (s *PostService) Update(id uint, patch PostPatch) (*db.Post, error) {
	var updated db.Post

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing db.Post
		if err := tx.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		merged, err := mergePatch(existing, patch)
		if err != nil {
			return err
		}

		if merged.Slug != existing.Slug {
			taken, err := slugTaken(tx, merged.Slug, existing.ID)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("%w: %q", ErrSlugConflict, merged.Slug)
			}
		}

		merged.UpdatedAt = time.Now().UTC()
		if err := asSlugConflict(tx.Save(&merged).Error, merged.Slug); err != nil {
			return err
		}

		updated = merged
		return nil
	}); err != nil {
		return nil, err
	}

	updated.PopulateDerivedFields()
	return &updated, nil
}

// Delete removes a post by id and reports whether a record existed.
// 删除不存在的文章不是错误。
func (s *PostService) Delete(id uint) (bool, error) {
	result := s.db.Delete(&db.Post{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetByID fetches a post by id regardless of status.
func (s *PostService) GetByID(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	post.PopulateDerivedFields()
	return &post, nil
}

// GetBySlug normalizes the given slug and fetches the matching post. Drafts
// only match when includeDrafts is set.
func (s *PostService) GetBySlug(rawSlug string, includeDrafts bool) (*db.Post, error) {
	normalized, err := NormalizeSlug(rawSlug)
	if err != nil {
		return nil, ErrPostNotFound
	}

	query := s.db.Where("slug = ?", normalized)
	if !includeDrafts {
		query = query.Where("status = ?", db.StatusPublished)
	}

	var post db.Post
	if err := query.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	post.PopulateDerivedFields()
	return &post, nil
}

// List returns posts ordered by created time descending, newest first.
// Drafts are excluded unless requested.
func (s *PostService) List(includeDrafts bool) ([]db.Post, error) {
	return s.Filter(PostFilter{}, includeDrafts)
}

// Filter returns posts matching every supplied predicate, ordered by created
// time descending. Tag 匹配按成员关系，CreatedAtPrefix 按 ISO 时间戳前缀匹配。
func (s *PostService) Filter(filter PostFilter, includeDrafts bool) ([]db.Post, error) {
	query := s.db.Model(&db.Post{})
	if !includeDrafts {
		query = query.Where("status = ?", db.StatusPublished)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}
	if filter.MaxReadTimeMinutes > 0 {
		query = query.Where("read_time_minutes <= ?", filter.MaxReadTimeMinutes)
	}

	var posts []db.Post
	if err := query.Order("created_at desc, id desc").Find(&posts).Error; err != nil {
		return nil, err
	}

	// 标签存储为 JSON 列，时间前缀匹配针对 RFC3339 文本，二者在内存中过滤。
	filtered := make([]db.Post, 0, len(posts))
	for i := range posts {
		if filter.Tag != "" && !containsTag(posts[i].Tags, filter.Tag) {
			continue
		}
		if filter.CreatedAtPrefix != "" &&
			!strings.HasPrefix(posts[i].CreatedAt.UTC().Format(time.RFC3339), filter.CreatedAtPrefix) {
			continue
		}
		posts[i].PopulateDerivedFields()
		filtered = append(filtered, posts[i])
	}

	return filtered, nil
}

// mergePatch 将补丁应用到现有记录之上，并对合并结果执行与创建一致的规则。
func mergePatch(existing db.Post, patch PostPatch) (db.Post, error) {
	merged := existing

	if patch.Title != nil {
		merged.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Excerpt != nil {
		merged.Excerpt = strings.TrimSpace(*patch.Excerpt)
	}
	if patch.Content != nil {
		merged.Content = strings.TrimSpace(*patch.Content)
	}
	if patch.Category != nil {
		merged.Category = strings.TrimSpace(*patch.Category)
		if merged.Category == "" {
			merged.Category = "General"
		}
	}
	if patch.Tags != nil {
		merged.Tags = CleanTags(*patch.Tags)
	}
	if patch.Source != nil {
		merged.Source = *patch.Source
	}
	if patch.Status != nil {
		merged.Status = *patch.Status
	}
	if patch.SourceURL != nil {
		merged.SourceURL = strings.TrimSpace(*patch.SourceURL)
	}
	if patch.HeroImage != nil {
		merged.HeroImage = strings.TrimSpace(*patch.HeroImage)
	}
	if patch.ExternalID != nil {
		merged.ExternalID = strings.TrimSpace(*patch.ExternalID)
	}
	if patch.CreatedAt != nil && !patch.CreatedAt.IsZero() {
		merged.CreatedAt = patch.CreatedAt.UTC()
	}

	// slug 仅在补丁显式提供 slug 或标题时重新推导。
	if patch.Slug != nil || patch.Title != nil {
		slugSource := ""
		if patch.Slug != nil {
			slugSource = *patch.Slug
		}
		if strings.TrimSpace(slugSource) == "" {
			slugSource = merged.Title
		}
		newSlug, err := NormalizeSlug(slugSource)
		if err != nil {
			return db.Post{}, err
		}
		merged.Slug = newSlug
	}

	// 阅读时长同理：显式覆盖优先，其次在正文变化时重新估算。
	if patch.ReadTimeMinutes != nil {
		merged.ReadTimeMinutes = EstimateReadTime(merged.Content, *patch.ReadTimeMinutes)
	} else if patch.Content != nil {
		merged.ReadTimeMinutes = EstimateReadTime(merged.Content, 0)
	}

	if err := validateInput(PostInput{
		Title:     merged.Title,
		Excerpt:   merged.Excerpt,
		Content:   merged.Content,
		Category:  merged.Category,
		Tags:      merged.Tags,
		Source:    merged.Source,
		SourceURL: merged.SourceURL,
		HeroImage: merged.HeroImage,
		Status:    merged.Status,
	}); err != nil {
		return db.Post{}, err
	}

	return merged, nil
}

// asSlugConflict 是唯一索引的兜底翻译：隔离较弱的后端可能越过预检查
// 触发 slug 唯一约束，这类错误同样按冲突而不是内部错误上报。
func asSlugConflict(err error, slug string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %q", ErrSlugConflict, slug)
	}
	return err
}

func slugTaken(tx *gorm.DB, slug string, excludeID uint) (bool, error) {
	query := tx.Model(&db.Post{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func nextPostID(tx *gorm.DB) (uint, error) {
	var maxID int64
	if err := tx.Model(&db.Post{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
		return 0, err
	}
	return uint(maxID) + 1, nil
}

func containsTag(tags []string, target string) bool {
	for _, tag := range tags {
		if tag == target {
			return true
		}
	}
	return false
}
