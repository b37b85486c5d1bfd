package service

import "github.com/pressfolio/internal/db"

// PostStore 是文章仓库的注入契约：导入编排器与 HTTP 层只依赖该接口，
// 底层可以换成任何满足相同不变量的持久化实现。
type PostStore interface {
	Create(input PostInput) (*db.Post, error)
	Update(id uint, patch PostPatch) (*db.Post, error)
	Delete(id uint) (bool, error)
	GetByID(id uint) (*db.Post, error)
	GetBySlug(slug string, includeDrafts bool) (*db.Post, error)
	List(includeDrafts bool) ([]db.Post, error)
	Filter(filter PostFilter, includeDrafts bool) ([]db.Post, error)
}

// Ensure PostService implements the PostStore interface.
var _ PostStore = (*PostService)(nil)
