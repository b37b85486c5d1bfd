package handler

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/pressfolio/internal/service"
)

// PostHandler 处理文章相关的请求

// ListPosts 获取已发布文章列表，支持标签、来源、阅读时长与日期前缀过滤。
func (a *API) ListPosts(c *gin.Context) {
	filter := service.PostFilter{
		Tag:                strings.TrimSpace(c.Query("tag")),
		Source:             strings.TrimSpace(c.Query("source")),
		Status:             strings.TrimSpace(c.Query("status")),
		MaxReadTimeMinutes: parseIntQuery(c, "maxReadTime"),
		CreatedAtPrefix:    strings.TrimSpace(c.Query("date")),
	}

	posts, err := a.posts.Filter(filter, false)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPostBySlug 按 slug 获取单篇文章，并附带渲染后的 HTML。
// 匿名访问只能看到已发布文章；登录会话可以在同一路径预览草稿。
func (a *API) GetPostBySlug(c *gin.Context) {
	includeDrafts := sessions.Default(c).Get("user_id") != nil
	post, err := a.posts.GetBySlug(c.Param("slug"), includeDrafts)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	rendered, err := service.RenderMarkdown(post.Content)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to render post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post, "html": rendered})
}

// AdminListPosts 获取全部文章（含草稿），供后台管理使用。
func (a *API) AdminListPosts(c *gin.Context) {
	filter := service.PostFilter{
		Tag:                strings.TrimSpace(c.Query("tag")),
		Source:             strings.TrimSpace(c.Query("source")),
		Status:             strings.TrimSpace(c.Query("status")),
		MaxReadTimeMinutes: parseIntQuery(c, "maxReadTime"),
		CreatedAtPrefix:    strings.TrimSpace(c.Query("date")),
	}

	posts, err := a.posts.Filter(filter, true)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// AdminGetPost 按 id 获取单篇文章（含草稿）。
func (a *API) AdminGetPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	post, err := a.posts.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// CreatePost 创建文章
func (a *API) CreatePost(c *gin.Context) {
	var input service.PostInput
	if !bindJSON(c, &input, "invalid post payload") {
		return
	}

	post, err := a.posts.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// UpdatePost 更新文章，仅补丁中出现的字段会被校验与合并。
func (a *API) UpdatePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var patch service.PostPatch
	if !bindJSON(c, &patch, "invalid post patch") {
		return
	}

	post, err := a.posts.Update(id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// DeletePost 删除文章；删除不存在的文章返回 deleted=false 而非错误。
func (a *API) DeletePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	deleted, err := a.posts.Delete(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
