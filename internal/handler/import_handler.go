package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RunImport 触发一次外部平台导入并返回逐平台报告。
// 导入是同步执行的：已入库的文章不会因为后续平台失败而回滚。
func (a *API) RunImport(c *gin.Context) {
	result := a.importer.ImportExternalPosts(c.Request.Context())
	c.JSON(http.StatusOK, result)
}
