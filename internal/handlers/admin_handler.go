package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/klpbbs/forum/internal/services"
)

// AdminHandler /api/admin 下的只读镜像：用户/帖子列表、搜索与排序
type AdminHandler struct {
	UserService *services.UserService
	PostService *services.PostService
}

func NewAdminHandler(userService *services.UserService, postService *services.PostService) *AdminHandler {
	return &AdminHandler{
		UserService: userService,
		PostService: postService,
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, total, err := h.UserService.List(queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "users": users})
}

func (h *AdminHandler) SearchUsers(c *gin.Context) {
	ids, err := h.UserService.SearchIDs(c.Query("keyword"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ids)
}

func (h *AdminHandler) ActiveUsers(c *gin.Context) {
	ids, ok := queryIDSet(c, "userIds")
	if !ok {
		return
	}

	active, err := h.UserService.ActiveIDs(ids)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, active)
}

func (h *AdminHandler) CountActiveUsers(c *gin.Context) {
	count, err := h.UserService.CountActive()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// SortUsers 在 userIds 指定的 ID 集内按维度排序
func (h *AdminHandler) SortUsers(c *gin.Context) {
	ids, ok := queryIDSet(c, "userIds")
	if !ok {
		return
	}

	sorted, err := h.UserService.SortBy(c.Param("dimension"), ids)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sorted)
}

func (h *AdminHandler) ListPosts(c *gin.Context) {
	posts, total, err := h.PostService.List(queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "posts": posts})
}

func (h *AdminHandler) SearchPosts(c *gin.Context) {
	posts, err := h.PostService.Search(c.Query("keyword"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *AdminHandler) PostsByCategoryAndStatus(c *gin.Context) {
	posts, err := h.PostService.ByCategoryAndStatus(c.Param("category"), c.Param("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *AdminHandler) PostsByTag(c *gin.Context) {
	posts, err := h.PostService.ByTag(c.Param("tag"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *AdminHandler) PostsByAuthor(c *gin.Context) {
	authorID, ok := paramUint(c, "author")
	if !ok {
		return
	}

	posts, err := h.PostService.ByAuthor(authorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *AdminHandler) PostsByStatus(c *gin.Context) {
	posts, err := h.PostService.ByStatus(c.Param("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *AdminHandler) PostsByType(c *gin.Context) {
	posts, err := h.PostService.ByType(c.Param("type"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// SortPosts 在 postIds 指定的 ID 集内按维度降序排序
func (h *AdminHandler) SortPosts(c *gin.Context) {
	ids, ok := queryIDSet(c, "postIds")
	if !ok {
		return
	}

	sorted, err := h.PostService.SortBy(c.Param("dimension"), ids)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sorted)
}
