package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/klpbbs/forum/internal/models"
	"github.com/klpbbs/forum/internal/services"
)

type PostHandler struct {
	PostService    *services.PostService
	CommentService *services.CommentService
}

func NewPostHandler(postService *services.PostService, commentService *services.CommentService) *PostHandler {
	return &PostHandler{
		PostService:    postService,
		CommentService: commentService,
	}
}

func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	req := services.CreatePostRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数格式错误"})
		return
	}

	post, err := h.PostService.Create(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Update(c *gin.Context) {
	postID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	req := services.UpdatePostRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数格式错误"})
		return
	}

	post, err := h.PostService.Update(postID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Publish(c *gin.Context) {
	h.setStatus(c, h.PostService.Publish)
}

func (h *PostHandler) Unpublish(c *gin.Context) {
	h.setStatus(c, h.PostService.Unpublish)
}

func (h *PostHandler) Delete(c *gin.Context) {
	h.setStatus(c, h.PostService.Delete)
}

func (h *PostHandler) setStatus(c *gin.Context, fn func(uint) (*models.Post, error)) {
	postID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	post, err := fn(postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	// 每次读取都会使浏览数 +1
	post, err := h.PostService.GetByID(postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Search(c *gin.Context) {
	posts, err := h.PostService.Search(c.Query("keyword"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) ByCategoryAndStatus(c *gin.Context) {
	posts, err := h.PostService.ByCategoryAndStatus(c.Param("category"), c.Param("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) ByTag(c *gin.Context) {
	posts, err := h.PostService.ByTag(c.Param("tag"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) ByAuthor(c *gin.Context) {
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

func (h *PostHandler) ByStatus(c *gin.Context) {
	posts, err := h.PostService.ByStatus(c.Param("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) ByType(c *gin.Context) {
	posts, err := h.PostService.ByType(c.Param("type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) Like(c *gin.Context) {
	h.incrementCounter(c, h.PostService.Like)
}

func (h *PostHandler) Share(c *gin.Context) {
	h.incrementCounter(c, h.PostService.Share)
}

func (h *PostHandler) Collect(c *gin.Context) {
	h.incrementCounter(c, h.PostService.Collect)
}

func (h *PostHandler) incrementCounter(c *gin.Context, fn func(uint) error) {
	postID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := fn(postID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// Sort 在 postIds 指定的 ID 集内按维度降序排序
func (h *PostHandler) Sort(c *gin.Context) {
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

func (h *PostHandler) CreateComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	req := services.CreateCommentRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数格式错误"})
		return
	}

	comment, err := h.CommentService.Create(userID, postID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *PostHandler) ListComments(c *gin.Context) {
	postID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	comments, err := h.CommentService.ListByPost(postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}
