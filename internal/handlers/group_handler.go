package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/klpbbs/forum/internal/services"
)

type GroupHandler struct {
	GroupService *services.GroupService
}

func NewGroupHandler(groupService *services.GroupService) *GroupHandler {
	return &GroupHandler{GroupService: groupService}
}

func (h *GroupHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	req := services.CreateGroupRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数格式错误"})
		return
	}

	group, err := h.GroupService.Create(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, group)
}

func (h *GroupHandler) Join(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	groupID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	group, err := h.GroupService.Join(userID, groupID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

func (h *GroupHandler) Leave(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	groupID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	group, err := h.GroupService.Leave(userID, groupID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

func (h *GroupHandler) Get(c *gin.Context) {
	groupID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	group, err := h.GroupService.Get(groupID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.GroupService.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, groups)
}

func (h *GroupHandler) ByUser(c *gin.Context) {
	userID, ok := paramUint(c, "userId")
	if !ok {
		return
	}

	groups, err := h.GroupService.GroupsByUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, groups)
}
