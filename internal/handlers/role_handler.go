package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/klpbbs/forum/internal/services"
)

type RoleHandler struct {
	RoleService *services.RoleService
}

func NewRoleHandler(roleService *services.RoleService) *RoleHandler {
	return &RoleHandler{RoleService: roleService}
}

func (h *RoleHandler) Create(c *gin.Context) {
	req := services.CreateRoleRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数格式错误"})
		return
	}

	role, err := h.RoleService.CreateRole(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, role)
}

func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.RoleService.ListRoles()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, roles)
}

func (h *RoleHandler) Assign(c *gin.Context) {
	roleID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	userID, ok := paramUint(c, "userId")
	if !ok {
		return
	}

	if err := h.RoleService.AssignRoleToUser(userID, roleID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "角色分配成功"})
}

func (h *RoleHandler) ByUser(c *gin.Context) {
	userID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	roles, err := h.RoleService.RolesByUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, roles)
}
