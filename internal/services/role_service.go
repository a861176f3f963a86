package services

import (
	"github.com/klpbbs/forum/internal/models"
	"github.com/klpbbs/forum/internal/repositories"
)

type RoleService struct {
	RoleRepo *repositories.RoleRepository
	UserRepo *repositories.UserRepository
}

func NewRoleService(roleRepo *repositories.RoleRepository, userRepo *repositories.UserRepository) *RoleService {
	return &RoleService{
		RoleRepo: roleRepo,
		UserRepo: userRepo,
	}
}

// CreateRoleRequest 创建角色请求
type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateRole 创建角色
func (s *RoleService) CreateRole(req *CreateRoleRequest) (*models.Role, error) {
	role := &models.Role{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.RoleRepo.Create(role); err != nil {
		return nil, err
	}
	return role, nil
}

// ListRoles 全部角色
func (s *RoleService) ListRoles() ([]models.Role, error) {
	return s.RoleRepo.List()
}

// AssignRoleToUser 将角色分配给用户
// 用户或角色缺失时返回显式错误，而不是静默跳过
func (s *RoleService) AssignRoleToUser(userID, roleID uint) error {
	user, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return ErrUserNotFound
	}
	role, err := s.RoleRepo.GetByID(roleID)
	if err != nil {
		return ErrRoleNotFound
	}
	return s.RoleRepo.AssignToUser(user, role)
}

// RolesByUser 用户的角色集合
func (s *RoleService) RolesByUser(userID uint) ([]models.Role, error) {
	roles, err := s.RoleRepo.RolesByUser(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return roles, nil
}

// UserHasRole 检查用户是否拥有指定角色
func (s *RoleService) UserHasRole(userID uint, name string) (bool, error) {
	return s.RoleRepo.UserHasRole(userID, name)
}
