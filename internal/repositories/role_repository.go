package repositories

import (
	"gorm.io/gorm"

	"github.com/klpbbs/forum/internal/models"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Create 创建角色
func (r *RoleRepository) Create(role *models.Role) error {
	return r.db.Create(role).Error
}

// GetByID 根据 ID 获取角色
func (r *RoleRepository) GetByID(id uint) (*models.Role, error) {
	var role models.Role
	if err := r.db.First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// GetByName 根据名称获取角色
func (r *RoleRepository) GetByName(name string) (*models.Role, error) {
	var role models.Role
	if err := r.db.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// List 获取全部角色
func (r *RoleRepository) List() ([]models.Role, error) {
	var roles []models.Role
	err := r.db.Find(&roles).Error
	return roles, err
}

// AssignToUser 将角色挂到用户的角色集合
func (r *RoleRepository) AssignToUser(user *models.User, role *models.Role) error {
	return r.db.Model(user).Association("Roles").Append(role)
}

// RolesByUser 获取用户的所有角色
func (r *RoleRepository) RolesByUser(userID uint) ([]models.Role, error) {
	var user models.User
	if err := r.db.Preload("Roles").First(&user, userID).Error; err != nil {
		return nil, err
	}
	return user.Roles, nil
}

// UserHasRole 检查用户是否拥有指定名称的角色
func (r *RoleRepository) UserHasRole(userID uint, name string) (bool, error) {
	var count int64
	err := r.db.Table("user_roles").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ? AND roles.name = ?", userID, name).
		Count(&count).Error
	return count > 0, err
}
