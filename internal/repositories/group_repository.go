package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/klpbbs/forum/internal/models"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// CreateWithOwner 创建小组并将创建者添加为成员
// 实现逻辑：开启事务，创建 Group 记录，然后向 group_members 插入创建者记录
func (r *GroupRepository) CreateWithOwner(group *models.Group, ownerID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		member := models.GroupMember{
			GroupID:  group.ID,
			UserID:   ownerID,
			JoinedAt: time.Now(),
		}
		return tx.Create(&member).Error
	})
}

// GetByID 根据 ID 获取小组
func (r *GroupRepository) GetByID(id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// List 获取全部小组
func (r *GroupRepository) List() ([]models.Group, error) {
	var groups []models.Group
	err := r.db.Find(&groups).Error
	return groups, err
}

// AddMember 向小组添加成员
// 实现逻辑：直接插入中间表记录，(group, user) 唯一索引兜底防重
func (r *GroupRepository) AddMember(groupID, userID uint) error {
	member := models.GroupMember{
		GroupID:  groupID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}
	return r.db.Create(&member).Error
}

// RemoveMember 移除小组成员，返回删除的行数
func (r *GroupRepository) RemoveMember(groupID, userID uint) (int64, error) {
	res := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMember{})
	return res.RowsAffected, res.Error
}

// IsMember 检查用户是否是小组成员
func (r *GroupRepository) IsMember(groupID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

// GroupsByUser 获取用户加入的所有小组
func (r *GroupRepository) GroupsByUser(userID uint) ([]models.Group, error) {
	var groups []models.Group
	err := r.db.
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Find(&groups).Error
	return groups, err
}
