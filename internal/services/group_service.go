package services

import (
	"github.com/klpbbs/forum/internal/models"
	"github.com/klpbbs/forum/internal/repositories"
)

type GroupService struct {
	GroupRepo *repositories.GroupRepository
	UserRepo  *repositories.UserRepository
}

func NewGroupService(groupRepo *repositories.GroupRepository, userRepo *repositories.UserRepository) *GroupService {
	return &GroupService{
		GroupRepo: groupRepo,
		UserRepo:  userRepo,
	}
}

// CreateGroupRequest 创建小组请求
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// Create 创建小组并在同一事务内把创建者加为成员
func (s *GroupService) Create(creatorID uint, req *CreateGroupRequest) (*models.Group, error) {
	if _, err := s.UserRepo.GetByID(creatorID); err != nil {
		return nil, ErrUserNotFound
	}

	group := &models.Group{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.GroupRepo.CreateWithOwner(group, creatorID); err != nil {
		return nil, err
	}
	return group, nil
}

// Join 加入小组，已是成员则冲突
func (s *GroupService) Join(userID, groupID uint) (*models.Group, error) {
	group, err := s.GroupRepo.GetByID(groupID)
	if err != nil {
		return nil, ErrGroupNotFound
	}
	if _, err := s.UserRepo.GetByID(userID); err != nil {
		return nil, ErrUserNotFound
	}

	isMember, err := s.GroupRepo.IsMember(groupID, userID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, ErrAlreadyMember
	}

	if err := s.GroupRepo.AddMember(groupID, userID); err != nil {
		return nil, err
	}
	return group, nil
}

// Leave 退出小组，非成员报错
func (s *GroupService) Leave(userID, groupID uint) (*models.Group, error) {
	group, err := s.GroupRepo.GetByID(groupID)
	if err != nil {
		return nil, ErrGroupNotFound
	}

	affected, err := s.GroupRepo.RemoveMember(groupID, userID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotMember
	}
	return group, nil
}

// Get 获取小组
func (s *GroupService) Get(groupID uint) (*models.Group, error) {
	group, err := s.GroupRepo.GetByID(groupID)
	if err != nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

// List 全部小组
func (s *GroupService) List() ([]models.Group, error) {
	return s.GroupRepo.List()
}

// GroupsByUser 用户加入的小组
func (s *GroupService) GroupsByUser(userID uint) ([]models.Group, error) {
	return s.GroupRepo.GroupsByUser(userID)
}
