package services

import (
	"errors"
	"fmt"
)

// 统一的错误分类，Handler 层用 errors.Is 映射为 HTTP 状态码
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrIO           = errors.New("io failure")
)

// 具体错误，每个都归入上面四类之一
var (
	ErrUserNotFound       = fmt.Errorf("用户不存在: %w", ErrNotFound)
	ErrPostNotFound       = fmt.Errorf("帖子不存在: %w", ErrNotFound)
	ErrGroupNotFound      = fmt.Errorf("小组不存在: %w", ErrNotFound)
	ErrRoleNotFound       = fmt.Errorf("角色不存在: %w", ErrNotFound)
	ErrFileNotFound       = fmt.Errorf("文件不存在: %w", ErrNotFound)
	ErrResetTokenNotFound = fmt.Errorf("重置令牌不存在: %w", ErrNotFound)
	ErrNotMember          = fmt.Errorf("用户不是该小组成员: %w", ErrNotFound)
	ErrNotFollowing       = fmt.Errorf("未关注该用户: %w", ErrNotFound)

	ErrUserExists    = fmt.Errorf("用户已存在: %w", ErrConflict)
	ErrAlreadyMember = fmt.Errorf("用户已经是该小组成员: %w", ErrConflict)
	ErrAlreadyFollow = fmt.Errorf("已经关注过该用户: %w", ErrConflict)

	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrTokenExpired       = fmt.Errorf("重置令牌已过期: %w", ErrInvalidState)
	ErrAlreadyCheckedIn   = fmt.Errorf("今日已签到: %w", ErrInvalidState)
	ErrInsufficientPoints = fmt.Errorf("积分不足: %w", ErrInvalidState)
	ErrInvalidPointsCost  = fmt.Errorf("积分数必须为正: %w", ErrInvalidState)
	ErrSelfFollow         = fmt.Errorf("不能关注自己: %w", ErrInvalidState)
)
