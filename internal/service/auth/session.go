/*
 * @author: sun977
 * @date: 2025.09.04
 * @description: 会话管理服务
 * @func:
 * 1.登录(签发访问令牌)
 * 2.注销
 * 3.获取当前用户信息
 */
package auth

import (
	"context"
	"errors"
	"fmt"

	"adminmaster/internal/model"
	"adminmaster/internal/pkg/auth"
	"adminmaster/internal/pkg/logger"
	"adminmaster/internal/repository/mysql"
)

// SessionService 会话管理服务
// 无状态JWT会话，注销不维护服务端黑名单，令牌自然过期
type SessionService struct {
	userRepo        *mysql.UserRepository
	menuRepo        *mysql.MenuRepository
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
}

// NewSessionService 创建会话服务实例
func NewSessionService(
	userRepo *mysql.UserRepository,
	menuRepo *mysql.MenuRepository,
	passwordManager *auth.PasswordManager,
	jwtManager *auth.JWTManager,
) *SessionService {
	return &SessionService{
		userRepo:        userRepo,
		menuRepo:        menuRepo,
		passwordManager: passwordManager,
		jwtManager:      jwtManager,
	}
}

// Login 用户登录，校验凭据并签发访问令牌
func (s *SessionService) Login(ctx context.Context, req *model.LoginRequest, clientIP string) (*model.LoginResponse, error) {
	if req == nil {
		return nil, errors.New("login request cannot be nil")
	}

	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		// 用户不存在与密码错误返回同一错误，避免用户名枚举
		return nil, model.ErrInvalidCredentials
	}

	ok, err := s.passwordManager.VerifyPassword(req.Password, user.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		logger.LogBusinessOperation("login", uint(user.ID), user.Username, clientIP, "", "failed", "密码错误", nil)
		return nil, model.ErrInvalidCredentials
	}

	if !user.IsActive() {
		logger.LogBusinessOperation("login", uint(user.ID), user.Username, clientIP, "", "failed", "用户已被禁用", nil)
		return nil, model.ErrUserDisabled
	}

	roleKeys := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roleKeys = append(roleKeys, role.RoleKey)
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, roleKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	logger.LogBusinessOperation("login", uint(user.ID), user.Username, clientIP, "", "success", "登录成功", nil)
	return &model.LoginResponse{Token: token}, nil
}

// Logout 用户注销(无状态令牌，仅记录审计日志)
func (s *SessionService) Logout(ctx context.Context, userID int64, username, clientIP string) error {
	logger.LogBusinessOperation("logout", uint(userID), username, clientIP, "", "success", "注销成功", nil)
	return nil
}

// GetInfo 获取当前登录用户信息(基本信息+角色权限字符+权限标识)
// 超级管理员返回通配权限 ["*:*:*"]
func (s *SessionService) GetInfo(ctx context.Context, userID int64) (*model.GetInfoResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("用户[%d]不存在: %w", userID, model.ErrNotFound)
	}

	roles := make([]string, 0, len(user.Roles))
	isAdmin := false
	for _, role := range user.Roles {
		roles = append(roles, role.RoleKey)
		if role.IsAdmin() {
			isAdmin = true
		}
	}

	var permissions []string
	if isAdmin {
		permissions = []string{"*:*:*"}
	} else {
		perms, err := s.menuRepo.ListPermsByUserID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list user perms: %w", err)
		}
		permissions = dedupStrings(perms)
	}

	return &model.GetInfoResponse{
		Code: 200,
		Msg:  "操作成功",
		User: model.UserInfo{
			UserID:      user.ID,
			UserName:    user.Username,
			NickName:    user.NickName,
			Avatar:      user.Avatar,
			Phonenumber: user.Phonenumber,
			Email:       user.Email,
			Sex:         user.Sex,
		},
		Roles:       roles,
		Permissions: permissions,
	}, nil
}

// dedupStrings 保序去重
func dedupStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
