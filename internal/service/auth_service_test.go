package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Leela-Pavan/EduTrack/config"
	"github.com/Leela-Pavan/EduTrack/internal/dto"
	"github.com/Leela-Pavan/EduTrack/internal/model"
	"github.com/Leela-Pavan/EduTrack/pkg/jwt"
)

func setupAuthService(repos *testRepos) AuthService {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:              "test-secret-at-least-16-chars",
			AccessTokenTTL:         15 * time.Minute,
			RefreshTokenTTLDefault: 24 * time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	return NewAuthService(cfg, repos.toRepository(), jwtMgr, nil, zap.NewNop())
}

func seedUser(repos *testRepos, username, password, role string, active bool) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	repos.user.Create(context.Background(), &model.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	})
}

func TestLogin(t *testing.T) {
	repos := newTestRepos()
	seedUser(repos, "admin", "password123", "admin", true)
	svc := setupAuthService(repos)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "password123"})
	if err != nil {
		t.Fatalf("登录应成功: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("登录成功应返回 token 对")
	}
	if resp.User.Role != "admin" {
		t.Errorf("角色应为 admin，实际 %s", resp.User.Role)
	}

	// 密码错误
	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "wrong-password"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("期望 ErrInvalidCredentials，实际 %v", err)
	}

	// 用户不存在：同样返回凭证错误，不泄露账号是否存在
	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "ghost", Password: "password123"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("期望 ErrInvalidCredentials，实际 %v", err)
	}
}

func TestLogin_禁用账号(t *testing.T) {
	repos := newTestRepos()
	seedUser(repos, "banned", "password123", "viewer", false)
	svc := setupAuthService(repos)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "banned", Password: "password123"})
	if !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("期望 ErrUserDisabled，实际 %v", err)
	}
}

func TestRegister_用户名重复(t *testing.T) {
	repos := newTestRepos()
	seedUser(repos, "admin", "password123", "admin", true)
	svc := setupAuthService(repos)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "admin", Password: "password456", Role: "viewer",
	})
	if !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("期望 ErrUsernameExists，实际 %v", err)
	}
}

func TestRefresh(t *testing.T) {
	repos := newTestRepos()
	seedUser(repos, "admin", "password123", "admin", true)
	svc := setupAuthService(repos)
	ctx := context.Background()

	login, err := svc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "password123"})
	if err != nil {
		t.Fatalf("登录应成功: %v", err)
	}

	resp, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("刷新应成功: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("刷新应返回新的 access token")
	}

	// access token 不能用于刷新
	_, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: login.AccessToken})
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Fatalf("期望 ErrInvalidRefresh，实际 %v", err)
	}
}
