package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"english-center/backend/config"
	"english-center/backend/internal/dto"
	"english-center/backend/internal/model"
	"english-center/backend/internal/repository"
	"english-center/backend/pkg/jwt"
)

// ── 测试辅助 ──

func testAuthConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-at-least-16-chars",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
	}
}

func setupTestAuthService() (AuthService, *repository.Repository) {
	cfg := testAuthConfig()
	repo := newMockRepository()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, repo
}

func seedUser(t *testing.T, repo *repository.Repository, email, password, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	repo.User.Create(context.Background(), &model.User{
		Name:         "测试用户",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, repo := setupTestAuthService()
	seedUser(t, repo, "admin@center.vn", "secret123", "admin")

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@center.vn",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("应返回 Token 对")
	}
	if result.User.Role != "admin" {
		t.Errorf("期望Role=admin，实际=%s", result.User.Role)
	}
	if result.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("期望ExpiresIn=900，实际=%d", result.ExpiresIn)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, repo := setupTestAuthService()
	seedUser(t, repo, "admin@center.vn", "secret123", "admin")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@center.vn",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@center.vn",
		Password: "secret123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── Refresh 测试 ──

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	svc, repo := setupTestAuthService()
	seedUser(t, repo, "admin@center.vn", "secret123", "admin")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@center.vn",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	// 用 access token 刷新应被拒绝
	_, err = svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: login.AccessToken})
	if !errors.Is(err, ErrInvalidTokenType) {
		t.Errorf("期望 ErrInvalidTokenType，实际: %v", err)
	}
}

func TestAuthService_Refresh_Success(t *testing.T) {
	svc, repo := setupTestAuthService()
	seedUser(t, repo, "admin@center.vn", "secret123", "admin")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@center.vn",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	result, err := svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh 应成功: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("应签发新 AccessToken")
	}
}

// ── ChangePassword 测试 ──

func TestAuthService_ChangePassword_WrongOld(t *testing.T) {
	svc, repo := setupTestAuthService()
	seedUser(t, repo, "admin@center.vn", "secret123", "admin")

	user, _ := repo.User.GetByEmail(context.Background(), "admin@center.vn")
	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "newsecret",
	})
	if !errors.Is(err, ErrOldPasswordWrong) {
		t.Errorf("期望 ErrOldPasswordWrong，实际: %v", err)
	}
}

// ── CreateUser 测试 ──

func TestAuthService_CreateUser_DuplicateEmail(t *testing.T) {
	svc, repo := setupTestAuthService()
	seedUser(t, repo, "admin@center.vn", "secret123", "admin")

	_, err := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Email:    "admin@center.vn",
		Password: "whatever1",
		Name:     "重复邮箱",
		Role:     "staff",
	}, "admin-001")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("期望 ErrEmailTaken，实际: %v", err)
	}
}
