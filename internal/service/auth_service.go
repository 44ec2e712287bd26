package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Dashulik10/Hostel-Organization/config"
	"github.com/Dashulik10/Hostel-Organization/internal/dto"
	"github.com/Dashulik10/Hostel-Organization/internal/model"
	"github.com/Dashulik10/Hostel-Organization/internal/repository"
	"github.com/Dashulik10/Hostel-Organization/pkg/jwt"
	"github.com/Dashulik10/Hostel-Organization/pkg/redis"
	"github.com/Dashulik10/Hostel-Organization/pkg/slug"
)

// ── auth module errors ──

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidDateBirth   = errors.New("date_birth must be YYYY-MM-DD")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("old password does not match")
)

// AuthService covers registration, login and account self-management.
type AuthService interface {
	RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.UserResponse, error)
	RegisterWorker(ctx context.Context, req *dto.RegisterWorkerRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetCurrentUser(ctx context.Context, userID uint) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID uint, req *dto.ChangePasswordRequest) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService creates the AuthService.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

// ────────────────────── RegisterStudent ──────────────────────

func (s *authService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.UserResponse, error) {
	dateBirth, err := time.Parse("2006-01-02", req.DateBirth)
	if err != nil {
		return nil, ErrInvalidDateBirth
	}

	user, err := s.createUser(ctx, req.Username, req.Password, req.FirstName,
		req.LastName, req.MiddleName, req.Email, model.RoleStudent)
	if err != nil {
		return nil, err
	}

	block, err := s.findOrCreateBlock(ctx, req.BlockNumber)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		UserID:    user.ID,
		DateBirth: dateBirth,
		BlockID:   &block.ID,
		Room:      req.Room,
	}
	if err := s.repo.Student.Create(ctx, student); err != nil {
		s.logger.Error("create student profile failed", zap.Error(err))
		return nil, err
	}

	return toUserResponse(user), nil
}

// ────────────────────── RegisterWorker ──────────────────────

func (s *authService) RegisterWorker(ctx context.Context, req *dto.RegisterWorkerRequest) (*dto.UserResponse, error) {
	dateBirth, err := time.Parse("2006-01-02", req.DateBirth)
	if err != nil {
		return nil, ErrInvalidDateBirth
	}

	user, err := s.createUser(ctx, req.Username, req.Password, req.FirstName,
		req.LastName, req.MiddleName, req.Email, model.RoleWorker)
	if err != nil {
		return nil, err
	}

	post := req.Post
	if post == "" {
		post = model.PostStudCouncil
	}
	worker := &model.Worker{
		UserID:    user.ID,
		Post:      post,
		DateBirth: dateBirth,
	}
	if err := s.repo.Worker.Create(ctx, worker); err != nil {
		s.logger.Error("create worker profile failed", zap.Error(err))
		return nil, err
	}

	return toUserResponse(user), nil
}

// createUser stores the account row. Assigning the role here, in the same
// synchronous step as creation, replaces the legacy implicit
// post-save group assignment: the role column is the single authorization
// signal the access policy reads.
func (s *authService) createUser(ctx context.Context, username, password, firstName, lastName, middleName, email, role string) (*model.User, error) {
	existing, err := s.repo.User.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("lookup username failed", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	userSlug := slug.ForUser(firstName, lastName, role)
	if firstName == "" || lastName == "" {
		userSlug = slug.Make(username)
	}

	user := &model.User{
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		MiddleName:   middleName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Slug:         userSlug,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("create user failed", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *authService) findOrCreateBlock(ctx context.Context, number int) (*model.Block, error) {
	block, err := s.repo.Block.GetByNumber(ctx, number)
	if err == nil {
		return block, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	block = &model.Block{
		Number: number,
		Slug:   slug.ForBlock(number),
	}
	if err := s.repo.Block.Create(ctx, block); err != nil {
		s.logger.Error("create block failed", zap.Int("number", number), zap.Error(err))
		return nil, err
	}
	return block, nil
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("lookup user failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		s.logger.Error("generate access token failed", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		s.logger.Error("generate refresh token failed", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User:         *toUserResponse(user),
	}, nil
}

// ────────────────────── Logout ──────────────────────

// Logout revokes the refresh token by blacklisting its jti for the rest of
// its lifetime. Without Redis the revocation silently degrades to a no-op.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return jwt.ErrTokenInvalid
	}
	if claims.TokenType != "refresh" {
		return jwt.ErrTokenInvalid
	}

	if s.rdb == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Warn("blacklist token failed", zap.Error(err))
	}
	return nil
}

// ────────────────────── GetCurrentUser ──────────────────────

func (s *authService) GetCurrentUser(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("lookup user failed", zap.Uint("id", userID), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

// ────────────────────── ChangePassword ──────────────────────

func (s *authService) ChangePassword(ctx context.Context, userID uint, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("update password failed", zap.Uint("id", userID), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func toUserResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
		Slug:      user.Slug,
	}
}
