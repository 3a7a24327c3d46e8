package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"ai-lessonlab-be/internal/config"
	"ai-lessonlab-be/internal/dto"
	"ai-lessonlab-be/internal/entity"
	"ai-lessonlab-be/internal/pkg/apperrors"
	"ai-lessonlab-be/internal/pkg/mailer"
	"ai-lessonlab-be/internal/repository/specification"
	"ai-lessonlab-be/internal/repository/unitofwork"
	"ai-lessonlab-be/pkg/events"
	pktNats "ai-lessonlab-be/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	GetProfile(ctx context.Context, username string) (*dto.UserResponse, error)
	BootstrapAdmin(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	authCfg        config.AuthConfig
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	authCfg config.AuthConfig,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		authCfg:        authCfg,
		emailService:   emailService,
		eventPublisher: eventPublisher,
	}
}

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	letterPattern   = regexp.MustCompile(`[A-Za-z]`)
	digitPattern    = regexp.MustCompile(`[0-9]`)
	phonePattern    = regexp.MustCompile(`^\+?[1-9][0-9]{0,15}$`)
)

// NormalizeUsername trims, lowercases, and validates the username shape.
func NormalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", apperrors.Validation("Username cannot be empty")
	}
	if len(username) < 3 {
		return "", apperrors.Validation("Username must be at least 3 characters long")
	}
	if !usernamePattern.MatchString(username) {
		return "", apperrors.Validation("Username can only contain letters, numbers, hyphens, and underscores")
	}
	return strings.ToLower(username), nil
}

// ValidatePassword enforces the minimum-length and letter+digit rule.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return apperrors.Validation("Password must be at least 6 characters long")
	}
	if !letterPattern.MatchString(password) {
		return apperrors.Validation("Password must contain at least one letter")
	}
	if !digitPattern.MatchString(password) {
		return apperrors.Validation("Password must contain at least one number")
	}
	return nil
}

// NormalizePhone strips separators and validates the remaining digits.
func NormalizePhone(phone string) (string, error) {
	phone = strings.ReplaceAll(strings.ReplaceAll(phone, " ", ""), "-", "")
	if phone == "" {
		return "", nil
	}
	if !phonePattern.MatchString(phone) {
		return "", apperrors.Validation("Invalid phone number format")
	}
	return phone, nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	return s.createUser(ctx, req, false)
}

// BootstrapAdmin is the one-time escape hatch to create the first admin.
// Once any admin row exists it refuses, permanently.
func (s *authService) BootstrapAdmin(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existingAdmin, err := uow.UserRepository().FindOne(ctx, specification.AdminsOnly{})
	if err != nil {
		return nil, err
	}
	if existingAdmin != nil {
		return nil, apperrors.Authorization("Admin user already exists. Use regular registration.")
	}

	return s.createUser(ctx, req, true)
}

func (s *authService) createUser(ctx context.Context, req *dto.RegisterRequest, isAdmin bool) (*dto.UserResponse, error) {
	username, err := NormalizeUsername(req.Username)
	if err != nil {
		return nil, err
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, apperrors.Validation("Full name cannot be empty")
	}
	if err := ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	phone, err := NormalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: username})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("Username already registered")
	}

	if req.Email != "" {
		existingEmail, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
		if err != nil {
			return nil, err
		}
		if existingEmail != nil {
			return nil, apperrors.Conflict("Email already registered")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     username,
		FullName:     fullName,
		PasswordHash: string(hash),
		IsActive:     true,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if req.Email != "" {
		email := req.Email
		user.Email = &email
	}
	if phone != "" {
		user.Phone = &phone
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	if s.emailService != nil && user.Email != nil {
		go func(email, name string) {
			if emailErr := s.emailService.SendWelcome(email, name); emailErr != nil {
				fmt.Printf("Error sending welcome email: %v\n", emailErr)
			}
		}(*user.Email, user.FullName)
	}

	s.publishEvent(ctx, "USER_REGISTERED", map[string]interface{}{
		"user_id":  user.Id,
		"username": user.Username,
		"is_admin": user.IsAdmin,
	})

	return UserToResponse(user), nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	username := strings.ToLower(strings.TrimSpace(req.Username))
	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: username})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.Authentication("Incorrect username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Authentication("Incorrect username or password")
	}

	if !user.IsActive {
		return nil, apperrors.Authentication("User account is inactive")
	}

	expiry := time.Duration(s.authCfg.AccessTokenExpireMn) * time.Minute
	claims := jwt.MapClaims{
		"sub":  user.Username,
		"role": string(user.Role()),
		"exp":  time.Now().Add(expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.authCfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, "USER_LOGIN", map[string]interface{}{
		"user_id": user.Id,
		"time":    time.Now().Format(time.RFC822),
	})

	return &dto.LoginResponse{
		AccessToken: signedToken,
		TokenType:   "bearer",
	}, nil
}

func (s *authService) GetProfile(ctx context.Context, username string) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := currentUser(ctx, uow, username)
	if err != nil {
		return nil, err
	}
	return UserToResponse(user), nil
}

func (s *authService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	event := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}
