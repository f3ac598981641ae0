package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kicau/internal/apperr"
	"kicau/internal/models"
	"kicau/internal/monitoring"
	"kicau/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles accounts: signup, login, tokens and profile changes.
type UserService struct {
	userRepo   repositories.UserRepository
	validate   *validator.Validate
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration, bcryptCost int) *UserService {
	return &UserService{
		userRepo:   userRepo,
		validate:   validator.New(),
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// Register hashes password and creates the account.
func (s *UserService) Register(ctx context.Context, email, nickname, password string) (*models.User, error) {
	if password == "" {
		return nil, fmt.Errorf("password is required: %w", apperr.ErrValidation)
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email '%s' already registered: %w", email, apperr.ErrConflict)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return s.CreateUser(ctx, email, nickname, string(hashedPassword))
}

// CreateUser stores a user whose password is already hashed.
func (s *UserService) CreateUser(ctx context.Context, email, nickname, passwordHash string) (*models.User, error) {
	user := &models.User{
		Email:    strings.TrimSpace(email),
		Nickname: strings.TrimSpace(nickname),
		Password: passwordHash,
	}
	if err := s.validate.Struct(user); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required: %w", apperr.ErrValidation)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	logrus.WithField("user_id", user.ID).Info("User registered")
	return user, nil
}

// FindUserByEmail returns the account registered with email.
func (s *UserService) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
}

// Login checks the credentials and returns a signed token and the profile.
// Every failure caused by the credentials is reported as
// apperr.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.UserProfile, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			monitoring.LoginFailure.Inc()
			return "", nil, apperr.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		monitoring.LoginFailure.Inc()
		return "", nil, apperr.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}

	profile, err := s.userRepo.GetProfile(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, profile, nil
}

func (s *UserService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"nickname": user.Nickname,
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *UserService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// ActorID extracts the user id stored in validated claims.
func ActorID(claims jwt.MapClaims) (uint, error) {
	// encoding/json decodes numbers into float64
	raw, ok := claims["user_id"].(float64)
	if !ok || raw <= 0 {
		return 0, fmt.Errorf("invalid token: missing user_id")
	}
	return uint(raw), nil
}

// UpdateNickname changes the nickname of userID.
func (s *UserService) UpdateNickname(ctx context.Context, userID uint, nickname string) error {
	nickname = strings.TrimSpace(nickname)
	if err := s.validate.Var(nickname, "required,max=30"); err != nil {
		return fmt.Errorf("%w: nickname: %v", apperr.ErrValidation, err)
	}
	return s.userRepo.UpdateNickname(ctx, userID, nickname)
}

// GetProfile returns userID without its password, plus related ids.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	return s.userRepo.GetProfile(ctx, userID)
}
