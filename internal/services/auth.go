package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cerebra-app/cerebra-backend/internal/logger"
	"github.com/cerebra-app/cerebra-backend/internal/repos"
	"github.com/cerebra-app/cerebra-backend/internal/requestdata"
	"github.com/cerebra-app/cerebra-backend/internal/types"
)

type JWTClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthService interface {
	RegisterUser(ctx context.Context, username, password string) (*types.User, error)
	LoginUser(ctx context.Context, username, password string) (string, error)
	// SetContextFromToken verifies the token and attaches the resolved
	// identity to the returned context.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	AccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userStatsRepo repos.UserStatsRepo
	jwtSecretKey  string
	accessTTL     time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userStatsRepo repos.UserStatsRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		userStatsRepo: userStatsRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, username, password string) (*types.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("a username is required to register")
	}
	if password == "" {
		return nil, fmt.Errorf("a password is required to register")
	}

	exists, err := as.userRepo.UsernameExists(ctx, nil, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, types.Conflict(fmt.Errorf("username already registered"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &types.User{
		ID:       uuid.New(),
		Username: username,
		Password: string(hashed),
	}

	// User and its stats row land together or not at all.
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cErr := as.userRepo.Create(ctx, tx, user); cErr != nil {
			return fmt.Errorf("failed to create user: %w", cErr)
		}
		stats := &types.UserStats{
			ID:      uuid.New(),
			UserID:  user.ID,
			TotalXP: 0,
		}
		if sErr := as.userStatsRepo.Create(ctx, tx, stats); sErr != nil {
			return fmt.Errorf("failed to create user stats: %w", sErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	as.log.Info("User registered", "username", username, "user_id", user.ID)
	return user, nil
}

func (as *authService) LoginUser(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)

	user, err := as.userRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		return "", fmt.Errorf("error retrieving user by username: %w", err)
	}
	if user == nil {
		return "", types.Unauthorized(fmt.Errorf("incorrect username or password"))
	}
	if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
		return "", types.Unauthorized(fmt.Errorf("incorrect username or password"))
	}

	return as.generateAccessToken(user)
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return ctx, types.Unauthorized(fmt.Errorf("failed to parse token: %w", err))
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, types.Unauthorized(fmt.Errorf("invalid or expired token"))
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, types.Unauthorized(fmt.Errorf("invalid user id in token: %w", err))
	}

	// The encoded user must still exist; tokens do not outlive accounts.
	user, err := as.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return ctx, fmt.Errorf("failed to load user for token: %w", err)
	}
	if user == nil {
		return ctx, types.Unauthorized(fmt.Errorf("unknown user"))
	}

	rd := &requestdata.RequestData{
		UserID:   user.ID,
		Username: user.Username,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) AccessTTL() time.Duration {
	return as.accessTTL
}
