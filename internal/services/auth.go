package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "github.com/federaltalks/iq-backend/internal/pkg/errors"
	"github.com/federaltalks/iq-backend/internal/pkg/logger"
	"github.com/federaltalks/iq-backend/internal/repos"
	"github.com/federaltalks/iq-backend/internal/requestdata"
	"github.com/federaltalks/iq-backend/internal/types"
)

// Authenticator verifies credentials and produces an AuthSession. The demo
// variant exists so the app can run without a seeded users table; credentials
// for it come from the environment, never from source.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*requestdata.AuthSession, error)
}

// StoreAuthenticator checks credentials against the users table.
type StoreAuthenticator struct {
	userRepo repos.UserRepo
	log      *logger.Logger
}

func NewStoreAuthenticator(userRepo repos.UserRepo, log *logger.Logger) *StoreAuthenticator {
	return &StoreAuthenticator{userRepo: userRepo, log: log.With("authenticator", "store")}
}

func (sa *StoreAuthenticator) Authenticate(ctx context.Context, email, password string) (*requestdata.AuthSession, error) {
	users, err := sa.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}
	if len(users) == 0 || users[0] == nil {
		return nil, apperrors.ErrUnauthorized
	}
	user := users[0]
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is deactivated", apperrors.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	return &requestdata.AuthSession{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// DemoAuthenticator accepts a single admin credential pair configured via
// environment variables.
type DemoAuthenticator struct {
	email    string
	password string
	userID   uuid.UUID
	log      *logger.Logger
}

func NewDemoAuthenticator(email, password string, log *logger.Logger) *DemoAuthenticator {
	return &DemoAuthenticator{
		email:    email,
		password: password,
		userID:   uuid.New(),
		log:      log.With("authenticator", "demo"),
	}
}

func (da *DemoAuthenticator) Authenticate(ctx context.Context, email, password string) (*requestdata.AuthSession, error) {
	if da.email == "" || email != da.email || password != da.password {
		return nil, apperrors.ErrUnauthorized
	}
	return &requestdata.AuthSession{UserID: da.userID, Email: da.email, Role: types.RoleAdmin}, nil
}

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) error
	Login(ctx context.Context, email, password string) (string, error)
	SessionFromToken(ctx context.Context, tokenString string) (*requestdata.AuthSession, error)
	AccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	authenticator Authenticator
	jwtSecretKey  string
	accessTTL     time.Duration
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, authenticator Authenticator, jwtSecretKey string, accessTTL time.Duration) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		authenticator: authenticator,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
	if user == nil || user.Email == "" || user.Password == "" || user.FullName == "" {
		return fmt.Errorf("%w: email, password and full name are required", apperrors.ErrInvalidArgument)
	}
	exists, err := as.userRepo.EmailExists(ctx, nil, user.Email)
	if err != nil {
		return fmt.Errorf("failed to check user email: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: email is already in use", apperrors.ErrInvalidArgument)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	if user.Role == "" {
		user.Role = types.RoleUser
	}
	if _, err := as.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, error) {
	session, err := as.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		"sub":   session.UserID.String(),
		"email": session.Email,
		"role":  session.Role,
		"exp":   time.Now().Add(as.accessTTL).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (as *authService) SessionFromToken(ctx context.Context, tokenString string) (*requestdata.AuthSession, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return &requestdata.AuthSession{UserID: userID, Email: email, Role: role}, nil
}

func (as *authService) AccessTTL() time.Duration {
	return as.accessTTL
}
