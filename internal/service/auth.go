package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/apperror"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/model"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/pkg/utils"
)

const tokenTTL = 3 * time.Hour

// Claims is the decoded identity the auth middleware stores in the
// request context.
type Claims struct {
	UserID uuid.UUID
	Admin  bool
}

func (s *Service) Register(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	if err := utils.ValidateName(req.Name); err != nil {
		return model.User{}, err
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		return model.User{}, err
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return model.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		CreatedAt:    time.Now(),
	}

	return s.users.CreateUser(ctx, user)
}

func (s *Service) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return model.LoginResponse{}, apperror.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return model.LoginResponse{}, apperror.ErrUnauthorized
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID.String(),
		"admin": user.Admin,
		"exp":   time.Now().Add(tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return model.LoginResponse{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return model.LoginResponse{Token: signed, User: user}, nil
}

func (s *Service) ValidateToken(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, apperror.ErrUnauthorized
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, apperror.ErrUnauthorized
	}

	sub, err := mapClaims.GetSubject()
	if err != nil {
		return Claims{}, apperror.ErrUnauthorized
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Claims{}, apperror.ErrUnauthorized
	}

	admin, _ := mapClaims["admin"].(bool)
	return Claims{UserID: userID, Admin: admin}, nil
}

func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (model.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

func (s *Service) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.ListUsers(ctx)
}

// EnsureAdmin creates the configured administrator account on startup
// when it does not exist yet. No-op without configured credentials.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = s.users.CreateUser(ctx, model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Admin:        true,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	s.logger.Info("seeded admin user", "email", email)
	return nil
}
