package service

import (
	"errors"
	"time"

	"github.com/echologistics/carrier-intake/internal/auth"
	"github.com/echologistics/carrier-intake/internal/models"
	"github.com/echologistics/carrier-intake/internal/repository"
)

// ErrInvalidCredentials is returned for a failed admin login. The same
// message covers unknown email and wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	users     *repository.UserRepo
	jwtSecret string
}

func NewAuthService(users *repository.UserRepo, jwtSecret string) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret}
}

type AuthResult struct {
	Token string              `json:"token"`
	User  models.UserResponse `json:"user"`
}

// Login checks admin credentials and issues the session token gating
// all admin operations.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	token, err := auth.GenerateToken(s.jwtSecret, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.ToResponse()}, nil
}

// Me returns the account behind a validated token.
func (s *AuthService) Me(email string) (*models.UserResponse, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	resp := user.ToResponse()
	return &resp, nil
}

// SeedAdmin creates the configured admin account if it does not exist.
// There is no open registration; admins are provisioned at startup.
func (s *AuthService) SeedAdmin(email, password string) error {
	existing, _ := s.users.FindByEmail(email)
	if existing != nil {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Admin",
		Role:         "admin",
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	_, err = s.users.Create(user)
	return err
}
