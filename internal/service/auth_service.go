package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storeforge/internal/domain"
	"storeforge/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 10

	AccessTokenTTL = 15 * time.Minute
	SessionTTL     = 7 * 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionExpired     = errors.New("session has expired")
)

// AuthService handles staff authentication on the admin API.
type AuthService interface {
	Register(ctx context.Context, email, password, name, role string) (*domain.Staff, error)
	Login(ctx context.Context, email, password string) (accessToken, sessionToken string, staff *domain.Staff, err error)
	Logout(ctx context.Context, sessionToken string) error
	Refresh(ctx context.Context, sessionToken string) (accessToken string, err error)
	ValidateToken(tokenString string) (*Claims, error)
	GetStaffByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error)
}

// Claims are the JWT claims minted for staff access tokens.
type Claims struct {
	StaffID uuid.UUID `json:"staff_id"`
	Role    string    `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	staffRepo   repository.StaffRepository
	sessionRepo repository.SessionRepository
	jwtSecret   string
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(staffRepo repository.StaffRepository, sessionRepo repository.SessionRepository, jwtSecret string) AuthService {
	return &authService{
		staffRepo:   staffRepo,
		sessionRepo: sessionRepo,
		jwtSecret:   jwtSecret,
	}
}

// Register creates a new staff account with a hashed password.
func (s *authService) Register(ctx context.Context, email, password, name, role string) (*domain.Staff, error) {
	existing, err := s.staffRepo.FindByEmail(ctx, email)
	if err != nil && err != repository.ErrStaffNotFound {
		return nil, fmt.Errorf("failed to check existing staff: %w", err)
	}
	if existing != nil {
		return nil, repository.ErrStaffAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if role != "admin" {
		role = "staff"
	}

	staff := &domain.Staff{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to create staff account: %w", err)
	}

	return staff, nil
}

// Login authenticates a staff member and opens a session.
func (s *authService) Login(ctx context.Context, email, password string) (string, string, *domain.Staff, error) {
	staff, err := s.staffRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrStaffNotFound {
			return "", "", nil, ErrInvalidCredentials
		}
		return "", "", nil, fmt.Errorf("failed to find staff: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err := s.mintAccessToken(staff)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to mint access token: %w", err)
	}

	session := &domain.Session{
		ID:        uuid.New(),
		StaffID:   staff.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(SessionTTL),
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", "", nil, fmt.Errorf("failed to create session: %w", err)
	}

	return accessToken, session.Token, staff, nil
}

// Logout revokes the session. Revoking an unknown session is treated
// as already logged out.
func (s *authService) Logout(ctx context.Context, sessionToken string) error {
	if err := s.sessionRepo.Revoke(ctx, sessionToken); err != nil {
		if err == repository.ErrSessionNotFound {
			return nil
		}
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// Refresh mints a new access token against a live session.
func (s *authService) Refresh(ctx context.Context, sessionToken string) (string, error) {
	session, err := s.sessionRepo.FindByToken(ctx, sessionToken)
	if err != nil {
		if err == repository.ErrSessionNotFound || err == repository.ErrSessionRevoked {
			return "", ErrInvalidToken
		}
		return "", fmt.Errorf("failed to find session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		return "", ErrSessionExpired
	}

	staff, err := s.staffRepo.FindByID(ctx, session.StaffID)
	if err != nil {
		return "", fmt.Errorf("failed to find staff: %w", err)
	}

	accessToken, err := s.mintAccessToken(staff)
	if err != nil {
		return "", fmt.Errorf("failed to mint access token: %w", err)
	}

	return accessToken, nil
}

// ValidateToken validates a staff access token and returns its claims.
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GetStaffByID retrieves a staff account by ID.
func (s *authService) GetStaffByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	staff, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return staff, nil
}

func (s *authService) mintAccessToken(staff *domain.Staff) (string, error) {
	now := time.Now()
	claims := &Claims{
		StaffID: staff.ID,
		Role:    staff.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
