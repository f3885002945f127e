package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storeforge/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrStaffNotFound      = errors.New("staff account not found")
	ErrStaffAlreadyExists = errors.New("staff account with this email already exists")
)

// StaffRepository defines the interface for staff account data access
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) error
	FindByEmail(ctx context.Context, email string) (*domain.Staff, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error)
}

type staffRepository struct {
	db *sql.DB
}

// NewStaffRepository creates a new instance of StaffRepository
func NewStaffRepository(db *sql.DB) StaffRepository {
	return &staffRepository{db: db}
}

// Create inserts a new staff account
func (r *staffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	query := `
		INSERT INTO staff (id, email, password_hash, name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		staff.ID,
		staff.Email,
		staff.PasswordHash,
		staff.Name,
		staff.Role,
		staff.CreatedAt,
		staff.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create staff account: %w", err)
	}

	return nil
}

// FindByEmail retrieves a staff account by email
func (r *staffRepository) FindByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	query := `
		SELECT id, email, password_hash, name, role, created_at, updated_at
		FROM staff
		WHERE email = $1
	`

	staff := &domain.Staff{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&staff.ID,
		&staff.Email,
		&staff.PasswordHash,
		&staff.Name,
		&staff.Role,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to find staff by email: %w", err)
	}

	return staff, nil
}

// FindByID retrieves a staff account by ID
func (r *staffRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	query := `
		SELECT id, email, password_hash, name, role, created_at, updated_at
		FROM staff
		WHERE id = $1
	`

	staff := &domain.Staff{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&staff.ID,
		&staff.Email,
		&staff.PasswordHash,
		&staff.Name,
		&staff.Role,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to find staff by ID: %w", err)
	}

	return staff, nil
}
