package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists the two profile records.
type Repository interface {
	GetIndividual(ctx context.Context) (Individual, error)
	PutIndividual(ctx context.Context, p Individual) error
	GetOrganization(ctx context.Context) (Organization, error)
	PutOrganization(ctx context.Context, p Organization) error
}

// PostgresRepository stores each variant as a single upserted row.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type individualRow struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	DateOfBirth string `json:"date_of_birth"`
	Bio         string `json:"bio"`
}

type organizationRow struct {
	Name               string `json:"name"`
	BusinessEmail      string `json:"business_email"`
	Phone              string `json:"phone"`
	Address            string `json:"address"`
	RegistrationNumber string `json:"registration_number"`
	Industry           string `json:"industry"`
	FoundingDate       string `json:"founding_date"`
	Description        string `json:"description"`
}

// GetIndividual fetches the personal profile, zero-valued when never saved.
func (r *PostgresRepository) GetIndividual(ctx context.Context) (Individual, error) {
	data, avatar, err := r.get(ctx, VariantIndividual)
	if err != nil {
		return Individual{}, err
	}
	var row individualRow
	if len(data) > 0 {
		if err := json.Unmarshal(data, &row); err != nil {
			return Individual{}, fmt.Errorf("decode individual profile: %w", err)
		}
	}
	return Individual{
		FullName:    row.FullName,
		Email:       row.Email,
		Phone:       row.Phone,
		Address:     row.Address,
		DateOfBirth: row.DateOfBirth,
		Bio:         row.Bio,
		Avatar:      avatar,
	}, nil
}

// PutIndividual upserts the personal profile.
func (r *PostgresRepository) PutIndividual(ctx context.Context, p Individual) error {
	data, err := json.Marshal(individualRow{
		FullName:    p.FullName,
		Email:       p.Email,
		Phone:       p.Phone,
		Address:     p.Address,
		DateOfBirth: p.DateOfBirth,
		Bio:         p.Bio,
	})
	if err != nil {
		return fmt.Errorf("encode individual profile: %w", err)
	}
	return r.put(ctx, VariantIndividual, data, p.Avatar)
}

// GetOrganization fetches the business profile, zero-valued when never saved.
func (r *PostgresRepository) GetOrganization(ctx context.Context) (Organization, error) {
	data, logo, err := r.get(ctx, VariantOrganization)
	if err != nil {
		return Organization{}, err
	}
	var row organizationRow
	if len(data) > 0 {
		if err := json.Unmarshal(data, &row); err != nil {
			return Organization{}, fmt.Errorf("decode organization profile: %w", err)
		}
	}
	return Organization{
		Name:               row.Name,
		BusinessEmail:      row.BusinessEmail,
		Phone:              row.Phone,
		Address:            row.Address,
		RegistrationNumber: row.RegistrationNumber,
		Industry:           row.Industry,
		FoundingDate:       row.FoundingDate,
		Description:        row.Description,
		Logo:               logo,
	}, nil
}

// PutOrganization upserts the business profile.
func (r *PostgresRepository) PutOrganization(ctx context.Context, p Organization) error {
	data, err := json.Marshal(organizationRow{
		Name:               p.Name,
		BusinessEmail:      p.BusinessEmail,
		Phone:              p.Phone,
		Address:            p.Address,
		RegistrationNumber: p.RegistrationNumber,
		Industry:           p.Industry,
		FoundingDate:       p.FoundingDate,
		Description:        p.Description,
	})
	if err != nil {
		return fmt.Errorf("encode organization profile: %w", err)
	}
	return r.put(ctx, VariantOrganization, data, p.Logo)
}

func (r *PostgresRepository) get(ctx context.Context, v Variant) ([]byte, []byte, error) {
	row := r.db.QueryRow(ctx, `SELECT data, avatar FROM profiles WHERE variant = $1`, string(v))
	var data, avatar []byte
	if err := row.Scan(&data, &avatar); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return data, avatar, nil
}

func (r *PostgresRepository) put(ctx context.Context, v Variant, data, avatar []byte) error {
	_, err := r.db.Exec(ctx, `INSERT INTO profiles (variant, data, avatar, updated_at)
        VALUES ($1, $2, $3, now())
        ON CONFLICT (variant) DO UPDATE SET data = $2, avatar = $3, updated_at = now()`,
		string(v), data, avatar)
	return err
}
