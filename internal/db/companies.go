package db

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/craftd/internal/types"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]`)

// NormalizeName converts a company name to a normalized form for matching
// Example: "Affirm, Inc." -> "affirminc"
func NormalizeName(name string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(name), "")
}

// FindOrCreateCompany finds an existing company by normalized name or creates a new one
func (db *DB) FindOrCreateCompany(ctx context.Context, name string, industry *string) (*types.Company, error) {
	return findOrCreateCompany(ctx, db.pool, name, industry)
}

func findOrCreateCompany(ctx context.Context, q querier, name string, industry *string) (*types.Company, error) {
	normalized := NormalizeName(name)
	if normalized == "" {
		return nil, fmt.Errorf("company name cannot be empty")
	}

	company, err := getCompanyByNormalizedName(ctx, q, normalized)
	if err != nil {
		return nil, err
	}
	if company != nil {
		return company, nil
	}

	var c types.Company
	err = q.QueryRow(ctx,
		`INSERT INTO companies (name, name_normalized, industry)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (name_normalized) DO UPDATE SET updated_at = NOW()
		 RETURNING id, name, industry`,
		strings.TrimSpace(name), normalized, industry,
	).Scan(&c.ID, &c.Name, &c.Industry)
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return &c, nil
}

// GetCompanyByNormalizedName retrieves a company by its normalized name
func (db *DB) GetCompanyByNormalizedName(ctx context.Context, normalized string) (*types.Company, error) {
	return getCompanyByNormalizedName(ctx, db.pool, normalized)
}

func getCompanyByNormalizedName(ctx context.Context, q querier, normalized string) (*types.Company, error) {
	var c types.Company
	err := q.QueryRow(ctx,
		`SELECT id, name, industry FROM companies WHERE name_normalized = $1`,
		normalized,
	).Scan(&c.ID, &c.Name, &c.Industry)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &c, nil
}
