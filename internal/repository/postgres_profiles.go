package repository

import (
	"context"
	"database/sql"
	"fmt"

	"schoolform-data/internal/domain"
)

// PostgresProfilesRepo 学校档案 Repository 实现（PostgreSQL）
type PostgresProfilesRepo struct {
	db *sql.DB
}

// NewPostgresProfilesRepo 创建学校档案 Repository
func NewPostgresProfilesRepo(db *sql.DB) *PostgresProfilesRepo {
	return &PostgresProfilesRepo{db: db}
}

// EnsureSchema 建表（幂等）
func (r *PostgresProfilesRepo) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS school_profiles (
		school_id TEXT PRIMARY KEY,
		school_name TEXT,
		region TEXT,
		province TEXT,
		division TEXT,
		district TEXT,
		municipality TEXT,
		leg_district TEXT,
		barangay TEXT,
		mother_school_id TEXT,
		latitude TEXT,
		longitude TEXT,
		curricular_offering TEXT,
		submitted_by TEXT,
		submitted_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create school_profiles table: %w", err)
	}
	return nil
}

// Save 幂等 upsert：同一 school_id 重复提交为 last-write-wins，并刷新服务端提交时间
func (r *PostgresProfilesRepo) Save(ctx context.Context, p domain.SchoolProfile) error {
	query := `
	INSERT INTO school_profiles (
		school_id, school_name, region, province, division, district,
		municipality, leg_district, barangay, mother_school_id,
		latitude, longitude, curricular_offering, submitted_by
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (school_id)
	DO UPDATE SET
		school_name = EXCLUDED.school_name,
		region = EXCLUDED.region,
		province = EXCLUDED.province,
		division = EXCLUDED.division,
		district = EXCLUDED.district,
		municipality = EXCLUDED.municipality,
		leg_district = EXCLUDED.leg_district,
		barangay = EXCLUDED.barangay,
		mother_school_id = EXCLUDED.mother_school_id,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		curricular_offering = EXCLUDED.curricular_offering,
		submitted_by = EXCLUDED.submitted_by,
		submitted_at = CURRENT_TIMESTAMP`

	_, err := r.db.ExecContext(ctx, query,
		p.SchoolID, p.SchoolName, p.Region, p.Province, p.Division, p.District,
		p.Municipality, p.LegDistrict, p.Barangay, p.MotherSchoolID,
		p.Latitude, p.Longitude, p.CurricularOffering, p.SubmittedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save school profile %s: %w", p.SchoolID, err)
	}
	return nil
}

// Get 按 school_id 查询已落库档案
func (r *PostgresProfilesRepo) Get(ctx context.Context, schoolID string) (*domain.StoredProfile, error) {
	var sp domain.StoredProfile
	err := r.db.QueryRowContext(ctx,
		`SELECT school_id, school_name, region, province, division, district,
		        municipality, leg_district, barangay, mother_school_id,
		        latitude, longitude, curricular_offering, submitted_by, submitted_at
		 FROM school_profiles WHERE school_id = $1`, schoolID,
	).Scan(
		&sp.SchoolID, &sp.SchoolName, &sp.Region, &sp.Province, &sp.Division, &sp.District,
		&sp.Municipality, &sp.LegDistrict, &sp.Barangay, &sp.MotherSchoolID,
		&sp.Latitude, &sp.Longitude, &sp.CurricularOffering, &sp.SubmittedBy, &sp.SubmittedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get school profile %s: %w", schoolID, err)
	}
	return &sp, nil
}
