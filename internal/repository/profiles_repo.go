package repository

import (
	"context"
	"errors"

	"schoolform-data/internal/domain"
)

// ErrProfileNotFound 查询的 school_id 尚未落库
var ErrProfileNotFound = errors.New("school profile not found")

// ProfilesRepo 学校档案存储（sink 侧）
// Save is an idempotent upsert keyed by school_id: resubmitting the same id
// overwrites prior values and restamps the server-side submission time.
type ProfilesRepo interface {
	Save(ctx context.Context, p domain.SchoolProfile) error
	Get(ctx context.Context, schoolID string) (*domain.StoredProfile, error)
}
