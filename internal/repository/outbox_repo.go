package repository

import (
	"context"

	"schoolform-data/internal/domain"
)

// OutboxRepo 本地待同步队列
// List returns items oldest-staged first; that order is what a sync pass
// walks, so it must be stable.
type OutboxRepo interface {
	Append(ctx context.Context, item domain.OutboxItem) error
	List(ctx context.Context) ([]domain.OutboxItem, error)
	Delete(ctx context.Context, id string) error
}
