package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"schoolform-data/internal/domain"
)

// SQLiteOutboxRepo 基于 SQLite 的本地 outbox 存储（单用户/单设备，跨重启持久）
type SQLiteOutboxRepo struct {
	db *sql.DB
}

// NewSQLiteOutboxRepo 打开（或创建）outbox 数据库文件
func NewSQLiteOutboxRepo(path string) (*SQLiteOutboxRepo, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open outbox database: %w", err)
	}

	r := &SQLiteOutboxRepo{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate outbox database: %w", err)
	}
	return r, nil
}

func (r *SQLiteOutboxRepo) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS outbox (
		id TEXT PRIMARY KEY,
		school_id TEXT NOT NULL,
		label TEXT NOT NULL,
		destination TEXT NOT NULL,
		payload TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_outbox_created_at ON outbox(created_at);
	`
	_, err := r.db.Exec(schema)
	return err
}

// Append 追加一条待同步提交
func (r *SQLiteOutboxRepo) Append(ctx context.Context, item domain.OutboxItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO outbox (id, school_id, label, destination, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID, item.SchoolID, item.Label, item.Destination, string(item.Payload), item.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to append outbox item: %w", err)
	}
	return nil
}

// List 按暂存时间先后返回全部条目（同步遍历顺序）
// id is the tiebreaker so the order stays stable for items staged within
// the same timestamp granularity.
func (r *SQLiteOutboxRepo) List(ctx context.Context) ([]domain.OutboxItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, school_id, label, destination, payload, created_at
		 FROM outbox ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list outbox items: %w", err)
	}
	defer rows.Close()

	items := []domain.OutboxItem{}
	for rows.Next() {
		var item domain.OutboxItem
		var payload string
		if err := rows.Scan(&item.ID, &item.SchoolID, &item.Label, &item.Destination, &payload, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outbox item: %w", err)
		}
		item.Payload = []byte(payload)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read outbox items: %w", err)
	}
	return items, nil
}

// Delete 按 id 删除一条（投递确认后立即调用）
func (r *SQLiteOutboxRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM outbox WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete outbox item: %w", err)
	}
	return nil
}

// Close 关闭数据库连接
func (r *SQLiteOutboxRepo) Close() error {
	return r.db.Close()
}
