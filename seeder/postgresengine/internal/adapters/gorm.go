package adapters

import (
	"context"

	"gorm.io/gorm"
)

// GORMAdapter implements DBAdapter for *gorm.DB. Statements are passed through as raw SQL.
type GORMAdapter struct {
	db *gorm.DB
}

func NewGORMAdapter(db *gorm.DB) GORMAdapter {
	return GORMAdapter{db: db}
}

func (a GORMAdapter) Exec(ctx context.Context, query string) (int64, error) {
	return gormExec(a.db.WithContext(ctx), query)
}

func (a GORMAdapter) QueryInt(ctx context.Context, query string) (int, error) {
	var n int
	if err := a.db.WithContext(ctx).Raw(query).Scan(&n).Error; err != nil {
		return 0, err
	}

	return n, nil
}

func (a GORMAdapter) Begin(ctx context.Context) (DBTx, error) {
	tx := a.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	return gormTx{tx: tx}, nil
}

type gormTx struct {
	tx *gorm.DB
}

func (t gormTx) Exec(ctx context.Context, query string) (int64, error) {
	return gormExec(t.tx.WithContext(ctx), query)
}

func (t gormTx) Commit(_ context.Context) error {
	return t.tx.Commit().Error
}

func (t gormTx) Rollback(_ context.Context) error {
	return t.tx.Rollback().Error
}

func gormExec(db *gorm.DB, query string) (int64, error) {
	result := db.Exec(query)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
