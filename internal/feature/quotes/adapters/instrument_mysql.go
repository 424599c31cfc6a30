// Package adapters はquotesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_watchlist/internal/feature/quotes/domain/entity"
	"stock_watchlist/internal/feature/quotes/usecase"
)

// instrumentMySQL はInstrumentRepositoryインターフェースのMySQL実装です。
// GORMを使用してデータベース操作を行います。
type instrumentMySQL struct {
	db *gorm.DB
}

// instrumentMySQLがInstrumentRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.InstrumentRepository = (*instrumentMySQL)(nil)

// NewInstrumentRepository は指定されたgorm.DB接続でinstrumentMySQLの新しいインスタンスを生成します。
func NewInstrumentRepository(db *gorm.DB) *instrumentMySQL {
	return &instrumentMySQL{db: db}
}

// Upsert はシンボルをキーとして銘柄を挿入または更新します。
// 会社名と価格は常に最新の引数で上書きされ、同じ値での再実行は
// ストアの状態を変えません（冪等）。価格0の銘柄は永続化できません。
func (r *instrumentMySQL) Upsert(ctx context.Context, inst entity.Instrument) error {
	if inst.Price <= 0 {
		return usecase.ErrZeroPrice
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"company_name", "price", "updated_at"}),
	}).Create(&inst).Error
}

// Search はシンボル完全一致、または会社名の大文字小文字を区別しない
// 部分一致で銘柄を検索します。
func (r *instrumentMySQL) Search(ctx context.Context, query string) ([]entity.Instrument, error) {
	var instruments []entity.Instrument
	pattern := "%" + strings.ToLower(query) + "%"
	if err := r.db.WithContext(ctx).
		Where("symbol = ? OR LOWER(company_name) LIKE ?", query, pattern).
		Order("symbol ASC").
		Find(&instruments).Error; err != nil {
		return nil, err
	}
	return instruments, nil
}

// ExistsBySymbol は指定されたシンボルの銘柄が存在するかを返します。
func (r *instrumentMySQL) ExistsBySymbol(ctx context.Context, symbol string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Instrument{}).
		Where("symbol = ?", symbol).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListAll はシンボル順にすべての銘柄を返します。
func (r *instrumentMySQL) ListAll(ctx context.Context) ([]entity.Instrument, error) {
	var instruments []entity.Instrument
	if err := r.db.WithContext(ctx).
		Order("symbol ASC").
		Find(&instruments).Error; err != nil {
		return nil, err
	}
	return instruments, nil
}

// ListSymbols はシンボル順にすべての銘柄のシンボルのみを返します。
func (r *instrumentMySQL) ListSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Instrument{}).
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}
