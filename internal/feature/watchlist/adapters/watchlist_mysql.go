// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
	"stock_watchlist/internal/feature/watchlist/usecase"
)

// watchlistMySQL はWatchlistRepositoryインターフェースのMySQL実装です。
type watchlistMySQL struct {
	db *gorm.DB
}

// watchlistMySQLがWatchlistRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.WatchlistRepository = (*watchlistMySQL)(nil)

// NewWatchlistRepository は指定されたgorm.DB接続でwatchlistMySQLの新しいインスタンスを生成します。
func NewWatchlistRepository(db *gorm.DB) *watchlistMySQL {
	return &watchlistMySQL{db: db}
}

// Create はエントリをデータベースに追加します。
// (username, symbol)のユニーク制約が存在チェックと挿入を単一の原子的な
// 操作にまとめており、重複挿入はusecase.ErrAlreadyInWatchlistになります。
func (r *watchlistMySQL) Create(ctx context.Context, item *entity.WatchlistItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		// MySQLエラー1062: ユニークキーの重複エントリ
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return fmt.Errorf("%w: %s for user %s", usecase.ErrAlreadyInWatchlist, item.Symbol, item.Username)
		}
		// TranslateError有効時（SQLiteテストドライバーを含む）の重複検出
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s for user %s", usecase.ErrAlreadyInWatchlist, item.Symbol, item.Username)
		}
		return err
	}
	return nil
}

// Delete は(username, symbol)のエントリを削除します。
// 対象が存在しない場合はusecase.ErrItemNotFoundを返します。
func (r *watchlistMySQL) Delete(ctx context.Context, symbol, username string) error {
	res := r.db.WithContext(ctx).
		Where("symbol = ? AND username = ?", symbol, username).
		Delete(&entity.WatchlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s for user %s", usecase.ErrItemNotFound, symbol, username)
	}
	return nil
}

// ListByUsername はユーザーの全エントリを作成日時順に返します。
// 参照先の銘柄はPreloadで読み込むため、各エントリは銘柄の現在の
// 会社名・価格を保持します（作成時点のスナップショットではない）。
func (r *watchlistMySQL) ListByUsername(ctx context.Context, username string) ([]entity.WatchlistItem, error) {
	var items []entity.WatchlistItem
	if err := r.db.WithContext(ctx).
		Preload("Instrument").
		Where("username = ?", username).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Exists は(username, symbol)のエントリが存在するかをキー検索で返します。
func (r *watchlistMySQL) Exists(ctx context.Context, symbol, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.WatchlistItem{}).
		Where("symbol = ? AND username = ?", symbol, username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
