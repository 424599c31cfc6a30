package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
)

// WatchlistRepository はウォッチリストエントリの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type WatchlistRepository interface {
	// Create は新しいエントリを永続化します。同じ(username, symbol)の
	// エントリが既に存在する場合、ErrAlreadyInWatchlistを返します。
	// 存在チェックと挿入はストアのユニーク制約により単一の原子的な
	// 操作として行われます。
	Create(ctx context.Context, item *entity.WatchlistItem) error

	// Delete は(username, symbol)のエントリを削除します。
	// エントリが存在しない場合、ErrItemNotFoundを返します。
	Delete(ctx context.Context, symbol, username string) error

	// ListByUsername はユーザーの全エントリを、参照先の銘柄の現在値を
	// 結合した状態で返します。
	ListByUsername(ctx context.Context, username string) ([]entity.WatchlistItem, error)

	// Exists は(username, symbol)のエントリが存在するかを返します。
	Exists(ctx context.Context, symbol, username string) (bool, error)
}

// InstrumentDirectory は銘柄の存在確認の能力を抽象化します。
type InstrumentDirectory interface {
	ExistsBySymbol(ctx context.Context, symbol string) (bool, error)
}

// UserDirectory はユーザーの存在確認の能力を抽象化します。
type UserDirectory interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// watchlistUsecase はウォッチリスト操作のエンティティ間不変条件を強制します:
// 銘柄は解決済みであること、ユーザーは実在すること、
// (username, symbol)のエントリは常に高々1件であること。
type watchlistUsecase struct {
	watchlist   WatchlistRepository
	instruments InstrumentDirectory
	users       UserDirectory
}

// NewWatchlistUsecase はwatchlistUsecaseの新しいインスタンスを生成します。
func NewWatchlistUsecase(watchlist WatchlistRepository, instruments InstrumentDirectory, users UserDirectory) *watchlistUsecase {
	return &watchlistUsecase{
		watchlist:   watchlist,
		instruments: instruments,
		users:       users,
	}
}

// Add は銘柄をユーザーのウォッチリストに追加します。
// 銘柄またはユーザーが未知の場合はNotFound系のエラーを、既に登録済みの
// 場合はErrAlreadyInWatchlistを返します。重複チェックはストアの
// ユニーク制約に委ねるため、同一ペアへの並行Addでも生き残るのは1件です。
func (u *watchlistUsecase) Add(ctx context.Context, symbol, username string) (*entity.WatchlistItem, error) {
	if strings.TrimSpace(symbol) == "" || strings.TrimSpace(username) == "" {
		return nil, ErrBlankArgument
	}

	ok, err := u.instruments.ExistsBySymbol(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("check instrument %s: %w", symbol, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInstrumentNotFound, symbol)
	}

	ok, err = u.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check user %s: %w", username, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}

	item := &entity.WatchlistItem{Symbol: symbol, Username: username}
	if err := u.watchlist.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove は銘柄をユーザーのウォッチリストから削除します。
// エントリが存在しない場合はErrItemNotFoundを返します。削除は完全で、
// 履歴やソフトデリートは残しません。
func (u *watchlistUsecase) Remove(ctx context.Context, symbol, username string) error {
	if strings.TrimSpace(symbol) == "" || strings.TrimSpace(username) == "" {
		return ErrBlankArgument
	}
	return u.watchlist.Delete(ctx, symbol, username)
}

// List はユーザーの全ウォッチリストエントリを返します。各エントリは
// 参照先銘柄の現在の会社名・価格を結合して返すため、エントリ作成後に
// 価格が更新されていれば最新の値が反映されます。
func (u *watchlistUsecase) List(ctx context.Context, username string) ([]entity.WatchlistItem, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrBlankArgument
	}
	ok, err := u.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check user %s: %w", username, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	return u.watchlist.ListByUsername(ctx, username)
}

// IsMember は(username, symbol)のエントリが存在する場合にtrueを返します。
// 表示用の状態判定にのみ使われるため、未知のユーザー・銘柄やストアの
// エラーでも失敗せず、falseを返します。
func (u *watchlistUsecase) IsMember(ctx context.Context, symbol, username string) bool {
	if strings.TrimSpace(symbol) == "" || strings.TrimSpace(username) == "" {
		return false
	}
	ok, err := u.watchlist.Exists(ctx, symbol, username)
	if err != nil {
		slog.Debug("watchlist membership check failed", "symbol", symbol, "username", username, "error", err)
		return false
	}
	return ok
}
