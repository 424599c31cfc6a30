package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authadapters "stock_watchlist/internal/feature/auth/adapters"
	authentity "stock_watchlist/internal/feature/auth/domain/entity"
	quotesadapters "stock_watchlist/internal/feature/quotes/adapters"
	quotesentity "stock_watchlist/internal/feature/quotes/domain/entity"
	quotesusecase "stock_watchlist/internal/feature/quotes/usecase"
	watchlistadapters "stock_watchlist/internal/feature/watchlist/adapters"
	"stock_watchlist/internal/feature/watchlist/domain/entity"
	"stock_watchlist/internal/feature/watchlist/usecase"
)

// stubQuoteProvider は価格テーブルを引くだけのQuoteProvider実装です。
type stubQuoteProvider struct {
	quotes map[string]quotesentity.Instrument
}

func (s *stubQuoteProvider) GetQuote(ctx context.Context, symbol string) (*quotesentity.Instrument, error) {
	if inst, ok := s.quotes[symbol]; ok {
		return &inst, nil
	}
	return nil, nil
}

func (s *stubQuoteProvider) SearchSymbols(ctx context.Context, query string) ([]string, error) {
	return nil, nil
}

// TestResolveAddListRemove は実際のアダプターとインメモリSQLiteを使い、
// 検索からウォッチリスト追加・一覧・削除までの一連の流れを検証します。
func TestResolveAddListRemove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&authentity.User{},
		&quotesentity.Instrument{},
		&entity.WatchlistItem{},
	))

	userRepo := authadapters.NewUserMySQL(db)
	instrumentRepo := quotesadapters.NewInstrumentRepository(db)
	watchlistRepo := watchlistadapters.NewWatchlistRepository(db)

	provider := &stubQuoteProvider{
		quotes: map[string]quotesentity.Instrument{
			"AAPL": {Symbol: "AAPL", CompanyName: "Apple Inc", Price: 190.5},
		},
	}
	quotesUC := quotesusecase.NewQuoteUsecase(provider, instrumentRepo)
	watchlistUC := usecase.NewWatchlistUsecase(watchlistRepo, instrumentRepo, userRepo)

	require.NoError(t, userRepo.Create(ctx, &authentity.User{Username: "alice", Password: "hashed"}))

	// 未解決の銘柄はウォッチリストに追加できない
	_, err = watchlistUC.Add(ctx, "AAPL", "alice")
	require.ErrorIs(t, err, usecase.ErrInstrumentNotFound)

	// 検索で解決するとストアに永続化される
	results, err := quotesUC.Search(ctx, "AAPL")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 190.5, results[0].Price)

	// 追加して一覧に現れる
	item, err := watchlistUC.Add(ctx, "AAPL", "alice")
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.True(t, watchlistUC.IsMember(ctx, "AAPL", "alice"))

	items, err := watchlistUC.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Apple Inc", items[0].Instrument.CompanyName)
	assert.Equal(t, 190.5, items[0].Instrument.Price)

	// 二重追加は拒否される
	_, err = watchlistUC.Add(ctx, "AAPL", "alice")
	require.ErrorIs(t, err, usecase.ErrAlreadyInWatchlist)

	// 価格が更新されると一覧は最新の値を返す
	provider.quotes["AAPL"] = quotesentity.Instrument{Symbol: "AAPL", CompanyName: "Apple Inc", Price: 160.0}
	_, err = quotesUC.Search(ctx, "AAPL")
	require.NoError(t, err)

	items, err = watchlistUC.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 160.0, items[0].Instrument.Price)

	// 削除すると一覧から消える
	require.NoError(t, watchlistUC.Remove(ctx, "AAPL", "alice"))
	assert.False(t, watchlistUC.IsMember(ctx, "AAPL", "alice"))

	items, err = watchlistUC.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, items)

	// 存在しないエントリの削除は404相当
	err = watchlistUC.Remove(ctx, "AAPL", "alice")
	require.ErrorIs(t, err, usecase.ErrItemNotFound)
}
