package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
	"stock_watchlist/internal/feature/watchlist/usecase"
)

// ErrStore はストア障害を表すテスト用センチネルエラーです。
var ErrStore = errors.New("storage failure")

// mockWatchlistRepository はWatchlistRepositoryインターフェースのモック実装です。
type mockWatchlistRepository struct {
	CreateFunc         func(ctx context.Context, item *entity.WatchlistItem) error
	DeleteFunc         func(ctx context.Context, symbol, username string) error
	ListByUsernameFunc func(ctx context.Context, username string) ([]entity.WatchlistItem, error)
	ExistsFunc         func(ctx context.Context, symbol, username string) (bool, error)
}

func (m *mockWatchlistRepository) Create(ctx context.Context, item *entity.WatchlistItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	return nil
}

func (m *mockWatchlistRepository) Delete(ctx context.Context, symbol, username string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, symbol, username)
	}
	return nil
}

func (m *mockWatchlistRepository) ListByUsername(ctx context.Context, username string) ([]entity.WatchlistItem, error) {
	if m.ListByUsernameFunc != nil {
		return m.ListByUsernameFunc(ctx, username)
	}
	return []entity.WatchlistItem{}, nil
}

func (m *mockWatchlistRepository) Exists(ctx context.Context, symbol, username string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, symbol, username)
	}
	return false, nil
}

// mockInstrumentDirectory はInstrumentDirectoryインターフェースのモック実装です。
type mockInstrumentDirectory struct {
	ExistsBySymbolFunc func(ctx context.Context, symbol string) (bool, error)
}

func (m *mockInstrumentDirectory) ExistsBySymbol(ctx context.Context, symbol string) (bool, error) {
	if m.ExistsBySymbolFunc != nil {
		return m.ExistsBySymbolFunc(ctx, symbol)
	}
	return true, nil
}

// mockUserDirectory はUserDirectoryインターフェースのモック実装です。
type mockUserDirectory struct {
	ExistsByUsernameFunc func(ctx context.Context, username string) (bool, error)
}

func (m *mockUserDirectory) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.ExistsByUsernameFunc != nil {
		return m.ExistsByUsernameFunc(ctx, username)
	}
	return true, nil
}

func TestWatchlistUsecase_Add(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		var created *entity.WatchlistItem
		repo := &mockWatchlistRepository{
			CreateFunc: func(ctx context.Context, item *entity.WatchlistItem) error {
				item.ID = 1
				created = item
				return nil
			},
		}
		uc := usecase.NewWatchlistUsecase(repo, &mockInstrumentDirectory{}, &mockUserDirectory{})

		item, err := uc.Add(ctx, "AAPL", "alice")

		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, uint(1), item.ID)
		assert.Equal(t, "AAPL", item.Symbol)
		assert.Equal(t, "alice", item.Username)
		assert.Same(t, created, item)
	})

	t.Run("blank arguments", func(t *testing.T) {
		t.Parallel()

		uc := usecase.NewWatchlistUsecase(&mockWatchlistRepository{}, &mockInstrumentDirectory{}, &mockUserDirectory{})

		for _, pair := range [][2]string{{"", "alice"}, {"  ", "alice"}, {"AAPL", ""}, {"AAPL", " "}} {
			_, err := uc.Add(ctx, pair[0], pair[1])
			assert.ErrorIs(t, err, usecase.ErrBlankArgument)
		}
	})

	t.Run("unknown instrument", func(t *testing.T) {
		t.Parallel()

		instruments := &mockInstrumentDirectory{
			ExistsBySymbolFunc: func(ctx context.Context, symbol string) (bool, error) {
				return false, nil
			},
		}
		uc := usecase.NewWatchlistUsecase(&mockWatchlistRepository{}, instruments, &mockUserDirectory{})

		_, err := uc.Add(ctx, "NOPE", "alice")
		assert.ErrorIs(t, err, usecase.ErrInstrumentNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()

		users := &mockUserDirectory{
			ExistsByUsernameFunc: func(ctx context.Context, username string) (bool, error) {
				return false, nil
			},
		}
		uc := usecase.NewWatchlistUsecase(&mockWatchlistRepository{}, &mockInstrumentDirectory{}, users)

		_, err := uc.Add(ctx, "AAPL", "ghost")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})

	t.Run("duplicate entry", func(t *testing.T) {
		t.Parallel()

		repo := &mockWatchlistRepository{
			CreateFunc: func(ctx context.Context, item *entity.WatchlistItem) error {
				return fmt.Errorf("%w: %s for user %s", usecase.ErrAlreadyInWatchlist, item.Symbol, item.Username)
			},
		}
		uc := usecase.NewWatchlistUsecase(repo, &mockInstrumentDirectory{}, &mockUserDirectory{})

		_, err := uc.Add(ctx, "AAPL", "alice")
		assert.ErrorIs(t, err, usecase.ErrAlreadyInWatchlist)
	})

	t.Run("directory failure propagates", func(t *testing.T) {
		t.Parallel()

		instruments := &mockInstrumentDirectory{
			ExistsBySymbolFunc: func(ctx context.Context, symbol string) (bool, error) {
				return false, ErrStore
			},
		}
		uc := usecase.NewWatchlistUsecase(&mockWatchlistRepository{}, instruments, &mockUserDirectory{})

		_, err := uc.Add(ctx, "AAPL", "alice")
		assert.ErrorIs(t, err, ErrStore)
	})
}

// TestWatchlistUsecase_Add_Concurrent は同一(username, symbol)への並行Addで
// 成功が1件のみであることを検証します。重複判定はストアの原子的な
// 制約に委ねられるため、モックはそれをミューテックスで再現します。
func TestWatchlistUsecase_Add_Concurrent(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		entries = map[string]struct{}{}
	)
	repo := &mockWatchlistRepository{
		CreateFunc: func(ctx context.Context, item *entity.WatchlistItem) error {
			mu.Lock()
			defer mu.Unlock()
			key := item.Username + "/" + item.Symbol
			if _, ok := entries[key]; ok {
				return fmt.Errorf("%w: %s for user %s", usecase.ErrAlreadyInWatchlist, item.Symbol, item.Username)
			}
			entries[key] = struct{}{}
			return nil
		},
	}
	uc := usecase.NewWatchlistUsecase(repo, &mockInstrumentDirectory{}, &mockUserDirectory{})

	const workers = 10
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Add(context.Background(), "AAPL", "alice")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var successes, duplicates int
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, usecase.ErrAlreadyInWatchlist):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent Add must win")
	assert.Equal(t, workers-1, duplicates)
	assert.Len(t, entries, 1)
}

func TestWatchlistUsecase_Remove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		var gotSymbol, gotUsername string
		repo := &mockWatchlistRepository{
			DeleteFunc: func(ctx context.Context, symbol, username string) error {
				gotSymbol, gotUsername = symbol, username
				return nil
			},
		}
		uc := usecase.NewWatchlistUsecase(repo, &mockInstrumentDirectory{}, &mockUserDirectory{})

		require.NoError(t, uc.Remove(ctx, "AAPL", "alice"))
		assert.Equal(t, "AAPL", gotSymbol)
		assert.Equal(t, "alice", gotUsername)
	})

	t.Run("blank arguments", func(t *testing.T) {
		t.Parallel()

		uc := usecase.NewWatchlistUsecase(&mockWatchlistRepository{}, &mockInstrumentDirectory{}, &mockUserDirectory{})

		assert.ErrorIs(t, uc.Remove(ctx, "", "alice"), usecase.ErrBlankArgument)
		assert.ErrorIs(t, uc.Remove(ctx, "AAPL", ""), usecase.ErrBlankArgument)
	})

	t.Run("missing entry", func(t *testing.T) {
		t.Parallel()

		repo := &mockWatchlistRepository{
			DeleteFunc: func(ctx context.Context, symbol, username string) error {
				return fmt.Errorf("%w: %s for user %s", usecase.ErrItemNotFound, symbol, username)
			},
		}
		uc := usecase.NewWatchlistUsecase(repo, &mockInstrumentDirectory{}, &mockUserDirectory{})

		assert.ErrorIs(t, uc.Remove(ctx, "AAPL", "alice"), usecase.ErrItemNotFound)
	})
}

func TestWatchlistUsecase_List(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		items := []entity.WatchlistItem{
			{ID: 1, Symbol: "AAPL", Username: "alice"},
			{ID: 2, Symbol: "MSFT", Username: "alice"},
		}
		repo := &mockWatchlistRepository{
			ListByUsernameFunc: func(ctx context.Context, username string) ([]entity.WatchlistItem, error) {
				assert.Equal(t, "alice", username)
				return items, nil
			},
		}
		uc := usecase.NewWatchlistUsecase(repo, &mockInstrumentDirectory{}, &mockUserDirectory{})

		got, err := uc.List(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, items, got)
	})

	t.Run("blank username", func(t *testing.T) {
		t.Parallel()

		uc := usecase.NewWatchlistUsecase(&mockWatchlistRepository{}, &mockInstrumentDirectory{}, &mockUserDirectory{})

		_, err := uc.List(ctx, "  ")
		assert.ErrorIs(t, err, usecase.ErrBlankArgument)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()

		users := &mockUserDirectory{
			ExistsByUsernameFunc: func(ctx context.Context, username string) (bool, error) {
				return false, nil
			},
		}
		uc := usecase.NewWatchlistUsecase(&mockWatchlistRepository{}, &mockInstrumentDirectory{}, users)

		_, err := uc.List(ctx, "ghost")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestWatchlistUsecase_IsMember(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name     string
		symbol   string
		username string
		exists   bool
		err      error
		want     bool
	}{
		{name: "member", symbol: "AAPL", username: "alice", exists: true, want: true},
		{name: "not member", symbol: "TSLA", username: "alice", exists: false, want: false},
		{name: "blank symbol", symbol: "", username: "alice", want: false},
		{name: "blank username", symbol: "AAPL", username: "", want: false},
		{name: "store error is absorbed", symbol: "AAPL", username: "alice", err: ErrStore, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockWatchlistRepository{
				ExistsFunc: func(ctx context.Context, symbol, username string) (bool, error) {
					return tt.exists, tt.err
				},
			}
			uc := usecase.NewWatchlistUsecase(repo, &mockInstrumentDirectory{}, &mockUserDirectory{})

			assert.Equal(t, tt.want, uc.IsMember(ctx, tt.symbol, tt.username))
		})
	}
}
