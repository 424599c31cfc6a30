package usecase

import (
	"context"
	"log/slog"

	"stock_watchlist/internal/shared/ratelimiter"
)

// RefreshUsecase はストア内の全銘柄の価格をプロバイダーから再取得し、
// 最新の値で上書きするユースケースを定義します。検索トラフィックだけでは
// 更新されない銘柄が古い価格のまま提供されるのを防ぎます。
type RefreshUsecase struct {
	provider    QuoteProvider
	instruments InstrumentRepository
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewRefreshUsecase は新しい RefreshUsecase を作成します。
func NewRefreshUsecase(provider QuoteProvider, instruments InstrumentRepository, rateLimiter ratelimiter.RateLimiterInterface) *RefreshUsecase {
	return &RefreshUsecase{provider: provider, instruments: instruments, rateLimiter: rateLimiter}
}

// refreshOne は1銘柄の気配値を再取得してストアを更新します。
// プロバイダーが価格を返さない場合（価格0を含む）は既存の値を保持します。
func (ru *RefreshUsecase) refreshOne(ctx context.Context, symbol string) error {
	quote, err := ru.provider.GetQuote(ctx, symbol)
	if err != nil {
		return err
	}
	if quote == nil || quote.Price <= 0 {
		slog.Warn("no market data for symbol, keeping cached price", "symbol", symbol)
		return nil
	}
	return ru.instruments.Upsert(ctx, *quote)
}

// RefreshAll は指定された全シンボルの価格を順番に再取得します。
// プロバイダーのレートリミットを考慮してリクエスト間に待機を入れ、
// 1銘柄のエラーでは処理を止めずにログに出力して続行します。
func (ru *RefreshUsecase) RefreshAll(ctx context.Context, symbols []string) error {
	for _, s := range symbols {
		ru.rateLimiter.WaitIfNeeded()
		if err := ru.refreshOne(ctx, s); err != nil {
			slog.Error("failed to refresh quote", "symbol", s, "error", err)
			continue
		}
	}
	return nil
}
