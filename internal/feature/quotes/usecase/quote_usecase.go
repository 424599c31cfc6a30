package usecase

import (
	"context"
	"log/slog"
	"strings"

	"stock_watchlist/internal/feature/quotes/domain/entity"
)

// QuoteProvider は外部の株価情報ソースを抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/externalapi）ではなくコンシューマー（usecase）が定義します。
type QuoteProvider interface {
	// GetQuote はシンボルをティッカーとして扱い、1件の気配値を取得します。
	// プロバイダーが銘柄を知らない場合は (nil, nil) を返します。
	GetQuote(ctx context.Context, symbol string) (*entity.Instrument, error)

	// SearchSymbols はクエリを会社名の断片として扱い、候補シンボルのみを返します。
	// 候補には価格が含まれないため、個別にGetQuoteで再解決する必要があります。
	SearchSymbols(ctx context.Context, query string) ([]string, error)
}

// InstrumentRepository は解決済み銘柄の永続化層を抽象化します。
type InstrumentRepository interface {
	// Upsert はシンボルをキーとして銘柄を挿入または更新します。
	// 会社名と価格は常に最新の引数で上書きされます（last-write-wins）。
	Upsert(ctx context.Context, inst entity.Instrument) error

	// Search はシンボル完全一致、または会社名の部分一致（大文字小文字を
	// 区別しない）で銘柄を検索します。
	Search(ctx context.Context, query string) ([]entity.Instrument, error)

	// ListAll はキャッシュ済みの全銘柄を返します。
	ListAll(ctx context.Context) ([]entity.Instrument, error)

	// ListSymbols はキャッシュ済みの全シンボルのみを返します。
	ListSymbols(ctx context.Context) ([]string, error)
}

// quoteUsecase は銘柄検索（クオート解決）のユースケースを実装します。
type quoteUsecase struct {
	provider    QuoteProvider
	instruments InstrumentRepository
}

// NewQuoteUsecase はquoteUsecaseの新しいインスタンスを生成します。
func NewQuoteUsecase(provider QuoteProvider, instruments InstrumentRepository) *quoteUsecase {
	return &quoteUsecase{provider: provider, instruments: instruments}
}

// Search はフリーフォームのクエリを1件以上の価格付き銘柄に解決します。
//
// 解決は3段階で行われます:
//  1. クエリをティッカーとみなした完全一致検索。正の価格を持つ結果が
//     得られた場合はストアにupsertし、その1件のみを返します（短絡）。
//  2. 会社名検索。候補シンボルを個別に再解決し、価格0または取得失敗の
//     候補は黙って破棄します。生き残った候補はupsertして返します。
//  3. 両段階とも結果がない場合はストアにフォールバックし、過去に
//     キャッシュした銘柄から検索します。プロバイダー障害時でも検索を
//     継続可能にするため、成功時のupsertは必須です。
//
// プロバイダーのエラーやタイムアウトはこの呼び出しの失敗にはならず、
// 「結果なし」として扱います。Searchが失敗するのは不正な入力と
// ストアエラーのみです。
func (u *quoteUsecase) Search(ctx context.Context, query string) ([]entity.Instrument, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	// フェーズ1: ティッカー完全一致
	exact, err := u.provider.GetQuote(ctx, query)
	if err != nil {
		slog.Warn("quote provider unavailable for exact match", "query", query, "error", err)
	}
	if exact != nil && exact.Price > 0 {
		if err := u.instruments.Upsert(ctx, *exact); err != nil {
			return nil, err
		}
		return []entity.Instrument{*exact}, nil
	}

	// フェーズ2: 会社名検索と候補の再解決
	candidates, err := u.provider.SearchSymbols(ctx, query)
	if err != nil {
		slog.Warn("quote provider unavailable for name search", "query", query, "error", err)
		candidates = nil
	}
	results := make([]entity.Instrument, 0, len(candidates))
	for _, symbol := range candidates {
		quote, err := u.provider.GetQuote(ctx, symbol)
		if err != nil {
			// 1候補の失敗でバッチ全体を中断しない
			slog.Warn("failed to re-resolve candidate", "symbol", symbol, "error", err)
			continue
		}
		if quote == nil || quote.Price <= 0 {
			// 価格0は「市場データなし」。キャッシュしない
			continue
		}
		if err := u.instruments.Upsert(ctx, *quote); err != nil {
			return nil, err
		}
		results = append(results, *quote)
	}
	if len(results) > 0 {
		return results, nil
	}

	// フェーズ3: ローカルストアへのフォールバック
	return u.instruments.Search(ctx, query)
}

// ListAll はストアにキャッシュされている全銘柄を返します。
func (u *quoteUsecase) ListAll(ctx context.Context) ([]entity.Instrument, error) {
	return u.instruments.ListAll(ctx)
}
