package yahoofinance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"stock_watchlist/internal/feature/quotes/domain/entity"
	"stock_watchlist/internal/feature/quotes/usecase"
	"stock_watchlist/internal/platform/externalapi/yahoofinance/dto"
)

// YahooFinanceProvider はYahoo Finance外部APIから株価データを取得する
// QuoteProvider実装です。
type YahooFinanceProvider struct {
	cfg    Config
	client *http.Client
}

// YahooFinanceProviderがQuoteProviderを実装していることをコンパイル時に検証します。
var _ usecase.QuoteProvider = (*YahooFinanceProvider)(nil)

// NewYahooFinanceProvider は指定された設定とHTTPクライアントでYahooFinanceProviderの新しいインスタンスを生成します。
func NewYahooFinanceProvider(cfg Config, client *http.Client) *YahooFinanceProvider {
	return &YahooFinanceProvider{cfg: cfg, client: client}
}

// get はRapidAPIの認証ヘッダー付きでGETリクエストを実行します。
func (y *YahooFinanceProvider) get(ctx context.Context, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-rapidapi-key", y.cfg.RapidAPIKey)
	req.Header.Set("x-rapidapi-host", y.cfg.RapidAPIHost)
	return y.client.Do(req)
}

// GetQuote はmarket/v2/get-quotesエンドポイントからシンボル1件の気配値を
// 取得し、entity.Instrumentとして返します。プロバイダーが銘柄を知らない
// 場合は (nil, nil) を返します。会社名はlongName、shortName、シンボルの
// 順でフォールバックし、価格はsummaryDetailのregularMarketPrice、
// previousClose、トップレベルのregularMarketPriceの順でフォールバック
// します。価格が得られない場合は0のまま返し、破棄は呼び出し側が行います。
func (y *YahooFinanceProvider) GetQuote(ctx context.Context, symbol string) (*entity.Instrument, error) {
	q := url.Values{}
	// クエリパラメータを追加
	q.Set("region", "US")
	q.Set("symbols", symbol)

	u := fmt.Sprintf("%s/market/v2/get-quotes?%s", y.cfg.BaseURL, q.Encode())

	res, err := y.get(ctx, u)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("yahoofinance http %d", res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.GetQuotesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if e := body.QuoteResponse.Error; e != nil {
		return nil, fmt.Errorf("yahoofinance: %s", e.Description)
	}
	if len(body.QuoteResponse.Result) == 0 {
		return nil, nil
	}

	r := body.QuoteResponse.Result[0]

	// 会社名のフォールバックチェーン
	name := r.LongName
	if name == "" {
		name = r.ShortName
	}
	if name == "" {
		name = symbol
	}

	// 価格のフォールバックチェーン
	var price float64
	switch {
	case r.QuoteSummary != nil && r.QuoteSummary.SummaryDetail != nil && r.QuoteSummary.SummaryDetail.RegularMarketPrice != nil:
		price = *r.QuoteSummary.SummaryDetail.RegularMarketPrice
	case r.QuoteSummary != nil && r.QuoteSummary.SummaryDetail != nil && r.QuoteSummary.SummaryDetail.PreviousClose != nil:
		price = *r.QuoteSummary.SummaryDetail.PreviousClose
	case r.RegularMarketPrice != nil:
		price = *r.RegularMarketPrice
	}

	return &entity.Instrument{
		Symbol:      symbol,
		CompanyName: name,
		Price:       price,
	}, nil
}

// SearchSymbols はauto-completeエンドポイントでクエリに一致する候補
// シンボルを検索します。価格は含まれないため、呼び出し側がGetQuoteで
// 個別に再解決します。
func (y *YahooFinanceProvider) SearchSymbols(ctx context.Context, query string) ([]string, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("region", "US")

	u := fmt.Sprintf("%s/auto-complete?%s", y.cfg.BaseURL, q.Encode())

	res, err := y.get(ctx, u)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("yahoofinance http %d", res.StatusCode)
	}

	var body dto.AutoCompleteResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}

	symbols := make([]string, 0, len(body.Quotes))
	for _, quote := range body.Quotes {
		if quote.Symbol == "" {
			continue
		}
		symbols = append(symbols, quote.Symbol)
	}
	return symbols, nil
}
