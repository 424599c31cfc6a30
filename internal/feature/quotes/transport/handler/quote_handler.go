// Package handler はquotesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_watchlist/internal/feature/quotes/domain/entity"
	"stock_watchlist/internal/feature/quotes/transport/http/dto"
	"stock_watchlist/internal/feature/quotes/usecase"
)

// QuoteUsecase は銘柄検索に関するユースケースのインターフェースです。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type QuoteUsecase interface {
	// Search はフリーフォームのクエリを価格付き銘柄に解決します。
	Search(ctx context.Context, query string) ([]entity.Instrument, error)
	// ListAll はキャッシュ済みの全銘柄を返します。
	ListAll(ctx context.Context) ([]entity.Instrument, error)
}

// QuoteHandler は銘柄検索に関するHTTPリクエストを処理します。
type QuoteHandler struct {
	uc QuoteUsecase
}

// NewQuoteHandler は新しい QuoteHandler を作成します。
func NewQuoteHandler(uc QuoteUsecase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

// Search はGET /stocks/search?query=... を処理します。
// 空のクエリは400、ストアエラーは500を返します。プロバイダー障害は
// ユースケース内で吸収されるため、ここには届きません。
func (h *QuoteHandler) Search(c *gin.Context) {
	results, err := h.uc.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query must not be blank"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toStockResponses(results))
}

// List はGET /stocks を処理し、キャッシュ済みの全銘柄を返します。
func (h *QuoteHandler) List(c *gin.Context) {
	instruments, err := h.uc.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toStockResponses(instruments))
}

// toStockResponses はエンティティをレスポンスDTOに変換します。
func toStockResponses(instruments []entity.Instrument) []dto.StockResponse {
	out := make([]dto.StockResponse, 0, len(instruments))
	for _, inst := range instruments {
		out = append(out, dto.StockResponse{
			Symbol:      inst.Symbol,
			CompanyName: inst.CompanyName,
			Price:       inst.Price,
		})
	}
	return out
}
