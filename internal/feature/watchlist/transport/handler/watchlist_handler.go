// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
	"stock_watchlist/internal/feature/watchlist/transport/http/dto"
	"stock_watchlist/internal/feature/watchlist/usecase"
	jwtmw "stock_watchlist/internal/platform/jwt"
)

// WatchlistUsecase はウォッチリスト操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type WatchlistUsecase interface {
	Add(ctx context.Context, symbol, username string) (*entity.WatchlistItem, error)
	Remove(ctx context.Context, symbol, username string) error
	List(ctx context.Context, username string) ([]entity.WatchlistItem, error)
	IsMember(ctx context.Context, symbol, username string) bool
}

// WatchlistHandler はウォッチリスト操作のHTTPリクエストを処理します。
// 対象ユーザーはJWTミドルウェアがコンテキストに格納したユーザー名で、
// リクエストボディやグローバル状態からは取得しません。
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler はWatchlistHandlerの新しいインスタンスを生成します。
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// username は認証済みユーザー名をコンテキストから取り出します。
// ミドルウェアを通っていないリクエストは401で打ち切ります。
func username(c *gin.Context) (string, bool) {
	name := c.GetString(jwtmw.ContextUsername)
	if name == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return "", false
	}
	return name, true
}

// Add はPOST /watchlist/:symbol を処理します。
// 未解決の銘柄・未知のユーザーは404、登録済みは409を返します。
func (h *WatchlistHandler) Add(c *gin.Context) {
	name, ok := username(c)
	if !ok {
		return
	}
	symbol := c.Param("symbol")

	item, err := h.uc.Add(c.Request.Context(), symbol, name)
	if err != nil {
		status := statusFor(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.WatchlistItemCreatedResponse{
		ID:        item.ID,
		CreatedAt: item.CreatedAt,
		Username:  item.Username,
		Symbol:    item.Symbol,
	})
}

// Remove はDELETE /watchlist/:symbol を処理します。
// エントリが存在しない場合は404を返します。
func (h *WatchlistHandler) Remove(c *gin.Context) {
	name, ok := username(c)
	if !ok {
		return
	}
	symbol := c.Param("symbol")

	if err := h.uc.Remove(c.Request.Context(), symbol, name); err != nil {
		status := statusFor(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// List はGET /watchlist を処理し、ユーザーの全エントリを参照先銘柄の
// 現在値とともに返します。
func (h *WatchlistHandler) List(c *gin.Context) {
	name, ok := username(c)
	if !ok {
		return
	}

	items, err := h.uc.List(c.Request.Context(), name)
	if err != nil {
		status := statusFor(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.WatchlistItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.WatchlistItemResponse{
			ID:        item.ID,
			CreatedAt: item.CreatedAt,
			Username:  item.Username,
			Stock: dto.StockResponse{
				Symbol:      item.Instrument.Symbol,
				CompanyName: item.Instrument.CompanyName,
				Price:       item.Instrument.Price,
			},
		})
	}
	c.JSON(http.StatusOK, out)
}

// Membership はGET /watchlist/:symbol を処理し、銘柄がウォッチリストに
// 含まれるかを返します。表示用の判定なので常に200で応答します。
func (h *WatchlistHandler) Membership(c *gin.Context) {
	name, ok := username(c)
	if !ok {
		return
	}
	symbol := c.Param("symbol")

	member := h.uc.IsMember(c.Request.Context(), symbol, name)
	c.JSON(http.StatusOK, dto.MembershipResponse{Symbol: symbol, Member: member})
}

// statusFor はユースケースのセンチネルエラーをHTTPステータスに対応付けます。
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrBlankArgument):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrInstrumentNotFound),
		errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrAlreadyInWatchlist):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
