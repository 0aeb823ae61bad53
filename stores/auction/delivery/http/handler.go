package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/base/delivery"
	"github.com/footcaster/goapi/base/metrics"
	"github.com/footcaster/goapi/domain"
	"github.com/footcaster/goapi/domain/auction"
	authMiddleware "github.com/footcaster/goapi/stores/auth/delivery/http/middleware"
)

var met metrics.Service

type handler struct {
	auction auction.UseCase
}

func New(e *echo.Echo, auction auction.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	met = metrics.New("auction")

	h := &handler{auction}

	gs := e.Group("/auctions")

	gs.GET("", h.getActive)

	gs.POST("", h.create, authMiddleware.Auth())

	gs.GET("/:id", h.get)

	gs.POST("/bid", h.placeBid, authMiddleware.Auth())

	gs.POST("/buy-now", h.buyNow, authMiddleware.Auth())

	gs.POST("/finalize", h.finalize, authMiddleware.Auth())
}

func (h *handler) getActive(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Offset int `query:"offset"`
		Limit  int `query:"limit"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []auction.FindAllOptions{
		auction.WithSort("endsAt", domain.SortDirAsc),
	}
	if p.Offset != 0 || p.Limit != 0 {
		opts = append(opts, auction.WithPagination(p.Offset, p.Limit))
	}

	res, err := h.auction.GetActive(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.auction.Get(ctx, c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	fid := c.Get("fid").(domain.Fid)

	type params struct {
		ItemId     string `json:"itemId" validate:"required"`
		ReserveWei string `json:"reserveWei" validate:"required"`
		BuyNowWei  string `json:"buyNowWei"`
		DurationH  int    `json:"durationHours"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.auction.Create(ctx, fid, p.ItemId, p.ReserveWei, time.Duration(p.DurationH)*time.Hour, p.BuyNowWei)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}

	met.BumpSum("auction.created", 1)
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	fid := c.Get("fid").(domain.Fid)

	type params struct {
		AuctionId string `json:"auctionId" validate:"required"`
		AmountWei string `json:"amountWei" validate:"required"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.auction.PlaceBid(ctx, p.AuctionId, fid, p.AmountWei)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}

	met.BumpSum("auction.bid", 1)
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) buyNow(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	fid := c.Get("fid").(domain.Fid)
	wallet := c.Get("wallet").(domain.Address)

	type params struct {
		AuctionId string        `json:"auctionId" validate:"required"`
		TxHash    domain.TxHash `json:"txHash" validate:"required"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.auction.BuyNow(ctx, p.AuctionId, fid, wallet, p.TxHash)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}

	met.BumpSum("auction.buyNow", 1)
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) finalize(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	fid := c.Get("fid").(domain.Fid)
	wallet := c.Get("wallet").(domain.Address)

	type params struct {
		AuctionId string        `json:"auctionId" validate:"required"`
		TxHash    domain.TxHash `json:"txHash" validate:"required"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.auction.Finalize(ctx, p.AuctionId, fid, wallet, p.TxHash)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}

	met.BumpSum("auction.finalized", 1)
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func errStatus(err error) int {
	switch err {
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrBadParamInput, domain.ErrInvalidNumberFormat, domain.ErrInvalidTxHash,
		domain.ErrAuctionClosed, domain.ErrBelowReserve, domain.ErrIncrementTooSmall,
		domain.ErrEntityNotActive, domain.ErrNotAwaitingPayment, domain.ErrNoWinningBid,
		domain.ErrBuyNowUnavailable, domain.ErrSellerWalletMissing, domain.ErrBuyerWalletMissing,
		domain.ErrPaymentInvalid:
		return http.StatusBadRequest
	case domain.ErrSelfBidForbidden, domain.ErrSelfPurchaseForbidden, domain.ErrNotWinner:
		return http.StatusForbidden
	case domain.ErrConflict, domain.ErrTxReplay, domain.ErrUseBuyNowFlow:
		return http.StatusConflict
	case domain.ErrVerificationTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
