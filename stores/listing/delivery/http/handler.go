package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/base/delivery"
	"github.com/footcaster/goapi/base/metrics"
	"github.com/footcaster/goapi/domain"
	"github.com/footcaster/goapi/domain/listing"
	authMiddleware "github.com/footcaster/goapi/stores/auth/delivery/http/middleware"
)

var met metrics.Service

type handler struct {
	listing listing.UseCase
}

func New(e *echo.Echo, listing listing.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	met = metrics.New("listing")

	h := &handler{listing}

	g := e.Group("/market")

	g.GET("/listings", h.getActive)

	g.POST("/listings", h.create, authMiddleware.Auth())

	g.GET("/listings/:id", h.get)

	g.DELETE("/listings/:id", h.cancel, authMiddleware.Auth())

	g.POST("/buy", h.buy, authMiddleware.Auth())
}

func (h *handler) getActive(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Offset    int         `query:"offset"`
		Limit     int         `query:"limit"`
		SellerFid *domain.Fid `query:"sellerFid"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []listing.FindAllOptions{
		listing.WithSort("createdAt", domain.SortDirDesc),
	}
	if p.Offset != 0 || p.Limit != 0 {
		opts = append(opts, listing.WithPagination(p.Offset, p.Limit))
	}
	if p.SellerFid != nil {
		opts = append(opts, listing.WithSellerFid(*p.SellerFid))
	}

	res, err := h.listing.GetActive(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.listing.Get(ctx, c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	fid := c.Get("fid").(domain.Fid)

	type params struct {
		ItemId   string `json:"itemId" validate:"required"`
		PriceWei string `json:"priceWei" validate:"required"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.Create(ctx, fid, p.ItemId, p.PriceWei)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}

	met.BumpSum("listing.created", 1)
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	fid := c.Get("fid").(domain.Fid)

	if err := h.listing.Cancel(ctx, c.Param("id"), fid); err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	fid := c.Get("fid").(domain.Fid)
	wallet := c.Get("wallet").(domain.Address)

	type params struct {
		ListingId string        `json:"listingId" validate:"required"`
		TxHash    domain.TxHash `json:"txHash" validate:"required"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.Buy(ctx, p.ListingId, fid, wallet, p.TxHash)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}

	met.BumpSum("listing.sold", 1)
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func errStatus(err error) int {
	switch err {
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrBadParamInput, domain.ErrInvalidNumberFormat, domain.ErrInvalidTxHash,
		domain.ErrEntityNotActive, domain.ErrSellerWalletMissing, domain.ErrBuyerWalletMissing,
		domain.ErrPaymentInvalid:
		return http.StatusBadRequest
	case domain.ErrSelfPurchaseForbidden:
		return http.StatusForbidden
	case domain.ErrConflict, domain.ErrTxReplay:
		return http.StatusConflict
	case domain.ErrVerificationTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
