package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/base/delivery"
	"github.com/footcaster/goapi/domain"
	"github.com/footcaster/goapi/domain/quote"
	"github.com/footcaster/goapi/middleware"
)

type handler struct {
	quote quote.UseCase
}

func New(e *echo.Echo, quote quote.UseCase) {
	h := &handler{quote}

	e.GET("/market/quote", h.getQuote, middleware.CacheHttp(10*time.Second))
}

func (h *handler) getQuote(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Usd string `query:"usd" validate:"required"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	usd, err := decimal.NewFromString(p.Usd)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	res, err := h.quote.GetQuote(ctx, usd)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func errStatus(err error) int {
	switch err {
	case domain.ErrBadParamInput:
		return http.StatusBadRequest
	case domain.ErrInvalidPriceData:
		return http.StatusBadGateway
	case domain.ErrPriceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
