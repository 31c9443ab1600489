package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/base/delivery"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/payment"
	authMiddleware "github.com/cardbay/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	payment payment.Usecase
}

// New registers payment endpoints
func New(e *echo.Echo, authMiddleware *authMiddleware.AuthMiddleware, payment payment.Usecase) {
	h := &handler{payment}

	g := e.Group("/payments")
	g.POST("/commission", h.settleCommission, authMiddleware.Auth())
}

func (h *handler) settleCommission(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	requester := c.Get("userId").(domain.UserId)

	p := &payment.SettlePayload{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	if res, err := h.payment.SettleCommission(ctx, requester, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
