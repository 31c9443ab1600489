package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/base/delivery"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/vendors"
	authMiddleware "github.com/cardbay/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	vendor vendor.Usecase
}

// New registers vendor endpoints
func New(e *echo.Echo, authMiddleware *authMiddleware.AuthMiddleware, vendor vendor.Usecase) {
	h := &handler{vendor}

	g := e.Group("/vendor")
	g.PUT("", h.upsert, authMiddleware.Auth())
	g.GET("/:userId", h.get)
}

func (h *handler) upsert(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId := c.Get("userId").(domain.UserId)

	p := &vendor.UpsertPayload{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	if res, err := h.vendor.Upsert(ctx, userId, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId := domain.UserId(c.Param("userId"))

	if res, err := h.vendor.Get(ctx, userId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
