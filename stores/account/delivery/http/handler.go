package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/base/delivery"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/account"
	authMiddleware "github.com/cardbay/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	account account.Usecase
}

// New registers account endpoints
func New(e *echo.Echo, authMiddleware *authMiddleware.AuthMiddleware, account account.Usecase) {
	h := &handler{account}

	g := e.Group("/account")

	g.GET("", h.getSelf, authMiddleware.Auth())
	g.PATCH("", h.update, authMiddleware.Auth())
	g.GET("/:userId", h.getSimple)
}

func (h *handler) getSelf(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId := c.Get("userId").(domain.UserId)

	if acc, err := h.account.Get(ctx, userId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, acc)
	}
}

func (h *handler) getSimple(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId := domain.UserId(c.Param("userId"))

	if acc, err := h.account.GetSimple(ctx, userId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, acc)
	}
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId := c.Get("userId").(domain.UserId)

	p := &account.Updater{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	if acc, err := h.account.Update(ctx, userId, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, acc)
	}
}
