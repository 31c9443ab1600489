package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/base/delivery"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/account"
)

type authHandler struct {
	auth    domain.AuthUsecase
	account account.Usecase
}

func New(e *echo.Echo, auth domain.AuthUsecase, account account.Usecase) {
	handler := &authHandler{
		auth:    auth,
		account: account,
	}
	g := e.Group("/auth")
	g.POST("/register", handler.register)
	g.POST("/login", handler.login)
}

type tokenResp struct {
	Token   string           `json:"token"`
	Account *account.Account `json:"account"`
}

func (h *authHandler) register(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &account.CreatePayload{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	acc, err := h.account.Create(ctx, p)
	if err != nil {
		ctx.WithField("err", err).Error("account.Create failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	tkn, err := h.auth.SignToken(ctx, acc.UserId)
	if err != nil {
		ctx.WithField("err", err).Error("auth.SignToken failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusCreated, tokenResp{Token: tkn, Account: acc})
}

func (h *authHandler) login(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	acc, err := h.account.ValidateCredentials(ctx, p.Email, p.Password)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	tkn, err := h.auth.SignToken(ctx, acc.UserId)
	if err != nil {
		ctx.WithField("err", err).Error("auth.SignToken failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, tokenResp{Token: tkn, Account: acc})
}
