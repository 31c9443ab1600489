package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/base/delivery"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/account"
)

type AuthMiddleware struct {
	auth    domain.AuthUsecase
	account account.Usecase
}

func New(auth domain.AuthUsecase, account account.Usecase) *AuthMiddleware {
	return &AuthMiddleware{
		auth:    auth,
		account: account,
	}
}

func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuth(m.validateAuthToken)
}

func (m *AuthMiddleware) OptionalAuth() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Skipper: func(c echo.Context) bool {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			return len(auth) == 0
		},
		Validator: m.validateAuthToken,
	})
}

func (m *AuthMiddleware) IsAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := c.Get("identity").(*domain.Identity)

			if !identity.IsAdmin {
				return delivery.MakeJsonResp(c, http.StatusForbidden, "require admin privilege")
			}

			return next(c)
		}
	}
}

// CanTrade rejects accounts that are banned or not cleared for trading.
func (m *AuthMiddleware) CanTrade() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := c.Get("identity").(*domain.Identity)

			if !identity.CanTrade {
				return delivery.MakeJsonResp(c, http.StatusForbidden, domain.ErrTradingNotPermitted.Error())
			}

			return next(c)
		}
	}
}

func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	ctx := c.Get("ctx").(ctx.Ctx)
	uid, err := m.auth.ParseToken(ctx, key)
	if err != nil {
		ctx.WithField("err", err).Error("auth.ParseToken failed")
		return false, err
	}

	acc, err := m.account.Get(ctx, domain.UserId(uid))
	if err != nil {
		ctx.WithField("err", err).Error("account.Get failed")
		return false, err
	}

	c.Set("userId", acc.UserId)
	c.Set("identity", acc.ToIdentity())
	return true, nil
}
