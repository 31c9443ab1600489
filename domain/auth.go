package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/cardbay/goapi/base/ctx"
)

type JwtCustomClaims struct {
	UserId string `json:"data"` // name data for backward compatibility
	jwt.StandardClaims
}

// Identity is what a parsed bearer credential resolves to.
type Identity struct {
	UserId     UserId `json:"userId"`
	IsVerified bool   `json:"isVerified"`
	CanTrade   bool   `json:"canTrade"`
	IsAdmin    bool   `json:"isAdmin"`
}

type AuthUsecase interface {
	SignToken(ctx ctx.Ctx, userId UserId) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (userId string, err error)
}
