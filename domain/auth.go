package domain

import (
	"github.com/footcaster/goapi/base/ctx"
	"github.com/golang-jwt/jwt"
)

type JwtCustomClaims struct {
	Fid    Fid    `json:"fid"`
	Wallet string `json:"wallet,omitempty"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	SignToken(ctx ctx.Ctx, fid Fid, wallet Address) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (*JwtCustomClaims, error)
}
