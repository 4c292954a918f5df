package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer is written to and required in the iss claim.
const TokenIssuer = "root_tycoon"

// TokenTTL is the lifetime of issued access tokens.
var TokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

var jwtSecret []byte

// Claims carries the player id both as the standard subject and as user_id
// for clients that read it directly.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

func InitJWT(secret string) {
	if secret == "" {
		panic("JWT secret is empty")
	}
	jwtSecret = []byte(secret)
}

func GenerateJWT(userID int64) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}

// ParseJWT validates signature, issuer and time claims and returns the user id.
func ParseJWT(tokenString string) (int64, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	if claims.UserID <= 0 || claims.Subject != strconv.FormatInt(claims.UserID, 10) {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}
