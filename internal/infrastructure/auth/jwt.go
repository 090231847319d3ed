package auth

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
)

// ErrNoToken request carries no auth token
var ErrNoToken = errors.New("no auth token in request")

// AppTokenClaims .
type AppTokenClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`

	jwt.StandardClaims
}

// TimeRemaining remaining time before the token get expired
func (tk *AppTokenClaims) TimeRemaining() time.Duration {
	exp := time.Unix(tk.ExpiresAt, 0)
	now := time.Now()

	if exp.Before(now) {
		return 0
	}
	return exp.Sub(now)
}

// JWTUtil issues and validates the tokens carried in the auth header
type JWTUtil struct {
	secret      []byte
	tokenHeader string
	timeout     time.Duration
	method      jwt.SigningMethod
}

// NewJWTUtil create a JWTUtil instance
func NewJWTUtil(method, secret, tokenHeader string, timeout time.Duration) *JWTUtil {
	var signMethod jwt.SigningMethod
	switch method {
	case "HS256":
		signMethod = jwt.SigningMethodHS256
	case "HS512":
		signMethod = jwt.SigningMethodHS512
	case "ES256":
		signMethod = jwt.SigningMethodES256
	default:
		signMethod = jwt.SigningMethodHS256
	}
	return &JWTUtil{
		method:      signMethod,
		secret:      []byte(secret),
		tokenHeader: tokenHeader,
		timeout:     timeout,
	}
}

// Sign sign token
func (ju *JWTUtil) Sign(claims *AppTokenClaims) (string, error) {
	token := jwt.NewWithClaims(ju.method, claims)
	return token.SignedString(ju.secret)
}

// Validate validate token string with secret and return AppTokenClaims
func (ju *JWTUtil) Validate(tokenStr string) (*AppTokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AppTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return ju.secret, nil
	})
	if err != nil {
		return nil, err
	}
	return token.Claims.(*AppTokenClaims), nil
}

// GenerateTokenStr generate a token for the given identity
func (ju *JWTUtil) GenerateTokenStr(uid, email, name string) (string, error) {
	expires := time.Now().Add(ju.timeout).Unix()
	return ju.Sign(&AppTokenClaims{
		UID:   uid,
		Email: email,
		Name:  name,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expires,
		},
	})
}

// RefreshToken set token expiration to now
func (ju *JWTUtil) RefreshToken(claims *AppTokenClaims) *AppTokenClaims {
	expires := time.Now().Add(ju.timeout).Unix()
	claims.ExpiresAt = expires
	return claims
}

// SetResponseToken expose a (re-issued) token in the response header,
// clients pick it up and replace their stored copy
func (ju *JWTUtil) SetResponseToken(c echo.Context, tokenStr string) {
	c.Response().Header().Set(ju.tokenHeader, tokenStr)
}

// SetContextToken set token in App context
func (ju *JWTUtil) SetContextToken(c echo.Context, token *AppTokenClaims) {
	c.Set(ju.tokenHeader, token)
}

// GetContextToken get token from App context
func (ju *JWTUtil) GetContextToken(c echo.Context) *AppTokenClaims {
	v, ok := c.Get(ju.tokenHeader).(*AppTokenClaims)
	if ok {
		return v
	}
	return nil
}

// ExtractToken get token string from the request header
func (ju *JWTUtil) ExtractToken(c echo.Context) (string, error) {
	token := c.Request().Header.Get(ju.tokenHeader)
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}
