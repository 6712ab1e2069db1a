package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"ledgerline/internal/config"
	apperrors "ledgerline/internal/errors"
)

const (
	tokenIssuer     = "ledgerline-api"
	tokenTypeAccess = "access"
)

// JWTClaims are the claims of a ledger access token. UserID scopes every
// query made on behalf of the request.
type JWTClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

func signingKey() []byte {
	return []byte(config.Get().JWTSecret)
}

var tokenParser = jwt.NewParser(
	jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	jwt.WithExpirationRequired(),
	jwt.WithLeeway(30*time.Second),
)

// GenerateAccessToken signs an access token for userID. Users authenticate
// with an external identity provider; this is used for service accounts,
// local development and tests.
func GenerateAccessToken(userID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey())
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// AuthMiddleware rejects requests without a valid access token and stores
// the token's user under "userID" and "email".
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}
		raw, ok := bearerToken(header)
		if !ok {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims := &JWTClaims{}
		token, err := tokenParser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
			return signingKey(), nil
		})
		if err != nil || !token.Valid || claims.UserID == "" {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}
		// Tokens minted by older identity providers carry no type.
		if claims.TokenType != "" && claims.TokenType != tokenTypeAccess {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, message))
}
