package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/failboard/failboard/utils"
)

const (
	// ContextUserIDKey is the key used to store authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextUsernameKey stores the username inside Gin context.
	ContextUsernameKey = "username"
)

// AuthRequired ensures the request carries a valid bearer token and places
// the verified identity into the Gin context. The core never accepts a
// caller-supplied user id.
func AuthRequired(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, ok := bearerClaims(ctx, tokens)
		if !ok {
			ctx.Abort()
			return
		}
		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextUsernameKey, claims.Username)
		ctx.Next()
	}
}

// AuthOptional extracts identity when a valid bearer token is present and
// continues anonymously otherwise. Used where a response is enriched for
// signed-in callers (the caller's own vote on a post).
func AuthOptional(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			ctx.Next()
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			ctx.Next()
			return
		}
		if claims, err := tokens.Parse(strings.TrimSpace(parts[1])); err == nil {
			ctx.Set(ContextUserIDKey, claims.UserID)
			ctx.Set(ContextUsernameKey, claims.Username)
		}
		ctx.Next()
	}
}

func bearerClaims(ctx *gin.Context, tokens *utils.TokenIssuer) (*utils.Claims, bool) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid authorization header format")
		return nil, false
	}

	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		utils.Error(ctx, http.StatusUnauthorized, 40103, "empty bearer token")
		return nil, false
	}

	claims, err := tokens.Parse(tokenString)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40104, "invalid token")
		return nil, false
	}
	return claims, true
}
