package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/failboard/failboard/middleware"
	"github.com/failboard/failboard/services"
	"github.com/failboard/failboard/utils"
)

// respondError maps a core error kind to its HTTP status. This is the only
// place the mapping exists; internals are logged here and never leak.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalid):
		utils.Error(ctx, http.StatusBadRequest, 40000, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		utils.Error(ctx, http.StatusUnauthorized, 40100, err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.Error(ctx, http.StatusForbidden, 40300, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40400, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.Error(ctx, http.StatusConflict, 40900, err.Error())
	default:
		utils.Sugar.Errorw("internal error",
			"path", ctx.Request.URL.Path,
			"request_id", ctx.GetString("request_id"),
			"err", err,
		)
		utils.Error(ctx, http.StatusInternalServerError, 50000, "internal server error")
	}
}

// getUserID reads the authenticated user id placed by the auth middleware.
func getUserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(middleware.ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
