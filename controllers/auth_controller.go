package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/failboard/failboard/services"
	"github.com/failboard/failboard/utils"
)

// AuthController handles registration, login, and the current-user lookup.
type AuthController struct {
	identity *services.IdentityService
}

// NewAuthController creates an AuthController.
func NewAuthController(identity *services.IdentityService) *AuthController {
	return &AuthController{identity: identity}
}

// Register handles local account registration.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=3,max=64"`
		Nickname string `json:"nickname" binding:"required,max=64"`
		Password string `json:"password" binding:"required,min=8,max=72"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	username := strings.TrimSpace(req.Username)
	nickname := strings.TrimSpace(req.Nickname)
	if username == "" || nickname == "" {
		utils.Error(ctx, http.StatusBadRequest, 40002, "username and nickname cannot be blank")
		return
	}

	session, err := a.identity.Register(ctx.Request.Context(), username, nickname, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	utils.Respond(ctx, http.StatusCreated, 0, "success", session)
}

// Login authenticates a username/password pair and returns a session.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}

	session, err := a.identity.Login(ctx.Request.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	utils.Success(ctx, session)
}

// Me returns the public projection of the authenticated user.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	user, err := a.identity.UserByID(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"user": user})
}
