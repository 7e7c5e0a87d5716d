package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/failboard/failboard/models"
	"github.com/failboard/failboard/services"
	"github.com/failboard/failboard/utils"
)

// PostController manages posts, comments, and votes.
type PostController struct {
	content *services.ContentService
	votes   *services.VoteLedger
	cache   *utils.Cache
}

// NewPostController creates a new PostController instance.
func NewPostController(content *services.ContentService, votes *services.VoteLedger, cache *utils.Cache) *PostController {
	return &PostController{content: content, votes: votes, cache: cache}
}

// CreatePost allows authenticated users to publish a failure story.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Title         string `json:"title" binding:"required,min=1"`
		Category      string `json:"category" binding:"required"`
		Contents      string `json:"contents"`
		WhatFailed    string `json:"whatFailed"`
		LessonLearned string `json:"lessonLearned"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	draft := services.PostDraft{
		Title:         utils.Sanitize(req.Title),
		Category:      models.Category(req.Category),
		Contents:      utils.Sanitize(req.Contents),
		WhatFailed:    utils.Sanitize(req.WhatFailed),
		LessonLearned: utils.Sanitize(req.LessonLearned),
	}

	post, err := p.content.CreatePost(ctx.Request.Context(), userID, draft)
	if err != nil {
		respondError(ctx, err)
		return
	}

	p.cache.InvalidateByPrefix("cache:posts:list:")

	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{"post": post})
}

// ListPosts returns posts newest-first, optionally filtered by category.
func (p *PostController) ListPosts(ctx *gin.Context) {
	category := ctx.Query("category")

	cacheKey := fmt.Sprintf("cache:posts:list:cat=%s", category)
	if b, ok := p.cache.GetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	posts, err := p.content.ListPosts(ctx.Request.Context(), models.Category(category))
	if err != nil {
		respondError(ctx, err)
		return
	}

	payload := gin.H{"items": posts}
	p.cache.SetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, time.Hour)
	utils.Success(ctx, payload)
}

// GetPost returns one post. For signed-in callers the response also carries
// their standing vote, so those responses bypass the shared cache.
func (p *PostController) GetPost(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	userID, authed := getUserID(ctx)
	cacheKey := "cache:post:detail:" + strconv.FormatUint(uint64(postID), 10)
	if !authed {
		if b, ok := p.cache.GetBytes(cacheKey); ok {
			ctx.Data(http.StatusOK, "application/json", b)
			return
		}
	}

	post, err := p.content.GetPost(ctx.Request.Context(), postID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	payload := gin.H{"post": post}
	if authed {
		state, err := p.votes.UserVote(ctx.Request.Context(), userID, postID)
		if err != nil {
			respondError(ctx, err)
			return
		}
		payload["userVote"] = voteStateJSON(state)
	} else {
		p.cache.SetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, time.Hour)
	}

	utils.Success(ctx, payload)
}

// DeletePost lets a post's author remove it along with its comments and
// votes.
func (p *PostController) DeletePost(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40112, "unauthorized")
		return
	}

	if err := p.content.DeletePost(ctx.Request.Context(), postID, userID); err != nil {
		respondError(ctx, err)
		return
	}

	p.cache.InvalidateByPrefix("cache:posts:list:")
	p.cache.InvalidateByPrefix("cache:post:detail:" + strconv.FormatUint(uint64(postID), 10))

	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// CreateComment allows authenticated users to comment on posts.
func (p *PostController) CreateComment(ctx *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}

	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	comment, err := p.content.CreateComment(ctx.Request.Context(), postID, userID, utils.Sanitize(req.Content))
	if err != nil {
		respondError(ctx, err)
		return
	}

	p.cache.InvalidateByPrefix("cache:posts:list:")
	p.cache.InvalidateByPrefix("cache:post:detail:" + strconv.FormatUint(uint64(postID), 10))

	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{"comment": comment})
}

// ListComments returns a post's comments newest-first.
func (p *PostController) ListComments(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	comments, err := p.content.ListComments(ctx.Request.Context(), postID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"items": comments})
}

// CastVote applies one press of the up or down button on a post and returns
// the resulting tally plus the caller's standing vote.
func (p *PostController) CastVote(ctx *gin.Context) {
	var req struct {
		IsUpvote *bool `json:"isUpvote" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "unauthorized")
		return
	}

	result, err := p.votes.CastVote(ctx.Request.Context(), userID, postID, *req.IsUpvote)
	if err != nil {
		respondError(ctx, err)
		return
	}

	p.cache.InvalidateByPrefix("cache:posts:list:")
	p.cache.InvalidateByPrefix("cache:post:detail:" + strconv.FormatUint(uint64(postID), 10))

	utils.Success(ctx, gin.H{
		"netVotes": result.NetVotes,
		"userVote": voteStateJSON(result.UserVote),
	})
}

// voteStateJSON renders a vote state the way the frontend reads it:
// true for up, false for down, null for no vote.
func voteStateJSON(s models.VoteState) *bool {
	switch s {
	case models.VoteUp:
		v := true
		return &v
	case models.VoteDown:
		v := false
		return &v
	}
	return nil
}

func paramID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
