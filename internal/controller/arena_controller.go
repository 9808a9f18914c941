package controller

import (
	"net/http"

	"ranked_arena_backend/internal/service"
	"ranked_arena_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ArenaController struct {
	ArenaService  *service.ArenaService
	RatingService *service.RatingService
}

func NewArenaController(arenaService *service.ArenaService, ratingService *service.RatingService) *ArenaController {
	return &ArenaController{ArenaService: arenaService, RatingService: ratingService}
}

// respondArenaError maps engine errors onto the HTTP surface so callers
// can tell "you answered wrong" apart from "this run is no longer valid".
func respondArenaError(ctx *gin.Context, err error) {
	switch err {
	case util.ErrRunNotFound, util.ErrQuestionNotFound, util.ErrRatingNotFound:
		util.NotFound(ctx)
	case util.ErrPermissionDenied:
		util.Forbidden(ctx)
	case util.ErrRunNotActive, util.ErrRunNotTerminal, util.ErrRunAlreadyFinalized,
		util.ErrDuplicateAnswer, util.ErrOutOfOrderAnswer, util.ErrVersionConflict:
		util.Conflict(ctx, err.Error())
	case util.ErrRunExpired:
		util.Error(ctx, http.StatusGone, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary Start a ranked run
// @Tags arena
// @Security BearerAuth
// @Produce json
// @Success 201 {object} util.Response
// @Router /api/arena/runs [post]
func (c *ArenaController) StartRun(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	run, err := c.ArenaService.StartRun(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, run)
}

// @Summary Run snapshot
// @Tags arena
// @Security BearerAuth
// @Produce json
// @Param id path string true "run id"
// @Success 200 {object} util.Response
// @Router /api/arena/runs/{id} [get]
func (c *ArenaController) GetRun(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	run, err := c.ArenaService.GetRun(user.UserID, ctx.Param("id"))
	if err != nil {
		respondArenaError(ctx, err)
		return
	}
	util.Success(ctx, run)
}

// @Summary Next question for a run
// @Tags arena
// @Security BearerAuth
// @Produce json
// @Param id path string true "run id"
// @Success 200 {object} util.Response
// @Router /api/arena/runs/{id}/question [get]
func (c *ArenaController) NextQuestion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	question, err := c.ArenaService.NextQuestion(user.UserID, ctx.Param("id"))
	if err != nil {
		respondArenaError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// @Summary Submit one answer
// @Tags arena
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "run id"
// @Param body body service.SubmitAnswerRequest true "answer payload"
// @Success 200 {object} util.Response
// @Router /api/arena/runs/{id}/answers [post]
func (c *ArenaController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ArenaService.SubmitAnswer(user.UserID, ctx.Param("id"), &req)
	if err != nil {
		respondArenaError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Finalize a terminal run into the rating
// @Tags arena
// @Security BearerAuth
// @Produce json
// @Param id path string true "run id"
// @Success 200 {object} util.Response
// @Router /api/arena/runs/{id}/finalize [post]
func (c *ArenaController) FinalizeRun(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	outcome, err := c.RatingService.FinalizeRun(user.UserID, ctx.Param("id"))
	if err != nil {
		respondArenaError(ctx, err)
		return
	}
	util.Success(ctx, outcome)
}

// @Summary Caller's rating
// @Tags arena
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/arena/rating [get]
func (c *ArenaController) GetRating(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	rating, err := c.RatingService.GetRating(user.UserID)
	if err != nil {
		respondArenaError(ctx, err)
		return
	}
	util.Success(ctx, rating)
}

// @Summary Leaderboard
// @Tags arena
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/arena/leaderboard [get]
func (c *ArenaController) Leaderboard(ctx *gin.Context) {
	rows, err := c.RatingService.Leaderboard(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}
