package controller

import (
	"strconv"

	"ranked_arena_backend/internal/service"
	"ranked_arena_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LadderController struct {
	RatingService *service.RatingService
}

func NewLadderController(ratingService *service.RatingService) *LadderController {
	return &LadderController{RatingService: ratingService}
}

// @Summary Full title ladder
// @Tags ladder
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/arena/ladder [get]
func (c *LadderController) GetLadder(ctx *gin.Context) {
	util.Success(ctx, service.Tiers())
}

// @Summary Title for a market value
// @Tags ladder
// @Security BearerAuth
// @Produce json
// @Param marketValue query int true "market value"
// @Success 200 {object} util.Response
// @Router /api/arena/ladder/title [get]
func (c *LadderController) TitleFor(ctx *gin.Context) {
	value, err := strconv.Atoi(ctx.Query("marketValue"))
	if err != nil {
		util.BadRequest(ctx, "invalid marketValue")
		return
	}
	util.Success(ctx, gin.H{"title": service.TitleFor(value)})
}

// @Summary Next tier for the caller
// @Tags ladder
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/arena/ladder/next [get]
func (c *LadderController) NextTier(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	next, err := c.RatingService.NextTierFor(user.UserID)
	if err != nil {
		respondArenaError(ctx, err)
		return
	}
	// next is nil at the top of the ladder
	util.Success(ctx, next)
}
