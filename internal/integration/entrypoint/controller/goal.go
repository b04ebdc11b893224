// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weight-tracker/backend/internal/application/usecase/goal"
	domainerror "github.com/weight-tracker/backend/internal/domain/error"
	"github.com/weight-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/weight-tracker/backend/internal/integration/entrypoint/middleware"
)

// GoalController handles goal endpoints.
type GoalController struct {
	getUseCase  *goal.GetGoalsUseCase
	saveUseCase *goal.SaveGoalsUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	getUseCase *goal.GetGoalsUseCase,
	saveUseCase *goal.SaveGoalsUseCase,
) *GoalController {
	return &GoalController{
		getUseCase:  getUseCase,
		saveUseCase: saveUseCase,
	}
}

// Get handles GET /goals requests. A user without goals receives 404 with a
// structured body rather than an empty document.
func (c *GoalController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := goal.GetGoalsInput{
		UserID: userID,
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleSyncError(ctx, err)
		return
	}

	if output.Goals == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "No goals found for user",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalsResponse(*output.Goals))
}

// Save handles PUT /goals requests, replacing the document wholesale.
func (c *GoalController) Save(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.SaveGoalsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingGoalFields),
		})
		return
	}

	input := goal.SaveGoalsInput{
		UserID:       userID,
		StartWeight:  req.StartWeight,
		TargetWeight: req.TargetWeight,
		StartDate:    req.StartDate,
		TargetDate:   req.TargetDate,
	}

	output, err := c.saveUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		var goalErr *domainerror.GoalError
		if errors.As(err, &goalErr) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: goalErr.Message,
				Code:  string(goalErr.Code),
			})
			return
		}
		handleSyncError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalsResponse(output.Goals))
}

// handleSyncError maps synchronization errors to HTTP responses.
func handleSyncError(ctx *gin.Context, err error) {
	var syncErr *domainerror.SyncError
	if errors.As(err, &syncErr) {
		status := http.StatusInternalServerError
		switch syncErr.Code {
		case domainerror.ErrCodeUnauthenticated:
			status = http.StatusUnauthorized
		case domainerror.ErrCodeSubscriptionFailed,
			domainerror.ErrCodeReadFailed,
			domainerror.ErrCodeWriteFailed:
			status = http.StatusBadGateway
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: syncErr.Message,
			Code:  string(syncErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
