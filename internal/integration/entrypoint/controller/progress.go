// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weight-tracker/backend/internal/application/usecase/progress"
	domainerror "github.com/weight-tracker/backend/internal/domain/error"
	"github.com/weight-tracker/backend/internal/domain/valueobject"
	"github.com/weight-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/weight-tracker/backend/internal/integration/entrypoint/middleware"
)

// ProgressController handles the derived-metrics endpoint.
type ProgressController struct {
	getUseCase *progress.GetProgressUseCase
}

// NewProgressController creates a new progress controller instance.
func NewProgressController(getUseCase *progress.GetProgressUseCase) *ProgressController {
	return &ProgressController{
		getUseCase: getUseCase,
	}
}

// Get handles GET /progress requests. The optional "today" query parameter
// overrides the reference date for elapsed-time labels.
func (c *ProgressController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := progress.GetProgressInput{
		UserID: userID,
	}

	if todayStr := ctx.Query("today"); todayStr != "" {
		today, err := valueobject.ParseCivilDate(todayStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid today parameter, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDate),
			})
			return
		}
		input.Today = today
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleSyncError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProgressResponse(output))
}
