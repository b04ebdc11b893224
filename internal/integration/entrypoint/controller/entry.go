// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weight-tracker/backend/internal/application/usecase/entry"
	domainerror "github.com/weight-tracker/backend/internal/domain/error"
	"github.com/weight-tracker/backend/internal/domain/valueobject"
	"github.com/weight-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/weight-tracker/backend/internal/integration/entrypoint/middleware"
)

// EntryController handles weight-entry endpoints.
type EntryController struct {
	listUseCase   *entry.ListEntriesUseCase
	addUseCase    *entry.AddEntryUseCase
	removeUseCase *entry.RemoveEntryUseCase
}

// NewEntryController creates a new entry controller instance.
func NewEntryController(
	listUseCase *entry.ListEntriesUseCase,
	addUseCase *entry.AddEntryUseCase,
	removeUseCase *entry.RemoveEntryUseCase,
) *EntryController {
	return &EntryController{
		listUseCase:   listUseCase,
		addUseCase:    addUseCase,
		removeUseCase: removeUseCase,
	}
}

// List handles GET /entries requests.
func (c *EntryController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := entry.ListEntriesInput{
		UserID: userID,
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleSyncError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEntryListResponse(output.Entries))
}

// Add handles POST /entries requests. An existing date is replaced.
func (c *EntryController) Add(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.AddEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidDate),
		})
		return
	}

	input := entry.AddEntryInput{
		UserID: userID,
		Date:   req.Date,
		Weight: req.Weight,
	}

	output, err := c.addUseCase.Execute(ctx.Request.Context(), input)
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

	ctx.JSON(http.StatusCreated, dto.ToEntryResponse(output.Entry))
}

// Remove handles DELETE /entries/:date requests. Deleting a date with no
// entry still returns 204.
func (c *EntryController) Remove(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	date, err := valueobject.ParseCivilDate(ctx.Param("date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidDate),
		})
		return
	}

	input := entry.RemoveEntryInput{
		UserID: userID,
		Date:   date,
	}

	if err := c.removeUseCase.Execute(ctx.Request.Context(), input); err != nil {
		handleSyncError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
