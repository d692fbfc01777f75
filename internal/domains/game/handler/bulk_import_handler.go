package handler

import (
	"errors"
	"net/http"

	"gameportal-backend/internal/domains/game/model"
	gameService "gameportal-backend/internal/domains/game/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type BulkImportHandler struct {
	service gameService.BulkImportServiceInterface
}

func NewBulkImportHandler(service gameService.BulkImportServiceInterface) *BulkImportHandler {
	return &BulkImportHandler{service: service}
}

// ImportGames - POST /api/v1/admin/games/bulk-import
// Requires admin role (gated by middleware before this handler runs).
func (h *BulkImportHandler) ImportGames(c *gin.Context) {
	userID, ok := c.Get("user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "unauthorized",
		})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "file is required (multipart/form-data)",
		})
		return
	}

	log.Info().
		Str("user_id", userID.(string)).
		Str("file_name", file.Filename).
		Int64("file_size", file.Size).
		Msg("Received bulk import request")

	result, err := h.service.ImportGames(c.Request.Context(), file)
	if err != nil {
		var precondErr *model.PreconditionError
		if errors.As(err, &precondErr) {
			body := gin.H{
				"success": false,
				"message": precondErr.Message,
			}
			if len(precondErr.CSVErrors) > 0 {
				body["errors"] = precondErr.CSVErrors
			}
			c.JSON(http.StatusBadRequest, body)
			return
		}

		log.Error().Err(err).Msg("Bulk import failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "bulk import failed",
			"error":   err.Error(),
		})
		return
	}

	// Row-level failures are reported inside a 200 response; the caller
	// distinguishes complete from partial success via results.failed.
	message := "import completed"
	if result.Failed > 0 {
		message = "import completed with errors"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": result.Failed == 0,
		"message": message,
		"results": result,
	})
}

// DownloadTemplate - GET /api/v1/admin/games/bulk-import/template
// Serves the fixed example CSV operators model correct input on.
func (h *BulkImportHandler) DownloadTemplate(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="games-import-template.csv"`)
	c.Data(http.StatusOK, "text/csv", h.service.TemplateCSV())
}
