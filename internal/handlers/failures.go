package handlers

import (
	"net/http"

	"stocktrade_backend/internal/services"
	"stocktrade_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// statusForKind maps a business failure kind to its HTTP status.
func statusForKind(kind services.FailureKind) int {
	switch kind {
	case services.FailureValidation:
		return http.StatusBadRequest
	case services.FailureNotFound:
		return http.StatusNotFound
	case services.FailureNameConflict, services.FailureForeignKeyConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// handleServiceError is the single place service errors turn into HTTP
// responses. Routed failures carry their recovery page token in "redirect";
// anything else is an unexpected defect and becomes a 500 without leaking
// internals to the client.
func handleServiceError(c *gin.Context, err error, logContext string) {
	utils.LogError(err, logContext)
	if failure, ok := services.AsFailure(err); ok {
		c.JSON(statusForKind(failure.Kind), gin.H{
			"error": gin.H{
				"code":    string(failure.Kind),
				"message": failure.Message,
			},
			"redirect": failure.Route,
		})
		c.Abort()
		return
	}
	utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "An unexpected error occurred.", "Internal error"))
}
