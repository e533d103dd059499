package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "cashtrackr/internal/errors"
	"cashtrackr/internal/logger"
)

// respondWithError writes a consistent JSON error body. If the error is an
// *AppError it uses the error's status and client message. Otherwise it logs
// the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{"message": appErr.Message})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{"message": apperrors.ErrInternalServer.Message})
}

// respondWithValidationError translates a binding failure into a field-level
// errors array. The messages map is keyed by struct field name so each route
// declares its own wording.
func respondWithValidationError(c *gin.Context, err error, messages map[string]string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]gin.H, 0, len(verrs))
		for _, fe := range verrs {
			msg, ok := messages[fe.Field()]
			if !ok {
				msg = fe.Field() + " is not valid"
			}
			out = append(out, gin.H{"msg": msg})
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": out})
		return
	}

	// Malformed JSON or a type mismatch outside validator's scope.
	c.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"msg": "Invalid request body"}}})
}
