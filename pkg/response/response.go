package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	pkgErrors "fast-generic-api/pkg/errors"
	"fast-generic-api/pkg/serializer"
)

// NewOKResp returns a new OK response with the given data.
func NewOKResp(data any) Resp {
	return Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	}
}

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Error sends an error response. Validation failures become 422 with field
// errors, HTTPError keeps its status, anything else is a 400.
func Error(c *gin.Context, err error) {
	var verr *serializer.ValidationError
	if errors.As(err, &verr) {
		validationError(c, verr)
		return
	}

	var bindErrs validator.ValidationErrors
	if errors.As(err, &bindErrs) {
		validationError(c, serializer.FromValidator(bindErrs))
		return
	}

	var httpErr *pkgErrors.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode >= http.StatusInternalServerError {
			InternalError(c, err)
			return
		}
		c.AbortWithStatusJSON(httpErr.StatusCode, Resp{
			ErrorCode: httpErr.Code,
			Message:   httpErr.Message,
		})
		return
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, Resp{
		ErrorCode: ErrorCodeFailed,
		Message:   err.Error(),
	})
}

func validationError(c *gin.Context, verr *serializer.ValidationError) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, Resp{
		ErrorCode: ValidationErrorCode,
		Message:   serializer.ErrValidation.Error(),
		Errors:    verr.Errors,
	})
}

// InternalError sends 500 internal server error. The cause is never exposed.
func InternalError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, Resp{
		ErrorCode: InternalServerErrorCode,
		Message:   DefaultErrorMessage,
	})
}

// Unauthorized sends 401 response.
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Resp{
		ErrorCode: 401,
		Message:   "Unauthorized",
	})
}

// Forbidden sends 403 response.
func Forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, Resp{
		ErrorCode: 403,
		Message:   "Forbidden",
	})
}

// TooManyRequests sends 429 response.
func TooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, Resp{
		ErrorCode: 429,
		Message:   "Too Many Requests",
	})
}
