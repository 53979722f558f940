package middleware

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/yigit/studentreg/internal/pkg/apperrors"
)

// BindJSON decodes the request body into obj. An empty body leaves obj
// untouched so endpoints with optional payloads accept bare POSTs. Schema
// validation is the data layer's job, not the binder's.
func BindJSON(c *gin.Context, obj interface{}) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}

	if err := c.ShouldBindJSON(obj); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return apperrors.NewBadRequestError("Invalid value for field " + typeErr.Field)
		}
		return apperrors.NewBadRequestError("Invalid JSON body: " + err.Error())
	}
	return nil
}
