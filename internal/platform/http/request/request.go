// Package request reads path parameters, query values and uploaded files
// from a gin context.
package request

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vidtube_backend/internal/shared/apperror"
	"vidtube_backend/internal/shared/ident"
	"vidtube_backend/internal/shared/media"
)

// ErrInvalidBody is returned when a JSON or form body fails binding.
var ErrInvalidBody = apperror.Validation("invalid request body")

// ID parses the path parameter name as an identifier.
func ID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := ident.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.Validation(fmt.Sprintf("invalid %s", name))
	}
	return id, nil
}

// Bind binds the JSON body into dst, classifying failures as validation errors.
func Bind(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperror.Wrap(apperror.KindValidation, ErrInvalidBody.Message, err)
	}
	return nil
}

// File opens the uploaded file in field. It returns a nil file when the field
// is absent. The returned close function is never nil.
func File(c *gin.Context, field string) (*media.File, func(), error) {
	noop := func() {}
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, apperror.Wrap(apperror.KindValidation, "invalid "+field+" upload", err)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, fmt.Errorf("failed to open upload: %w", err)
	}
	return &media.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}
