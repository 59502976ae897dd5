package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"questionbank/errorz"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorBody is the JSON body of every API error response.
type ErrorBody struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// respondError writes the error body. Server-side failures are logged in
// full and reported to the client with a generic message.
func respondError(c *gin.Context, status int, err error) {
	_ = c.Error(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("request failed")
		message = http.StatusText(status)
	}

	c.JSON(status, ErrorBody{
		Status: strconv.Itoa(status),
		Error:  message,
	})
}

// readStatus maps the outcome of a read to its status code.
func readStatus(err error) int {
	switch errorz.KindOf(err) {
	case errorz.KindNotFound, errorz.KindPaginationInvalid:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// updateStatus maps the outcome of a PUT to its status code.
func updateStatus(err error) int {
	switch errorz.KindOf(err) {
	case errorz.KindNotFound, errorz.KindNoPayload:
		return http.StatusNotFound
	case errorz.KindUnprocessable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// parseID reads the :id path parameter.
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid question id")
	}
	return uint(id), nil
}

// bindUpdate decodes a PUT payload. An empty body is ErrNoPayload and any
// other decoding or validation failure is ErrUnprocessable.
func bindUpdate(c *gin.Context, obj interface{}) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return errorz.ErrNoPayload
	}
	if err := c.ShouldBindJSON(obj); err != nil {
		if errors.Is(err, io.EOF) {
			return errorz.ErrNoPayload
		}
		return fmt.Errorf("%w: %v", errorz.ErrUnprocessable, err)
	}
	return nil
}
