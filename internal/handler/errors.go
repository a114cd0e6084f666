package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/repository"
	"taskmanager/internal/view"
)

const (
	msgNotFound    = "The requested task does not exist."
	msgInvalid     = "The task could not be saved."
	msgUnavailable = "The database is unavailable. Try again later."
	msgInternal    = "Something went wrong while handling the request."
)

func renderError(c *gin.Context, status int, message string, details ...string) {
	c.HTML(status, view.ErrorPageName, view.NewErrorPage(status, http.StatusText(status), message, details...))
	c.Abort()
}

// abortWithError maps repository errors onto a status code and error page.
// The error is attached to the context for the access log.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, repository.ErrTaskNotFound):
		renderError(c, http.StatusNotFound, msgNotFound)
	case errors.Is(err, repository.ErrInvalidTask):
		renderError(c, http.StatusBadRequest, msgInvalid, err.Error())
	case errors.Is(err, repository.ErrUnavailable):
		renderError(c, http.StatusServiceUnavailable, msgUnavailable)
	default:
		renderError(c, http.StatusInternalServerError, msgInternal)
	}
}
