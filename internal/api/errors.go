package api

import (
	"net/http"

	"github.com/Veraticus/global-series-tracker/internal/common"
	"github.com/go-chi/render"
)

// ErrResponse is the JSON body of every non-2xx response.
type ErrResponse struct {
	HTTPStatusCode int               `json:"-"`
	Message        string            `json:"error"`
	Fields         map[string]string `json:"fields,omitempty"`
}

// Render sets the response status.
func (e *ErrResponse) Render(_ http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func errBadRequest(msg string) render.Renderer {
	return &ErrResponse{HTTPStatusCode: http.StatusBadRequest, Message: msg}
}

func errInvalid(msg string, fields map[string]string) render.Renderer {
	return &ErrResponse{HTTPStatusCode: http.StatusUnprocessableEntity, Message: msg, Fields: fields}
}

func errConfirmationRequired() render.Renderer {
	return &ErrResponse{
		HTTPStatusCode: http.StatusPreconditionRequired,
		Message:        common.ErrNotConfirmed.Error() + ": pass confirm=true",
	}
}

func errConflict(msg string) render.Renderer {
	return &ErrResponse{HTTPStatusCode: http.StatusConflict, Message: msg}
}

func errInternal(msg string) render.Renderer {
	return &ErrResponse{HTTPStatusCode: http.StatusInternalServerError, Message: msg}
}
