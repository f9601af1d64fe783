package api

import (
	"errors"
	"net/http"

	"github.com/thislife/planner/internal/api/respond"
	"github.com/thislife/planner/internal/model"
)

// writeDomainError maps domain sentinels onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrCurrentBrandExists), errors.Is(err, model.ErrConflict):
		respond.WriteError(w, http.StatusConflict, err.Error())
	default:
		respond.WriteInternalError(w, err.Error())
	}
}
