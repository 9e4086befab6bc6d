package handlers

import (
	"errors"
	"net/http"

	"github.com/ferreirogomes/cotinha/services"
)

// writeServiceError traduz os tipos de erro do ledger para status HTTP.
// A mensagem volta ao chamador: rejeições nunca são silenciadas.
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrUnknownAsset):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInsufficientPool),
		errors.Is(err, services.ErrInsufficientBalance):
		status = http.StatusConflict
	case errors.Is(err, services.ErrPaymentMismatch):
		status = http.StatusPaymentRequired
	case errors.Is(err, services.ErrTransferFailed):
		status = http.StatusBadGateway
	}
	http.Error(w, err.Error(), status)
}
