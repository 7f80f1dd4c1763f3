package handler

import (
	"net/http"

	"github.com/iqbalbaharum/serum-event-tracker/internal/storage"
	"github.com/iqbalbaharum/serum-event-tracker/internal/types"
	"github.com/iqbalbaharum/serum-event-tracker/internal/utils"
)

type fillHandler struct {
}

func NewFillHandler() *fillHandler {
	return &fillHandler{}
}

func (h *fillHandler) Get(w http.ResponseWriter, r *http.Request) {
	decoded, err := utils.Decode[types.MySQLFilter](r)

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	fills, err := storage.Events.SearchFills(decoded)

	if err != nil {
		select {
		case <-ctx.Done():
			http.Error(w, ErrTimeout, http.StatusGatewayTimeout)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if fills == nil {
		fills = []types.EventEnvelope{}
	}

	utils.Encode(w, r, http.StatusOK, fills)
}
