package handler

import (
	"net/http"

	"github.com/iqbalbaharum/serum-event-tracker/internal/storage"
	"github.com/iqbalbaharum/serum-event-tracker/internal/types"
	"github.com/iqbalbaharum/serum-event-tracker/internal/utils"
)

type outHandler struct {
}

func NewOutHandler() *outHandler {
	return &outHandler{}
}

func (h *outHandler) Get(w http.ResponseWriter, r *http.Request) {
	decoded, err := utils.Decode[types.MySQLFilter](r)

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	outs, err := storage.Events.SearchOuts(decoded)

	if err != nil {
		select {
		case <-ctx.Done():
			http.Error(w, ErrTimeout, http.StatusGatewayTimeout)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if outs == nil {
		outs = []types.EventEnvelope{}
	}

	utils.Encode(w, r, http.StatusOK, outs)
}
