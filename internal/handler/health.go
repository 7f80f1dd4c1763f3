package handler

import (
	"net/http"

	"github.com/iqbalbaharum/serum-event-tracker/internal/rpc"
	"github.com/iqbalbaharum/serum-event-tracker/internal/utils"
)

type healthHandler struct {
	client *rpc.Client
}

func NewHealthHandler(client *rpc.Client) *healthHandler {
	return &healthHandler{client: client}
}

// Get reports liveness by asking the upstream RPC node for a blockhash, so
// a green check means the tracker can actually fetch accounts.
func (h *healthHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hash, err := h.client.GetLatestBlockhash(ctx)

	if err != nil {
		select {
		case <-ctx.Done():
			http.Error(w, ErrTimeout, http.StatusGatewayTimeout)
		default:
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
		}
		return
	}

	utils.Encode(w, r, http.StatusOK, map[string]string{"blockhash": hash.String()})
}
