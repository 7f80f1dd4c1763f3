package handler

import (
	"errors"
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/go-chi/chi/v5"
	"github.com/iqbalbaharum/serum-event-tracker/internal/coder"
	relay "github.com/iqbalbaharum/serum-event-tracker/internal/library"
	"github.com/iqbalbaharum/serum-event-tracker/internal/storage"
	"github.com/iqbalbaharum/serum-event-tracker/internal/types"
	"github.com/iqbalbaharum/serum-event-tracker/internal/utils"
)

type marketHandler struct {
}

func NewMarketHandler() *marketHandler {
	return &marketHandler{}
}

// TrackRequest is the optional body of a track call.
type TrackRequest struct {
	TriggerOnly bool `json:"trigger_only"`
}

// QueueSnapshot is the response of the on-demand events read.
type QueueSnapshot struct {
	Header coder.EventQueueHeader `json:"header"`
	Events []types.EventEnvelope  `json:"events"`
}

func marketParam(r *http.Request) (solana.PublicKey, error) {
	return solana.PublicKeyFromBase58(chi.URLParam(r, "market"))
}

func (h *marketHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tracked, err := relay.GetAllTrackedMarkets()

	if err != nil {
		select {
		case <-ctx.Done():
			http.Error(w, ErrTimeout, http.StatusGatewayTimeout)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if tracked == nil {
		tracked = []types.TrackedMarket{}
	}

	utils.Encode(w, r, http.StatusOK, tracked)
}

func (h *marketHandler) Track(w http.ResponseWriter, r *http.Request) {
	marketID, err := marketParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	decoded, err := utils.Decode[TrackRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	keys, err := relay.TrackMarket(ctx, marketID, decoded.TriggerOnly)

	if err != nil {
		select {
		case <-ctx.Done():
			http.Error(w, ErrTimeout, http.StatusGatewayTimeout)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	utils.Encode(w, r, http.StatusCreated, keys)
}

func (h *marketHandler) Untrack(w http.ResponseWriter, r *http.Request) {
	marketID, err := marketParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	err = relay.UntrackMarket(marketID)

	if err != nil {
		if errors.Is(err, storage.ErrMarketNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		select {
		case <-ctx.Done():
			http.Error(w, ErrTimeout, http.StatusGatewayTimeout)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *marketHandler) Pause(w http.ResponseWriter, r *http.Request) {
	marketID, err := marketParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	err = relay.PauseMarketTracking(marketID)

	if err != nil {
		if errors.Is(err, storage.ErrMarketNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		select {
		case <-ctx.Done():
			http.Error(w, ErrTimeout, http.StatusGatewayTimeout)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *marketHandler) Keys(w http.ResponseWriter, r *http.Request) {
	marketID, err := marketParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	keys, err := relay.ResolveMarketKeys(ctx, marketID)

	if err != nil {
		select {
		case <-ctx.Done():
			http.Error(w, ErrTimeout, http.StatusGatewayTimeout)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	utils.Encode(w, r, http.StatusOK, keys)
}

func (h *marketHandler) Events(w http.ResponseWriter, r *http.Request) {
	marketID, err := marketParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	header, events, err := relay.SnapshotEnvelopes(ctx, marketID)

	if err != nil {
		select {
		case <-ctx.Done():
			http.Error(w, ErrTimeout, http.StatusGatewayTimeout)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if events == nil {
		events = []types.EventEnvelope{}
	}

	utils.Encode(w, r, http.StatusOK, QueueSnapshot{Header: header, Events: events})
}
