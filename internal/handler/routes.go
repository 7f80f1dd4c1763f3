package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iqbalbaharum/serum-event-tracker/internal/generators"
	"github.com/iqbalbaharum/serum-event-tracker/internal/rpc"
)

const ErrTimeout = "request timed out"

func CreateRoutes(hub *generators.Hub, client *rpc.Client) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	var MarketHandler = NewMarketHandler()
	var FillHandler = NewFillHandler()
	var OutHandler = NewOutHandler()
	var WsHandler = NewWsHandler(hub)
	var HealthHandler = NewHealthHandler(client)

	r.Route("/markets", func(r chi.Router) {
		r.Get("/", MarketHandler.List)
		r.Route("/{market}", func(r chi.Router) {
			r.Post("/", MarketHandler.Track)
			r.Delete("/", MarketHandler.Untrack)
			r.Put("/pause", MarketHandler.Pause)
			r.Get("/keys", MarketHandler.Keys)
			r.Get("/events", MarketHandler.Events)
		})
	})

	r.Route("/fills", func(r chi.Router) {
		r.Get("/", FillHandler.Get)
	})

	r.Route("/outs", func(r chi.Router) {
		r.Get("/", OutHandler.Get)
	})

	r.Get("/ws", WsHandler.Serve)
	r.Get("/health", HealthHandler.Get)

	return r
}
