package handlers

import (
	"net/http"

	"github.com/Dias221467/Wish_Collector/pkg/metrics"
	"github.com/Dias221467/Wish_Collector/pkg/middleware"
	"github.com/gorilla/mux"
)

// NewRouter wires the wish routes and the operational endpoints.
func NewRouter(wishHandler *WishHandler) *mux.Router {
	router := mux.NewRouter()
	router.MethodNotAllowedHandler = http.HandlerFunc(MethodNotAllowedHandler)

	// Wish routes
	router.HandleFunc("/wishes", wishHandler.SubmitWishHandler).Methods("POST")
	router.HandleFunc("/wishes", wishHandler.GetWishesHandler).Methods("GET")
	router.HandleFunc("/wishes/{id}", wishHandler.GetWishByIDHandler).Methods("GET")
	// Path used by the static form page.
	router.HandleFunc("/save_wish", wishHandler.SubmitWishHandler).Methods("POST")

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	router.Use(middleware.LoggingMiddleware)

	return router
}
