package handler

import (
	"net/http"

	"github.com/Dan9191/finance-tracker/internal/config"
	"github.com/Dan9191/finance-tracker/internal/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NewRouter wires every route of the API. Uploaded photos are served from
// cfg.UploadDir under cfg.PhotoBaseURL.
func NewRouter(h *Handler, auth middleware.Authenticator, cfg *config.Config, log *logrus.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.PathPrefix(cfg.PhotoBaseURL + "/").Handler(
		http.StripPrefix(cfg.PhotoBaseURL+"/", http.FileServer(http.Dir(cfg.UploadDir))),
	).Methods(http.MethodGet)

	api := r.PathPrefix(cfg.APIPrefix).Subrouter()
	// Public routes
	api.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)

	// Protected routes
	authRouter := api.NewRoute().Subrouter()
	authRouter.Use(middleware.AuthMiddleware(auth, log))

	authRouter.HandleFunc("/user/profile", h.GetProfile).Methods(http.MethodGet)
	authRouter.HandleFunc("/user/profile", h.UpdateProfile).Methods(http.MethodPut)
	authRouter.HandleFunc("/user/photo", h.UploadPhoto).Methods(http.MethodPost)

	authRouter.HandleFunc("/categories", h.ListCategories).Methods(http.MethodGet)
	authRouter.HandleFunc("/categories", h.CreateCategory).Methods(http.MethodPost)
	authRouter.HandleFunc("/categories/{id}", h.DeleteCategory).Methods(http.MethodDelete)

	authRouter.HandleFunc("/transactions", h.ListTransactions).Methods(http.MethodGet)
	authRouter.HandleFunc("/transactions", h.CreateTransaction).Methods(http.MethodPost)
	authRouter.HandleFunc("/transactions/grouped", h.GroupedTransactions).Methods(http.MethodGet)
	authRouter.HandleFunc("/transactions/{id}", h.GetTransaction).Methods(http.MethodGet)
	authRouter.HandleFunc("/transactions/{id}", h.UpdateTransaction).Methods(http.MethodPut)
	authRouter.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods(http.MethodDelete)

	authRouter.HandleFunc("/summary", h.Summary).Methods(http.MethodGet)
	authRouter.HandleFunc("/summary/history", h.SummaryHistory).Methods(http.MethodGet)
	authRouter.HandleFunc("/summary/export", h.ExportSummary).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", middleware.RequestIDHeader}),
		handlers.AllowCredentials(),
	)
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(log),
		handlers.PrintRecoveryStack(false),
	)
	// logged outside the mux so unmatched routes get a request id too
	return recovery(cors(middleware.RequestLogger(log)(r)))
}
