package router

import (
	"net/http"

	mem "patient-history/internal/adapters/storage/memory"
	"patient-history/internal/domain/history"
	"patient-history/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Options struct {
	Logger zerolog.Logger

	// Opcional: store ya construido (mongo/postgres). Si es nil, in-memory (modo dev).
	HistoryRepo history.Repository
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.Recover(opts.Logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	repo := opts.HistoryRepo
	if repo == nil {
		repo = mem.NewHistoryRepo()
	}

	historySvc := history.NewService(repo, opts.Logger)
	history.RegisterRoutes(r, historySvc)

	return r
}
