package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	api "github.com/quizforge/quizforge/internal/api/http"
	"github.com/quizforge/quizforge/internal/auth"
	"github.com/quizforge/quizforge/internal/config"
	"github.com/quizforge/quizforge/internal/db"
	"github.com/quizforge/quizforge/internal/events"
	"github.com/quizforge/quizforge/internal/logger"
	"github.com/quizforge/quizforge/internal/session"
	"github.com/quizforge/quizforge/internal/storage"
)

func main() {
	cfg := config.FromEnv()

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	// --- DB (session store + event log) ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		zl.Fatal("db open failed", zap.Error(err))
	}
	stores := session.NewSQLKV(dbh)
	ev := events.NewRepo(dbh)

	// --- Blob store (dataset + static assets) ---
	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		zl.Fatal("blob store", zap.Error(err))
	}

	svc := api.NewService(bs, cfg.DatasetKey, stores, ev, zl)
	if err := svc.Load(); err != nil {
		// Not fatal: the server comes up in the error state and the dataset
		// can be fixed and reloaded without a restart.
		zl.Warn("starting without dataset", zap.Error(err))
	}

	authSvc := auth.NewService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/api/sessions", api.NewSessionHandler(authSvc))
	r.Get("/api/quiz", api.GetQuizHandler(svc))

	// Session state machine (requires a session token)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.Middleware(authSvc))
		pr.Route("/api/session", func(sr chi.Router) {
			sr.Get("/state", api.StateHandler(svc))
			sr.Post("/start", api.StartHandler(svc))
			sr.Post("/answer", api.AnswerHandler(svc))
			sr.Post("/goto", api.GotoHandler(svc))
			sr.Post("/next", api.NextHandler(svc))
			sr.Post("/previous", api.PreviousHandler(svc))
			sr.Post("/submit", api.SubmitHandler(svc))
			sr.Post("/restart", api.RestartHandler(svc))
		})
	})

	r.With(auth.AdminOnly(cfg.AdminUser, cfg.AdminPassHash)).
		Post("/api/admin/reload", api.ReloadHandler(svc))

	r.Route("/static", func(sr chi.Router) {
		api.MountStatic(sr, bs)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	zl.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("db", cfg.DBDriver))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		zl.Fatal("server", zap.Error(err))
	}
}
