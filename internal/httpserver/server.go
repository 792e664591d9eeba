// internal/httpserver/server.go
//
// HTTP server wiring for the hangman backend.
// Responsibilities:
//   - Router + middleware (request IDs, zerolog access log, panic recovery,
//     timeouts, JSON, CORS).
//   - Public endpoints: "/", "/health", "/metrics", "/debug/words".
//   - Game endpoints (optional auth): mounted by routes_game.go.
//   - Daily challenge endpoints (optional auth): mounted by routes_daily.go.
//   - Auth + profile endpoints: mounted by auth.go.
//   - Periodic eviction of idle sessions from the in-memory store.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Errors are JSON bodies of the form {"error":"code"}.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/daily"
	"github.com/robalobadob/hangman/internal/history"
	"github.com/robalobadob/hangman/internal/metrics"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/users"
	"github.com/robalobadob/hangman/internal/words"
)

// Server bundles the router, the live session store and the SQL-backed stores.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	dict    *words.Dictionary
	store   store.Store
	history *history.Store
	users   *users.Store
	daily   *daily.Store
	dailies *dailyServer
	now     func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, dict *words.Dictionary, st store.Store, db *sql.DB) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     cfg,
		dict:    dict,
		store:   st,
		history: history.NewStore(db),
		users:   users.NewStore(db),
		daily:   daily.NewStore(db),
		now:     time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(requestIDLogger)
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "hangman",
			"endpoints": []string{
				"/health", "/metrics", "POST /game/new", "POST /game/guess", "GET /game/{id}",
				"POST /daily/new", "POST /daily/guess", "GET /daily/leaderboard", "/auth/*",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Method(http.MethodGet, "/metrics", metrics.Handler())
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"words":    s.dict.Len(),
			"byLength": s.dict.Stats(),
		})
	})

	// Game + daily endpoints: OPTIONAL AUTH (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		s.mountGame(r)
		s.mountDaily(r)
	})

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler exposes the router as an http.Handler.
func (s *Server) Handler() http.Handler { return s.r }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// RunJanitor drops sessions older than maxAge every interval until ctx is
// cancelled. Daily bookkeeping for dropped sessions goes with them.
func (s *Server) RunJanitor(ctx context.Context, interval, maxAge time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if n := s.store.Sweep(ctx, s.now().Add(-maxAge)); n > 0 {
				log.Info().Int("evicted", n).Msg("swept idle sessions")
			}
			if n := s.dailies.prune(ctx); n > 0 {
				log.Debug().Int("dropped", n).Msg("pruned daily sessions")
			}
			metrics.LiveSessions.Set(float64(s.store.Len()))
		}
	}
}

// ----------------------------- middleware ----------------------------------

// requestIDLogger copies chi's request ID onto the request logger.
func requestIDLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			l := zerolog.Ctx(r.Context())
			l.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("req_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Stringer("url", r.URL).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
