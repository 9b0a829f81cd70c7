package http

import (
	"context"
	"net/http"
	"time"

	"ledgerd/internal/log"
	"ledgerd/internal/tools"
)

// ToolService is the tool surface the transport dispatches to. The
// transport owns decoding, dispatch, and status mapping; everything
// behind this interface owns semantics.
type ToolService interface {
	Register(ctx context.Context, p tools.RegisterParams) (tools.RegisterResult, error)
	RotateKey(ctx context.Context, p tools.RotateKeyParams) (tools.RotateKeyResult, error)
	AddExpense(ctx context.Context, p tools.AddExpenseParams) (tools.AddExpenseResult, error)
	ListExpenses(ctx context.Context, p tools.ListExpensesParams) (tools.ListExpensesResult, error)
	Summarize(ctx context.Context, p tools.SummarizeParams) (tools.SummarizeResult, error)
	DeleteExpense(ctx context.Context, p tools.DeleteExpenseParams) (tools.DeleteExpenseResult, error)
	Categories(ctx context.Context) tools.CategoriesResult
}

// Pinger reports whether storage is reachable. Readiness uses it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	http.Server
	tools  ToolService
	db     Pinger
	logger *log.Logger
}

// NewServer configures routes and timeouts, returning a ready-to-run
// http.Server. Handlers are stateless; concurrency is the listener's.
func NewServer(addr string, ts ToolService, db Pinger, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(nil, log.ComponentHTTP)
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:           addr,
			Handler:        mux,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16,
		},
		tools:  ts,
		db:     db,
		logger: logger,
	}

	mux.HandleFunc("/tools/register", s.withRequest(invoke(s, ts.Register)))
	mux.HandleFunc("/tools/rotate_key", s.withRequest(invoke(s, ts.RotateKey)))
	mux.HandleFunc("/tools/add_expense", s.withRequest(invoke(s, ts.AddExpense)))
	mux.HandleFunc("/tools/list_expenses", s.withRequest(invoke(s, ts.ListExpenses)))
	mux.HandleFunc("/tools/summarize", s.withRequest(invoke(s, ts.Summarize)))
	mux.HandleFunc("/tools/delete_expense", s.withRequest(invoke(s, ts.DeleteExpense)))
	mux.HandleFunc("/tools/categories", s.withRequest(s.handleCategoriesTool))
	mux.HandleFunc("/tools/", s.withRequest(s.handleUnknownTool))

	// The category taxonomy is also a plain readable resource.
	mux.HandleFunc("/categories", s.withRequest(s.handleCategoriesRead))

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	return s
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady answers ready only while the database responds. Probes
// get a short deadline so a wedged database fails the check instead of
// hanging it.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		s.logger.ErrorContext(r.Context(), "Readiness check failed", log.FieldError, err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("database unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
