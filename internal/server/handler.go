package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"fishinv/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// apiHandler is an http handler that reports failures by returning them;
// makeHandler turns them into {"error": ...} responses.
type apiHandler func(w http.ResponseWriter, r *http.Request) error

type httpError struct {
	status int
	msg    string
}

func (e *httpError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &httpError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

type handler struct {
	repo   *Repo
	logger *log.Logger
}

// Routes builds the REST surface:
//
//	GET    /api/inventory
//	POST   /api/inventory
//	POST   /api/inventory/bulk
//	PUT    /api/inventory/{id}
//	DELETE /api/inventory/{id}
func Routes(repo *Repo, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	h := &handler{repo: repo, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: logger, NoColor: true}))
	r.Use(middleware.Recoverer)

	r.Route("/api/inventory", func(r chi.Router) {
		r.Get("/", h.makeHandler(h.list))
		r.Post("/", h.makeHandler(h.create))
		r.Post("/bulk", h.makeHandler(h.bulk))
		r.Put("/{id}", h.makeHandler(h.update))
		r.Delete("/{id}", h.makeHandler(h.delete))
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	r.NotFound(h.makeHandler(func(http.ResponseWriter, *http.Request) error {
		return &httpError{status: http.StatusNotFound, msg: "not found"}
	}))
	r.MethodNotAllowed(h.makeHandler(func(http.ResponseWriter, *http.Request) error {
		return &httpError{status: http.StatusMethodNotAllowed, msg: "method not allowed"}
	}))
	return r
}

func (h *handler) makeHandler(fn apiHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		var he *httpError
		switch {
		case errors.As(err, &he):
			writeJSON(w, he.status, map[string]string{"error": he.msg})
		case errors.Is(err, ErrNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		default:
			h.logger.Printf("[%s] %s %s: %v", middleware.GetReqID(r.Context()), r.Method, r.URL.Path, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decode(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("invalid id: %q", raw)
	}
	return id, nil
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) error {
	rows, err := h.repo.List(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, rows)
	return nil
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) error {
	var in model.NewRow
	if err := decode(r, &in); err != nil {
		return err
	}
	in.Fish = strings.TrimSpace(in.Fish)
	in.Size = strings.TrimSpace(in.Size)
	if in.Fish == "" {
		return badRequest("fish is required")
	}
	row, err := h.repo.Create(r.Context(), in)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, row)
	return nil
}

func (h *handler) update(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	var p model.RowPayload
	if err := decode(r, &p); err != nil {
		return err
	}
	p.ID = id
	row, err := h.repo.Update(r.Context(), p)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, row)
	return nil
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": id})
	return nil
}

func (h *handler) bulk(w http.ResponseWriter, r *http.Request) error {
	var req model.BulkRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	for _, it := range req.Items {
		if it.ID <= 0 {
			return badRequest("invalid item id: %d", it.ID)
		}
	}
	n, err := h.repo.BulkUpdate(r.Context(), req.Items)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "updated": n})
	return nil
}
