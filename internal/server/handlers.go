package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opmodel/mfe/internal/alert"
	"github.com/opmodel/mfe/internal/modstate"
	"github.com/opmodel/mfe/internal/shell"
)

// module resolves the {module} URL parameter, writing a 404 when unknown.
func (s *Server) module(w http.ResponseWriter, r *http.Request) (*shell.Module, bool) {
	m, err := s.shell.Module(chi.URLParam(r, "module"))
	if err != nil {
		writeErr(w, r, err)
		return nil, false
	}
	return m, true
}

// ── State ────────────────────────────────────────────────────────────────────

func (s *Server) getAllState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.shell.Store().Snapshot())
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	m, ok := s.module(w, r)
	if !ok {
		return
	}
	writeJSON(w, m.State().State())
}

func (s *Server) mergeState(w http.ResponseWriter, r *http.Request) {
	m, ok := s.module(w, r)
	if !ok {
		return
	}
	var partial modstate.Slice
	if !decodeJSON(w, r, &partial) {
		return
	}
	m.State().SetState(partial)
	writeJSON(w, m.State().State())
}

func (s *Server) replaceState(w http.ResponseWriter, r *http.Request) {
	m, ok := s.module(w, r)
	if !ok {
		return
	}
	var value any
	if !decodeJSON(w, r, &value) {
		return
	}
	s.shell.Store().SetStateFor(m.Name(), value)
	writeJSON(w, value)
}

func (s *Server) resetState(w http.ResponseWriter, r *http.Request) {
	m, ok := s.module(w, r)
	if !ok {
		return
	}
	m.State().Reset()
	w.WriteHeader(http.StatusNoContent)
}

// ── Page metadata ────────────────────────────────────────────────────────────

type pageValue struct {
	Value string `json:"value"`
}

func (s *Server) getPages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.shell.Pages().Snapshot())
}

func (s *Server) setPage(w http.ResponseWriter, r *http.Request) {
	m, ok := s.module(w, r)
	if !ok {
		return
	}
	var body pageValue
	if !decodeJSON(w, r, &body) {
		return
	}
	pages := s.shell.Pages()
	switch chi.URLParam(r, "field") {
	case "name":
		pages.SetPageName(m.Name(), body.Value)
	case "title":
		pages.SetPageTitle(m.Name(), body.Value)
	default:
		writeError(w, r, "field must be name or title", "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, pages.Snapshot())
}

func (s *Server) resetPage(w http.ResponseWriter, r *http.Request) {
	m, ok := s.module(w, r)
	if !ok {
		return
	}
	pages := s.shell.Pages()
	switch chi.URLParam(r, "field") {
	case "name":
		pages.ResetPageName(m.Name())
	case "title":
		pages.ResetPageTitle(m.Name())
	default:
		writeError(w, r, "field must be name or title", "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, pages.Snapshot())
}

// ── Alert ────────────────────────────────────────────────────────────────────

func (s *Server) getAlert(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.shell.Alerts().Current())
}

func (s *Server) setAlert(w http.ResponseWriter, r *http.Request) {
	var spec alert.Spec
	if !decodeJSON(w, r, &spec) {
		return
	}
	s.shell.Alerts().Set(spec.Options()...)
	writeJSON(w, s.shell.Alerts().Current())
}

func (s *Server) clearAlert(w http.ResponseWriter, r *http.Request) {
	s.shell.Alerts().Clear()
	writeJSON(w, s.shell.Alerts().Current())
}

// ── Links and data access ────────────────────────────────────────────────────

func (s *Server) link(w http.ResponseWriter, r *http.Request) {
	m, ok := s.module(w, r)
	if !ok {
		return
	}
	writeJSON(w, m.Link(r.URL.Query().Get("to"), nil))
}

func (s *Server) query(w http.ResponseWriter, r *http.Request) {
	m, ok := s.module(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	endpoint := q.Get("endpoint")
	if endpoint == "" {
		writeError(w, r, "endpoint is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	res := m.Query(r.Context(), q.Get("key"), endpoint)
	if res.Err != nil {
		writeErr(w, r, res.Err)
		return
	}

	if res.FromCache {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(res.Data)
}
