package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/opmodel/mfe/internal/alert"
	"github.com/opmodel/mfe/internal/pagemeta"
	"github.com/opmodel/mfe/internal/store"
)

// sendSSE writes one event and flushes. data is JSON-marshalled.
func sendSSE(w http.ResponseWriter, f http.Flusher, event string, data any) {
	b, _ := json.Marshal(data)
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, string(b))
	f.Flush()
}

// signal returns a callback that never blocks the writer it is called from.
// Events carry whole snapshots, so dropped signals coalesce into the next send.
func signal(ch chan struct{}) func() {
	return func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// events streams state, pages and alert snapshots as server-sent events.
//
//	state  whole store snapshot
//	pages  {"pageNames":{...},"pageTitles":{...}}
//	alert  current alert
func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, r, "streaming not supported", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}

	stateCh := make(chan struct{}, 1)
	pagesCh := make(chan struct{}, 1)
	alertCh := make(chan struct{}, 1)

	onState, onPages, onAlert := signal(stateCh), signal(pagesCh), signal(alertCh)
	unsubState := s.shell.Store().Subscribe(func(store.State) { onState() })
	defer unsubState()
	unsubPages := s.shell.Pages().Subscribe(func(pagemeta.Snapshot) { onPages() })
	defer unsubPages()
	unsubAlert := s.shell.Alerts().Subscribe(func(alert.Alert) { onAlert() })
	defer unsubAlert()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	sendSSE(w, flusher, "state", s.shell.Store().Snapshot())
	sendSSE(w, flusher, "pages", s.shell.Pages().Snapshot())
	sendSSE(w, flusher, "alert", s.shell.Alerts().Current())

	for {
		select {
		case <-r.Context().Done():
			return
		case <-stateCh:
			sendSSE(w, flusher, "state", s.shell.Store().Snapshot())
		case <-pagesCh:
			sendSSE(w, flusher, "pages", s.shell.Pages().Snapshot())
		case <-alertCh:
			sendSSE(w, flusher, "alert", s.shell.Alerts().Current())
		}
	}
}
