package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ligaacademica/portal/internal/live"
)

const heartbeatInterval = 25 * time.Second

// LiveStream entrega a coleção por SSE: o snapshot atual na conexão e a
// lista inteira de novo a cada mudança. Comentários periódicos seguram
// proxies que derrubam conexões ociosas.
func (h *Handler) LiveStream(w http.ResponseWriter, r *http.Request) {
	colecao := chi.URLParam(r, "colecao")

	sse, ok := live.NewSSEWriter(w)
	if !ok {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "streaming não suportado", nil)
		return
	}

	ch, cancel, err := h.hub.Subscribe(r.Context(), colecao)
	if err != nil {
		if errors.Is(err, live.ErrColecaoDesconhecida) {
			WriteError(w, http.StatusNotFound, "NOT_FOUND", "coleção desconhecida", nil)
			return
		}
		WriteError(w, http.StatusServiceUnavailable, "INTERNAL", "stream indisponível", nil)
		return
	}
	defer cancel()

	sse.PrepareHeaders()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			if err := sse.SendComment("keepalive"); err != nil {
				return
			}
		case snapshot, open := <-ch:
			if !open {
				return
			}
			if err := sse.SendEvent("snapshot", string(snapshot)); err != nil {
				return
			}
		}
	}
}
