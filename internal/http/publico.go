package http

import "net/http"

// As rotas públicas alimentam o site institucional: leitura pura, sem sessão.

func (h *Handler) PublicoMembros(w http.ResponseWriter, r *http.Request) {
	lista, err := h.membros.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível listar membros", nil)
		return
	}
	WriteJSON(w, http.StatusOK, lista)
}

func (h *Handler) PublicoProjetos(w http.ResponseWriter, r *http.Request) {
	lista, err := h.projetos.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível listar projetos", nil)
		return
	}
	WriteJSON(w, http.StatusOK, lista)
}

func (h *Handler) PublicoLaboratorios(w http.ResponseWriter, r *http.Request) {
	lista, err := h.laboratorios.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível listar laboratórios", nil)
		return
	}
	WriteJSON(w, http.StatusOK, lista)
}

// PublicoEventos devolve apenas eventos ativos; o restante fica na visão admin.
func (h *Handler) PublicoEventos(w http.ResponseWriter, r *http.Request) {
	lista, err := h.eventos.ListAtivos(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível listar eventos", nil)
		return
	}
	WriteJSON(w, http.StatusOK, lista)
}

func (h *Handler) PublicoFeed(w http.ResponseWriter, r *http.Request) {
	lista, err := h.feed.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível listar publicações", nil)
		return
	}
	WriteJSON(w, http.StatusOK, lista)
}

func (h *Handler) PublicoInscricao(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.inscricao.Get(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível carregar inscrição", nil)
		return
	}
	WriteJSON(w, http.StatusOK, cfg)
}
