package http

import (
	"encoding/json"
	"net/http"

	"github.com/ligaacademica/portal/internal/inscricao"
)

// AtualizarInscricao substitui a configuração inteira da página de inscrição.
func (h *Handler) AtualizarInscricao(w http.ResponseWriter, r *http.Request) {
	var payload inscricao.Config
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	cfg, err := h.inscricao.Atualizar(r.Context(), payload)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível salvar configuração", nil)
		return
	}
	WriteJSON(w, http.StatusOK, cfg)
}
