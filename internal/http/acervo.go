package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ligaacademica/portal/internal/acervo"
)

// MeusDocumentos lista os documentos gerados do usuário autenticado.
func (h *Handler) MeusDocumentos(w http.ResponseWriter, r *http.Request) {
	user, err := h.usuarioAtual(r)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "conta não encontrada", nil)
		return
	}

	docs, err := h.acervo.List(r.Context(), user.Email)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível listar documentos", nil)
		return
	}
	WriteJSON(w, http.StatusOK, docs)
}

// AdicionarDocumento registra um documento para o próprio usuário.
func (h *Handler) AdicionarDocumento(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Titulo string `json:"titulo"`
		URL    string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	user, err := h.usuarioAtual(r)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "conta não encontrada", nil)
		return
	}

	doc, err := h.acervo.Adicionar(r.Context(), user.Email, payload.Titulo, payload.URL)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}
	WriteJSON(w, http.StatusCreated, doc)
}

// AdicionarDocumentoPara permite à coordenação registrar documento para
// qualquer membro, pelo e-mail.
func (h *Handler) AdicionarDocumentoPara(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email  string `json:"email"`
		Titulo string `json:"titulo"`
		URL    string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	doc, err := h.acervo.Adicionar(r.Context(), payload.Email, payload.Titulo, payload.URL)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}
	WriteJSON(w, http.StatusCreated, doc)
}

// RemoverDocumento apaga um documento do próprio usuário.
func (h *Handler) RemoverDocumento(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	user, err := h.usuarioAtual(r)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "conta não encontrada", nil)
		return
	}

	if err := h.acervo.Remover(r.Context(), id, user.Email); err != nil {
		if errors.Is(err, acervo.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "NOT_FOUND", "documento não encontrado", nil)
			return
		}
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível remover documento", nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
