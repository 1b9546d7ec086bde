package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ligaacademica/portal/internal/feed"
)

// SalvarPost cria ou atualiza uma publicação; a autoria vem sempre da conta
// autenticada, nunca do corpo.
func (h *Handler) SalvarPost(w http.ResponseWriter, r *http.Request) {
	var payload feed.Post
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	user, err := h.usuarioAtual(r)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "conta não encontrada", nil)
		return
	}
	payload.AutorID = user.ID.String()
	if strings.TrimSpace(payload.AutorNome) == "" {
		payload.AutorNome = user.Nome
	}

	saved, err := h.feed.Salvar(r.Context(), payload)
	if err != nil {
		if errors.Is(err, feed.ErrPostVazio) {
			WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
			return
		}
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível salvar publicação", nil)
		return
	}
	WriteJSON(w, http.StatusOK, saved)
}

func (h *Handler) RemoverPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	if err := h.feed.Remover(r.Context(), id); err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível remover publicação", nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// CurtirPost alterna a curtida do usuário autenticado.
func (h *Handler) CurtirPost(w http.ResponseWriter, r *http.Request) {
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

	post, err := h.feed.Curtir(r.Context(), id, user.ID.String())
	if err != nil {
		if errors.Is(err, feed.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "NOT_FOUND", "publicação não encontrada", nil)
			return
		}
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível curtir", nil)
		return
	}
	WriteJSON(w, http.StatusOK, post)
}

// ComentarPost acrescenta comentário em nome do usuário autenticado.
func (h *Handler) ComentarPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	var payload struct {
		Texto string `json:"texto"`
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

	post, err := h.feed.Comentar(r.Context(), id, user.ID.String(), user.Nome, payload.Texto)
	if err != nil {
		if errors.Is(err, feed.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "NOT_FOUND", "publicação não encontrada", nil)
			return
		}
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}
	WriteJSON(w, http.StatusOK, post)
}
