package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ligaacademica/portal/internal/eventos"
	"github.com/ligaacademica/portal/internal/membros"
	"github.com/ligaacademica/portal/internal/presenca"
)

func (h *Handler) ListPresencas(w http.ResponseWriter, r *http.Request) {
	lista, err := h.presenca.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível listar presenças", nil)
		return
	}
	WriteJSON(w, http.StatusOK, lista)
}

// RegistrarPresenca aceita as quatro combinações do formulário: evento
// agendado ou avulso, membro cadastrado ou participante de fora.
func (h *Handler) RegistrarPresenca(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		EventoAvulso bool   `json:"evento_avulso"`
		EventoID     string `json:"evento_id"`
		TituloManual string `json:"titulo_manual"`
		Avulsa       bool   `json:"avulsa"`
		MembroID     string `json:"membro_id"`
		NomeManual   string `json:"nome_manual"`
		Data         string `json:"data"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	input := presenca.RegistrarInput{
		EventoAvulso: payload.EventoAvulso,
		TituloManual: payload.TituloManual,
		Avulsa:       payload.Avulsa,
		NomeManual:   payload.NomeManual,
		Data:         payload.Data,
	}

	if raw := strings.TrimSpace(payload.EventoID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "VALIDATION", "evento_id inválido", nil)
			return
		}
		input.EventoID = id
	}
	if raw := strings.TrimSpace(payload.MembroID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "VALIDATION", "membro_id inválido", nil)
			return
		}
		input.MembroID = id
	}

	registro, err := h.presenca.Registrar(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, presenca.ErrEventoIndefinido), errors.Is(err, presenca.ErrParticipanteIndefinido):
			WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		case errors.Is(err, eventos.ErrNotFound):
			WriteError(w, http.StatusNotFound, "NOT_FOUND", "evento não encontrado", nil)
		case errors.Is(err, membros.ErrNotFound):
			WriteError(w, http.StatusNotFound, "NOT_FOUND", "membro não encontrado", nil)
		default:
			WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível registrar presença", nil)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, registro)
}

func (h *Handler) RemoverPresenca(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	if err := h.presenca.Remover(r.Context(), id); err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível remover presença", nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
