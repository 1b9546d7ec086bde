package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ligaacademica/portal/internal/assistant"
	"github.com/ligaacademica/portal/internal/live"
)

// AssistenteTranscricao devolve a conversa persistida do usuário.
func (h *Handler) AssistenteTranscricao(w http.ResponseWriter, r *http.Request) {
	user, err := h.usuarioAtual(r)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "conta não encontrada", nil)
		return
	}

	turnos, err := h.assistente.Transcricao(r.Context(), user.Email)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível carregar conversa", nil)
		return
	}
	WriteJSON(w, http.StatusOK, turnos)
}

// AssistentePerguntar processa um turno e transmite a resposta por SSE: um
// evento "fragmento" por pedaço emitido, na ordem de emissão, e um evento
// "transcricao" com a conversa completa no fechamento. Erros anteriores ao
// primeiro fragmento ainda saem como envelope JSON.
func (h *Handler) AssistentePerguntar(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Mensagem string `json:"mensagem"`
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

	sse, ok := live.NewSSEWriter(w)
	if !ok {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "streaming não suportado", nil)
		return
	}

	iniciado := false
	emit := func(frag assistant.Fragmento) {
		if !iniciado {
			sse.PrepareHeaders()
			iniciado = true
		}
		dados, err := json.Marshal(frag)
		if err != nil {
			return
		}
		_ = sse.SendEvent("fragmento", string(dados))
	}

	turnos, err := h.assistente.Responder(r.Context(), user.Email, payload.Mensagem, emit)
	if err != nil {
		if iniciado {
			_ = sse.SendEvent("erro", `{"mensagem":"não foi possível concluir a resposta"}`)
			return
		}
		switch {
		case errors.Is(err, assistant.ErrOcupado):
			WriteError(w, http.StatusConflict, "VALIDATION", err.Error(), nil)
		case errors.Is(err, assistant.ErrMensagemVazia):
			WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		default:
			WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível processar a pergunta", nil)
		}
		return
	}

	if !iniciado {
		sse.PrepareHeaders()
	}
	dados, err := json.Marshal(turnos)
	if err != nil {
		return
	}
	_ = sse.SendEvent("transcricao", string(dados))
}

// AssistenteLimpar apaga a conversa do usuário.
func (h *Handler) AssistenteLimpar(w http.ResponseWriter, r *http.Request) {
	user, err := h.usuarioAtual(r)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "conta não encontrada", nil)
		return
	}

	if err := h.assistente.Limpar(r.Context(), user.Email); err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível limpar conversa", nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
