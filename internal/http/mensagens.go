package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	httpmiddleware "github.com/ligaacademica/portal/internal/http/middleware"
	"github.com/ligaacademica/portal/internal/mensagens"
	"github.com/ligaacademica/portal/internal/usuarios"
)

const maxAnexoBytes = 10 << 20

// MinhasMensagens devolve a conversa do membro com a coordenação.
func (h *Handler) MinhasMensagens(w http.ResponseWriter, r *http.Request) {
	user, err := h.usuarioAtual(r)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "conta não encontrada", nil)
		return
	}

	lista, err := h.mensagens.Conversa(r.Context(), user.ID.String())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível listar mensagens", nil)
		return
	}
	WriteJSON(w, http.StatusOK, lista)
}

// CanalMensagens devolve todas as conversas para a coordenação.
func (h *Handler) CanalMensagens(w http.ResponseWriter, r *http.Request) {
	lista, err := h.mensagens.Canal(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível listar mensagens", nil)
		return
	}
	WriteJSON(w, http.StatusOK, lista)
}

// EnviarMensagem aceita JSON simples ou multipart com anexo. Membros falam
// com o canal da coordenação; administradores respondem indicando o
// destinatário.
func (h *Handler) EnviarMensagem(w http.ResponseWriter, r *http.Request) {
	user, err := h.usuarioAtual(r)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "conta não encontrada", nil)
		return
	}

	input, err := h.lerEnvio(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	admin := false
	for _, role := range httpmiddleware.GetRoles(r.Context()) {
		if strings.EqualFold(role, usuarios.PapelAdmin) {
			admin = true
			break
		}
	}

	if admin && input.DestinatarioID != "" && input.DestinatarioID != mensagens.CanalAdmin {
		input.RemetenteID = mensagens.CanalAdmin
	} else {
		input.RemetenteID = user.ID.String()
		input.DestinatarioID = mensagens.CanalAdmin
	}
	input.RemetenteNome = user.Nome

	msg, err := h.mensagens.Enviar(r.Context(), input)
	if err != nil {
		if errors.Is(err, mensagens.ErrMensagemVazia) {
			WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
			return
		}
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível enviar mensagem", nil)
		return
	}

	WriteJSON(w, http.StatusCreated, msg)
}

func (h *Handler) lerEnvio(r *http.Request) (mensagens.EnviarInput, error) {
	var input mensagens.EnviarInput

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxAnexoBytes); err != nil {
			return input, errors.New("formulário inválido")
		}
		input.Texto = r.FormValue("texto")
		input.DestinatarioID = strings.TrimSpace(r.FormValue("destinatario_id"))

		file, header, err := r.FormFile("arquivo")
		if err == nil {
			defer file.Close()
			data, err := io.ReadAll(io.LimitReader(file, maxAnexoBytes))
			if err != nil {
				return input, errors.New("não foi possível ler o anexo")
			}
			input.Arquivo = data
			input.ArquivoNome = header.Filename
			input.ArquivoMIME = header.Header.Get("Content-Type")
		}
		return input, nil
	}

	var payload struct {
		Texto          string `json:"texto"`
		DestinatarioID string `json:"destinatario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return input, errors.New("JSON inválido")
	}
	input.Texto = payload.Texto
	input.DestinatarioID = strings.TrimSpace(payload.DestinatarioID)
	return input, nil
}
