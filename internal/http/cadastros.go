package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ligaacademica/portal/internal/eventos"
	"github.com/ligaacademica/portal/internal/laboratorios"
	"github.com/ligaacademica/portal/internal/membros"
	"github.com/ligaacademica/portal/internal/projetos"
	"github.com/ligaacademica/portal/internal/usuarios"
)

// Cadastros administrativos: o salvar é sempre o registro inteiro, criando
// quando o id vem vazio e substituindo quando já existe.

func (h *Handler) ListMembros(w http.ResponseWriter, r *http.Request) {
	lista, err := h.membros.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível listar membros", nil)
		return
	}
	WriteJSON(w, http.StatusOK, lista)
}

func (h *Handler) SalvarMembro(w http.ResponseWriter, r *http.Request) {
	var payload membros.Membro
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	saved, err := h.membros.Salvar(r.Context(), payload)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}
	WriteJSON(w, http.StatusOK, saved)
}

func (h *Handler) AlternarAcessoMembro(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	atualizado, err := h.membros.AlternarAcesso(r.Context(), id)
	if err != nil {
		if errors.Is(err, membros.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "NOT_FOUND", "membro não encontrado", nil)
			return
		}
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível alterar acesso", nil)
		return
	}
	WriteJSON(w, http.StatusOK, atualizado)
}

func (h *Handler) RemoverMembro(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	if err := h.membros.Remover(r.Context(), id); err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível remover membro", nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) ListProjetos(w http.ResponseWriter, r *http.Request) {
	lista, err := h.projetos.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível listar projetos", nil)
		return
	}
	WriteJSON(w, http.StatusOK, lista)
}

func (h *Handler) SalvarProjeto(w http.ResponseWriter, r *http.Request) {
	var payload projetos.Projeto
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	saved, err := h.projetos.Salvar(r.Context(), payload)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}
	WriteJSON(w, http.StatusOK, saved)
}

func (h *Handler) RemoverProjeto(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	if err := h.projetos.Remover(r.Context(), id); err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível remover projeto", nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) ListLaboratorios(w http.ResponseWriter, r *http.Request) {
	lista, err := h.laboratorios.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível listar laboratórios", nil)
		return
	}
	WriteJSON(w, http.StatusOK, lista)
}

func (h *Handler) SalvarLaboratorio(w http.ResponseWriter, r *http.Request) {
	var payload laboratorios.Laboratorio
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	saved, err := h.laboratorios.Salvar(r.Context(), payload)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}
	WriteJSON(w, http.StatusOK, saved)
}

func (h *Handler) RemoverLaboratorio(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	if err := h.laboratorios.Remover(r.Context(), id); err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível remover laboratório", nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) ListEventos(w http.ResponseWriter, r *http.Request) {
	lista, err := h.eventos.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível listar eventos", nil)
		return
	}
	WriteJSON(w, http.StatusOK, lista)
}

func (h *Handler) SalvarEvento(w http.ResponseWriter, r *http.Request) {
	var payload eventos.Evento
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	saved, err := h.eventos.Salvar(r.Context(), payload)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}
	WriteJSON(w, http.StatusOK, saved)
}

func (h *Handler) RemoverEvento(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	if err := h.eventos.Remover(r.Context(), id); err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível remover evento", nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) ListUsuarios(w http.ResponseWriter, r *http.Request) {
	lista, err := h.usuarios.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível listar usuários", nil)
		return
	}
	WriteJSON(w, http.StatusOK, lista)
}

func (h *Handler) AlternarAcessoUsuario(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	atualizado, err := h.usuarios.AlternarAcesso(r.Context(), id)
	if err != nil {
		if errors.Is(err, usuarios.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "NOT_FOUND", "usuário não encontrado", nil)
			return
		}
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível alterar acesso", nil)
		return
	}
	WriteJSON(w, http.StatusOK, atualizado)
}

func (h *Handler) RemoverUsuario(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	if err := h.usuarios.Remover(r.Context(), id); err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível remover usuário", nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
