package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	httpmiddleware "github.com/ligaacademica/portal/internal/http/middleware"
	"github.com/ligaacademica/portal/internal/usuarios"
)

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("identificador inválido")
	}
	return id, nil
}

// usuarioAtual carrega a conta do subject autenticado.
func (h *Handler) usuarioAtual(r *http.Request) (*usuarios.Usuario, error) {
	subject, err := uuid.Parse(httpmiddleware.GetSubject(r.Context()))
	if err != nil {
		return nil, errors.New("subject inválido")
	}
	return h.usuarios.GetByID(r.Context(), subject)
}
