package acervo

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("documento não encontrado")

// Documento é um link de documento gerado para um membro específico,
// indexado pelo e-mail normalizado da conta.
type Documento struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Titulo   string    `json:"titulo"`
	URL      string    `json:"url"`
	CriadoEm time.Time `json:"criado_em"`
}
