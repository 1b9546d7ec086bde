package laboratorios

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const Colecao = "laboratorios"

var ErrNotFound = errors.New("laboratório não encontrado")

// Laboratorio representa laboratório ou grupo vinculado à liga.
type Laboratorio struct {
	ID          uuid.UUID `json:"id"`
	Titulo      string    `json:"titulo"`
	Coordenador string    `json:"coordenador"`
	Tipo        string    `json:"tipo"`
	Descricao   string    `json:"descricao"`
	ImagemURL   string    `json:"imagem_url"`
	CriadoEm    time.Time `json:"criado_em"`
}
