package projetos

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const Colecao = "projetos"

var ErrNotFound = errors.New("projeto não encontrado")

// Projeto representa linha de pesquisa divulgada no portal.
type Projeto struct {
	ID         uuid.UUID `json:"id"`
	Titulo     string    `json:"titulo"`
	Orientador string    `json:"orientador"`
	DataInicio string    `json:"data_inicio"`
	Status     string    `json:"status"`
	Descricao  string    `json:"descricao"`
	ImagemURL  string    `json:"imagem_url"`
	CriadoEm   time.Time `json:"criado_em"`
}
