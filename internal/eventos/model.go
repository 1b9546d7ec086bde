package eventos

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const Colecao = "eventos"

var ErrNotFound = errors.New("evento não encontrado")

// Evento representa atividade do calendário da liga.
// A flag Ativo controla a visibilidade nas páginas públicas e no fluxo de inscrição.
type Evento struct {
	ID        uuid.UUID `json:"id"`
	Titulo    string    `json:"titulo"`
	Data      string    `json:"data"`
	Hora      string    `json:"hora"`
	Local     string    `json:"local"`
	Descricao string    `json:"descricao"`
	Categoria string    `json:"categoria"`
	Ativo     bool      `json:"ativo"`
	ImagemURL string    `json:"imagem_url"`
	CriadoEm  time.Time `json:"criado_em"`
}
