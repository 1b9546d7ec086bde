package membros

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Colecao é o nome da coleção sincronizada com os clientes.
const Colecao = "membros"

var (
	// ErrNotFound é retornado quando o membro não existe.
	ErrNotFound = errors.New("membro não encontrado")
)

// Membro representa integrante do quadro público da liga.
type Membro struct {
	ID             uuid.UUID `json:"id"`
	Nome           string    `json:"nome"`
	Email          string    `json:"email"`
	Papel          string    `json:"papel"`
	FotoURL        string    `json:"foto_url"`
	AcessoLiberado bool      `json:"acesso_liberado"`
	CriadoEm       time.Time `json:"criado_em"`
}
