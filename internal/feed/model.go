package feed

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const Colecao = "feed"

var ErrNotFound = errors.New("publicação não encontrada")

// Midia é um item de mídia anexado à publicação.
type Midia struct {
	URL  string `json:"url"`
	Tipo string `json:"tipo"`
}

// Comentario é um comentário público dentro de uma publicação.
type Comentario struct {
	ID        uuid.UUID `json:"id"`
	AutorID   string    `json:"autor_id"`
	AutorNome string    `json:"autor_nome"`
	Texto     string    `json:"texto"`
	Horario   time.Time `json:"horario"`
}

// Post é uma publicação do mural, com mídias, curtidas e comentários
// embutidos no próprio registro.
type Post struct {
	ID          uuid.UUID    `json:"id"`
	AutorID     string       `json:"autor_id"`
	AutorNome   string       `json:"autor_nome"`
	Texto       string       `json:"texto"`
	Midias      []Midia      `json:"midias"`
	Curtidas    []string     `json:"curtidas"`
	Comentarios []Comentario `json:"comentarios"`
	CriadoEm    time.Time    `json:"criado_em"`
}

// ToggleCurtida alterna a curtida do usuário na lista, sem duplicar.
// Curtir duas vezes volta ao estado original.
func ToggleCurtida(curtidas []string, usuario string) []string {
	for i, atual := range curtidas {
		if atual == usuario {
			return append(curtidas[:i:i], curtidas[i+1:]...)
		}
	}
	return append(curtidas, usuario)
}

// ClampIndice ajusta um índice de mídia para dentro de [0, n). Índices fora
// do intervalo, inclusive de listas vazias, viram o extremo mais próximo.
func ClampIndice(n, idx int) int {
	if n <= 0 {
		return 0
	}
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}
