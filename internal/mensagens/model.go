package mensagens

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	Colecao = "mensagens"
	// CanalAdmin é o destinatário fixo do canal da coordenação.
	CanalAdmin = "admin"
)

var (
	ErrNotFound = errors.New("mensagem não encontrada")
	// ErrMensagemVazia indica envio sem texto e sem anexo.
	ErrMensagemVazia = errors.New("mensagem vazia")
)

// Mensagem representa mensagem direta entre um membro e o canal da coordenação.
// Não há edição nem exclusão; a conversa é ordenada por horário ascendente.
type Mensagem struct {
	ID             uuid.UUID `json:"id"`
	RemetenteID    string    `json:"remetente_id"`
	RemetenteNome  string    `json:"remetente_nome"`
	DestinatarioID string    `json:"destinatario_id"`
	Texto          string    `json:"texto"`
	ArquivoURL     string    `json:"arquivo_url,omitempty"`
	Horario        time.Time `json:"horario"`
}

// EnviarInput encapsula um envio, com anexo opcional ainda embutido.
type EnviarInput struct {
	RemetenteID    string
	RemetenteNome  string
	DestinatarioID string
	Texto          string
	ArquivoNome    string
	ArquivoMIME    string
	Arquivo        []byte
}
