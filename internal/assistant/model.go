package assistant

import "errors"

// MensagemDesculpa é a resposta fixa anexada quando o streaming falha no
// meio. O que já chegou permanece na transcrição.
const MensagemDesculpa = "Desculpe, não consegui concluir a resposta agora. Tente novamente em instantes."

const (
	PapelUsuario = "user"
	PapelModelo  = "model"
)

var (
	// ErrOcupado indica que o usuário já tem uma chamada em andamento.
	ErrOcupado        = errors.New("assistente ocupado com outra pergunta")
	ErrMensagemVazia  = errors.New("mensagem vazia")
	ErrNaoConfigurado = errors.New("assistente não configurado")
)

// Citacao é uma referência de fundamentação devolvida junto com o texto.
type Citacao struct {
	Titulo string `json:"titulo"`
	URI    string `json:"uri"`
}

// Fragmento é uma unidade do streaming: delta de texto e zero ou mais citações.
type Fragmento struct {
	Texto    string    `json:"texto"`
	Citacoes []Citacao `json:"citacoes,omitempty"`
}

// Turno é uma entrada da transcrição persistida.
type Turno struct {
	Papel    string    `json:"papel"`
	Texto    string    `json:"texto"`
	Citacoes []Citacao `json:"citacoes,omitempty"`
}
