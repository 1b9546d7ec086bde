package presenca

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const Colecao = "presenca"

var (
	ErrNotFound = errors.New("registro de presença não encontrado")
	// ErrEventoIndefinido indica que nem evento agendado nem título avulso foram informados.
	ErrEventoIndefinido = errors.New("evento obrigatório: selecione um agendado ou informe o título avulso")
	// ErrParticipanteIndefinido indica que nem membro nem nome avulso foram informados.
	ErrParticipanteIndefinido = errors.New("participante obrigatório: selecione um membro ou informe o nome")
)

// Registro guarda presença com evento e participante denormalizados.
// Título e nome ficam gravados no próprio registro para que o histórico
// continue legível mesmo se o membro ou o evento forem apagados depois.
type Registro struct {
	ID           uuid.UUID  `json:"id"`
	MembroID     *uuid.UUID `json:"membro_id,omitempty"`
	MembroNome   string     `json:"membro_nome"`
	EventoTitulo string     `json:"evento_titulo"`
	Data         string     `json:"data"`
	Horario      time.Time  `json:"horario"`
	Avulsa       bool       `json:"avulsa"`
	EventoAvulso bool       `json:"evento_avulso"`
}

// RegistrarInput captura o fluxo de desambiguação do formulário de presença:
// evento agendado OU avulso, membro cadastrado OU participante avulso.
type RegistrarInput struct {
	EventoAvulso bool
	EventoID     uuid.UUID
	TituloManual string
	Avulsa       bool
	MembroID     uuid.UUID
	NomeManual   string
	Data         string
}
