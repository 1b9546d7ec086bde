package presenca

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type repositorio interface {
	List(ctx context.Context) ([]Registro, error)
	Create(ctx context.Context, reg Registro) (*Registro, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type buscadorEvento interface {
	TituloDoEvento(ctx context.Context, id uuid.UUID) (string, error)
}

type buscadorMembro interface {
	NomeDoMembro(ctx context.Context, id uuid.UUID) (string, error)
}

type notificador interface {
	Invalidate(ctx context.Context, colecao string)
}

// Service concentra o fluxo de marcação de presença.
type Service struct {
	repo    repositorio
	eventos buscadorEvento
	membros buscadorMembro
	hub     notificador
}

// NewService cria o serviço de presença.
func NewService(repo repositorio, eventos buscadorEvento, membros buscadorMembro, hub notificador) *Service {
	return &Service{repo: repo, eventos: eventos, membros: membros, hub: hub}
}

// List devolve o histórico de presenças.
func (s *Service) List(ctx context.Context) ([]Registro, error) {
	return s.repo.List(ctx)
}

// Registrar resolve a desambiguação evento/participante e grava o registro.
// O registro sempre sai com título e nome preenchidos, nunca apenas ids.
func (s *Service) Registrar(ctx context.Context, input RegistrarInput) (*Registro, error) {
	titulo, err := s.resolverEvento(ctx, input)
	if err != nil {
		return nil, err
	}

	nome, membroID, err := s.resolverParticipante(ctx, input)
	if err != nil {
		return nil, err
	}

	data := strings.TrimSpace(input.Data)
	if data == "" {
		data = time.Now().Format("2006-01-02")
	}

	reg := Registro{
		ID:           uuid.New(),
		MembroID:     membroID,
		MembroNome:   nome,
		EventoTitulo: titulo,
		Data:         data,
		Avulsa:       input.Avulsa,
		EventoAvulso: input.EventoAvulso,
	}

	saved, err := s.repo.Create(ctx, reg)
	if err != nil {
		return nil, err
	}

	s.hub.Invalidate(ctx, Colecao)
	return saved, nil
}

// Remover apaga um registro individual.
func (s *Service) Remover(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.hub.Invalidate(ctx, Colecao)
	return nil
}

func (s *Service) resolverEvento(ctx context.Context, input RegistrarInput) (string, error) {
	if input.EventoAvulso {
		titulo := strings.ToUpper(strings.TrimSpace(input.TituloManual))
		if titulo == "" {
			return "", ErrEventoIndefinido
		}
		return titulo, nil
	}

	if input.EventoID == uuid.Nil {
		return "", ErrEventoIndefinido
	}
	titulo, err := s.eventos.TituloDoEvento(ctx, input.EventoID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(titulo) == "" {
		return "", ErrEventoIndefinido
	}
	return titulo, nil
}

func (s *Service) resolverParticipante(ctx context.Context, input RegistrarInput) (string, *uuid.UUID, error) {
	if input.Avulsa {
		nome := strings.ToUpper(strings.TrimSpace(input.NomeManual))
		if nome == "" {
			return "", nil, ErrParticipanteIndefinido
		}
		return nome, nil, nil
	}

	if input.MembroID == uuid.Nil {
		return "", nil, ErrParticipanteIndefinido
	}
	nome, err := s.membros.NomeDoMembro(ctx, input.MembroID)
	if err != nil {
		return "", nil, err
	}
	if strings.TrimSpace(nome) == "" {
		return "", nil, ErrParticipanteIndefinido
	}
	id := input.MembroID
	return nome, &id, nil
}
