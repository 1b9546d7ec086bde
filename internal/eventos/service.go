package eventos

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ligaacademica/portal/internal/util"
)

type repositorio interface {
	List(ctx context.Context) ([]Evento, error)
	ListAtivos(ctx context.Context) ([]Evento, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Evento, error)
	Upsert(ctx context.Context, e Evento) (*Evento, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type externalizador interface {
	Externalizar(ctx context.Context, colecao, id, campo string) string
}

type notificador interface {
	Invalidate(ctx context.Context, colecao string)
}

type Service struct {
	repo  repositorio
	media externalizador
	hub   notificador
}

func NewService(repo repositorio, media externalizador, hub notificador) *Service {
	return &Service{repo: repo, media: media, hub: hub}
}

func (s *Service) List(ctx context.Context) ([]Evento, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListAtivos(ctx context.Context) ([]Evento, error) {
	return s.repo.ListAtivos(ctx)
}

// TituloDoEvento resolve o título para denormalização nos registros de presença.
func (s *Service) TituloDoEvento(ctx context.Context, id uuid.UUID) (string, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return e.Titulo, nil
}

func (s *Service) Salvar(ctx context.Context, e Evento) (*Evento, error) {
	e.Titulo = strings.TrimSpace(e.Titulo)
	e.Categoria = strings.TrimSpace(e.Categoria)

	if err := util.RequireString(e.Titulo, "título"); err != nil {
		return nil, err
	}
	if err := util.RequireString(e.Data, "data"); err != nil {
		return nil, err
	}

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	e.ImagemURL = s.media.Externalizar(ctx, Colecao, e.ID.String(), e.ImagemURL)

	saved, err := s.repo.Upsert(ctx, e)
	if err != nil {
		return nil, err
	}

	s.hub.Invalidate(ctx, Colecao)
	return saved, nil
}

func (s *Service) Remover(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.hub.Invalidate(ctx, Colecao)
	return nil
}
