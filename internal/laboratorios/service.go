package laboratorios

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ligaacademica/portal/internal/util"
)

type repositorio interface {
	List(ctx context.Context) ([]Laboratorio, error)
	Upsert(ctx context.Context, l Laboratorio) (*Laboratorio, error)
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

func (s *Service) List(ctx context.Context) ([]Laboratorio, error) {
	return s.repo.List(ctx)
}

func (s *Service) Salvar(ctx context.Context, l Laboratorio) (*Laboratorio, error) {
	l.Titulo = strings.TrimSpace(l.Titulo)
	l.Coordenador = strings.TrimSpace(l.Coordenador)
	l.Tipo = strings.TrimSpace(l.Tipo)

	if err := util.RequireString(l.Titulo, "título"); err != nil {
		return nil, err
	}

	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}

	l.ImagemURL = s.media.Externalizar(ctx, Colecao, l.ID.String(), l.ImagemURL)

	saved, err := s.repo.Upsert(ctx, l)
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
