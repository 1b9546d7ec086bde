package projetos

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ligaacademica/portal/internal/util"
)

type repositorio interface {
	List(ctx context.Context) ([]Projeto, error)
	Upsert(ctx context.Context, p Projeto) (*Projeto, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type externalizador interface {
	Externalizar(ctx context.Context, colecao, id, campo string) string
}

type notificador interface {
	Invalidate(ctx context.Context, colecao string)
}

// Service reúne regras de negócio dos projetos de pesquisa.
type Service struct {
	repo  repositorio
	media externalizador
	hub   notificador
}

func NewService(repo repositorio, media externalizador, hub notificador) *Service {
	return &Service{repo: repo, media: media, hub: hub}
}

func (s *Service) List(ctx context.Context) ([]Projeto, error) {
	return s.repo.List(ctx)
}

// Salvar grava o projeto inteiro (sem update parcial), externalizando a imagem.
func (s *Service) Salvar(ctx context.Context, p Projeto) (*Projeto, error) {
	p.Titulo = strings.TrimSpace(p.Titulo)
	p.Orientador = strings.TrimSpace(p.Orientador)
	p.Status = strings.TrimSpace(p.Status)

	if err := util.RequireString(p.Titulo, "título"); err != nil {
		return nil, err
	}
	if err := util.RequireString(p.Orientador, "orientador"); err != nil {
		return nil, err
	}

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	p.ImagemURL = s.media.Externalizar(ctx, Colecao, p.ID.String(), p.ImagemURL)

	saved, err := s.repo.Upsert(ctx, p)
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
