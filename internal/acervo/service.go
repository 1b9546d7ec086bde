package acervo

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/ligaacademica/portal/internal/util"
)

type repositorio interface {
	ListByEmail(ctx context.Context, email string) ([]Documento, error)
	Create(ctx context.Context, doc Documento) (*Documento, error)
	Delete(ctx context.Context, id uuid.UUID, email string) error
}

// Service guarda os documentos gerados de cada membro.
type Service struct {
	repo repositorio
}

func NewService(repo repositorio) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, email string) ([]Documento, error) {
	return s.repo.ListByEmail(ctx, util.NormalizeEmail(email))
}

func (s *Service) Adicionar(ctx context.Context, email, titulo, url string) (*Documento, error) {
	titulo = strings.TrimSpace(titulo)
	url = strings.TrimSpace(url)
	if titulo == "" || url == "" {
		return nil, errors.New("título e url obrigatórios")
	}

	return s.repo.Create(ctx, Documento{
		ID:     uuid.New(),
		Email:  util.NormalizeEmail(email),
		Titulo: titulo,
		URL:    url,
	})
}

func (s *Service) Remover(ctx context.Context, id uuid.UUID, email string) error {
	return s.repo.Delete(ctx, id, util.NormalizeEmail(email))
}
