package membros

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ligaacademica/portal/internal/util"
)

type repositorio interface {
	List(ctx context.Context) ([]Membro, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Membro, error)
	Upsert(ctx context.Context, m Membro) (*Membro, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetAcesso(ctx context.Context, id uuid.UUID, liberado bool) error
}

type externalizador interface {
	Externalizar(ctx context.Context, colecao, id, campo string) string
}

type notificador interface {
	Invalidate(ctx context.Context, colecao string)
}

// Service reúne regras de negócio do quadro de membros.
type Service struct {
	repo  repositorio
	media externalizador
	hub   notificador
}

// NewService cria uma nova instância do serviço.
func NewService(repo repositorio, media externalizador, hub notificador) *Service {
	return &Service{repo: repo, media: media, hub: hub}
}

// List devolve o quadro completo.
func (s *Service) List(ctx context.Context) ([]Membro, error) {
	return s.repo.List(ctx)
}

// Salvar grava o membro inteiro; fotos embutidas são externalizadas antes.
func (s *Service) Salvar(ctx context.Context, m Membro) (*Membro, error) {
	m.Nome = strings.TrimSpace(m.Nome)
	m.Email = util.NormalizeEmail(m.Email)
	m.Papel = strings.TrimSpace(m.Papel)

	if err := util.RequireString(m.Nome, "nome"); err != nil {
		return nil, err
	}
	if err := util.ValidateEmail(m.Email); err != nil {
		return nil, err
	}

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	m.FotoURL = s.media.Externalizar(ctx, Colecao, m.ID.String(), m.FotoURL)

	saved, err := s.repo.Upsert(ctx, m)
	if err != nil {
		return nil, err
	}

	s.hub.Invalidate(ctx, Colecao)
	return saved, nil
}

// Remover apaga o membro; id inexistente não é erro.
func (s *Service) Remover(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.hub.Invalidate(ctx, Colecao)
	return nil
}

// NomeDoMembro resolve o nome para denormalização nos registros de presença.
func (s *Service) NomeDoMembro(ctx context.Context, id uuid.UUID) (string, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return m.Nome, nil
}

// AlternarAcesso inverte a flag de acesso do membro.
func (s *Service) AlternarAcesso(ctx context.Context, id uuid.UUID) (*Membro, error) {
	atual, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetAcesso(ctx, id, !atual.AcessoLiberado); err != nil {
		return nil, err
	}

	atual.AcessoLiberado = !atual.AcessoLiberado
	s.hub.Invalidate(ctx, Colecao)
	return atual, nil
}
