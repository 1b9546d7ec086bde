package inscricao

import "context"

type repositorio interface {
	Get(ctx context.Context) (*Config, error)
	Put(ctx context.Context, cfg Config) error
}

type notificador interface {
	Invalidate(ctx context.Context, colecao string)
}

// Service expõe a configuração da página de inscrição.
type Service struct {
	repo repositorio
	hub  notificador
}

func NewService(repo repositorio, hub notificador) *Service {
	return &Service{repo: repo, hub: hub}
}

func (s *Service) Get(ctx context.Context) (*Config, error) {
	return s.repo.Get(ctx)
}

// Atualizar troca a configuração inteira, sem mesclagem parcial.
func (s *Service) Atualizar(ctx context.Context, cfg Config) (*Config, error) {
	if cfg.Regras == nil {
		cfg.Regras = []string{}
	}
	if cfg.Cronograma == nil {
		cfg.Cronograma = []Etapa{}
	}

	if err := s.repo.Put(ctx, cfg); err != nil {
		return nil, err
	}

	s.hub.Invalidate(ctx, Colecao)
	return &cfg, nil
}
