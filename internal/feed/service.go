package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrPostVazio indica publicação sem texto e sem mídia.
var ErrPostVazio = errors.New("publicação precisa de texto ou de mídia")

type repositorio interface {
	List(ctx context.Context) ([]Post, error)
	Upsert(ctx context.Context, post Post) (*Post, error)
	Atualizar(ctx context.Context, id uuid.UUID, fn func(post *Post) error) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type externalizador interface {
	Externalizar(ctx context.Context, colecao, id, campo string) string
}

type notificador interface {
	Invalidate(ctx context.Context, colecao string)
}

// Service cobre o mural de publicações e suas interações.
type Service struct {
	repo  repositorio
	media externalizador
	hub   notificador
}

func NewService(repo repositorio, media externalizador, hub notificador) *Service {
	return &Service{repo: repo, media: media, hub: hub}
}

func (s *Service) List(ctx context.Context) ([]Post, error) {
	return s.repo.List(ctx)
}

// Salvar cria ou atualiza uma publicação. Cada mídia embutida é enviada ao
// storage individualmente; as demais permanecem como vieram.
func (s *Service) Salvar(ctx context.Context, post Post) (*Post, error) {
	post.Texto = strings.TrimSpace(post.Texto)
	post.AutorID = strings.TrimSpace(post.AutorID)
	post.AutorNome = strings.TrimSpace(post.AutorNome)
	if post.Texto == "" && len(post.Midias) == 0 {
		return nil, ErrPostVazio
	}
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}

	for i := range post.Midias {
		chave := fmt.Sprintf("%s_%d", post.ID, i)
		post.Midias[i].URL = s.media.Externalizar(ctx, Colecao, chave, post.Midias[i].URL)
	}

	saved, err := s.repo.Upsert(ctx, post)
	if err != nil {
		return nil, err
	}

	s.hub.Invalidate(ctx, Colecao)
	return saved, nil
}

// Remover apaga a publicação com curtidas e comentários juntos.
func (s *Service) Remover(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.hub.Invalidate(ctx, Colecao)
	return nil
}

// Curtir alterna a curtida do usuário na publicação. A mutação roda dentro
// da transação do repositório para não perder curtidas concorrentes.
func (s *Service) Curtir(ctx context.Context, postID uuid.UUID, usuario string) (*Post, error) {
	usuario = strings.TrimSpace(usuario)
	if usuario == "" {
		return nil, errors.New("usuário da curtida obrigatório")
	}

	saved, err := s.repo.Atualizar(ctx, postID, func(post *Post) error {
		post.Curtidas = ToggleCurtida(post.Curtidas, usuario)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.Invalidate(ctx, Colecao)
	return saved, nil
}

// Comentar acrescenta um comentário ao fim da publicação.
func (s *Service) Comentar(ctx context.Context, postID uuid.UUID, autorID, autorNome, texto string) (*Post, error) {
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return nil, errors.New("comentário vazio")
	}

	saved, err := s.repo.Atualizar(ctx, postID, func(post *Post) error {
		post.Comentarios = append(post.Comentarios, Comentario{
			ID:        uuid.New(),
			AutorID:   strings.TrimSpace(autorID),
			AutorNome: strings.TrimSpace(autorNome),
			Texto:     texto,
			Horario:   time.Now().UTC(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.Invalidate(ctx, Colecao)
	return saved, nil
}
