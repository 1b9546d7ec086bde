package feed

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

type stubRepo struct {
	posts map[uuid.UUID]Post
}

func newStubRepo() *stubRepo {
	return &stubRepo{posts: make(map[uuid.UUID]Post)}
}

func (s *stubRepo) List(_ context.Context) ([]Post, error) {
	out := make([]Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubRepo) Upsert(_ context.Context, post Post) (*Post, error) {
	s.posts[post.ID] = post
	return &post, nil
}

func (s *stubRepo) Atualizar(_ context.Context, id uuid.UUID, fn func(post *Post) error) (*Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := fn(&p); err != nil {
		return nil, err
	}
	s.posts[id] = p
	return &p, nil
}

func (s *stubRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.posts, id)
	return nil
}

type passthroughMedia struct{}

func (passthroughMedia) Externalizar(_ context.Context, _, _, campo string) string { return campo }

type stubHub struct {
	invalidadas []string
}

func (s *stubHub) Invalidate(_ context.Context, colecao string) {
	s.invalidadas = append(s.invalidadas, colecao)
}

func TestCurtirAlternaSemDuplicar(t *testing.T) {
	repo := newStubRepo()
	post := Post{ID: uuid.New(), Texto: "edital publicado"}
	repo.posts[post.ID] = post

	svc := NewService(repo, passthroughMedia{}, &stubHub{})

	depois, err := svc.Curtir(context.Background(), post.ID, "u1")
	if err != nil {
		t.Fatalf("esperava sucesso, veio %v", err)
	}
	if len(depois.Curtidas) != 1 || depois.Curtidas[0] != "u1" {
		t.Fatalf("primeira curtida deveria entrar: %v", depois.Curtidas)
	}

	devolta, err := svc.Curtir(context.Background(), post.ID, "u1")
	if err != nil {
		t.Fatalf("esperava sucesso, veio %v", err)
	}
	if len(devolta.Curtidas) != 0 {
		t.Fatalf("curtir duas vezes deveria voltar ao estado original: %v", devolta.Curtidas)
	}
}

func TestComentarAcrescentaNoFim(t *testing.T) {
	repo := newStubRepo()
	post := Post{ID: uuid.New(), Texto: "resultado da seleção", Comentarios: []Comentario{{Texto: "primeiro"}}}
	repo.posts[post.ID] = post

	hub := &stubHub{}
	svc := NewService(repo, passthroughMedia{}, hub)

	depois, err := svc.Comentar(context.Background(), post.ID, "u9", "Duda", "parabéns aos aprovados")
	if err != nil {
		t.Fatalf("esperava sucesso, veio %v", err)
	}

	if len(depois.Comentarios) != 2 {
		t.Fatalf("comentário deveria ser anexado: %d", len(depois.Comentarios))
	}
	ultimo := depois.Comentarios[1]
	if ultimo.AutorNome != "Duda" || ultimo.Texto != "parabéns aos aprovados" {
		t.Fatalf("comentário errado: %+v", ultimo)
	}
	if len(hub.invalidadas) != 1 {
		t.Fatalf("feed deveria ter sido invalidado uma vez")
	}
}

func TestSalvarExigeConteudo(t *testing.T) {
	svc := NewService(newStubRepo(), passthroughMedia{}, &stubHub{})

	if _, err := svc.Salvar(context.Background(), Post{Texto: "   "}); err != ErrPostVazio {
		t.Fatalf("esperava ErrPostVazio, veio %v", err)
	}
}
