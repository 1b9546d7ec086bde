package http

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ligaacademica/portal/internal/assistant"
	"github.com/ligaacademica/portal/internal/auth"
	"github.com/ligaacademica/portal/internal/feed"
	httpmiddleware "github.com/ligaacademica/portal/internal/http/middleware"
	"github.com/ligaacademica/portal/internal/live"
	"github.com/ligaacademica/portal/internal/membros"
	"github.com/ligaacademica/portal/internal/projetos"
	"github.com/ligaacademica/portal/internal/usuarios"
)

type contasStub struct {
	porID map[uuid.UUID]*usuarios.Usuario
}

func (s *contasStub) List(_ context.Context) ([]usuarios.Usuario, error) { return nil, nil }

func (s *contasStub) GetByID(_ context.Context, id uuid.UUID) (*usuarios.Usuario, error) {
	u, ok := s.porID[id]
	if !ok {
		return nil, usuarios.ErrNotFound
	}
	copia := *u
	return &copia, nil
}

func (s *contasStub) GetByEmail(_ context.Context, _ string) (*usuarios.Usuario, error) {
	return nil, usuarios.ErrNotFound
}

func (s *contasStub) Create(_ context.Context, u usuarios.Usuario) (*usuarios.Usuario, error) {
	s.porID[u.ID] = &u
	return &u, nil
}

func (s *contasStub) SetAcesso(_ context.Context, _ uuid.UUID, _ bool) error { return nil }
func (s *contasStub) Delete(_ context.Context, _ uuid.UUID) error            { return nil }

type feedRepoStub struct {
	posts map[uuid.UUID]feed.Post
}

func (s *feedRepoStub) List(_ context.Context) ([]feed.Post, error) { return nil, nil }

func (s *feedRepoStub) Upsert(_ context.Context, post feed.Post) (*feed.Post, error) {
	s.posts[post.ID] = post
	return &post, nil
}

func (s *feedRepoStub) Atualizar(_ context.Context, id uuid.UUID, fn func(post *feed.Post) error) (*feed.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, feed.ErrNotFound
	}
	if err := fn(&p); err != nil {
		return nil, err
	}
	s.posts[id] = p
	return &p, nil
}

func (s *feedRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.posts, id)
	return nil
}

type midiaStub struct{}

func (midiaStub) Externalizar(_ context.Context, _, _, campo string) string { return campo }

type hubStub struct{}

func (hubStub) Invalidate(_ context.Context, _ string) {}

type transcricoesStub struct {
	err   error
	dados map[string][]assistant.Turno
}

func (s *transcricoesStub) GetTranscricao(_ context.Context, email string) ([]assistant.Turno, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.dados[email], nil
}

func (s *transcricoesStub) PutTranscricao(_ context.Context, email string, turnos []assistant.Turno) error {
	if s.dados == nil {
		s.dados = make(map[string][]assistant.Turno)
	}
	s.dados[email] = turnos
	return nil
}

func (s *transcricoesStub) DeleteTranscricao(_ context.Context, email string) error {
	delete(s.dados, email)
	return nil
}

type streamerStub struct {
	fragmentos []assistant.Fragmento
}

func (streamerStub) Configurado() bool { return true }

func (s streamerStub) Stream(_ context.Context, _ string, _ []assistant.Turno, emit func(assistant.Fragmento)) error {
	for _, frag := range s.fragmentos {
		emit(frag)
	}
	return nil
}

type membrosFonteStub struct{}

func (membrosFonteStub) List(_ context.Context) ([]membros.Membro, error) { return nil, nil }

type projetosFonteStub struct{}

func (projetosFonteStub) List(_ context.Context) ([]projetos.Projeto, error) { return nil, nil }

type ambiente struct {
	router      chi.Router
	tokens      *auth.JWTManager
	admin       *usuarios.Usuario
	estudante   *usuarios.Usuario
	feedRepo    *feedRepoStub
	transcricao *transcricoesStub
}

func novoAmbiente(t *testing.T) *ambiente {
	t.Helper()

	tokens := auth.NewJWTManager("segredo-de-teste-com-32-caracteres!", time.Minute)

	admin := &usuarios.Usuario{ID: uuid.New(), Nome: "Coordenação", Email: "coord@liga.org.br",
		Papel: usuarios.PapelAdmin, AcessoLiberado: true}
	estudante := &usuarios.Usuario{ID: uuid.New(), Nome: "Ana", Email: "ana@liga.org.br",
		Papel: usuarios.PapelStudent, AcessoLiberado: true}

	contas := &contasStub{porID: map[uuid.UUID]*usuarios.Usuario{admin.ID: admin, estudante.ID: estudante}}
	usuariosService := usuarios.NewService(contas, tokens, nil, time.Minute, time.Hour, zerolog.Nop())

	feedRepo := &feedRepoStub{posts: make(map[uuid.UUID]feed.Post)}
	feedService := feed.NewService(feedRepo, midiaStub{}, hubStub{})

	transcricao := &transcricoesStub{}
	streamer := streamerStub{fragmentos: []assistant.Fragmento{
		{Texto: "A reunião "},
		{Texto: "é sexta.", Citacoes: []assistant.Citacao{{Titulo: "Agenda", URI: "https://liga.org.br/agenda"}}},
	}}
	assistenteService := assistant.NewService(transcricao, streamer,
		membrosFonteStub{}, projetosFonteStub{}, 10, zerolog.Nop())

	hub := live.New(nil, zerolog.Nop())
	hub.Register("membros", func(_ context.Context) (any, error) {
		return []string{"ana", "bruna"}, nil
	})
	t.Cleanup(hub.Close)

	h := &Handler{
		usuarios:   usuariosService,
		feed:       feedService,
		assistente: assistenteService,
		hub:        hub,
	}

	r := chi.NewRouter()
	r.Get("/live/{colecao}", h.LiveStream)
	r.Group(func(private chi.Router) {
		private.Use(httpmiddleware.Auth(tokens))
		private.Post("/assistente/chat", h.AssistentePerguntar)
		private.Group(func(restrito chi.Router) {
			restrito.Use(httpmiddleware.RequireRoles(usuarios.PapelAdmin))
			restrito.Post("/admin/feed", h.SalvarPost)
			restrito.Delete("/admin/feed/{id}", h.RemoverPost)
		})
	})

	return &ambiente{
		router:      r,
		tokens:      tokens,
		admin:       admin,
		estudante:   estudante,
		feedRepo:    feedRepo,
		transcricao: transcricao,
	}
}

func (a *ambiente) token(t *testing.T, user *usuarios.Usuario) string {
	t.Helper()
	signed, _, err := a.tokens.GenerateAccessToken(user.ID.String(), "portal", []string{user.Papel})
	if err != nil {
		t.Fatalf("não deveria falhar ao cunhar token: %v", err)
	}
	return signed
}

func decodeEnvelope(t *testing.T, body string) (json.RawMessage, *ErrorBody) {
	t.Helper()
	var out struct {
		Data  json.RawMessage `json:"data"`
		Error *ErrorBody      `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("envelope ilegível: %v\n%s", err, body)
	}
	return out.Data, out.Error
}

func TestLiveStreamEntregaSnapshotPorSSE(t *testing.T) {
	amb := novoAmbiente(t)
	srv := httptest.NewServer(amb.router)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/live/membros", nil)
	if err != nil {
		t.Fatalf("requisição inválida: %v", err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("esperava conexão, veio %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type errado: %s", ct)
	}

	leitor := bufio.NewScanner(resp.Body)
	var evento, dados string
	for leitor.Scan() {
		linha := leitor.Text()
		if strings.HasPrefix(linha, "event: ") {
			evento = strings.TrimPrefix(linha, "event: ")
		}
		if strings.HasPrefix(linha, "data: ") {
			dados = strings.TrimPrefix(linha, "data: ")
			break
		}
	}

	if evento != "snapshot" {
		t.Fatalf("primeiro evento deveria ser o snapshot, veio %q", evento)
	}
	var lista []string
	if err := json.Unmarshal([]byte(dados), &lista); err != nil || len(lista) != 2 {
		t.Fatalf("snapshot inicial errado: %q (%v)", dados, err)
	}
}

func TestLiveStreamColecaoDesconhecida(t *testing.T) {
	amb := novoAmbiente(t)

	rec := httptest.NewRecorder()
	amb.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live/inexistente", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("esperava 404, veio %d", rec.Code)
	}
	if _, errBody := decodeEnvelope(t, rec.Body.String()); errBody == nil || errBody.Code != "NOT_FOUND" {
		t.Fatalf("código de erro errado: %+v", errBody)
	}
}

func TestRotasAdminExigemPapel(t *testing.T) {
	amb := novoAmbiente(t)
	post := feed.Post{ID: uuid.New(), Texto: "aviso"}
	amb.feedRepo.posts[post.ID] = post

	alvo := "/admin/feed/" + post.ID.String()

	casos := []struct {
		nome   string
		token  string
		status int
		codigo string
	}{
		{"sem token", "", http.StatusUnauthorized, "AUTH"},
		{"estudante", amb.token(t, amb.estudante), http.StatusForbidden, "FORBIDDEN"},
		{"coordenação", amb.token(t, amb.admin), http.StatusOK, ""},
	}

	for _, caso := range casos {
		t.Run(caso.nome, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, alvo, nil)
			if caso.token != "" {
				req.Header.Set("Authorization", "Bearer "+caso.token)
			}
			rec := httptest.NewRecorder()
			amb.router.ServeHTTP(rec, req)

			if rec.Code != caso.status {
				t.Fatalf("esperava %d, veio %d: %s", caso.status, rec.Code, rec.Body.String())
			}
			if caso.codigo != "" {
				if _, errBody := decodeEnvelope(t, rec.Body.String()); errBody == nil || errBody.Code != caso.codigo {
					t.Fatalf("código de erro errado: %+v", errBody)
				}
			}
		})
	}
}

func TestSalvarPostAtribuiAutorDaConta(t *testing.T) {
	amb := novoAmbiente(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/feed",
		strings.NewReader(`{"texto":"edital publicado","autor_id":"forjado"}`))
	req.Header.Set("Authorization", "Bearer "+amb.token(t, amb.admin))
	rec := httptest.NewRecorder()
	amb.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d: %s", rec.Code, rec.Body.String())
	}

	data, _ := decodeEnvelope(t, rec.Body.String())
	var salvo feed.Post
	if err := json.Unmarshal(data, &salvo); err != nil {
		t.Fatalf("publicação ilegível: %v", err)
	}
	if salvo.AutorID != amb.admin.ID.String() {
		t.Fatalf("autoria deveria vir da conta autenticada, veio %q", salvo.AutorID)
	}
	if salvo.AutorNome != amb.admin.Nome {
		t.Fatalf("nome do autor errado: %q", salvo.AutorNome)
	}
}

func TestAssistentePerguntarTransmiteFragmentosPorSSE(t *testing.T) {
	amb := novoAmbiente(t)

	req := httptest.NewRequest(http.MethodPost, "/assistente/chat",
		strings.NewReader(`{"mensagem":"quando é a reunião?"}`))
	req.Header.Set("Authorization", "Bearer "+amb.token(t, amb.estudante))
	rec := httptest.NewRecorder()
	amb.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("resposta deveria ser SSE, veio %s", ct)
	}

	corpo := rec.Body.String()
	primeiro := strings.Index(corpo, "event: fragmento")
	fechamento := strings.Index(corpo, "event: transcricao")
	if primeiro == -1 || fechamento == -1 || primeiro > fechamento {
		t.Fatalf("fragmentos deveriam preceder a transcrição final:\n%s", corpo)
	}
	if !strings.Contains(corpo, `"A reunião "`) {
		t.Fatalf("delta de texto não chegou ao cliente:\n%s", corpo)
	}
	if strings.Count(corpo, "https://liga.org.br/agenda") < 1 {
		t.Fatalf("citações deveriam acompanhar o fragmento:\n%s", corpo)
	}

	if len(amb.transcricao.dados["ana@liga.org.br"]) != 2 {
		t.Fatalf("transcrição deveria ser persistida após o streaming")
	}
}

func TestAssistentePerguntarFalhaInternaVira500(t *testing.T) {
	amb := novoAmbiente(t)
	amb.transcricao.err = errors.New("banco fora do ar")

	req := httptest.NewRequest(http.MethodPost, "/assistente/chat",
		strings.NewReader(`{"mensagem":"oi"}`))
	req.Header.Set("Authorization", "Bearer "+amb.token(t, amb.estudante))
	rec := httptest.NewRecorder()
	amb.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("falha de infraestrutura deveria virar 500, veio %d", rec.Code)
	}
	if _, errBody := decodeEnvelope(t, rec.Body.String()); errBody == nil || errBody.Code != "INTERNAL" {
		t.Fatalf("código de erro errado: %+v", errBody)
	}
}
