package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ligaacademica/portal/internal/membros"
	"github.com/ligaacademica/portal/internal/projetos"
	"github.com/ligaacademica/portal/internal/util"
)

type repositorio interface {
	GetTranscricao(ctx context.Context, email string) ([]Turno, error)
	PutTranscricao(ctx context.Context, email string, turnos []Turno) error
	DeleteTranscricao(ctx context.Context, email string) error
}

type streamer interface {
	Configurado() bool
	Stream(ctx context.Context, contexto string, historico []Turno, emit func(Fragmento)) error
}

type fonteMembros interface {
	List(ctx context.Context) ([]membros.Membro, error)
}

type fonteProjetos interface {
	List(ctx context.Context) ([]projetos.Projeto, error)
}

// Service orquestra o assistente: uma chamada por turno de usuário, com
// histórico limitado e contexto de fundamentação montado na hora.
type Service struct {
	repo         repositorio
	client       streamer
	membros      fonteMembros
	projetos     fonteProjetos
	maxHistorico int
	log          zerolog.Logger

	mu    sync.Mutex
	emUso map[string]struct{}
}

func NewService(repo repositorio, client streamer, m fonteMembros, p fonteProjetos, maxHistorico int, log zerolog.Logger) *Service {
	if maxHistorico <= 0 {
		maxHistorico = 10
	}
	return &Service{
		repo:         repo,
		client:       client,
		membros:      m,
		projetos:     p,
		maxHistorico: maxHistorico,
		log:          log.With().Str("component", "assistant").Logger(),
		emUso:        make(map[string]struct{}),
	}
}

// Transcricao devolve a conversa persistida do usuário.
func (s *Service) Transcricao(ctx context.Context, email string) ([]Turno, error) {
	return s.repo.GetTranscricao(ctx, util.NormalizeEmail(email))
}

// Limpar apaga a conversa do usuário.
func (s *Service) Limpar(ctx context.Context, email string) error {
	return s.repo.DeleteTranscricao(ctx, util.NormalizeEmail(email))
}

// Responder processa um turno. Cada fragmento é repassado a emit na ordem de
// emissão, além de acumulado para a transcrição. O turno do usuário entra na
// transcrição antes da chamada; se o streaming falhar no meio, o que já chegou
// permanece e a mensagem fixa de desculpa fecha a resposta, emitida também
// como fragmento. Não há retentativa nem retomada, e cada usuário tem no
// máximo uma chamada em andamento. emit pode ser nil.
func (s *Service) Responder(ctx context.Context, email, texto string, emit func(Fragmento)) ([]Turno, error) {
	email = util.NormalizeEmail(email)
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return nil, ErrMensagemVazia
	}

	if !s.reservar(email) {
		return nil, ErrOcupado
	}
	defer s.liberar(email)

	transcricao, err := s.repo.GetTranscricao(ctx, email)
	if err != nil {
		return nil, err
	}
	transcricao = append(transcricao, Turno{Papel: PapelUsuario, Texto: texto})

	historico := transcricao
	if len(historico) > s.maxHistorico {
		historico = historico[len(historico)-s.maxHistorico:]
	}

	contexto := s.montarContexto(ctx)

	acum := NewAcumulador()
	entregar := acum.Adicionar
	if emit != nil {
		entregar = func(frag Fragmento) {
			acum.Adicionar(frag)
			emit(frag)
		}
	}
	streamErr := s.client.Stream(ctx, contexto, historico, entregar)

	resposta := acum.Texto()
	if streamErr != nil {
		s.log.Warn().Err(streamErr).Str("email", email).Msg("streaming interrompido")
		sufixo := MensagemDesculpa
		if resposta != "" {
			sufixo = "\n\n" + MensagemDesculpa
		}
		resposta += sufixo
		if emit != nil {
			emit(Fragmento{Texto: sufixo})
		}
	}

	transcricao = append(transcricao, Turno{
		Papel:    PapelModelo,
		Texto:    resposta,
		Citacoes: acum.Citacoes(),
	})

	if err := s.repo.PutTranscricao(ctx, email, transcricao); err != nil {
		return nil, err
	}

	return transcricao, nil
}

func (s *Service) reservar(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ocupado := s.emUso[email]; ocupado {
		return false
	}
	s.emUso[email] = struct{}{}
	return true
}

func (s *Service) liberar(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.emUso, email)
}

// montarContexto resume membros e projetos atuais em texto plano. Falha na
// coleta não impede a resposta; o assistente só fica sem o panorama.
func (s *Service) montarContexto(ctx context.Context) string {
	var (
		listaMembros  []membros.Membro
		listaProjetos []projetos.Projeto
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		listaMembros, err = s.membros.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		listaProjetos, err = s.projetos.List(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Warn().Err(err).Msg("contexto de fundamentação indisponível")
		return ""
	}

	var b strings.Builder
	b.WriteString("Você é o assistente da liga acadêmica. Responda em português, com base no panorama atual.\n")

	b.WriteString("\nMembros:\n")
	for _, m := range listaMembros {
		fmt.Fprintf(&b, "- %s (%s)\n", m.Nome, m.Papel)
	}

	b.WriteString("\nProjetos de pesquisa:\n")
	for _, p := range listaProjetos {
		fmt.Fprintf(&b, "- %s, orientação: %s, status: %s\n", p.Titulo, p.Orientador, p.Status)
	}

	return b.String()
}
