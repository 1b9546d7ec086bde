package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ligaacademica/portal/internal/membros"
	"github.com/ligaacademica/portal/internal/projetos"
)

type stubTranscricoes struct {
	dados map[string][]Turno
}

func newStubTranscricoes() *stubTranscricoes {
	return &stubTranscricoes{dados: make(map[string][]Turno)}
}

func (s *stubTranscricoes) GetTranscricao(_ context.Context, email string) ([]Turno, error) {
	return append([]Turno(nil), s.dados[email]...), nil
}

func (s *stubTranscricoes) PutTranscricao(_ context.Context, email string, turnos []Turno) error {
	s.dados[email] = turnos
	return nil
}

func (s *stubTranscricoes) DeleteTranscricao(_ context.Context, email string) error {
	delete(s.dados, email)
	return nil
}

type stubStreamer struct {
	fragmentos []Fragmento
	err        error
	historico  []Turno
}

func (s *stubStreamer) Configurado() bool { return true }

func (s *stubStreamer) Stream(_ context.Context, _ string, historico []Turno, emit func(Fragmento)) error {
	s.historico = historico
	for _, frag := range s.fragmentos {
		emit(frag)
	}
	return s.err
}

type stubFontes struct{}

func (stubFontes) List(_ context.Context) ([]membros.Membro, error) { return nil, nil }

type stubProjetos struct{}

func (stubProjetos) List(_ context.Context) ([]projetos.Projeto, error) { return nil, nil }

func TestResponderAcumulaEPersiste(t *testing.T) {
	repo := newStubTranscricoes()
	streamer := &stubStreamer{fragmentos: []Fragmento{
		{Texto: "A próxima reunião "},
		{Texto: "é sexta.", Citacoes: []Citacao{{Titulo: "Agenda", URI: "https://liga.org.br/agenda"}}},
	}}
	svc := NewService(repo, streamer, stubFontes{}, stubProjetos{}, 10, zerolog.Nop())

	turnos, err := svc.Responder(context.Background(), "Ana@Liga.org.br", "quando é a reunião?", nil)
	if err != nil {
		t.Fatalf("esperava sucesso, veio %v", err)
	}

	if len(turnos) != 2 {
		t.Fatalf("esperava pergunta e resposta, veio %d turnos", len(turnos))
	}
	resposta := turnos[1]
	if resposta.Papel != PapelModelo || resposta.Texto != "A próxima reunião é sexta." {
		t.Fatalf("resposta errada: %+v", resposta)
	}
	if len(resposta.Citacoes) != 1 {
		t.Fatalf("citações perdidas: %+v", resposta.Citacoes)
	}

	// persistida sob o e-mail normalizado
	if len(repo.dados["ana@liga.org.br"]) != 2 {
		t.Fatalf("transcrição deveria ficar sob o e-mail em minúsculas")
	}
}

func TestResponderFalhaNoMeioAnexaDesculpa(t *testing.T) {
	repo := newStubTranscricoes()
	streamer := &stubStreamer{
		fragmentos: []Fragmento{{Texto: "Começando a responder"}},
		err:        errors.New("conexão caiu"),
	}
	svc := NewService(repo, streamer, stubFontes{}, stubProjetos{}, 10, zerolog.Nop())

	turnos, err := svc.Responder(context.Background(), "ana@liga.org.br", "pergunta", nil)
	if err != nil {
		t.Fatalf("falha de streaming não deveria virar erro da operação, veio %v", err)
	}

	resposta := turnos[len(turnos)-1]
	if !strings.HasPrefix(resposta.Texto, "Começando a responder") {
		t.Fatalf("texto parcial deveria ser preservado: %q", resposta.Texto)
	}
	if !strings.HasSuffix(resposta.Texto, MensagemDesculpa) {
		t.Fatalf("mensagem de desculpa deveria fechar a resposta: %q", resposta.Texto)
	}
	if len(repo.dados["ana@liga.org.br"]) != 2 {
		t.Fatalf("transcrição deveria persistir até o ponto da falha")
	}
}

func TestResponderLimitaHistorico(t *testing.T) {
	repo := newStubTranscricoes()
	var longa []Turno
	for i := 0; i < 20; i++ {
		longa = append(longa, Turno{Papel: PapelUsuario, Texto: "turno antigo"})
	}
	repo.dados["ana@liga.org.br"] = longa

	streamer := &stubStreamer{fragmentos: []Fragmento{{Texto: "ok"}}}
	svc := NewService(repo, streamer, stubFontes{}, stubProjetos{}, 10, zerolog.Nop())

	if _, err := svc.Responder(context.Background(), "ana@liga.org.br", "nova pergunta", nil); err != nil {
		t.Fatalf("esperava sucesso, veio %v", err)
	}

	if len(streamer.historico) != 10 {
		t.Fatalf("histórico enviado deveria ter 10 turnos, veio %d", len(streamer.historico))
	}
	if streamer.historico[9].Texto != "nova pergunta" {
		t.Fatalf("a pergunta atual deveria fechar o histórico")
	}
}

func TestResponderRejeitaSegundaChamadaSimultanea(t *testing.T) {
	svc := NewService(newStubTranscricoes(), &stubStreamer{}, stubFontes{}, stubProjetos{}, 10, zerolog.Nop())

	if !svc.reservar("ana@liga.org.br") {
		t.Fatalf("primeira reserva deveria passar")
	}
	if _, err := svc.Responder(context.Background(), "ana@liga.org.br", "pergunta", nil); !errors.Is(err, ErrOcupado) {
		t.Fatalf("esperava ErrOcupado, veio %v", err)
	}
	svc.liberar("ana@liga.org.br")
}

func TestResponderEmiteFragmentosNaOrdem(t *testing.T) {
	streamer := &stubStreamer{fragmentos: []Fragmento{
		{Texto: "primeira parte, "},
		{Texto: "segunda parte."},
	}}
	svc := NewService(newStubTranscricoes(), streamer, stubFontes{}, stubProjetos{}, 10, zerolog.Nop())

	var emitidos []Fragmento
	turnos, err := svc.Responder(context.Background(), "ana@liga.org.br", "pergunta", func(frag Fragmento) {
		emitidos = append(emitidos, frag)
	})
	if err != nil {
		t.Fatalf("esperava sucesso, veio %v", err)
	}

	if len(emitidos) != 2 || emitidos[0].Texto != "primeira parte, " || emitidos[1].Texto != "segunda parte." {
		t.Fatalf("fragmentos deveriam chegar na ordem de emissão: %+v", emitidos)
	}
	if turnos[len(turnos)-1].Texto != "primeira parte, segunda parte." {
		t.Fatalf("transcrição deveria bater com o que foi emitido: %+v", turnos)
	}
}

func TestResponderFalhaEmiteDesculpaComoFragmento(t *testing.T) {
	streamer := &stubStreamer{
		fragmentos: []Fragmento{{Texto: "parcial"}},
		err:        errors.New("conexão caiu"),
	}
	svc := NewService(newStubTranscricoes(), streamer, stubFontes{}, stubProjetos{}, 10, zerolog.Nop())

	var emitidos []Fragmento
	if _, err := svc.Responder(context.Background(), "ana@liga.org.br", "pergunta", func(frag Fragmento) {
		emitidos = append(emitidos, frag)
	}); err != nil {
		t.Fatalf("falha de streaming não deveria virar erro da operação, veio %v", err)
	}

	if len(emitidos) != 2 {
		t.Fatalf("a desculpa deveria sair como fragmento final: %+v", emitidos)
	}
	if !strings.HasSuffix(emitidos[1].Texto, MensagemDesculpa) {
		t.Fatalf("último fragmento deveria carregar a mensagem de desculpa: %q", emitidos[1].Texto)
	}
}
