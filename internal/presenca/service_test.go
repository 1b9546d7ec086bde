package presenca

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type stubRepo struct {
	created *Registro
	err     error
}

func (s *stubRepo) List(_ context.Context) ([]Registro, error) { return nil, s.err }

func (s *stubRepo) Create(_ context.Context, reg Registro) (*Registro, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = &reg
	return &reg, nil
}

func (s *stubRepo) Delete(_ context.Context, _ uuid.UUID) error { return s.err }

type stubEventos struct {
	titulo string
	err    error
}

func (s *stubEventos) TituloDoEvento(_ context.Context, _ uuid.UUID) (string, error) {
	return s.titulo, s.err
}

type stubMembros struct {
	nome string
	err  error
}

func (s *stubMembros) NomeDoMembro(_ context.Context, _ uuid.UUID) (string, error) {
	return s.nome, s.err
}

type stubHub struct {
	invalidadas []string
}

func (s *stubHub) Invalidate(_ context.Context, colecao string) {
	s.invalidadas = append(s.invalidadas, colecao)
}

func TestRegistrarNomeAvulsoEmMaiusculas(t *testing.T) {
	repo := &stubRepo{}
	hub := &stubHub{}
	svc := NewService(repo, &stubEventos{titulo: "Simpósio"}, &stubMembros{}, hub)

	reg, err := svc.Registrar(context.Background(), RegistrarInput{
		EventoID:   uuid.New(),
		Avulsa:     true,
		NomeManual: "  ana silva  ",
	})
	if err != nil {
		t.Fatalf("esperava sucesso, veio %v", err)
	}

	if reg.MembroNome != "ANA SILVA" {
		t.Fatalf("nome avulso deveria subir em maiúsculas, veio %q", reg.MembroNome)
	}
	if !reg.Avulsa || reg.MembroID != nil {
		t.Fatalf("registro avulso não deveria apontar membro")
	}
	if len(hub.invalidadas) != 1 || hub.invalidadas[0] != Colecao {
		t.Fatalf("coleção de presença deveria ter sido invalidada")
	}
}

func TestRegistrarEventoAvulsoEmMaiusculas(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, &stubEventos{}, &stubMembros{nome: "Bruna"}, &stubHub{})

	reg, err := svc.Registrar(context.Background(), RegistrarInput{
		EventoAvulso: true,
		TituloManual: "reunião extraordinária",
		MembroID:     uuid.New(),
	})
	if err != nil {
		t.Fatalf("esperava sucesso, veio %v", err)
	}

	if reg.EventoTitulo != "REUNIÃO EXTRAORDINÁRIA" {
		t.Fatalf("título avulso deveria subir em maiúsculas, veio %q", reg.EventoTitulo)
	}
	if !reg.EventoAvulso {
		t.Fatalf("flag de evento avulso deveria estar ligada")
	}
}

func TestRegistrarSempreDenormaliza(t *testing.T) {
	repo := &stubRepo{}
	membroID := uuid.New()
	svc := NewService(repo, &stubEventos{titulo: "Jornada Científica"}, &stubMembros{nome: "Carlos"}, &stubHub{})

	reg, err := svc.Registrar(context.Background(), RegistrarInput{
		EventoID: uuid.New(),
		MembroID: membroID,
	})
	if err != nil {
		t.Fatalf("esperava sucesso, veio %v", err)
	}

	if reg.EventoTitulo == "" || reg.MembroNome == "" {
		t.Fatalf("registro deveria sair com título e nome preenchidos")
	}
	if reg.MembroID == nil || *reg.MembroID != membroID {
		t.Fatalf("registro de membro cadastrado deveria manter a referência")
	}
	if reg.Data == "" {
		t.Fatalf("data deveria receber o dia corrente quando omitida")
	}
}

func TestRegistrarSemEventoFalha(t *testing.T) {
	svc := NewService(&stubRepo{}, &stubEventos{}, &stubMembros{nome: "Carlos"}, &stubHub{})

	_, err := svc.Registrar(context.Background(), RegistrarInput{MembroID: uuid.New()})
	if !errors.Is(err, ErrEventoIndefinido) {
		t.Fatalf("esperava ErrEventoIndefinido, veio %v", err)
	}

	_, err = svc.Registrar(context.Background(), RegistrarInput{EventoAvulso: true, TituloManual: "  ", MembroID: uuid.New()})
	if !errors.Is(err, ErrEventoIndefinido) {
		t.Fatalf("título avulso em branco deveria falhar, veio %v", err)
	}
}

func TestRegistrarSemParticipanteFalha(t *testing.T) {
	svc := NewService(&stubRepo{}, &stubEventos{titulo: "Simpósio"}, &stubMembros{}, &stubHub{})

	_, err := svc.Registrar(context.Background(), RegistrarInput{EventoID: uuid.New()})
	if !errors.Is(err, ErrParticipanteIndefinido) {
		t.Fatalf("esperava ErrParticipanteIndefinido, veio %v", err)
	}
}
