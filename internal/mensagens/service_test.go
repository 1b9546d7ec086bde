package mensagens

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubRepo struct {
	created *Mensagem
}

func (s *stubRepo) ListConversa(_ context.Context, _ string) ([]Mensagem, error) { return nil, nil }
func (s *stubRepo) ListAll(_ context.Context) ([]Mensagem, error)                { return nil, nil }

func (s *stubRepo) Create(_ context.Context, msg Mensagem) (*Mensagem, error) {
	s.created = &msg
	return &msg, nil
}

type stubMedia struct {
	chave string
	err   error
}

func (s *stubMedia) ExternalizarArquivo(_ context.Context, chave string, _ []byte, _ string) (string, error) {
	s.chave = chave
	if s.err != nil {
		return "", s.err
	}
	return "https://cdn.liga.org.br/" + chave, nil
}

type stubHub struct {
	invalidadas int
}

func (s *stubHub) Invalidate(_ context.Context, _ string) { s.invalidadas++ }

func TestEnviarExigeTextoOuAnexo(t *testing.T) {
	svc := NewService(&stubRepo{}, &stubMedia{}, &stubHub{})

	_, err := svc.Enviar(context.Background(), EnviarInput{Texto: "   "})
	if !errors.Is(err, ErrMensagemVazia) {
		t.Fatalf("esperava ErrMensagemVazia, veio %v", err)
	}
}

func TestEnviarDefineCanalPadrao(t *testing.T) {
	repo := &stubRepo{}
	hub := &stubHub{}
	svc := NewService(repo, &stubMedia{}, hub)

	msg, err := svc.Enviar(context.Background(), EnviarInput{
		RemetenteID:   "u1",
		RemetenteNome: "Ana",
		Texto:         "olá, coordenação",
	})
	if err != nil {
		t.Fatalf("esperava sucesso, veio %v", err)
	}

	if msg.DestinatarioID != CanalAdmin {
		t.Fatalf("destinatário padrão deveria ser o canal da coordenação, veio %q", msg.DestinatarioID)
	}
	if hub.invalidadas != 1 {
		t.Fatalf("coleção de mensagens deveria ter sido invalidada")
	}
}

func TestEnviarAnexoUsaChaveComIdENome(t *testing.T) {
	media := &stubMedia{}
	svc := NewService(&stubRepo{}, media, &stubHub{})

	msg, err := svc.Enviar(context.Background(), EnviarInput{
		RemetenteID: "u1",
		Arquivo:     []byte("pdf"),
		ArquivoNome: "rel/atorio.pdf",
		ArquivoMIME: "application/pdf",
	})
	if err != nil {
		t.Fatalf("esperava sucesso, veio %v", err)
	}

	esperado := "mensagens/" + msg.ID.String() + "_rel_atorio.pdf"
	if media.chave != esperado {
		t.Fatalf("chave do anexo errada: %s", media.chave)
	}
	if !strings.HasPrefix(msg.ArquivoURL, "https://cdn.liga.org.br/") {
		t.Fatalf("URL do anexo deveria vir do storage: %s", msg.ArquivoURL)
	}
}

func TestEnviarAnexoFalhaAbortaEnvio(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, &stubMedia{err: errors.New("storage fora do ar")}, &stubHub{})

	_, err := svc.Enviar(context.Background(), EnviarInput{
		RemetenteID: "u1",
		Arquivo:     []byte("pdf"),
		ArquivoNome: "doc.pdf",
	})
	if err == nil {
		t.Fatalf("falha de upload de anexo deveria abortar o envio")
	}
	if repo.created != nil {
		t.Fatalf("mensagem não deveria ter sido gravada")
	}
}
