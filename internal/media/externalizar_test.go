package media

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ligaacademica/portal/internal/storage"
)

type stubUploader struct {
	url    string
	err    error
	lastIn storage.UploadInput
}

func (s *stubUploader) Upload(_ context.Context, input storage.UploadInput) (*storage.UploadResult, error) {
	s.lastIn = input
	if s.err != nil {
		return nil, s.err
	}
	return &storage.UploadResult{URL: s.url}, nil
}

func dataURL(mime, conteudo string) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString([]byte(conteudo))
}

func TestExternalizarTrocaPorURL(t *testing.T) {
	up := &stubUploader{url: "https://cdn.liga.org.br/membros/abc.pdf"}
	ext := NewExternalizador(up, zerolog.Nop())

	got := ext.Externalizar(context.Background(), "membros", "abc", dataURL("application/pdf", "doc"))
	if got != up.url {
		t.Fatalf("esperava URL do storage, veio %q", got)
	}
	if up.lastIn.Key != "membros/abc.pdf" {
		t.Fatalf("chave errada: %s", up.lastIn.Key)
	}
}

func TestExternalizarMantemInlineQuandoUploadFalha(t *testing.T) {
	up := &stubUploader{err: errors.New("storage fora do ar")}
	ext := NewExternalizador(up, zerolog.Nop())

	campo := dataURL("application/pdf", "doc")
	if got := ext.Externalizar(context.Background(), "membros", "abc", campo); got != campo {
		t.Fatalf("falha de upload deveria preservar o payload embutido")
	}
}

func TestExternalizarSemBackendMantemInline(t *testing.T) {
	ext := NewExternalizador(storage.NoopUploader{}, zerolog.Nop())

	campo := dataURL("image/png", "foto")
	if got := ext.Externalizar(context.Background(), "membros", "abc", campo); got != campo {
		t.Fatalf("sem backend o payload embutido deveria permanecer")
	}
}

func TestExternalizarIgnoraURLDuravel(t *testing.T) {
	up := &stubUploader{url: "nunca usado"}
	ext := NewExternalizador(up, zerolog.Nop())

	campo := "https://cdn.liga.org.br/ja-externo.png"
	if got := ext.Externalizar(context.Background(), "feed", "x", campo); got != campo {
		t.Fatalf("URL durável deveria voltar intacta")
	}
	if up.lastIn.Key != "" {
		t.Fatalf("não deveria ter chamado o uploader")
	}
}
