package media

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ligaacademica/portal/internal/storage"
)

// Externalizador converte payloads embutidos em referências duráveis antes da persistência.
type Externalizador struct {
	uploader storage.Uploader
	log      zerolog.Logger
}

// NewExternalizador cria o conversor sobre o uploader configurado.
func NewExternalizador(uploader storage.Uploader, log zerolog.Logger) *Externalizador {
	return &Externalizador{uploader: uploader, log: log}
}

// Externalizar envia o payload embutido para o storage sob <colecao>/<id> e devolve a URL.
// Campos que já são URLs voltam intactos. Sem backend configurado, ou se o
// upload falhar, o payload embutido original é devolvido para que o save
// nunca descarte a mídia.
func (e *Externalizador) Externalizar(ctx context.Context, colecao, id, campo string) string {
	if campo == "" || !IsDataURL(campo) {
		return campo
	}

	if !storage.Configured(e.uploader) {
		return campo
	}

	inline, err := ParseDataURL(campo)
	if err != nil {
		e.log.Warn().Err(err).Str("colecao", colecao).Str("id", id).Msg("payload embutido ilegível")
		return campo
	}

	data, mime := Downscale(inline.Data, inline.MIME, LarguraMaxima)

	key := fmt.Sprintf("%s/%s%s", colecao, id, Extensao(mime))
	result, err := e.uploader.Upload(ctx, storage.UploadInput{
		Key:          key,
		Body:         data,
		ContentType:  mime,
		CacheControl: "public,max-age=31536000,immutable",
	})
	if err != nil {
		e.log.Warn().Err(err).Str("key", key).Msg("externalização falhou, mantendo payload embutido")
		return campo
	}

	return result.URL
}

// ExternalizarArquivo envia um anexo com chave explícita (mensagens usam <id>_<nome>).
func (e *Externalizador) ExternalizarArquivo(ctx context.Context, key string, data []byte, mime string) (string, error) {
	result, err := e.uploader.Upload(ctx, storage.UploadInput{
		Key:         key,
		Body:        data,
		ContentType: mime,
	})
	if err != nil {
		return "", err
	}
	return result.URL, nil
}
