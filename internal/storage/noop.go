package storage

import (
	"context"
	"errors"
)

// ErrNaoConfigurado sinaliza que nenhum backend de blobs foi configurado.
var ErrNaoConfigurado = errors.New("storage: nenhum backend configurado")

// NoopUploader é o backend padrão quando não há storage externo. Todo
// upload falha com ErrNaoConfigurado; o chamador decide o fallback.
type NoopUploader struct{}

func (NoopUploader) Upload(context.Context, UploadInput) (*UploadResult, error) {
	return nil, ErrNaoConfigurado
}
