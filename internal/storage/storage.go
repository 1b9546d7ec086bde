package storage

import "context"

// UploadInput é um objeto a gravar: chave, corpo e metadados de entrega.
type UploadInput struct {
	Key          string
	Body         []byte
	ContentType  string
	CacheControl string
}

// UploadResult devolve a URL durável do objeto gravado.
type UploadResult struct {
	URL string
}

// Uploader grava blobs em um backend externo.
type Uploader interface {
	Upload(ctx context.Context, input UploadInput) (*UploadResult, error)
}

// Configured diz se o uploader aponta para um backend real. Com o
// NoopUploader os chamadores podem pular o upload e manter o payload
// embutido direto.
func Configured(u Uploader) bool {
	if u == nil {
		return false
	}
	switch u.(type) {
	case NoopUploader, *NoopUploader:
		return false
	}
	return true
}
