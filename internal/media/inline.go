package media

import (
	"encoding/base64"
	"errors"
	"strings"
)

const (
	// TipoImagem e TipoVideo classificam mídias do feed pelo prefixo MIME.
	TipoImagem  = "imagem"
	TipoVideo   = "video"
	TipoArquivo = "arquivo"
)

var errDataURLInvalida = errors.New("media: data URL inválida")

// Inline representa um payload embutido (data URL) já decodificado.
type Inline struct {
	MIME string
	Data []byte
}

// IsDataURL indica se o campo carrega um payload embutido em vez de uma URL durável.
func IsDataURL(value string) bool {
	return strings.HasPrefix(value, "data:")
}

// ParseDataURL decodifica payloads no formato data:<mime>;base64,<dados>.
func ParseDataURL(value string) (*Inline, error) {
	if !IsDataURL(value) {
		return nil, errDataURLInvalida
	}

	rest := strings.TrimPrefix(value, "data:")
	meta, encoded, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, errDataURLInvalida
	}

	mime := meta
	if idx := strings.Index(meta, ";"); idx >= 0 {
		mime = meta[:idx]
		if !strings.Contains(meta[idx:], "base64") {
			return nil, errDataURLInvalida
		}
	} else {
		return nil, errDataURLInvalida
	}

	mime = strings.TrimSpace(mime)
	if mime == "" {
		mime = "application/octet-stream"
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errDataURLInvalida
	}
	if len(data) == 0 {
		return nil, errDataURLInvalida
	}

	return &Inline{MIME: mime, Data: data}, nil
}

// Classificar devolve o tipo de mídia pelo prefixo MIME.
func Classificar(mime string) string {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return TipoImagem
	case strings.HasPrefix(mime, "video/"):
		return TipoVideo
	default:
		return TipoArquivo
	}
}

// Extensao devolve a extensão usual para o MIME conhecido.
func Extensao(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "application/pdf":
		return ".pdf"
	default:
		return ".bin"
	}
}
