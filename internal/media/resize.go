package media

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// LarguraMaxima limita imagens do feed antes da externalização.
const LarguraMaxima = 1080

// Downscale reduz imagens mais largas que maxWidth mantendo proporção.
// Imagens dentro do limite (ou formatos que não decodificam) voltam intactas.
func Downscale(data []byte, mime string, maxWidth int) ([]byte, string) {
	if Classificar(mime) != TipoImagem {
		return data, mime
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, mime
	}

	bounds := src.Bounds()
	if bounds.Dx() <= maxWidth {
		return data, mime
	}

	height := bounds.Dy() * maxWidth / bounds.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, dst); err != nil {
			return data, mime
		}
		return buf.Bytes(), "image/png"
	default:
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85}); err != nil {
			return data, mime
		}
		return buf.Bytes(), "image/jpeg"
	}
}
