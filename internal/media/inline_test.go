package media

import (
	"encoding/base64"
	"testing"
)

func TestParseDataURL(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("conteudo"))

	inline, err := ParseDataURL("data:image/png;base64," + payload)
	if err != nil {
		t.Fatalf("esperava sucesso, veio %v", err)
	}
	if inline.MIME != "image/png" {
		t.Fatalf("mime errado: %s", inline.MIME)
	}
	if string(inline.Data) != "conteudo" {
		t.Fatalf("dados errados: %q", inline.Data)
	}
}

func TestParseDataURLInvalida(t *testing.T) {
	casos := []string{
		"https://cdn.liga.org.br/foto.png",
		"data:image/png;base64,",
		"data:image/png,semicolon-ausente",
		"data:image/png;base64,%%%",
	}

	for _, caso := range casos {
		if _, err := ParseDataURL(caso); err == nil {
			t.Errorf("esperava erro para %q", caso)
		}
	}
}

func TestClassificar(t *testing.T) {
	if got := Classificar("image/webp"); got != TipoImagem {
		t.Fatalf("image/webp classificado como %s", got)
	}
	if got := Classificar("video/mp4"); got != TipoVideo {
		t.Fatalf("video/mp4 classificado como %s", got)
	}
	if got := Classificar("application/pdf"); got != TipoArquivo {
		t.Fatalf("application/pdf classificado como %s", got)
	}
}

func TestDownscaleNaoImagemPassaDireto(t *testing.T) {
	dados := []byte("nao sou imagem")
	saida, mime := Downscale(dados, "application/pdf", LarguraMaxima)
	if string(saida) != string(dados) || mime != "application/pdf" {
		t.Fatalf("payload não-imagem deveria passar intacto")
	}
}
