package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadAssinaEDevolveURLPublica(t *testing.T) {
	var recebido *http.Request
	var corpo []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recebido = r.Clone(context.Background())
		corpo, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	up, err := NewS3Uploader(S3Config{
		Endpoint:     srv.URL,
		Region:       "auto",
		Bucket:       "portal",
		AccessKey:    "chave",
		SecretKey:    "segredo",
		PublicDomain: "https://cdn.liga.org.br",
		HTTPClient:   srv.Client(),
	})
	if err != nil {
		t.Fatalf("esperava uploader válido, veio %v", err)
	}

	res, err := up.Upload(context.Background(), UploadInput{
		Key:         "membros/abc ê.png",
		Body:        []byte("imagem"),
		ContentType: "image/png",
	})
	if err != nil {
		t.Fatalf("esperava sucesso, veio %v", err)
	}

	if res.URL != "https://cdn.liga.org.br/membros/abc%20%C3%AA.png" {
		t.Fatalf("URL pública errada: %s", res.URL)
	}
	if recebido.Method != http.MethodPut || recebido.URL.EscapedPath() != "/portal/membros/abc%20%C3%AA.png" {
		t.Fatalf("requisição errada: %s %s", recebido.Method, recebido.URL)
	}
	if string(corpo) != "imagem" {
		t.Fatalf("corpo não chegou íntegro: %q", corpo)
	}

	auth := recebido.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "AWS4-HMAC-SHA256 Credential=chave/") {
		t.Fatalf("Authorization sem credencial SigV4: %s", auth)
	}
	if !strings.Contains(auth, "SignedHeaders=content-type;host;x-amz-content-sha256;x-amz-date") {
		t.Fatalf("conjunto de cabeçalhos assinados errado: %s", auth)
	}

	esperado := sha256.Sum256([]byte("imagem"))
	if recebido.Header.Get("x-amz-content-sha256") != hex.EncodeToString(esperado[:]) {
		t.Fatalf("hash do corpo não confere")
	}
}

func TestUploadSemDominioPublicoUsaEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	up, err := NewS3Uploader(S3Config{
		Endpoint:   srv.URL,
		Region:     "auto",
		Bucket:     "portal",
		AccessKey:  "chave",
		SecretKey:  "segredo",
		HTTPClient: srv.Client(),
	})
	if err != nil {
		t.Fatalf("esperava uploader válido, veio %v", err)
	}

	res, err := up.Upload(context.Background(), UploadInput{Key: "feed/x.png", Body: []byte("b")})
	if err != nil {
		t.Fatalf("esperava sucesso, veio %v", err)
	}
	if res.URL != srv.URL+"/portal/feed/x.png" {
		t.Fatalf("URL deveria apontar para o endpoint: %s", res.URL)
	}
}

func TestNewS3UploaderValidaConfig(t *testing.T) {
	casos := []S3Config{
		{},
		{Endpoint: "bucket.sem.protocolo", Region: "auto", Bucket: "b", AccessKey: "a", SecretKey: "s"},
		{Endpoint: "https://s3.local", Region: "auto", Bucket: "", AccessKey: "a", SecretKey: "s"},
	}
	for i, cfg := range casos {
		if _, err := NewS3Uploader(cfg); err == nil {
			t.Fatalf("caso %d: configuração inválida deveria falhar", i)
		}
	}
}

func TestConfiguredDistingueNoop(t *testing.T) {
	if Configured(NoopUploader{}) || Configured(&NoopUploader{}) || Configured(nil) {
		t.Fatalf("noop não deveria contar como backend configurado")
	}
	if !Configured(&S3Uploader{}) {
		t.Fatalf("uploader real deveria contar como configurado")
	}
}
