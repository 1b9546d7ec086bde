package storage

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// S3Config aponta o bucket compatível com S3 (R2 incluso) que recebe as
// mídias externalizadas. PublicDomain, quando presente, substitui o endpoint
// na URL devolvida ao cliente.
type S3Config struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	PublicDomain string
	HTTPClient   *http.Client
}

// S3Uploader grava objetos com um PUT assinado em SigV4, sem SDK. Os
// uploads são sempre objetos pequenos e de chave conhecida, então o caminho
// coberto é só esse.
type S3Uploader struct {
	cfg    S3Config
	client *http.Client
}

func NewS3Uploader(cfg S3Config) (*S3Uploader, error) {
	if err := cfg.validar(); err != nil {
		return nil, err
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	return &S3Uploader{cfg: cfg, client: client}, nil
}

// Upload envia o objeto e devolve a URL durável (domínio público quando
// configurado, endpoint do bucket caso contrário).
func (u *S3Uploader) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	if strings.TrimSpace(input.Key) == "" {
		return nil, errors.New("storage: chave do objeto obrigatória")
	}
	if len(input.Body) == 0 {
		return nil, errors.New("storage: corpo vazio")
	}

	contentType := strings.TrimSpace(input.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	chave := codificarCaminho(strings.TrimLeft(input.Key, "/"))
	caminho := "/" + u.cfg.Bucket + "/" + chave
	destino := strings.TrimRight(u.cfg.Endpoint, "/") + caminho

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, destino, bytes.NewReader(input.Body))
	if err != nil {
		return nil, err
	}

	hashCorpo := sha256.Sum256(input.Body)
	hashHex := hex.EncodeToString(hashCorpo[:])

	req.ContentLength = int64(len(input.Body))
	req.Header.Set("Content-Type", contentType)
	if strings.TrimSpace(input.CacheControl) != "" {
		req.Header.Set("Cache-Control", input.CacheControl)
	}

	u.assinar(req, caminho, contentType, hashHex, time.Now().UTC())

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		corpo, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("storage: upload falhou (%d): %s", resp.StatusCode, strings.TrimSpace(string(corpo)))
	}

	urlPublica := destino
	if strings.TrimSpace(u.cfg.PublicDomain) != "" {
		urlPublica = strings.TrimRight(u.cfg.PublicDomain, "/") + "/" + chave
	}

	return &UploadResult{URL: urlPublica}, nil
}

// assinar monta o Authorization SigV4 do PUT. O conjunto de cabeçalhos
// assinados é fixo, já em ordem alfabética: content-type, host,
// x-amz-content-sha256 e x-amz-date. A query string é sempre vazia.
func (u *S3Uploader) assinar(req *http.Request, caminho, contentType, hashCorpo string, agora time.Time) {
	amzDate := agora.Format("20060102T150405Z")
	dataCurta := agora.Format("20060102")

	req.Header.Set("x-amz-date", amzDate)
	req.Header.Set("x-amz-content-sha256", hashCorpo)
	req.Header.Set("Host", req.URL.Host)

	const nomesAssinados = "content-type;host;x-amz-content-sha256;x-amz-date"
	linhas := fmt.Sprintf("content-type:%s\nhost:%s\nx-amz-content-sha256:%s\nx-amz-date:%s\n",
		contentType, req.URL.Host, hashCorpo, amzDate)

	canonica := strings.Join([]string{
		http.MethodPut,
		caminho,
		"",
		linhas,
		nomesAssinados,
		hashCorpo,
	}, "\n")
	hashCanonica := sha256.Sum256([]byte(canonica))

	escopo := fmt.Sprintf("%s/%s/s3/aws4_request", dataCurta, u.cfg.Region)
	base := strings.Join([]string{
		"AWS4-HMAC-SHA256",
		amzDate,
		escopo,
		hex.EncodeToString(hashCanonica[:]),
	}, "\n")

	assinatura := hmac256(u.chaveAssinatura(dataCurta), []byte(base))

	req.Header.Set("Authorization", fmt.Sprintf(
		"AWS4-HMAC-SHA256 Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		u.cfg.AccessKey, escopo, nomesAssinados, hex.EncodeToString(assinatura)))
}

func (u *S3Uploader) chaveAssinatura(dataCurta string) []byte {
	k := hmac256([]byte("AWS4"+u.cfg.SecretKey), []byte(dataCurta))
	k = hmac256(k, []byte(u.cfg.Region))
	k = hmac256(k, []byte("s3"))
	return hmac256(k, []byte("aws4_request"))
}

func hmac256(chave, dados []byte) []byte {
	mac := hmac.New(sha256.New, chave)
	mac.Write(dados)
	return mac.Sum(nil)
}

// codificarCaminho aplica o percent-encoding que o SigV4 espera no caminho:
// byte a byte, preservando barras e caracteres não reservados.
func codificarCaminho(caminho string) string {
	var b strings.Builder
	for i := 0; i < len(caminho); i++ {
		c := caminho[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9',
			c == '-', c == '_', c == '.', c == '~', c == '/':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func (cfg S3Config) validar() error {
	faltando := func(campo string) error {
		return fmt.Errorf("storage: %s do S3 ausente", campo)
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return faltando("endpoint")
	}
	if !strings.HasPrefix(cfg.Endpoint, "http://") && !strings.HasPrefix(cfg.Endpoint, "https://") {
		return errors.New("storage: endpoint deve incluir protocolo http/https")
	}
	if strings.TrimSpace(cfg.Region) == "" {
		return faltando("região")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return faltando("bucket")
	}
	if strings.TrimSpace(cfg.AccessKey) == "" {
		return faltando("access key")
	}
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return faltando("secret key")
	}
	return nil
}
