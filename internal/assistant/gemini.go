package assistant

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	geminiBaseURL       = "https://generativelanguage.googleapis.com/v1beta/models"
	geminiMaxTentativas = 3
	geminiEsperaInicial = time.Second
)

// GeminiClient fala com a API Generative Language em modo streaming SSE.
// A retentativa cobre apenas a abertura da conexão; depois do primeiro
// fragmento uma falha interrompe o stream de vez.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiBaseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// Configurado indica se há chave de API para chamar o serviço.
func (c *GeminiClient) Configurado() bool {
	return c.apiKey != ""
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiChunk struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		GroundingMetadata struct {
			GroundingChunks []struct {
				Web struct {
					Title string `json:"title"`
					URI   string `json:"uri"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}

// Stream envia a conversa e entrega cada fragmento recebido ao emit.
// O contexto de fundamentação vai como system instruction.
func (c *GeminiClient) Stream(ctx context.Context, contexto string, historico []Turno, emit func(Fragmento)) error {
	if !c.Configurado() {
		return ErrNaoConfigurado
	}

	req := geminiRequest{Contents: make([]geminiContent, 0, len(historico))}
	if contexto != "" {
		req.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: contexto}}}
	}
	for _, turno := range historico {
		req.Contents = append(req.Contents, geminiContent{
			Role:  turno.Papel,
			Parts: []geminiPart{{Text: turno.Texto}},
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("montar requisição: %w", err)
	}

	resp, err := c.abrir(ctx, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return lerStream(resp.Body, emit)
}

func (c *GeminiClient) abrir(ctx context.Context, body []byte) (*http.Response, error) {
	url := fmt.Sprintf("%s/%s:streamGenerateContent?alt=sse&key=%s", c.baseURL, c.model, c.apiKey)

	var lastErr error
	for tentativa := 0; tentativa < geminiMaxTentativas; tentativa++ {
		if tentativa > 0 {
			espera := geminiEsperaInicial << (tentativa - 1)
			select {
			case <-time.After(espera):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("criar requisição: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(httpReq)
		if err != nil {
			lastErr = fmt.Errorf("conectar: %w", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			payload, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
			if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
				continue
			}
			return nil, lastErr
		}

		return resp, nil
	}

	return nil, lastErr
}

// lerStream percorre as linhas SSE e converte cada chunk em Fragmento.
func lerStream(r io.Reader, emit func(Fragmento)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		linha := scanner.Text()
		if !strings.HasPrefix(linha, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(linha, "data:"))
		if payload == "" || payload == "[DONE]" {
			continue
		}

		var chunk geminiChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			return fmt.Errorf("fragmento inválido: %w", err)
		}

		emit(fragmentoDoChunk(chunk))
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("ler stream: %w", err)
	}
	return nil
}

func fragmentoDoChunk(chunk geminiChunk) Fragmento {
	var frag Fragmento
	for _, cand := range chunk.Candidates {
		for _, part := range cand.Content.Parts {
			frag.Texto += part.Text
		}
		for _, gc := range cand.GroundingMetadata.GroundingChunks {
			if gc.Web.URI == "" {
				continue
			}
			frag.Citacoes = append(frag.Citacoes, Citacao{Titulo: gc.Web.Title, URI: gc.Web.URI})
		}
	}
	return frag
}
