package mensagens

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type repositorio interface {
	ListConversa(ctx context.Context, participante string) ([]Mensagem, error)
	ListAll(ctx context.Context) ([]Mensagem, error)
	Create(ctx context.Context, msg Mensagem) (*Mensagem, error)
}

type externalizador interface {
	ExternalizarArquivo(ctx context.Context, chave string, dados []byte, mime string) (string, error)
}

type notificador interface {
	Invalidate(ctx context.Context, colecao string)
}

// Service cobre o canal de mensagens entre membros e coordenação.
type Service struct {
	repo  repositorio
	media externalizador
	hub   notificador
}

func NewService(repo repositorio, media externalizador, hub notificador) *Service {
	return &Service{repo: repo, media: media, hub: hub}
}

// Conversa devolve a troca completa do participante, mais antiga primeiro.
func (s *Service) Conversa(ctx context.Context, participante string) ([]Mensagem, error) {
	return s.repo.ListConversa(ctx, participante)
}

// Canal devolve todas as mensagens para a visão da coordenação.
func (s *Service) Canal(ctx context.Context) ([]Mensagem, error) {
	return s.repo.ListAll(ctx)
}

// Enviar grava uma nova mensagem. O anexo, quando presente, é enviado ao
// storage antes da gravação; diferente das imagens de cadastro, falha de
// upload aqui aborta o envio, porque não há como embutir o arquivo no texto.
func (s *Service) Enviar(ctx context.Context, input EnviarInput) (*Mensagem, error) {
	texto := strings.TrimSpace(input.Texto)
	if texto == "" && len(input.Arquivo) == 0 {
		return nil, ErrMensagemVazia
	}

	destinatario := strings.TrimSpace(input.DestinatarioID)
	if destinatario == "" {
		destinatario = CanalAdmin
	}

	msg := Mensagem{
		ID:             uuid.New(),
		RemetenteID:    strings.TrimSpace(input.RemetenteID),
		RemetenteNome:  strings.TrimSpace(input.RemetenteNome),
		DestinatarioID: destinatario,
		Texto:          texto,
	}

	if len(input.Arquivo) > 0 {
		chave := fmt.Sprintf("%s/%s_%s", Colecao, msg.ID, sanitizarNome(input.ArquivoNome))
		url, err := s.media.ExternalizarArquivo(ctx, chave, input.Arquivo, input.ArquivoMIME)
		if err != nil {
			return nil, fmt.Errorf("anexo: %w", err)
		}
		msg.ArquivoURL = url
	}

	saved, err := s.repo.Create(ctx, msg)
	if err != nil {
		return nil, err
	}

	s.hub.Invalidate(ctx, Colecao)
	return saved, nil
}

// sanitizarNome remove separadores de caminho do nome original do arquivo.
func sanitizarNome(nome string) string {
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return "anexo"
	}
	nome = strings.ReplaceAll(nome, "/", "_")
	nome = strings.ReplaceAll(nome, "\\", "_")
	return nome
}
