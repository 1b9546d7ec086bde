package mensagens

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListConversa devolve as mensagens trocadas pelo participante, ordem ascendente.
func (r *Repository) ListConversa(ctx context.Context, participante string) ([]Mensagem, error) {
	const query = `
        SELECT id, remetente_id, remetente_nome, destinatario_id, texto, arquivo_url, horario
        FROM mensagens
        WHERE remetente_id = $1 OR destinatario_id = $1
        ORDER BY horario ASC
    `

	rows, err := r.pool.Query(ctx, query, participante)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mensagens []Mensagem
	for rows.Next() {
		msg, err := scanMensagem(rows)
		if err != nil {
			return nil, err
		}
		mensagens = append(mensagens, *msg)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return mensagens, nil
}

// ListAll devolve o canal inteiro para a visão administrativa, ordem ascendente.
func (r *Repository) ListAll(ctx context.Context) ([]Mensagem, error) {
	const query = `
        SELECT id, remetente_id, remetente_nome, destinatario_id, texto, arquivo_url, horario
        FROM mensagens
        ORDER BY horario ASC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mensagens []Mensagem
	for rows.Next() {
		msg, err := scanMensagem(rows)
		if err != nil {
			return nil, err
		}
		mensagens = append(mensagens, *msg)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return mensagens, nil
}

func (r *Repository) Create(ctx context.Context, msg Mensagem) (*Mensagem, error) {
	const query = `
        INSERT INTO mensagens (id, remetente_id, remetente_nome, destinatario_id, texto, arquivo_url)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, remetente_id, remetente_nome, destinatario_id, texto, arquivo_url, horario
    `
	return scanMensagem(r.pool.QueryRow(ctx, query,
		msg.ID, msg.RemetenteID, msg.RemetenteNome, msg.DestinatarioID, msg.Texto, msg.ArquivoURL))
}

func scanMensagem(row pgx.Row) (*Mensagem, error) {
	var msg Mensagem
	if err := row.Scan(&msg.ID, &msg.RemetenteID, &msg.RemetenteNome, &msg.DestinatarioID, &msg.Texto, &msg.ArquivoURL, &msg.Horario); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &msg, nil
}
