package assistant

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persiste a transcrição inteira de cada usuário, uma linha por
// e-mail normalizado.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) GetTranscricao(ctx context.Context, email string) ([]Turno, error) {
	var dados []byte
	err := r.pool.QueryRow(ctx, `SELECT transcricao FROM chats WHERE email = $1`, email).Scan(&dados)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []Turno{}, nil
		}
		return nil, err
	}

	var turnos []Turno
	if err := json.Unmarshal(dados, &turnos); err != nil {
		return nil, err
	}
	return turnos, nil
}

func (r *Repository) PutTranscricao(ctx context.Context, email string, turnos []Turno) error {
	if turnos == nil {
		turnos = []Turno{}
	}
	dados, err := json.Marshal(turnos)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO chats (email, transcricao)
        VALUES ($1, $2)
        ON CONFLICT (email) DO UPDATE SET transcricao = EXCLUDED.transcricao, atualizado_em = now()
    `
	_, err = r.pool.Exec(ctx, query, email, dados)
	return err
}

func (r *Repository) DeleteTranscricao(ctx context.Context, email string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM chats WHERE email = $1`, email)
	return err
}
