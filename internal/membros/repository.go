package membros

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provê acesso à tabela de membros.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository cria instância do repositório.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List devolve o quadro completo ordenado por nome.
func (r *Repository) List(ctx context.Context) ([]Membro, error) {
	const query = `
        SELECT id, nome, email, papel, foto_url, acesso_liberado, criado_em
        FROM membros
        ORDER BY nome ASC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var membros []Membro
	for rows.Next() {
		m, err := scanMembro(rows)
		if err != nil {
			return nil, err
		}
		membros = append(membros, *m)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return membros, nil
}

// GetByID busca um membro específico.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Membro, error) {
	const query = `
        SELECT id, nome, email, papel, foto_url, acesso_liberado, criado_em
        FROM membros
        WHERE id = $1
    `
	return scanMembro(r.pool.QueryRow(ctx, query, id))
}

// Upsert grava o documento inteiro (create-or-replace, sem update parcial).
func (r *Repository) Upsert(ctx context.Context, m Membro) (*Membro, error) {
	const query = `
        INSERT INTO membros (id, nome, email, papel, foto_url, acesso_liberado)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (id) DO UPDATE SET
            nome = EXCLUDED.nome,
            email = EXCLUDED.email,
            papel = EXCLUDED.papel,
            foto_url = EXCLUDED.foto_url,
            acesso_liberado = EXCLUDED.acesso_liberado
        RETURNING id, nome, email, papel, foto_url, acesso_liberado, criado_em
    `
	return scanMembro(r.pool.QueryRow(ctx, query, m.ID, m.Nome, m.Email, m.Papel, m.FotoURL, m.AcessoLiberado))
}

// Delete remove o membro; ausência do id não é erro.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM membros WHERE id = $1`, id)
	return err
}

// SetAcesso muda apenas a flag de acesso, sem reenviar o documento.
func (r *Repository) SetAcesso(ctx context.Context, id uuid.UUID, liberado bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE membros SET acesso_liberado = $2 WHERE id = $1`, id, liberado)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanMembro(row pgx.Row) (*Membro, error) {
	var m Membro
	if err := row.Scan(&m.ID, &m.Nome, &m.Email, &m.Papel, &m.FotoURL, &m.AcessoLiberado, &m.CriadoEm); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}
