package usuarios

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) List(ctx context.Context) ([]Usuario, error) {
	const query = `
        SELECT id, nome, email, senha_hash, papel, acesso_liberado, criado_em
        FROM usuarios
        ORDER BY nome ASC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usuarios []Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, err
		}
		usuarios = append(usuarios, *u)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return usuarios, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Usuario, error) {
	const query = `
        SELECT id, nome, email, senha_hash, papel, acesso_liberado, criado_em
        FROM usuarios
        WHERE id = $1
    `
	return scanUsuario(r.pool.QueryRow(ctx, query, id))
}

// GetByEmail procura pelo e-mail já normalizado em minúsculas.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*Usuario, error) {
	const query = `
        SELECT id, nome, email, senha_hash, papel, acesso_liberado, criado_em
        FROM usuarios
        WHERE email = $1
    `
	return scanUsuario(r.pool.QueryRow(ctx, query, email))
}

func (r *Repository) Create(ctx context.Context, u Usuario) (*Usuario, error) {
	const query = `
        INSERT INTO usuarios (id, nome, email, senha_hash, papel, acesso_liberado)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, nome, email, senha_hash, papel, acesso_liberado, criado_em
    `
	return scanUsuario(r.pool.QueryRow(ctx, query,
		u.ID, u.Nome, u.Email, u.SenhaHash, u.Papel, u.AcessoLiberado))
}

// SetAcesso altera apenas a liberação de acesso, nada mais.
func (r *Repository) SetAcesso(ctx context.Context, id uuid.UUID, liberado bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE usuarios SET acesso_liberado = $2 WHERE id = $1`, id, liberado)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	return err
}

func scanUsuario(row pgx.Row) (*Usuario, error) {
	var u Usuario
	if err := row.Scan(&u.ID, &u.Nome, &u.Email, &u.SenhaHash, &u.Papel, &u.AcessoLiberado, &u.CriadoEm); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
