package projetos

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

func (r *Repository) List(ctx context.Context) ([]Projeto, error) {
	const query = `
        SELECT id, titulo, orientador, data_inicio, status, descricao, imagem_url, criado_em
        FROM projetos
        ORDER BY criado_em DESC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projetos []Projeto
	for rows.Next() {
		p, err := scanProjeto(rows)
		if err != nil {
			return nil, err
		}
		projetos = append(projetos, *p)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return projetos, nil
}

func (r *Repository) Upsert(ctx context.Context, p Projeto) (*Projeto, error) {
	const query = `
        INSERT INTO projetos (id, titulo, orientador, data_inicio, status, descricao, imagem_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (id) DO UPDATE SET
            titulo = EXCLUDED.titulo,
            orientador = EXCLUDED.orientador,
            data_inicio = EXCLUDED.data_inicio,
            status = EXCLUDED.status,
            descricao = EXCLUDED.descricao,
            imagem_url = EXCLUDED.imagem_url
        RETURNING id, titulo, orientador, data_inicio, status, descricao, imagem_url, criado_em
    `
	return scanProjeto(r.pool.QueryRow(ctx, query, p.ID, p.Titulo, p.Orientador, p.DataInicio, p.Status, p.Descricao, p.ImagemURL))
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM projetos WHERE id = $1`, id)
	return err
}

func scanProjeto(row pgx.Row) (*Projeto, error) {
	var p Projeto
	if err := row.Scan(&p.ID, &p.Titulo, &p.Orientador, &p.DataInicio, &p.Status, &p.Descricao, &p.ImagemURL, &p.CriadoEm); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
