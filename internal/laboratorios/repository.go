package laboratorios

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

func (r *Repository) List(ctx context.Context) ([]Laboratorio, error) {
	const query = `
        SELECT id, titulo, coordenador, tipo, descricao, imagem_url, criado_em
        FROM laboratorios
        ORDER BY titulo ASC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labs []Laboratorio
	for rows.Next() {
		l, err := scanLaboratorio(rows)
		if err != nil {
			return nil, err
		}
		labs = append(labs, *l)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return labs, nil
}

func (r *Repository) Upsert(ctx context.Context, l Laboratorio) (*Laboratorio, error) {
	const query = `
        INSERT INTO laboratorios (id, titulo, coordenador, tipo, descricao, imagem_url)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (id) DO UPDATE SET
            titulo = EXCLUDED.titulo,
            coordenador = EXCLUDED.coordenador,
            tipo = EXCLUDED.tipo,
            descricao = EXCLUDED.descricao,
            imagem_url = EXCLUDED.imagem_url
        RETURNING id, titulo, coordenador, tipo, descricao, imagem_url, criado_em
    `
	return scanLaboratorio(r.pool.QueryRow(ctx, query, l.ID, l.Titulo, l.Coordenador, l.Tipo, l.Descricao, l.ImagemURL))
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM laboratorios WHERE id = $1`, id)
	return err
}

func scanLaboratorio(row pgx.Row) (*Laboratorio, error) {
	var l Laboratorio
	if err := row.Scan(&l.ID, &l.Titulo, &l.Coordenador, &l.Tipo, &l.Descricao, &l.ImagemURL, &l.CriadoEm); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}
