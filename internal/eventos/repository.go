package eventos

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

// List devolve todos os eventos, publicados ou não (visão administrativa).
func (r *Repository) List(ctx context.Context) ([]Evento, error) {
	return r.list(ctx, `
        SELECT id, titulo, data, hora, local, descricao, categoria, ativo, imagem_url, criado_em
        FROM eventos
        ORDER BY data ASC, hora ASC
    `)
}

// ListAtivos devolve apenas eventos publicados (visão pública).
func (r *Repository) ListAtivos(ctx context.Context) ([]Evento, error) {
	return r.list(ctx, `
        SELECT id, titulo, data, hora, local, descricao, categoria, ativo, imagem_url, criado_em
        FROM eventos
        WHERE ativo
        ORDER BY data ASC, hora ASC
    `)
}

func (r *Repository) list(ctx context.Context, query string) ([]Evento, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var eventos []Evento
	for rows.Next() {
		e, err := scanEvento(rows)
		if err != nil {
			return nil, err
		}
		eventos = append(eventos, *e)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return eventos, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Evento, error) {
	const query = `
        SELECT id, titulo, data, hora, local, descricao, categoria, ativo, imagem_url, criado_em
        FROM eventos
        WHERE id = $1
    `
	return scanEvento(r.pool.QueryRow(ctx, query, id))
}

func (r *Repository) Upsert(ctx context.Context, e Evento) (*Evento, error) {
	const query = `
        INSERT INTO eventos (id, titulo, data, hora, local, descricao, categoria, ativo, imagem_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (id) DO UPDATE SET
            titulo = EXCLUDED.titulo,
            data = EXCLUDED.data,
            hora = EXCLUDED.hora,
            local = EXCLUDED.local,
            descricao = EXCLUDED.descricao,
            categoria = EXCLUDED.categoria,
            ativo = EXCLUDED.ativo,
            imagem_url = EXCLUDED.imagem_url
        RETURNING id, titulo, data, hora, local, descricao, categoria, ativo, imagem_url, criado_em
    `
	return scanEvento(r.pool.QueryRow(ctx, query, e.ID, e.Titulo, e.Data, e.Hora, e.Local, e.Descricao, e.Categoria, e.Ativo, e.ImagemURL))
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM eventos WHERE id = $1`, id)
	return err
}

func scanEvento(row pgx.Row) (*Evento, error) {
	var e Evento
	if err := row.Scan(&e.ID, &e.Titulo, &e.Data, &e.Hora, &e.Local, &e.Descricao, &e.Categoria, &e.Ativo, &e.ImagemURL, &e.CriadoEm); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}
