package acervo

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

func (r *Repository) ListByEmail(ctx context.Context, email string) ([]Documento, error) {
	const query = `
        SELECT id, email, titulo, url, criado_em
        FROM acervo_documentos
        WHERE email = $1
        ORDER BY criado_em DESC
    `

	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Documento
	for rows.Next() {
		doc, err := scanDocumento(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return docs, nil
}

func (r *Repository) Create(ctx context.Context, doc Documento) (*Documento, error) {
	const query = `
        INSERT INTO acervo_documentos (id, email, titulo, url)
        VALUES ($1, $2, $3, $4)
        RETURNING id, email, titulo, url, criado_em
    `
	return scanDocumento(r.pool.QueryRow(ctx, query, doc.ID, doc.Email, doc.Titulo, doc.URL))
}

// Delete remove o documento apenas se pertencer ao e-mail informado.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID, email string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM acervo_documentos WHERE id = $1 AND email = $2`, id, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDocumento(row pgx.Row) (*Documento, error) {
	var doc Documento
	if err := row.Scan(&doc.ID, &doc.Email, &doc.Titulo, &doc.URL, &doc.CriadoEm); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}
