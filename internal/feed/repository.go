package feed

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ligaacademica/portal/internal/db"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List devolve as publicações mais recentes primeiro.
func (r *Repository) List(ctx context.Context) ([]Post, error) {
	const query = `
        SELECT id, autor_id, autor_nome, texto, midias, curtidas, comentarios, criado_em
        FROM feed_posts
        ORDER BY criado_em DESC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return posts, nil
}

// Upsert grava a publicação inteira, inclusive curtidas e comentários.
func (r *Repository) Upsert(ctx context.Context, post Post) (*Post, error) {
	midias, curtidas, comentarios, err := marshalEmbutidos(post)
	if err != nil {
		return nil, err
	}

	const query = `
        INSERT INTO feed_posts (id, autor_id, autor_nome, texto, midias, curtidas, comentarios)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (id) DO UPDATE
        SET autor_id = EXCLUDED.autor_id,
            autor_nome = EXCLUDED.autor_nome,
            texto = EXCLUDED.texto,
            midias = EXCLUDED.midias,
            curtidas = EXCLUDED.curtidas,
            comentarios = EXCLUDED.comentarios
        RETURNING id, autor_id, autor_nome, texto, midias, curtidas, comentarios, criado_em
    `
	return scanPost(r.pool.QueryRow(ctx, query,
		post.ID, post.AutorID, post.AutorNome, post.Texto, midias, curtidas, comentarios))
}

// Atualizar aplica uma mutação sobre a publicação dentro de uma transação,
// com a linha travada entre a leitura e a regravação. Curtidas e comentários
// concorrentes não se sobrescrevem.
func (r *Repository) Atualizar(ctx context.Context, id uuid.UUID, fn func(post *Post) error) (*Post, error) {
	var atualizado *Post

	err := db.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		const query = `
            SELECT id, autor_id, autor_nome, texto, midias, curtidas, comentarios, criado_em
            FROM feed_posts
            WHERE id = $1
            FOR UPDATE
        `
		post, err := scanPost(tx.QueryRow(ctx, query, id))
		if err != nil {
			return err
		}

		if err := fn(post); err != nil {
			return err
		}

		midias, curtidas, comentarios, err := marshalEmbutidos(*post)
		if err != nil {
			return err
		}

		const update = `
            UPDATE feed_posts
            SET autor_id = $2, autor_nome = $3, texto = $4,
                midias = $5, curtidas = $6, comentarios = $7
            WHERE id = $1
            RETURNING id, autor_id, autor_nome, texto, midias, curtidas, comentarios, criado_em
        `
		atualizado, err = scanPost(tx.QueryRow(ctx, update,
			id, post.AutorID, post.AutorNome, post.Texto, midias, curtidas, comentarios))
		return err
	})
	if err != nil {
		return nil, err
	}

	return atualizado, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM feed_posts WHERE id = $1`, id)
	return err
}

func marshalEmbutidos(post Post) (midias, curtidas, comentarios []byte, err error) {
	if post.Midias == nil {
		post.Midias = []Midia{}
	}
	if post.Curtidas == nil {
		post.Curtidas = []string{}
	}
	if post.Comentarios == nil {
		post.Comentarios = []Comentario{}
	}

	if midias, err = json.Marshal(post.Midias); err != nil {
		return nil, nil, nil, err
	}
	if curtidas, err = json.Marshal(post.Curtidas); err != nil {
		return nil, nil, nil, err
	}
	if comentarios, err = json.Marshal(post.Comentarios); err != nil {
		return nil, nil, nil, err
	}
	return midias, curtidas, comentarios, nil
}

func scanPost(row pgx.Row) (*Post, error) {
	var (
		post        Post
		midias      []byte
		curtidas    []byte
		comentarios []byte
	)

	if err := row.Scan(&post.ID, &post.AutorID, &post.AutorNome, &post.Texto, &midias, &curtidas, &comentarios, &post.CriadoEm); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(midias, &post.Midias); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(curtidas, &post.Curtidas); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(comentarios, &post.Comentarios); err != nil {
		return nil, err
	}

	return &post, nil
}
