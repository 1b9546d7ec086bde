package presenca

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

// List devolve os registros mais recentes primeiro.
func (r *Repository) List(ctx context.Context) ([]Registro, error) {
	const query = `
        SELECT id, membro_id, membro_nome, evento_titulo, data, horario, avulsa, evento_avulso
        FROM presencas
        ORDER BY horario DESC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var registros []Registro
	for rows.Next() {
		reg, err := scanRegistro(rows)
		if err != nil {
			return nil, err
		}
		registros = append(registros, *reg)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return registros, nil
}

func (r *Repository) Create(ctx context.Context, reg Registro) (*Registro, error) {
	const query = `
        INSERT INTO presencas (id, membro_id, membro_nome, evento_titulo, data, avulsa, evento_avulso)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, membro_id, membro_nome, evento_titulo, data, horario, avulsa, evento_avulso
    `
	return scanRegistro(r.pool.QueryRow(ctx, query,
		reg.ID, reg.MembroID, reg.MembroNome, reg.EventoTitulo, reg.Data, reg.Avulsa, reg.EventoAvulso))
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM presencas WHERE id = $1`, id)
	return err
}

func scanRegistro(row pgx.Row) (*Registro, error) {
	var reg Registro
	if err := row.Scan(&reg.ID, &reg.MembroID, &reg.MembroNome, &reg.EventoTitulo, &reg.Data, &reg.Horario, &reg.Avulsa, &reg.EventoAvulso); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &reg, nil
}
