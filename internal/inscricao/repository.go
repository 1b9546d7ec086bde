package inscricao

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository guarda a configuração em uma única linha.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get devolve a configuração gravada ou a padrão quando a linha não existe.
func (r *Repository) Get(ctx context.Context) (*Config, error) {
	var dados []byte
	err := r.pool.QueryRow(ctx, `SELECT dados FROM inscricao_config WHERE id = 1`).Scan(&dados)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			cfg := Padrao()
			return &cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(dados, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Put substitui a configuração inteira.
func (r *Repository) Put(ctx context.Context, cfg Config) error {
	dados, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO inscricao_config (id, dados)
        VALUES (1, $1)
        ON CONFLICT (id) DO UPDATE SET dados = EXCLUDED.dados
    `
	_, err = r.pool.Exec(ctx, query, dados)
	return err
}
