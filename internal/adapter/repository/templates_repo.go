package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"resume-studio/internal/domain"
	"resume-studio/internal/model"
)

type TemplatesRepo struct {
	pool *pgxpool.Pool
}

func NewTemplatesRepo(pool *pgxpool.Pool) *TemplatesRepo {
	return &TemplatesRepo{pool: pool}
}

func (r *TemplatesRepo) Save(ctx context.Context, t *domain.Template) error {
	if r.pool == nil {
		return nil
	}

	astB, err := json.Marshal(t.AST)
	if err != nil {
		return fmt.Errorf("marshal template ast: %w", err)
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO templates (id, name, description, ast, thumbnail, is_system, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description, ast = EXCLUDED.ast, thumbnail = EXCLUDED.thumbnail, updated_at = EXCLUDED.updated_at`,
		t.ID, t.Name, t.Description, astB, t.Thumbnail, t.IsSystem, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *TemplatesRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Template, error) {
	if r.pool == nil {
		return nil, nil
	}

	var t domain.Template
	var astB []byte
	err := r.pool.QueryRow(ctx, `SELECT id, name, description, ast, coalesce(thumbnail, ''), is_system, created_at, updated_at
		FROM templates WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Description, &astB, &t.Thumbnail, &t.IsSystem, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(astB, &t.AST); err != nil {
		return nil, fmt.Errorf("unmarshal template ast: %w", err)
	}
	return &t, nil
}

func (r *TemplatesRepo) List(ctx context.Context) ([]*domain.Template, error) {
	if r.pool == nil {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT id, name, description, ast, coalesce(thumbnail, ''), is_system, created_at, updated_at
		FROM templates ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Template
	for rows.Next() {
		var t domain.Template
		var astB []byte
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &astB, &t.Thumbnail, &t.IsSystem, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(astB, &t.AST); err != nil {
			return nil, fmt.Errorf("unmarshal template ast: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *TemplatesRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.pool == nil {
		return nil
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	return err
}

// SeedSystemTemplate inserts a system template once; existing rows with the
// same name are left untouched.
func (r *TemplatesRepo) SeedSystemTemplate(ctx context.Context, name, description string, ast *model.TemplateAST) error {
	if r.pool == nil || ast == nil {
		return nil
	}
	astB, err := json.Marshal(ast)
	if err != nil {
		return fmt.Errorf("marshal template ast: %w", err)
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO templates (id, name, description, ast, is_system, created_at, updated_at)
		SELECT $1, $2, $3, $4, TRUE, now(), now()
		WHERE NOT EXISTS (SELECT 1 FROM templates WHERE name = $2 AND is_system)`,
		uuid.New(), name, description, astB)
	return err
}
