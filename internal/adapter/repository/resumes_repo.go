package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"resume-studio/internal/domain"
)

type ResumesRepo struct {
	pool *pgxpool.Pool
}

func NewResumesRepo(pool *pgxpool.Pool) *ResumesRepo {
	return &ResumesRepo{pool: pool}
}

// Save upserts a resume. When createVersion is set the previous stored state
// is snapshotted into resume_versions first (best-effort: a failed snapshot
// logs a warning and does not block the save).
func (r *ResumesRepo) Save(ctx context.Context, res *domain.Resume, createVersion bool) error {
	if r.pool == nil {
		return nil
	}

	dataB, err := json.Marshal(res.Data)
	if err != nil {
		return fmt.Errorf("marshal resume data: %w", err)
	}
	layoutB, err := json.Marshal(res.Layout)
	if err != nil {
		return fmt.Errorf("marshal layout config: %w", err)
	}

	if createVersion {
		if err := r.snapshot(ctx, res.ID); err != nil {
			log.Printf("resumes_repo: unable to snapshot version (non-fatal): %v", err)
		}
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO resumes (id, title, resume_data, layout_config, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, resume_data = EXCLUDED.resume_data, layout_config = EXCLUDED.layout_config, updated_at = EXCLUDED.updated_at`,
		res.ID, res.Title, dataB, layoutB, res.CreatedAt, res.UpdatedAt)
	return err
}

func (r *ResumesRepo) snapshot(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO resume_versions (id, resume_id, version_number, resume_data, layout_config, created_at)
		SELECT $1, id, coalesce((SELECT max(version_number) FROM resume_versions WHERE resume_id = $2), 0) + 1, resume_data, layout_config, now()
		FROM resumes WHERE id = $2`,
		uuid.New(), id)
	return err
}

func (r *ResumesRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resume, error) {
	if r.pool == nil {
		return nil, nil
	}

	var res domain.Resume
	var dataB, layoutB []byte
	err := r.pool.QueryRow(ctx, `SELECT id, title, resume_data, layout_config, created_at, updated_at
		FROM resumes WHERE id = $1`, id).
		Scan(&res.ID, &res.Title, &dataB, &layoutB, &res.CreatedAt, &res.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(dataB, &res.Data); err != nil {
		return nil, fmt.Errorf("unmarshal resume data: %w", err)
	}
	if err := json.Unmarshal(layoutB, &res.Layout); err != nil {
		return nil, fmt.Errorf("unmarshal layout config: %w", err)
	}
	return &res, nil
}

func (r *ResumesRepo) List(ctx context.Context) ([]*domain.Resume, error) {
	if r.pool == nil {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT id, title, resume_data, layout_config, created_at, updated_at
		FROM resumes ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Resume
	for rows.Next() {
		var res domain.Resume
		var dataB, layoutB []byte
		if err := rows.Scan(&res.ID, &res.Title, &dataB, &layoutB, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(dataB, &res.Data); err != nil {
			return nil, fmt.Errorf("unmarshal resume data: %w", err)
		}
		if err := json.Unmarshal(layoutB, &res.Layout); err != nil {
			return nil, fmt.Errorf("unmarshal layout config: %w", err)
		}
		out = append(out, &res)
	}
	return out, rows.Err()
}

func (r *ResumesRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.pool == nil {
		return nil
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM resume_versions WHERE resume_id = $1`, id); err != nil {
		log.Printf("resumes_repo: unable to delete versions (non-fatal): %v", err)
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	return err
}

func (r *ResumesRepo) ListVersions(ctx context.Context, resumeID uuid.UUID) ([]*domain.ResumeVersion, error) {
	if r.pool == nil {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT id, resume_id, version_number, resume_data, layout_config, created_at
		FROM resume_versions WHERE resume_id = $1 ORDER BY version_number DESC`, resumeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.ResumeVersion
	for rows.Next() {
		var v domain.ResumeVersion
		var dataB, layoutB []byte
		if err := rows.Scan(&v.ID, &v.ResumeID, &v.VersionNumber, &dataB, &layoutB, &v.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(dataB, &v.Data); err != nil {
			return nil, fmt.Errorf("unmarshal resume data: %w", err)
		}
		if err := json.Unmarshal(layoutB, &v.Layout); err != nil {
			return nil, fmt.Errorf("unmarshal layout config: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}
