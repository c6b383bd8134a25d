package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"infinite-ideas-hub/internal/domains/draft/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
	psql sq.StatementBuilderType
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{
		pool: pool,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var draftColumns = []string{
	"id", "user_id", "blog_id", "title", "description", "image", "category",
	"status", "revision", "created_at", "updated_at",
}

var returningDraft = "RETURNING " + strings.Join(draftColumns, ", ")

func scanDraft(row pgx.Row, extra ...any) (*model.Draft, error) {
	d := &model.Draft{}
	dest := []any{
		&d.ID, &d.UserID, &d.BlogID, &d.Title, &d.Description, &d.Image, &d.Category,
		&d.Status, &d.Revision, &d.CreatedAt, &d.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *postgresRepository) Insert(ctx context.Context, d *model.Draft) error {
	stored, err := scanDraft(r.pool.QueryRow(ctx, `
		INSERT INTO drafts (user_id, blog_id, title, description, image, category, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		`+returningDraft,
		d.UserID, d.BlogID, d.Title, d.Description, d.Image, d.Category, d.Status,
	))
	if err != nil {
		return fmt.Errorf("insert draft: %w", err)
	}
	*d = *stored
	return nil
}

func (r *postgresRepository) Upsert(ctx context.Context, d *model.Draft) (bool, error) {
	if d.BlogID == nil {
		return false, fmt.Errorf("upsert draft: blog id required")
	}

	var inserted bool
	stored, err := scanDraft(r.pool.QueryRow(ctx, `
		INSERT INTO drafts (user_id, blog_id, title, description, image, category, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, blog_id) WHERE blog_id IS NOT NULL
		DO UPDATE SET
			title       = EXCLUDED.title,
			description = EXCLUDED.description,
			image       = EXCLUDED.image,
			category    = EXCLUDED.category,
			status      = EXCLUDED.status,
			revision    = drafts.revision + 1,
			updated_at  = NOW()
		`+returningDraft+`, (xmax = 0) AS inserted`,
		d.UserID, d.BlogID, d.Title, d.Description, d.Image, d.Category, d.Status,
	), &inserted)
	if err != nil {
		return false, fmt.Errorf("upsert draft: %w", err)
	}
	*d = *stored
	return inserted, nil
}

func (r *postgresRepository) findOne(ctx context.Context, where sq.Eq) (*model.Draft, error) {
	query, args, err := r.psql.Select(draftColumns...).From("drafts").Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	d, err := scanDraft(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrDraftNotFound
		}
		return nil, fmt.Errorf("find draft: %w", err)
	}
	return d, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Draft, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *postgresRepository) FindByUserAndBlog(ctx context.Context, userID, blogID uuid.UUID) (*model.Draft, error) {
	return r.findOne(ctx, sq.Eq{"user_id": userID, "blog_id": blogID})
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Draft, error) {
	query, args, err := r.psql.Select(draftColumns...).
		From("drafts").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	drafts := []*model.Draft{}
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, patch model.Patch) (*model.Draft, error) {
	update := r.psql.Update("drafts").
		Set("revision", sq.Expr("revision + 1")).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id})
	if patch.Title != nil {
		update = update.Set("title", *patch.Title)
	}
	if patch.Description != nil {
		update = update.Set("description", *patch.Description)
	}
	if patch.Image != nil {
		update = update.Set("image", *patch.Image)
	}
	if patch.Category != nil {
		update = update.Set("category", *patch.Category)
	}
	if patch.Status != nil {
		update = update.Set("status", *patch.Status)
	}

	query, args, err := update.Suffix(returningDraft).ToSql()
	if err != nil {
		return nil, err
	}
	d, err := scanDraft(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrDraftNotFound
		}
		return nil, fmt.Errorf("update draft: %w", err)
	}
	return d, nil
}

func (r *postgresRepository) delete(ctx context.Context, where sq.Eq) (int64, error) {
	query, args, err := r.psql.Delete("drafts").Where(where).ToSql()
	if err != nil {
		return 0, err
	}
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete drafts: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *postgresRepository) DeleteByID(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (int64, error) {
	where := sq.Eq{"id": id}
	if userID != nil {
		where["user_id"] = *userID
	}
	return r.delete(ctx, where)
}

func (r *postgresRepository) DeleteByBlog(ctx context.Context, userID, blogID uuid.UUID) (int64, error) {
	return r.delete(ctx, sq.Eq{"user_id": userID, "blog_id": blogID})
}

func (r *postgresRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.delete(ctx, sq.Eq{"user_id": userID})
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM drafts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count drafts: %w", err)
	}
	return n, nil
}
