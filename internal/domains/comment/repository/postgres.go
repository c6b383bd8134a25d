package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"infinite-ideas-hub/internal/domains/comment/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, c *model.Comment) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO comments (blog_id, name, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		c.BlogID, c.Name, c.Message,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		// blog deleted between the existence check and the insert
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return model.ErrBlogNotFound
		}
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListByBlog(ctx context.Context, blogID uuid.UUID) ([]*model.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, blog_id, name, message, created_at
		FROM comments
		WHERE blog_id = $1
		ORDER BY created_at DESC`, blogID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []*model.Comment{}
	for rows.Next() {
		c := &model.Comment{}
		if err := rows.Scan(&c.ID, &c.BlogID, &c.Name, &c.Message, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
