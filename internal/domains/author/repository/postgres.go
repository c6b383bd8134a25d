package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"infinite-ideas-hub/internal/domains/author/model"
	"infinite-ideas-hub/pkg/database"
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

const authorColumns = `id, user_id, name, bio, profile_image, slug, created_at, updated_at`

func scanAuthor(row pgx.Row) (*model.Author, error) {
	a := &model.Author{}
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Bio, &a.ProfileImage, &a.Slug, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

// mapWriteError translates unique violations on the authors table
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "authors_user_id_key" {
			return model.ErrAuthorExists
		}
		return model.ErrSlugTaken
	}
	return err
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertAuthor(ctx context.Context, q queryRower, a *model.Author) error {
	err := q.QueryRow(ctx, `
		INSERT INTO authors (user_id, name, bio, profile_image, slug)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		a.UserID, a.Name, a.Bio, a.ProfileImage, a.Slug,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) error {
	if err := insertAuthor(ctx, r.pool, a); err != nil {
		if errors.Is(err, model.ErrSlugTaken) || errors.Is(err, model.ErrAuthorExists) {
			return err
		}
		return fmt.Errorf("insert author: %w", err)
	}
	return nil
}

func (r *postgresRepository) CreateForUser(ctx context.Context, a *model.Author, userName, userImage string) error {
	if a.UserID == nil {
		return fmt.Errorf("create author for user: missing user id")
	}

	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := insertAuthor(ctx, tx, a); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `
			UPDATE users
			SET role = 'author', name = $2, image = $3, updated_at = NOW()
			WHERE id = $1`, *a.UserID, userName, userImage)
		if err != nil {
			return fmt.Errorf("promote user: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrUserNotFound
		}
		return nil
	})
}

func (r *postgresRepository) findOne(ctx context.Context, where string, arg any) (*model.Author, error) {
	a, err := scanAuthor(r.pool.QueryRow(ctx, `SELECT `+authorColumns+` FROM authors WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author: %w", err)
	}
	return a, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	return r.findOne(ctx, `id = $1`, id)
}

func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*model.Author, error) {
	return r.findOne(ctx, `slug = $1`, slug)
}

func (r *postgresRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Author, error) {
	return r.findOne(ctx, `user_id = $1`, userID)
}

func (r *postgresRepository) List(ctx context.Context) ([]*model.Author, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+authorColumns+` FROM authors ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	var authors []*model.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

func (r *postgresRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	q := r.psql.Select("1").From("authors").Where(sq.Eq{"slug": slug}).Limit(1)
	if excludeID != nil {
		q = q.Where(sq.NotEq{"id": *excludeID})
	}
	query, args, err := q.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check author slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, patch model.AuthorPatch) (*model.Author, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Author, error) {
		update := r.psql.Update("authors").Set("updated_at", sq.Expr("NOW()")).Where(sq.Eq{"id": id})
		if patch.Name != nil {
			update = update.Set("name", *patch.Name)
		}
		if patch.Bio != nil {
			update = update.Set("bio", *patch.Bio)
		}
		if patch.ProfileImage != nil {
			update = update.Set("profile_image", *patch.ProfileImage)
		}
		if patch.Slug != nil {
			update = update.Set("slug", *patch.Slug)
		}

		query, args, err := update.Suffix("RETURNING " + authorColumns).ToSql()
		if err != nil {
			return nil, err
		}

		a, err := scanAuthor(tx.QueryRow(ctx, query, args...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrAuthorNotFound
			}
			if mapped := mapWriteError(err); mapped != err {
				return nil, mapped
			}
			return nil, fmt.Errorf("update author: %w", err)
		}

		if patch.Name != nil || patch.Slug != nil {
			if _, err := tx.Exec(ctx, `
				UPDATE blogs SET author_name = $2, author_slug = $3
				WHERE author_id = $1`, a.ID, a.Name, a.Slug); err != nil {
				return nil, fmt.Errorf("propagate author to blogs: %w", err)
			}
		}

		return a, nil
	})
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}
	return nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count authors: %w", err)
	}
	return n, nil
}
