package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"infinite-ideas-hub/internal/domains/blog/model"
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

var blogColumns = []string{
	"id", "title", "description", "image", "category", "slug", "likes", "status",
	"author_id", "author_name", "author_slug", "created_at", "updated_at",
}

func scanBlog(row pgx.Row) (*model.Blog, error) {
	b := &model.Blog{}
	err := row.Scan(
		&b.ID, &b.Title, &b.Description, &b.Image, &b.Category, &b.Slug, &b.Likes, &b.Status,
		&b.AuthorID, &b.AuthorName, &b.AuthorSlug, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Blog) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO blogs (title, description, image, category, slug, likes, status, author_id, author_name, author_slug)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8, $9)
		RETURNING id, likes, created_at, updated_at`,
		b.Title, b.Description, b.Image, b.Category, b.Slug, b.Status, b.AuthorID, b.AuthorName, b.AuthorSlug,
	).Scan(&b.ID, &b.Likes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrSlugTaken
		}
		return fmt.Errorf("insert blog: %w", err)
	}
	return nil
}

func (r *postgresRepository) findOne(ctx context.Context, q sq.SelectBuilder) (*model.Blog, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	b, err := scanBlog(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBlogNotFound
		}
		return nil, fmt.Errorf("find blog: %w", err)
	}
	return b, nil
}

func (r *postgresRepository) selectBlogs() sq.SelectBuilder {
	return r.psql.Select(blogColumns...).From("blogs")
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	return r.findOne(ctx, r.selectBlogs().Where(sq.Eq{"id": id}))
}

func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	return r.findOne(ctx, r.selectBlogs().Where(sq.Eq{"slug": slug}))
}

func (r *postgresRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM blogs WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check blog: %w", err)
	}
	return exists, nil
}

// list runs a filtered page query and its COUNT(*) twin.
func (r *postgresRepository) list(ctx context.Context, where sq.And, orderBy string, page, limit int) ([]*model.Blog, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	countQuery, countArgs, err := r.psql.Select("COUNT(*)").From("blogs").Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count blogs: %w", err)
	}

	query, args, err := r.selectBlogs().
		Where(where).
		OrderBy(orderBy).
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	blogs := make([]*model.Blog, 0, limit)
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan blog: %w", err)
		}
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

func (r *postgresRepository) ListPublished(ctx context.Context, filter model.ListFilter) ([]*model.Blog, int, error) {
	where := sq.And{sq.Eq{"status": model.StatusPublished}}
	if filter.Category != "" {
		where = append(where, sq.Expr("LOWER(category) = LOWER(?)", filter.Category))
	}
	if filter.AuthorSlug != "" {
		where = append(where, sq.Eq{"author_slug": filter.AuthorSlug})
	}
	return r.list(ctx, where, "created_at DESC", filter.Page, filter.Limit)
}

func (r *postgresRepository) Featured(ctx context.Context) (*model.Blog, error) {
	return r.findOne(ctx, r.selectBlogs().
		Where(sq.Eq{"status": model.StatusPublished}).
		OrderBy("likes DESC", "created_at DESC").
		Limit(1))
}

func (r *postgresRepository) NextOrOldest(ctx context.Context, current *model.Blog) (*model.Blog, error) {
	next, err := r.findOne(ctx, r.selectBlogs().
		Where(sq.Eq{"status": model.StatusPublished}).
		Where(sq.Gt{"created_at": current.CreatedAt}).
		OrderBy("created_at ASC").
		Limit(1))
	if !errors.Is(err, model.ErrBlogNotFound) {
		return next, err
	}

	return r.findOne(ctx, r.selectBlogs().
		Where(sq.Eq{"status": model.StatusPublished}).
		Where(sq.NotEq{"id": current.ID}).
		OrderBy("created_at ASC").
		Limit(1))
}

func (r *postgresRepository) AdminList(ctx context.Context, filter model.AdminFilter) ([]*model.Blog, int, error) {
	where := sq.And{}
	if filter.Status != "" {
		where = append(where, sq.Eq{"status": filter.Status})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"author_name": pattern},
			sq.ILike{"slug": pattern},
		})
	}
	return r.list(ctx, where, "updated_at DESC", filter.Page, filter.Limit)
}

func (r *postgresRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	q := r.psql.Select("1").From("blogs").Where(sq.Eq{"slug": slug}).Limit(1)
	if excludeID != nil {
		q = q.Where(sq.NotEq{"id": *excludeID})
	}
	query, args, err := q.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check blog slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, patch model.Patch) (*model.Blog, error) {
	update := r.psql.Update("blogs").Set("updated_at", sq.Expr("NOW()")).Where(sq.Eq{"id": id})
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
	if patch.Slug != nil {
		update = update.Set("slug", *patch.Slug)
	}
	if patch.Status != nil {
		update = update.Set("status", *patch.Status)
	}

	query, args, err := update.Suffix("RETURNING " + strings.Join(blogColumns, ", ")).ToSql()
	if err != nil {
		return nil, err
	}

	b, err := scanBlog(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, model.ErrBlogNotFound
		case isUniqueViolation(err):
			return nil, model.ErrSlugTaken
		}
		return nil, fmt.Errorf("update blog: %w", err)
	}
	return b, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBlogNotFound
	}
	return nil
}

func (r *postgresRepository) AddLikes(ctx context.Context, slug string, delta int) (int, error) {
	var likes int
	err := r.pool.QueryRow(ctx, `
		UPDATE blogs SET likes = GREATEST(likes + $2, 0)
		WHERE slug = $1
		RETURNING likes`, slug, delta).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrBlogNotFound
		}
		return 0, fmt.Errorf("update likes: %w", err)
	}
	return likes, nil
}

func (r *postgresRepository) Count(ctx context.Context, status *model.Status) (int, error) {
	q := r.psql.Select("COUNT(*)").From("blogs")
	if status != nil {
		q = q.Where(sq.Eq{"status": *status})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}

	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count blogs: %w", err)
	}
	return n, nil
}
