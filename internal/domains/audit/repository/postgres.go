package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"infinite-ideas-hub/internal/domains/audit/model"
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

func (r *postgresRepository) Insert(ctx context.Context, e *model.Entry) error {
	meta := e.Meta
	if meta == nil {
		meta = map[string]interface{}{}
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO audit_logs (action, by_user_id, target_type, target_id, meta)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		e.Action, e.ByUserID, e.TargetType, e.TargetID, meta,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (r *postgresRepository) List(ctx context.Context, req model.ListRequest) ([]*model.Entry, int, error) {
	filter := sq.And{}
	if req.Action != "" {
		filter = append(filter, sq.Eq{"action": req.Action})
	}

	countSQL, countArgs, err := r.psql.Select("COUNT(*)").From("audit_logs").Where(filter).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	query, args, err := r.psql.
		Select("id", "action", "by_user_id", "target_type", "target_id", "meta", "created_at").
		From("audit_logs").
		Where(filter).
		OrderBy("created_at DESC").
		Limit(uint64(req.Limit)).
		Offset(uint64((req.Page - 1) * req.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	entries := make([]*model.Entry, 0, req.Limit)
	for rows.Next() {
		e := &model.Entry{}
		if err := rows.Scan(&e.ID, &e.Action, &e.ByUserID, &e.TargetType, &e.TargetID, &e.Meta, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan audit log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}
