package postgres

import (
	"context"
	"database/sql"

	"vet-clinic-api/internal/domain/categories"
)

const categoryColumns = `id, name, description, created_at, updated_at`

type CategoriesRepo struct {
	db *sql.DB
}

func NewCategoriesRepo(db *sql.DB) *CategoriesRepo {
	return &CategoriesRepo{db: db}
}

// Create: el índice único sobre lower(name) da 23505 => ErrDuplicate.
func (r *CategoriesRepo) Create(ctx context.Context, c categories.Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (`+categoryColumns+`) VALUES ($1,$2,$3,$4,$5)
	`, c.ID, c.Name, nullString(c.Description), c.CreatedAt, c.UpdatedAt)
	return mapErr(err)
}

func (r *CategoriesRepo) GetByID(ctx context.Context, id string) (categories.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err != nil {
		return categories.Category{}, mapErr(err)
	}
	return c, nil
}

func (r *CategoriesRepo) List(ctx context.Context) ([]categories.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY lower(name) ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]categories.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoriesRepo) Update(ctx context.Context, c categories.Category) error {
	return checkAffected(r.db.ExecContext(ctx, `
		UPDATE categories SET name = $2, description = $3, updated_at = $4 WHERE id = $1
	`, c.ID, c.Name, nullString(c.Description), c.UpdatedAt))
}

func (r *CategoriesRepo) Delete(ctx context.Context, id string) error {
	return checkAffected(r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id))
}

func scanCategory(s scanner) (categories.Category, error) {
	var c categories.Category
	var desc sql.NullString
	if err := s.Scan(&c.ID, &c.Name, &desc, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return categories.Category{}, err
	}
	c.Description = desc.String
	return c, nil
}
