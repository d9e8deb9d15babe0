package postgres

import (
	"context"
	"database/sql"

	"vet-clinic-api/internal/domain/products"
)

const productColumns = `id, name, description, price, stock, category_id, created_at, updated_at`

type ProductsRepo struct {
	db *sql.DB
}

func NewProductsRepo(db *sql.DB) *ProductsRepo {
	return &ProductsRepo{db: db}
}

func (r *ProductsRepo) Create(ctx context.Context, p products.Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		p.ID,
		p.Name,
		nullString(p.Description),
		p.Price,
		p.Stock,
		nullString(p.CategoryID),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return mapErr(err)
}

func (r *ProductsRepo) GetByID(ctx context.Context, id string) (products.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		return products.Product{}, mapErr(err)
	}
	return p, nil
}

func (r *ProductsRepo) List(ctx context.Context) ([]products.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]products.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductsRepo) Update(ctx context.Context, p products.Product) error {
	return checkAffected(r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock = $5, category_id = $6, updated_at = $7
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		nullString(p.Description),
		p.Price,
		p.Stock,
		nullString(p.CategoryID),
		p.UpdatedAt,
	))
}

func (r *ProductsRepo) Delete(ctx context.Context, id string) error {
	return checkAffected(r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id))
}

func scanProduct(s scanner) (products.Product, error) {
	var p products.Product
	var desc, cat sql.NullString
	if err := s.Scan(&p.ID, &p.Name, &desc, &p.Price, &p.Stock, &cat, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return products.Product{}, err
	}
	p.Description = desc.String
	p.CategoryID = cat.String
	return p, nil
}
