package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vet-clinic-api/internal/domain/owners"
)

const ownerColumns = `id, nombre, telefono, email, direccion, created_at, updated_at`

type OwnersRepo struct {
	db *sql.DB
}

func NewOwnersRepo(db *sql.DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO owners (`+ownerColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		o.ID,
		o.Nombre,
		o.Telefono,
		o.Email,
		nullString(o.Direccion),
		o.CreatedAt,
		o.UpdatedAt,
	)
	return mapErr(err)
}

func (r *OwnersRepo) GetByID(ctx context.Context, id string) (owners.Owner, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return owners.Owner{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+ownerColumns+` FROM owners WHERE id = $1`, id)
	o, err := scanOwner(row)
	if err != nil {
		return owners.Owner{}, mapErr(err)
	}
	return o, nil
}

func (r *OwnersRepo) List(ctx context.Context) ([]owners.Owner, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+ownerColumns+` FROM owners ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]owners.Owner, 0)
	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OwnersRepo) Update(ctx context.Context, o owners.Owner) error {
	return checkAffected(r.db.ExecContext(ctx, `
		UPDATE owners
		SET nombre = $2, telefono = $3, email = $4, direccion = $5, updated_at = $6
		WHERE id = $1
	`,
		o.ID,
		o.Nombre,
		o.Telefono,
		o.Email,
		nullString(o.Direccion),
		o.UpdatedAt,
	))
}

func (r *OwnersRepo) Delete(ctx context.Context, id string) error {
	return checkAffected(r.db.ExecContext(ctx, `DELETE FROM owners WHERE id = $1`, id))
}

func scanOwner(s scanner) (owners.Owner, error) {
	var o owners.Owner
	var dir sql.NullString
	if err := s.Scan(&o.ID, &o.Nombre, &o.Telefono, &o.Email, &dir, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return owners.Owner{}, err
	}
	o.Direccion = dir.String
	return o, nil
}
