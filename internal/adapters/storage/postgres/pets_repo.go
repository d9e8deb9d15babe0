package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vet-clinic-api/internal/domain/pets"
)

const petColumns = `
	id, owner_id,
	nombre, especie, raza, peso,
	fecha_nacimiento, imagen_url, microchip,
	created_at, updated_at`

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		p.ID,
		p.OwnerID,
		p.Nombre,
		string(p.Especie),
		p.Raza,
		p.Peso,
		p.FechaNacimiento,
		p.ImagenURL,
		nullString(p.Microchip),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return mapErr(err)
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	return checkAffected(r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			owner_id = $2,
			nombre = $3,
			especie = $4,
			raza = $5,
			peso = $6,
			fecha_nacimiento = $7,
			imagen_url = $8,
			microchip = $9,
			updated_at = $10
		WHERE id = $1
	`,
		p.ID,
		p.OwnerID,
		p.Nombre,
		string(p.Especie),
		p.Raza,
		p.Peso,
		p.FechaNacimiento,
		p.ImagenURL,
		nullString(p.Microchip),
		p.UpdatedAt,
	))
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	p, err := scanPet(row)
	if err != nil {
		return pets.Pet{}, mapErr(err)
	}
	return p, nil
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	return r.query(ctx, `SELECT `+petColumns+` FROM pets ORDER BY created_at ASC`)
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return []pets.Pet{}, nil
	}
	return r.query(ctx, `SELECT `+petColumns+` FROM pets WHERE owner_id = $1 ORDER BY created_at ASC`, ownerID)
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	return checkAffected(r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id))
}

func (r *PetsRepo) query(ctx context.Context, q string, args ...any) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPet(s scanner) (pets.Pet, error) {
	var p pets.Pet
	var especie string
	var chip sql.NullString
	if err := s.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Nombre,
		&especie,
		&p.Raza,
		&p.Peso,
		&p.FechaNacimiento,
		&p.ImagenURL,
		&chip,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	p.Especie = pets.Species(especie)
	p.Microchip = chip.String
	// fecha_nacimiento es DATE: pgx la entrega a medianoche UTC
	p.FechaNacimiento = p.FechaNacimiento.UTC()
	return p, nil
}
