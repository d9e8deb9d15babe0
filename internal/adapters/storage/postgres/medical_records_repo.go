package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"vet-clinic-api/internal/domain/medicalrecords"
)

const medicalRecordColumns = `
	id, pet_id, fecha, hora,
	diagnostico, tratamiento, veterinario, notas,
	created_at, updated_at`

type MedicalRecordsRepo struct {
	db *sql.DB
}

func NewMedicalRecordsRepo(db *sql.DB) *MedicalRecordsRepo {
	return &MedicalRecordsRepo{db: db}
}

func (r *MedicalRecordsRepo) Create(ctx context.Context, m medicalrecords.MedicalRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medical_records (`+medicalRecordColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		m.ID,
		m.PetID,
		m.Fecha,
		m.Hora,
		m.Diagnostico,
		m.Tratamiento,
		m.Veterinario,
		nullString(m.Notas),
		m.CreatedAt,
		m.UpdatedAt,
	)
	return mapErr(err)
}

func (r *MedicalRecordsRepo) GetByID(ctx context.Context, id string) (medicalrecords.MedicalRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medicalrecords.MedicalRecord{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+medicalRecordColumns+` FROM medical_records WHERE id = $1`, id)
	m, err := scanMedicalRecord(row)
	if err != nil {
		return medicalrecords.MedicalRecord{}, mapErr(err)
	}
	return m, nil
}

func (r *MedicalRecordsRepo) List(ctx context.Context) ([]medicalrecords.MedicalRecord, error) {
	return r.ListByPet(ctx, "", medicalrecords.ListFilter{})
}

// ListByPet arma el WHERE según el filtro. petID vacío => todas las mascotas.
func (r *MedicalRecordsRepo) ListByPet(ctx context.Context, petID string, filter medicalrecords.ListFilter) ([]medicalrecords.MedicalRecord, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + medicalRecordColumns + ` FROM medical_records WHERE 1=1`)

	args := []any{}
	argN := 1

	if petID = strings.TrimSpace(petID); petID != "" {
		sb.WriteString(fmt.Sprintf(" AND pet_id = $%d", argN))
		args = append(args, petID)
		argN++
	}
	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND fecha >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND fecha <= $%d", argN))
		args = append(args, *filter.To)
		argN++
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		sb.WriteString(fmt.Sprintf(" AND (diagnostico ILIKE $%d OR tratamiento ILIKE $%d OR notas ILIKE $%d)", argN, argN, argN))
		args = append(args, "%"+q+"%")
		argN++
	}

	sb.WriteString(" ORDER BY fecha DESC, hora DESC")
	if filter.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medicalrecords.MedicalRecord, 0)
	for rows.Next() {
		m, err := scanMedicalRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MedicalRecordsRepo) Update(ctx context.Context, m medicalrecords.MedicalRecord) error {
	return checkAffected(r.db.ExecContext(ctx, `
		UPDATE medical_records
		SET
			pet_id = $2,
			fecha = $3,
			hora = $4,
			diagnostico = $5,
			tratamiento = $6,
			veterinario = $7,
			notas = $8,
			updated_at = $9
		WHERE id = $1
	`,
		m.ID,
		m.PetID,
		m.Fecha,
		m.Hora,
		m.Diagnostico,
		m.Tratamiento,
		m.Veterinario,
		nullString(m.Notas),
		m.UpdatedAt,
	))
}

func (r *MedicalRecordsRepo) Delete(ctx context.Context, id string) error {
	return checkAffected(r.db.ExecContext(ctx, `DELETE FROM medical_records WHERE id = $1`, id))
}

func scanMedicalRecord(s scanner) (medicalrecords.MedicalRecord, error) {
	var m medicalrecords.MedicalRecord
	var notas sql.NullString
	if err := s.Scan(
		&m.ID,
		&m.PetID,
		&m.Fecha,
		&m.Hora,
		&m.Diagnostico,
		&m.Tratamiento,
		&m.Veterinario,
		&notas,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return medicalrecords.MedicalRecord{}, err
	}
	m.Notas = notas.String
	m.Fecha = m.Fecha.UTC()
	return m, nil
}
