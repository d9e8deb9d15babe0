// Package seed carga datos de ejemplo (propietarios con sus mascotas e
// historias, categorías y productos) desde un documento YAML, pasando por los
// servicios para que apliquen las mismas validaciones que el API.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"vet-clinic-api/internal/apperror"
	"vet-clinic-api/internal/domain/categories"
	"vet-clinic-api/internal/domain/medicalrecords"
	"vet-clinic-api/internal/domain/owners"
	"vet-clinic-api/internal/domain/pets"
	"vet-clinic-api/internal/domain/products"
	"vet-clinic-api/internal/platform/logger"
)

type Document struct {
	Owners     []Owner    `yaml:"owners"`
	Categories []Category `yaml:"categories"`
	Products   []Product  `yaml:"products"`
}

type Owner struct {
	Nombre    string `yaml:"nombre"`
	Telefono  string `yaml:"telefono"`
	Email     string `yaml:"email"`
	Direccion string `yaml:"direccion"`
	Pets      []Pet  `yaml:"pets"`
}

type Pet struct {
	Nombre          string   `yaml:"nombre"`
	Especie         string   `yaml:"especie"`
	Raza            string   `yaml:"raza"`
	Peso            float64  `yaml:"peso"`
	FechaNacimiento string   `yaml:"fecha_nacimiento"`
	ImagenURL       string   `yaml:"imagen_url"`
	Microchip       string   `yaml:"microchip"`
	Records         []Record `yaml:"records"`
}

type Record struct {
	Fecha       string `yaml:"fecha"`
	Hora        string `yaml:"hora"`
	Diagnostico string `yaml:"diagnostico"`
	Tratamiento string `yaml:"tratamiento"`
	Veterinario string `yaml:"veterinario"`
	Notas       string `yaml:"notas"`
}

type Category struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Product referencia su categoría por nombre.
type Product struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	Stock       int     `yaml:"stock"`
	Category    string  `yaml:"category"`
}

// Decode lee el YAML. Campos desconocidos son error (typos en el archivo).
func Decode(r io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, nil
		}
		return Document{}, fmt.Errorf("decode seed: %w", err)
	}
	return doc, nil
}

type OwnerCreator interface {
	Create(ctx context.Context, in owners.CreateInput) (owners.Owner, error)
}

type PetCreator interface {
	Create(ctx context.Context, in pets.CreateInput) (pets.Pet, error)
}

type RecordCreator interface {
	Create(ctx context.Context, in medicalrecords.CreateInput) (medicalrecords.MedicalRecord, error)
}

type CategoryStore interface {
	Create(ctx context.Context, in categories.CreateInput) (categories.Category, error)
	List(ctx context.Context) ([]categories.Category, error)
}

type ProductCreator interface {
	Create(ctx context.Context, in products.CreateInput) (products.Detail, error)
}

type Targets struct {
	Owners         OwnerCreator
	Pets           PetCreator
	MedicalRecords RecordCreator
	Categories     CategoryStore
	Products       ProductCreator
}

type Summary struct {
	Owners         int `json:"owners"`
	Pets           int `json:"pets"`
	MedicalRecords int `json:"medicalRecords"`
	Categories     int `json:"categories"`
	Products       int `json:"products"`
	Skipped        int `json:"skipped"`
}

// Apply crea todo lo del documento. Duplicados (propietario con email ya
// usado, categoría con nombre ya usado) se saltean; el propietario salteado
// arrastra sus mascotas. Cualquier otro error corta la carga.
func Apply(ctx context.Context, doc Document, t Targets, log logger.Logger) (Summary, error) {
	if log == nil {
		log = logger.Nop()
	}
	var sum Summary

	for _, o := range doc.Owners {
		owner, err := t.Owners.Create(ctx, owners.CreateInput{
			Nombre:    o.Nombre,
			Telefono:  o.Telefono,
			Email:     o.Email,
			Direccion: o.Direccion,
		})
		if errors.Is(err, apperror.ErrDuplicate) {
			log.Warn("seed: owner skipped", map[string]any{"email": o.Email})
			sum.Skipped++
			continue
		}
		if err != nil {
			return sum, fmt.Errorf("owner %s: %w", o.Email, err)
		}
		sum.Owners++

		for _, p := range o.Pets {
			pet, err := t.Pets.Create(ctx, pets.CreateInput{
				Nombre:          p.Nombre,
				Especie:         p.Especie,
				Raza:            p.Raza,
				Peso:            p.Peso,
				FechaNacimiento: p.FechaNacimiento,
				OwnerID:         owner.ID,
				ImagenURL:       p.ImagenURL,
				Microchip:       p.Microchip,
			})
			if err != nil {
				return sum, fmt.Errorf("pet %s of %s: %w", p.Nombre, o.Email, err)
			}
			sum.Pets++

			for _, rec := range p.Records {
				_, err := t.MedicalRecords.Create(ctx, medicalrecords.CreateInput{
					PetID:       pet.ID,
					Fecha:       rec.Fecha,
					Hora:        rec.Hora,
					Diagnostico: rec.Diagnostico,
					Tratamiento: rec.Tratamiento,
					Veterinario: rec.Veterinario,
					Notas:       rec.Notas,
				})
				if err != nil {
					return sum, fmt.Errorf("record %s for %s: %w", rec.Fecha, p.Nombre, err)
				}
				sum.MedicalRecords++
			}
		}
	}

	categoryIDs, err := existingCategories(ctx, t.Categories)
	if err != nil {
		return sum, err
	}
	for _, c := range doc.Categories {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if _, ok := categoryIDs[key]; ok {
			sum.Skipped++
			continue
		}
		created, err := t.Categories.Create(ctx, categories.CreateInput{Name: c.Name, Description: c.Description})
		if err != nil {
			return sum, fmt.Errorf("category %s: %w", c.Name, err)
		}
		categoryIDs[key] = created.ID
		sum.Categories++
	}

	for _, p := range doc.Products {
		catID := ""
		if name := strings.ToLower(strings.TrimSpace(p.Category)); name != "" {
			id, ok := categoryIDs[name]
			if !ok {
				return sum, fmt.Errorf("product %s: unknown category %q", p.Name, p.Category)
			}
			catID = id
		}
		_, err := t.Products.Create(ctx, products.CreateInput{
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Stock:       p.Stock,
			CategoryID:  catID,
		})
		if err != nil {
			return sum, fmt.Errorf("product %s: %w", p.Name, err)
		}
		sum.Products++
	}

	log.Info("seed applied", map[string]any{
		"owners":          sum.Owners,
		"pets":            sum.Pets,
		"medical_records": sum.MedicalRecords,
		"categories":      sum.Categories,
		"products":        sum.Products,
		"skipped":         sum.Skipped,
	})
	return sum, nil
}

func existingCategories(ctx context.Context, store CategoryStore) (map[string]string, error) {
	list, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(list))
	for _, c := range list {
		out[strings.ToLower(strings.TrimSpace(c.Name))] = c.ID
	}
	return out, nil
}
