package memory

import "vet-clinic-api/internal/apperror"

// Los repos devuelven los sentinels de apperror sin envolver; el servicio pone el mensaje.
var (
	ErrNotFound  = apperror.ErrNotFound
	ErrDuplicate = apperror.ErrDuplicate
)
