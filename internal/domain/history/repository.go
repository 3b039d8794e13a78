package history

import "context"

// Repository es el record store de historias.
// FindByID y DeleteByID devuelven ErrNotFound si el id no existe.
type Repository interface {
	FindByID(ctx context.Context, id string) (Record, error)
	FindByPatientID(ctx context.Context, patientID int) ([]Record, error)
	FindAll(ctx context.Context) ([]Record, error)

	// Save hace upsert: si r.ID está vacío el store genera el id; si no, reemplaza el documento completo.
	Save(ctx context.Context, r Record) (Record, error)
	DeleteByID(ctx context.Context, id string) error
}
