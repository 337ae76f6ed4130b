package inventory

import (
	"context"

	"github.com/jhoicas/TallerMotos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando un
// repositorio de repuestos atado a esa transacción. Toda mutación de stock
// pasa por aquí: el bloqueo de fila (GetForUpdate) dentro de la transacción
// es la barrera de escritor único por repuesto.
type TxRunner interface {
	Run(ctx context.Context, fn func(partRepo repository.PartRepository) error) error
}
