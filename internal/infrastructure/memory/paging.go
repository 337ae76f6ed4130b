package memory

import "time"

// byCreation ordena por fecha de creación ascendente con desempate por ID,
// para que los listados sean deterministas sobre mapas.
func byCreation(ta time.Time, ida string, tb time.Time, idb string) bool {
	if ta.Equal(tb) {
		return ida < idb
	}
	return ta.Before(tb)
}

// paginate aplica offset y limit sobre un slice ya ordenado.
// limit <= 0 significa sin tope.
func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
