package memory

import (
	"sort"
	"time"

	"github.com/jhoicas/TallerMotos-api/internal/domain"
	"github.com/jhoicas/TallerMotos-api/internal/domain/entity"
	"github.com/jhoicas/TallerMotos-api/internal/domain/repository"
)

// PartRepo implementa repository.PartRepository sobre el store en memoria.
// Con lock=false opera sin tomar el mutex: es la variante que el TxRunner
// entrega dentro de una transacción (el mutex ya está tomado).
type PartRepo struct {
	s    *Store
	lock bool
}

// Parts devuelve el repositorio de repuestos con locking automático.
func (s *Store) Parts() repository.PartRepository {
	return &PartRepo{s: s, lock: true}
}

func (r *PartRepo) acquire() func() {
	if !r.lock {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *PartRepo) Create(part *entity.Part) error {
	defer r.acquire()()
	if _, ok := r.s.parts[part.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.parts[part.ID] = clonePart(part)
	return nil
}

func (r *PartRepo) GetByID(id string) (*entity.Part, error) {
	defer r.acquire()()
	p, ok := r.s.parts[id]
	if !ok {
		return nil, nil
	}
	return clonePart(p), nil
}

func (r *PartRepo) GetBySKU(sku string) (*entity.Part, error) {
	defer r.acquire()()
	for _, p := range r.s.parts {
		if p.SKU == sku {
			return clonePart(p), nil
		}
	}
	return nil, nil
}

// GetForUpdate en memoria equivale a GetByID: el mutex del store ya
// serializa a todos los escritores.
func (r *PartRepo) GetForUpdate(id string) (*entity.Part, error) {
	return r.GetByID(id)
}

func (r *PartRepo) Update(part *entity.Part) error {
	defer r.acquire()()
	if _, ok := r.s.parts[part.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.parts[part.ID] = clonePart(part)
	return nil
}

// UpdateStock fija la cantidad en stock y toca UpdatedAt, igual que el
// backend de PostgreSQL (updated_at = now()).
func (r *PartRepo) UpdateStock(partID string, stockQuantity int) error {
	defer r.acquire()()
	p, ok := r.s.parts[partID]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = stockQuantity
	p.UpdatedAt = time.Now()
	return nil
}

func (r *PartRepo) List(limit, offset int) ([]*entity.Part, error) {
	defer r.acquire()()
	out := make([]*entity.Part, 0, len(r.s.parts))
	for _, p := range r.s.parts {
		out = append(out, clonePart(p))
	}
	sort.Slice(out, func(i, j int) bool { return byCreation(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID) })
	return paginate(out, limit, offset), nil
}

func (r *PartRepo) Delete(id string) error {
	defer r.acquire()()
	if _, ok := r.s.parts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.parts, id)
	return nil
}
