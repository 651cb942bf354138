package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// UseCase es el motor de reservas: control de admisión sobre el stock que aún
// no se movió físicamente. Toda inserción o edición de una reserva re-evalúa
// la disponibilidad dentro de la misma unidad atómica; el consumo descuenta
// stock por el mismo primitivo del ledger que el resto de operaciones.
type UseCase struct {
	txRunner ledger.TxRunner
	parts    repository.PartRepository
	locs     repository.LocationRepository
	projects repository.ProjectRepository
	allocs   repository.AllocationRepository
}

// NewUseCase construye el motor de reservas.
func NewUseCase(
	txRunner ledger.TxRunner,
	parts repository.PartRepository,
	locs repository.LocationRepository,
	projects repository.ProjectRepository,
	allocs repository.AllocationRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, parts: parts, locs: locs, projects: projects, allocs: allocs}
}

// ReserveInput entrada para crear una reserva. Location vacío reserva contra
// el stock global del componente.
type ReserveInput struct {
	ProjectCode string
	MPN         string
	Location    string
	Qty         int64
	Condition   string
	Note        string
}

// UpdateInput edición de una reserva en estado reserved. Los punteros nulos
// dejan el campo como está.
type UpdateInput struct {
	Qty      *int64
	Location *string
}

// ConsumeResult efecto de un consumo: la reserva terminal más la transacción
// OUT que descontó el stock.
type ConsumeResult struct {
	Allocation *entity.Allocation
	TxnID      string
	NewQty     int64
}

// AllocationDetail reserva con los datos del componente resueltos, para
// listados por proyecto.
type AllocationDetail struct {
	Allocation *entity.Allocation
	MPN        string
	PartName   string
}

// Reserve admite una nueva reserva si la disponibilidad lo permite:
// disponible = stock total - reservas activas, global y además por ubicación
// cuando la reserva fija una. Si no alcanza falla con ErrOverReserve y no
// queda fila creada. La verificación y la inserción ocurren en la misma
// unidad atómica serializable, así dos reservas concurrentes sobre el mismo
// componente no pueden admitirse ambas contra el mismo stock.
func (uc *UseCase) Reserve(ctx context.Context, in ReserveInput) (*entity.Allocation, error) {
	if in.Qty <= 0 {
		return nil, fmt.Errorf("cantidad %d: %w", in.Qty, domain.ErrInvalidInput)
	}
	if in.ProjectCode == "" {
		return nil, fmt.Errorf("una reserva requiere proyecto: %w", domain.ErrInvalidInput)
	}
	part, err := ledger.ResolvePart(uc.parts, in.MPN)
	if err != nil {
		return nil, err
	}
	project, err := ledger.ResolveProject(uc.projects, in.ProjectCode)
	if err != nil {
		return nil, err
	}
	if in.Location != "" {
		if err := ledger.EnsureLocation(uc.locs, in.Location); err != nil {
			return nil, err
		}
	}
	now := time.Now().UTC()
	alloc := &entity.Allocation{
		ID:        uuid.New().String(),
		ProjectID: project.ID,
		PartID:    part.ID,
		Condition: ledger.NormalizeCondition(in.Condition),
		Qty:       in.Qty,
		Status:    entity.AllocationStatusReserved,
		Note:      in.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Location != "" {
		loc := in.Location
		alloc.Location = &loc
	}

	err = uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		if err := checkAdmission(r, part, alloc, ""); err != nil {
			return err
		}
		return r.Allocations.Create(alloc)
	})
	if err != nil {
		return nil, err
	}
	return alloc, nil
}

// Release transiciona reserved -> released. Sin efecto sobre stock ni ledger:
// el material nunca se movió.
func (uc *UseCase) Release(ctx context.Context, allocID string) (*entity.Allocation, error) {
	var out *entity.Allocation
	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		alloc, err := lockReserved(r, allocID)
		if err != nil {
			return err
		}
		alloc.Status = entity.AllocationStatusReleased
		alloc.UpdatedAt = time.Now().UTC()
		if err := r.Allocations.Update(alloc); err != nil {
			return err
		}
		out = alloc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Consume transiciona reserved -> consumed y descuenta el stock reservado en
// una sola unidad atómica: cabecera OUT a cuenta del proyecto de la reserva,
// una línea con delta negativo y el delta aplicado. Si el stock se drenó por
// otra vía desde que se reservó, la unidad completa aborta con
// ErrInsufficientStock y la reserva sigue reserved.
func (uc *UseCase) Consume(ctx context.Context, allocID string) (*ConsumeResult, error) {
	var out *ConsumeResult
	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		alloc, err := lockReserved(r, allocID)
		if err != nil {
			return err
		}
		if alloc.Location == nil || *alloc.Location == "" {
			return fmt.Errorf("la reserva %s no fija ubicación; edítela antes de consumir: %w",
				allocID, domain.ErrInvalidInput)
		}
		part, err := r.Parts.GetByID(alloc.PartID)
		if err != nil {
			return err
		}
		if part == nil {
			return fmt.Errorf("componente %s: %w", alloc.PartID, domain.ErrUnknownPart)
		}
		now := time.Now().UTC()
		header, err := ledger.NewHeader(r, entity.TxnTypeOUT, &alloc.ProjectID,
			"", "consumo de reserva "+alloc.ID, "", now)
		if err != nil {
			return err
		}
		newQty, err := ledger.AppendAndApply(r, header, part, *alloc.Location,
			alloc.Condition, -alloc.Qty, alloc.Note, now)
		if err != nil {
			return err
		}
		alloc.Status = entity.AllocationStatusConsumed
		alloc.UpdatedAt = now
		if err := r.Allocations.Update(alloc); err != nil {
			return err
		}
		out = &ConsumeResult{Allocation: alloc, TxnID: header.ID, NewQty: newQty}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update edita cantidad y/o ubicación de una reserva reserved, re-ejecutando
// el control de admisión con la propia reserva excluida de la suma (una
// edición no cuenta contra sí misma). Si excede la disponibilidad falla con
// ErrOverReserve sin mutar nada.
func (uc *UseCase) Update(ctx context.Context, allocID string, in UpdateInput) (*entity.Allocation, error) {
	if in.Qty == nil && in.Location == nil {
		return nil, fmt.Errorf("nada que actualizar: %w", domain.ErrInvalidInput)
	}
	if in.Qty != nil && *in.Qty <= 0 {
		return nil, fmt.Errorf("cantidad %d: %w", *in.Qty, domain.ErrInvalidInput)
	}
	if in.Location != nil && *in.Location != "" {
		if err := ledger.EnsureLocation(uc.locs, *in.Location); err != nil {
			return nil, err
		}
	}
	var out *entity.Allocation
	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		alloc, err := lockReserved(r, allocID)
		if err != nil {
			return err
		}
		if in.Qty != nil {
			alloc.Qty = *in.Qty
		}
		if in.Location != nil {
			if *in.Location == "" {
				alloc.Location = nil
			} else {
				loc := *in.Location
				alloc.Location = &loc
			}
		}
		part, err := r.Parts.GetByID(alloc.PartID)
		if err != nil {
			return err
		}
		if err := checkAdmission(r, part, alloc, alloc.ID); err != nil {
			return err
		}
		alloc.UpdatedAt = time.Now().UTC()
		if err := r.Allocations.Update(alloc); err != nil {
			return err
		}
		out = alloc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByProject lista las reservas de un proyecto con el componente resuelto.
func (uc *UseCase) ListByProject(ctx context.Context, projectCode string) ([]AllocationDetail, error) {
	project, err := ledger.ResolveProject(uc.projects, projectCode)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("código de proyecto vacío: %w", domain.ErrInvalidInput)
	}
	list, err := uc.allocs.ListByProject(project.ID)
	if err != nil {
		return nil, err
	}
	details := make([]AllocationDetail, 0, len(list))
	for _, a := range list {
		d := AllocationDetail{Allocation: a}
		part, err := uc.parts.GetByID(a.PartID)
		if err != nil {
			return nil, err
		}
		if part != nil {
			d.MPN = part.MPN
			d.PartName = part.Name
		}
		details = append(details, d)
	}
	return details, nil
}

// checkAdmission evalúa la no-sobre-reserva dentro de la transacción:
// global siempre, y además por ubicación cuando la reserva fija una.
// excludeID deja fuera de la suma la reserva que se está editando.
func checkAdmission(r ledger.TxRepos, part *entity.Part, alloc *entity.Allocation, excludeID string) error {
	stockSum, err := r.Stock.SumByPart(alloc.PartID)
	if err != nil {
		return err
	}
	reservedSum, err := r.Allocations.SumReservedByPart(alloc.PartID, excludeID)
	if err != nil {
		return err
	}
	if inventory.Available(stockSum, reservedSum) < alloc.Qty {
		return fmt.Errorf("%s: disponible global %d < %d: %w",
			part.MPN, stockSum-reservedSum, alloc.Qty, domain.ErrOverReserve)
	}
	if alloc.Location != nil && *alloc.Location != "" {
		locStock, err := r.Stock.SumByPartLocation(alloc.PartID, *alloc.Location)
		if err != nil {
			return err
		}
		locReserved, err := r.Allocations.SumReservedByPartLocation(alloc.PartID, *alloc.Location, excludeID)
		if err != nil {
			return err
		}
		if inventory.Available(locStock, locReserved) < alloc.Qty {
			return fmt.Errorf("%s en %s: disponible %d < %d: %w",
				part.MPN, *alloc.Location, locStock-locReserved, alloc.Qty, domain.ErrOverReserve)
		}
	}
	return nil
}

// lockReserved bloquea la reserva y exige estado reserved. Las reservas
// terminales (consumed/released) no admiten más transiciones.
func lockReserved(r ledger.TxRepos, allocID string) (*entity.Allocation, error) {
	alloc, err := r.Allocations.GetByIDForUpdate(allocID)
	if err != nil {
		return nil, err
	}
	if alloc == nil {
		return nil, fmt.Errorf("reserva %s: %w", allocID, domain.ErrNotFound)
	}
	if alloc.Status != entity.AllocationStatusReserved {
		return nil, fmt.Errorf("reserva %s en estado %s: %w", allocID, alloc.Status, domain.ErrInvalidState)
	}
	return alloc, nil
}
