package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// Las violaciones de invariantes (ErrInsufficientStock, ErrOverReserve) se
// detectan antes del commit y abortan la unidad atómica completa: nunca queda
// un efecto parcial visible. ErrStoreBusy es transitorio y reintentable.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrOverReserve       = errors.New("la reserva excede el stock disponible")
	ErrUnknownPart       = errors.New("componente no registrado")
	ErrUnknownProject    = errors.New("proyecto no registrado")
	ErrInvalidLocation   = errors.New("ubicación no registrada")
	ErrInvalidState      = errors.New("la reserva ya está en estado terminal")
	ErrStoreBusy         = errors.New("almacén de datos ocupado, reintente")
)
