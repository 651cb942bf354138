package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL.
// El ledger es inmutable: este adaptador sólo inserta y consulta.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// CreateHeader inserta la cabecera de una transacción.
func (r *TransactionRepo) CreateHeader(header *entity.TransactionHeader) error {
	query := `
		INSERT INTO inventory_txn (id, txn_type, project_id, ref, note, operator, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		header.ID, header.Type, header.ProjectID, header.Ref, header.Note,
		header.Operator, header.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create txn header: %w", err)
	}
	return nil
}

// AppendLine inserta una línea del ledger bajo su cabecera.
func (r *TransactionRepo) AppendLine(line *entity.TransactionLine) error {
	query := `
		INSERT INTO inventory_txn_line
			(id, txn_id, part_id, mpn_snapshot, location, condition, qty_delta, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.TxnID, line.PartID, line.MPNSnapshot, line.Location,
		line.Condition, line.QtyDelta, line.Note, line.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append txn line: %w", err)
	}
	return nil
}

// Query devuelve cabeceras con sus líneas en orden ascendente de creación.
// Cuando el filtro pide un componente se devuelven las cabeceras que lo tocan
// con todas sus líneas, no sólo las líneas del componente.
func (r *TransactionRepo) Query(filter repository.TxnFilter) ([]*entity.TransactionWithLines, error) {
	query := `SELECT t.id, t.txn_type, t.project_id, t.ref, t.note, t.operator, t.created_at
		FROM inventory_txn t WHERE 1=1`
	var args []any
	pos := 1
	if filter.ProjectID != nil {
		query += fmt.Sprintf(" AND t.project_id = $%d", pos)
		args = append(args, *filter.ProjectID)
		pos++
	}
	if filter.PartID != nil {
		query += fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM inventory_txn_line l WHERE l.txn_id = t.id AND l.part_id = $%d)", pos)
		args = append(args, *filter.PartID)
		pos++
	}
	if filter.Since != nil {
		query += fmt.Sprintf(" AND t.created_at >= $%d", pos)
		args = append(args, *filter.Since)
		pos++
	}
	if filter.Until != nil {
		query += fmt.Sprintf(" AND t.created_at <= $%d", pos)
		args = append(args, *filter.Until)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY t.created_at, t.id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	defer rows.Close()

	var (
		result []*entity.TransactionWithLines
		ids    []string
		byID   = make(map[string]*entity.TransactionWithLines)
	)
	for rows.Next() {
		var h entity.TransactionHeader
		if err := rows.Scan(&h.ID, &h.Type, &h.ProjectID, &h.Ref, &h.Note, &h.Operator, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan txn header: %w", err)
		}
		txn := &entity.TransactionWithLines{Header: h}
		result = append(result, txn)
		ids = append(ids, h.ID)
		byID[h.ID] = txn
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return result, nil
	}

	lineRows, err := r.q.Query(context.Background(), `
		SELECT id, txn_id, part_id, mpn_snapshot, location, condition, qty_delta, note, created_at
		FROM inventory_txn_line
		WHERE txn_id = ANY($1)
		ORDER BY created_at, id`, ids)
	if err != nil {
		return nil, fmt.Errorf("query ledger lines: %w", err)
	}
	defer lineRows.Close()
	for lineRows.Next() {
		var l entity.TransactionLine
		if err := lineRows.Scan(&l.ID, &l.TxnID, &l.PartID, &l.MPNSnapshot, &l.Location,
			&l.Condition, &l.QtyDelta, &l.Note, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan txn line: %w", err)
		}
		if txn, ok := byID[l.TxnID]; ok {
			txn.Lines = append(txn.Lines, l)
		}
	}
	return result, lineRows.Err()
}
