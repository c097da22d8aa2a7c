package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.SerializedUnitRepository = (*SerializedUnitRepo)(nil)

const serialColumns = `
	serial_number, item_id, purchase_id, unit_cost, status, created_at, sold_at`

// SerializedUnitRepo implementación de SerializedUnitRepository sobre
// PostgreSQL (usable con pool o tx).
type SerializedUnitRepo struct {
	q Querier
}

// NewSerializedUnitRepository construye el adaptador de unidades serializadas.
func NewSerializedUnitRepository(q Querier) *SerializedUnitRepo {
	return &SerializedUnitRepo{q: q}
}

// Create inserta la unidad. El PK de serial_number se traduce a ErrDuplicateSerial.
func (r *SerializedUnitRepo) Create(ctx context.Context, u *entity.SerializedUnit) error {
	query := `
		INSERT INTO serialized_units (` + serialColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.q.Exec(ctx, query,
		u.SerialNumber, u.ItemID, u.PurchaseID, u.UnitCost, u.Status, u.CreatedAt, u.SoldAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSerial
		}
		return fmt.Errorf("create serialized unit: %w", err)
	}
	return nil
}

// Get obtiene la unidad por serial, vendida o no. Nil si no existe.
func (r *SerializedUnitRepo) Get(ctx context.Context, serialNumber string) (*entity.SerializedUnit, error) {
	query := `SELECT` + serialColumns + ` FROM serialized_units WHERE serial_number = $1`
	return r.scanOne(ctx, query, serialNumber)
}

// GetForUpdate obtiene la unidad y bloquea la fila (SELECT FOR UPDATE).
func (r *SerializedUnitRepo) GetForUpdate(ctx context.Context, serialNumber string) (*entity.SerializedUnit, error) {
	query := `SELECT` + serialColumns + ` FROM serialized_units WHERE serial_number = $1 FOR UPDATE`
	return r.scanOne(ctx, query, serialNumber)
}

func (r *SerializedUnitRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.SerializedUnit, error) {
	var u entity.SerializedUnit
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&u.SerialNumber, &u.ItemID, &u.PurchaseID, &u.UnitCost, &u.Status, &u.CreatedAt, &u.SoldAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get serialized unit: %w", err)
	}
	return &u, nil
}

// MarkSold persiste el cambio de estado a sold.
func (r *SerializedUnitRepo) MarkSold(ctx context.Context, u *entity.SerializedUnit) error {
	query := `
		UPDATE serialized_units SET status = $2, sold_at = $3
		WHERE serial_number = $1`
	tag, err := r.q.Exec(ctx, query, u.SerialNumber, u.Status, u.SoldAt)
	if err != nil {
		return fmt.Errorf("mark serialized unit sold: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSerialNotFound
	}
	return nil
}

// GetMany obtiene varias unidades en una sola consulta. Los seriales que no
// existen simplemente no aparecen en el mapa: el resolver de costos decide
// qué hacer con los faltantes.
func (r *SerializedUnitRepo) GetMany(ctx context.Context, serialNumbers []string) (map[string]*entity.SerializedUnit, error) {
	if len(serialNumbers) == 0 {
		return map[string]*entity.SerializedUnit{}, nil
	}
	query := `SELECT` + serialColumns + ` FROM serialized_units WHERE serial_number = ANY($1)`
	rows, err := r.q.Query(ctx, query, serialNumbers)
	if err != nil {
		return nil, fmt.Errorf("get serialized units: %w", err)
	}
	defer rows.Close()

	units := make(map[string]*entity.SerializedUnit, len(serialNumbers))
	for rows.Next() {
		var u entity.SerializedUnit
		if err := rows.Scan(
			&u.SerialNumber, &u.ItemID, &u.PurchaseID, &u.UnitCost, &u.Status, &u.CreatedAt, &u.SoldAt,
		); err != nil {
			return nil, fmt.Errorf("get serialized units scan: %w", err)
		}
		units[u.SerialNumber] = &u
	}
	return units, rows.Err()
}
