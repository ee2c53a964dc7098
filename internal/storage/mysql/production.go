package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"prodlog/internal/storage"
)

func (s *Storage) CreateProductionEntry(ctx context.Context, e storage.NewProductionEntry) (storage.ProductionEntry, error) {
	const op = "storage.mysql.CreateProductionEntry"

	createdAt := s.stamp()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO production_entries (user_id, operator_id, process, station, shift_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.UserID, e.OperatorID, e.Process, e.Station, e.Time, createdAt,
	)
	if err != nil {
		return storage.ProductionEntry{}, fmt.Errorf("%s: ошибка сохранения записи выпуска: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return storage.ProductionEntry{}, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	return storage.ProductionEntry{
		ID:         id,
		UserID:     e.UserID,
		OperatorID: e.OperatorID,
		Process:    e.Process,
		Station:    e.Station,
		Time:       e.Time,
		CreatedAt:  createdAt,
	}, nil
}

func (s *Storage) AddProductionDetail(ctx context.Context, d storage.NewProductionDetail) (storage.ProductionDetail, error) {
	const op = "storage.mysql.AddProductionDetail"

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO production_details (entry_id, model, quantity) VALUES (?, ?, ?)`,
		d.EntryID, d.Model, d.Quantity,
	)
	if err != nil {
		return storage.ProductionDetail{}, fmt.Errorf("%s: ошибка добавления позиции к записи id=%d: %w", op, d.EntryID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return storage.ProductionDetail{}, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	return storage.ProductionDetail{ID: id, EntryID: d.EntryID, Model: d.Model, Quantity: d.Quantity}, nil
}

// buildEntryFilters формирует условия WHERE, границы дат включительные.
// Строки сравниваются побайтно, как в memory: регистр и хвостовые пробелы значимы.
func buildEntryFilters(f storage.EntryFilter) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}

	if f.UserID != nil {
		conditions = append(conditions, "user_id = ?")
		args = append(args, *f.UserID)
	}
	if f.Process != "" {
		conditions = append(conditions, "process = CAST(? AS BINARY)")
		args = append(args, f.Process)
	}
	if f.Station != "" {
		conditions = append(conditions, "station = CAST(? AS BINARY)")
		args = append(args, f.Station)
	}
	if f.StartDate != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, f.StartDate.UTC())
	}
	if f.EndDate != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, f.EndDate.UTC())
	}

	return conditions, args
}

const entryColumns = `id, user_id, operator_id, process, station, shift_time, created_at`

func (s *Storage) GetProductionEntries(ctx context.Context, f storage.EntryFilter) ([]storage.ProductionEntryWithDetails, error) {
	const op = "storage.mysql.GetProductionEntries"

	conditions, args := buildEntryFilters(f)
	query := `SELECT ` + entryColumns + ` FROM production_entries` + whereClause(conditions) + ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения записей выпуска: %w", op, err)
	}
	defer rows.Close()

	result := []storage.ProductionEntryWithDetails{}
	index := make(map[int64]int)
	var ids []int64

	for rows.Next() {
		var e storage.ProductionEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.OperatorID, &e.Process, &e.Station, &e.Time, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования записи: %w", op, err)
		}

		index[e.ID] = len(result)
		ids = append(ids, e.ID)
		result = append(result, storage.ProductionEntryWithDetails{ProductionEntry: e, Details: []storage.ProductionDetail{}})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(ids) == 0 {
		return result, nil
	}

	details, err := s.fetchDetails(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, d := range details {
		if pos, ok := index[d.EntryID]; ok {
			result[pos].Details = append(result[pos].Details, d)
		}
	}

	return result, nil
}

func (s *Storage) GetProductionEntryByID(ctx context.Context, id int64) (storage.ProductionEntryWithDetails, error) {
	const op = "storage.mysql.GetProductionEntryByID"

	var e storage.ProductionEntry
	err := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM production_entries WHERE id = ?`, id).
		Scan(&e.ID, &e.UserID, &e.OperatorID, &e.Process, &e.Station, &e.Time, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ProductionEntryWithDetails{}, fmt.Errorf("%s: id=%d: %w", op, id, storage.ErrEntryNotFound)
	}
	if err != nil {
		return storage.ProductionEntryWithDetails{}, fmt.Errorf("%s: %w", op, err)
	}

	details, err := s.fetchDetails(ctx, []int64{id})
	if err != nil {
		return storage.ProductionEntryWithDetails{}, fmt.Errorf("%s: %w", op, err)
	}

	return storage.ProductionEntryWithDetails{ProductionEntry: e, Details: details}, nil
}

// fetchDetails - позиции для набора записей в порядке добавления
func (s *Storage) fetchDetails(ctx context.Context, entryIDs []int64) ([]storage.ProductionDetail, error) {
	query := `SELECT id, entry_id, model, quantity FROM production_details
		WHERE entry_id IN (` + placeholders(len(entryIDs)) + `) ORDER BY id`

	args := make([]interface{}, len(entryIDs))
	for i, id := range entryIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения позиций: %w", err)
	}
	defer rows.Close()

	details := []storage.ProductionDetail{}
	for rows.Next() {
		var d storage.ProductionDetail
		if err := rows.Scan(&d.ID, &d.EntryID, &d.Model, &d.Quantity); err != nil {
			return nil, fmt.Errorf("ошибка сканирования позиции: %w", err)
		}
		details = append(details, d)
	}

	return details, rows.Err()
}
