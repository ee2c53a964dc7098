package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"prodlog/internal/storage"
)

func (s *Storage) CreateInstruction(ctx context.Context, in storage.NewInstruction) (storage.Instruction, error) {
	const op = "storage.mysql.CreateInstruction"

	createdAt := s.stamp()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO instructions (user_id, type, target_process, target_station, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.UserID, in.Type, in.TargetProcess, in.TargetStation, in.Details, createdAt,
	)
	if err != nil {
		return storage.Instruction{}, fmt.Errorf("%s: ошибка сохранения инструкции: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return storage.Instruction{}, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	return storage.Instruction{
		ID:            id,
		UserID:        in.UserID,
		Type:          in.Type,
		TargetProcess: in.TargetProcess,
		TargetStation: in.TargetStation,
		Details:       in.Details,
		CreatedAt:     createdAt,
	}, nil
}

// buildInstructionFilters - широковещательные цели совпадают с любым конкретным запросом
func buildInstructionFilters(f storage.InstructionFilter) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}

	if f.TargetProcess != "" && f.TargetProcess != storage.AllProcesses {
		conditions = append(conditions, "(target_process = CAST(? AS BINARY) OR target_process = ?)")
		args = append(args, f.TargetProcess, storage.AllProcesses)
	}
	if f.TargetStation != "" && f.TargetStation != storage.AllStations {
		conditions = append(conditions, "(target_station = CAST(? AS BINARY) OR target_station = ?)")
		args = append(args, f.TargetStation, storage.AllStations)
	}

	return conditions, args
}

func (s *Storage) GetInstructions(ctx context.Context, f storage.InstructionFilter) ([]storage.Instruction, error) {
	const op = "storage.mysql.GetInstructions"

	conditions, args := buildInstructionFilters(f)
	query := `SELECT id, user_id, type, target_process, target_station, details, created_at FROM instructions` +
		whereClause(conditions) + ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения инструкций: %w", op, err)
	}
	defer rows.Close()

	result := []storage.Instruction{}
	for rows.Next() {
		var (
			in      storage.Instruction
			details sql.NullString
		)
		if err := rows.Scan(&in.ID, &in.UserID, &in.Type, &in.TargetProcess, &in.TargetStation, &details, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования инструкции: %w", op, err)
		}
		if details.Valid {
			in.Details = &details.String
		}
		result = append(result, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}
