package storage

import (
	"context"
	"errors"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEntryNotFound = errors.New("production entry not found")
)

// Store - общий контракт для memory и mysql хранилищ.
// Хранилище не валидирует входные данные, это делает http слой.
type Store interface {
	CreateUser(ctx context.Context, u NewUser) (User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)

	CreateProductionEntry(ctx context.Context, e NewProductionEntry) (ProductionEntry, error)
	AddProductionDetail(ctx context.Context, d NewProductionDetail) (ProductionDetail, error)
	GetProductionEntries(ctx context.Context, f EntryFilter) ([]ProductionEntryWithDetails, error)
	GetProductionEntryByID(ctx context.Context, id int64) (ProductionEntryWithDetails, error)

	CreateInstruction(ctx context.Context, in NewInstruction) (Instruction, error)
	GetInstructions(ctx context.Context, f InstructionFilter) ([]Instruction, error)
}
