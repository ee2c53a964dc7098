package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"prodlog/internal/storage"
)

// Storage - in-memory журнал. Записи только добавляются, ни обновления ни удаления нет.
// Каждая коллекция хранится как упорядоченный слайс плюс индекс id -> позиция.
type Storage struct {
	mu sync.RWMutex

	users     []storage.User
	userIndex map[int64]int

	entries    []storage.ProductionEntry
	entryIndex map[int64]int
	details    map[int64][]storage.ProductionDetail

	instructions []storage.Instruction

	nextUserID        int64
	nextEntryID       int64
	nextDetailID      int64
	nextInstructionID int64

	now       func() time.Time
	lastStamp time.Time
}

var _ storage.Store = (*Storage)(nil)

type Option func(*Storage)

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(s *Storage) {
		s.now = now
	}
}

func New(opts ...Option) *Storage {
	s := &Storage{
		userIndex:  make(map[int64]int),
		entryIndex: make(map[int64]int),
		details:    make(map[int64][]storage.ProductionDetail),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// stamp возвращает неубывающее время создания. Вызывать под s.mu.
func (s *Storage) stamp() time.Time {
	t := s.now()
	if t.Before(s.lastStamp) {
		t = s.lastStamp
	}
	s.lastStamp = t
	return t
}

func (s *Storage) CreateUser(ctx context.Context, u storage.NewUser) (storage.User, error) {
	const op = "storage.memory.CreateUser"

	if err := ctx.Err(); err != nil {
		return storage.User{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextUserID++
	user := storage.User{
		ID:           s.nextUserID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Role:         u.Role,
		OperatorID:   u.OperatorID,
	}

	s.userIndex[user.ID] = len(s.users)
	s.users = append(s.users, user)

	return user, nil
}

func (s *Storage) GetUser(ctx context.Context, id int64) (storage.User, error) {
	const op = "storage.memory.GetUser"

	if err := ctx.Err(); err != nil {
		return storage.User{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.userIndex[id]
	if !ok {
		return storage.User{}, fmt.Errorf("%s: id=%d: %w", op, id, storage.ErrUserNotFound)
	}

	return s.users[pos], nil
}

// GetUserByUsername возвращает первого пользователя с таким логином (дубли допускаются)
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (storage.User, error) {
	const op = "storage.memory.GetUserByUsername"

	if err := ctx.Err(); err != nil {
		return storage.User{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}

	return storage.User{}, fmt.Errorf("%s: %q: %w", op, username, storage.ErrUserNotFound)
}

func (s *Storage) CreateProductionEntry(ctx context.Context, e storage.NewProductionEntry) (storage.ProductionEntry, error) {
	const op = "storage.memory.CreateProductionEntry"

	if err := ctx.Err(); err != nil {
		return storage.ProductionEntry{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEntryID++
	entry := storage.ProductionEntry{
		ID:         s.nextEntryID,
		UserID:     e.UserID,
		OperatorID: e.OperatorID,
		Process:    e.Process,
		Station:    e.Station,
		Time:       e.Time,
		CreatedAt:  s.stamp(),
	}

	s.entryIndex[entry.ID] = len(s.entries)
	s.entries = append(s.entries, entry)
	s.details[entry.ID] = []storage.ProductionDetail{}

	return entry, nil
}

// AddProductionDetail не проверяет существование записи, это делает вызывающий код
func (s *Storage) AddProductionDetail(ctx context.Context, d storage.NewProductionDetail) (storage.ProductionDetail, error) {
	const op = "storage.memory.AddProductionDetail"

	if err := ctx.Err(); err != nil {
		return storage.ProductionDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextDetailID++
	detail := storage.ProductionDetail{
		ID:       s.nextDetailID,
		EntryID:  d.EntryID,
		Model:    d.Model,
		Quantity: d.Quantity,
	}

	s.details[d.EntryID] = append(s.details[d.EntryID], detail)

	return detail, nil
}

func (s *Storage) GetProductionEntries(ctx context.Context, f storage.EntryFilter) ([]storage.ProductionEntryWithDetails, error) {
	const op = "storage.memory.GetProductionEntries"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]storage.ProductionEntryWithDetails, 0, len(s.entries))
	for _, e := range s.entries {
		if !f.Match(e) {
			continue
		}
		result = append(result, s.withDetails(e))
	}

	return result, nil
}

func (s *Storage) GetProductionEntryByID(ctx context.Context, id int64) (storage.ProductionEntryWithDetails, error) {
	const op = "storage.memory.GetProductionEntryByID"

	if err := ctx.Err(); err != nil {
		return storage.ProductionEntryWithDetails{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.entryIndex[id]
	if !ok {
		return storage.ProductionEntryWithDetails{}, fmt.Errorf("%s: id=%d: %w", op, id, storage.ErrEntryNotFound)
	}

	return s.withDetails(s.entries[pos]), nil
}

// withDetails копирует позиции, чтобы вызывающий код не держал ссылку на внутренний слайс
func (s *Storage) withDetails(e storage.ProductionEntry) storage.ProductionEntryWithDetails {
	src := s.details[e.ID]
	details := make([]storage.ProductionDetail, len(src))
	copy(details, src)

	return storage.ProductionEntryWithDetails{
		ProductionEntry: e,
		Details:         details,
	}
}

func (s *Storage) CreateInstruction(ctx context.Context, in storage.NewInstruction) (storage.Instruction, error) {
	const op = "storage.memory.CreateInstruction"

	if err := ctx.Err(); err != nil {
		return storage.Instruction{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextInstructionID++
	instruction := storage.Instruction{
		ID:            s.nextInstructionID,
		UserID:        in.UserID,
		Type:          in.Type,
		TargetProcess: in.TargetProcess,
		TargetStation: in.TargetStation,
		Details:       in.Details,
		CreatedAt:     s.stamp(),
	}

	s.instructions = append(s.instructions, instruction)

	return instruction, nil
}

func (s *Storage) GetInstructions(ctx context.Context, f storage.InstructionFilter) ([]storage.Instruction, error) {
	const op = "storage.memory.GetInstructions"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	result := make([]storage.Instruction, 0, len(s.instructions))
	for _, in := range s.instructions {
		if f.Match(in) {
			result = append(result, in)
		}
	}
	s.mu.RUnlock()

	storage.SortInstructionsNewestFirst(result)

	return result, nil
}
