package metrics

import (
	"context"

	"prodlog/internal/storage"
)

type instrumentedStore struct {
	storage.Store
	m *Metrics
}

// InstrumentStore оборачивает хранилище и считает успешные создания записей, позиций и инструкций
func InstrumentStore(s storage.Store, m *Metrics) storage.Store {
	return &instrumentedStore{Store: s, m: m}
}

func (s *instrumentedStore) CreateProductionEntry(ctx context.Context, e storage.NewProductionEntry) (storage.ProductionEntry, error) {
	entry, err := s.Store.CreateProductionEntry(ctx, e)
	if err == nil {
		s.m.EntryCreated(entry.Process)
	}
	return entry, err
}

func (s *instrumentedStore) AddProductionDetail(ctx context.Context, d storage.NewProductionDetail) (storage.ProductionDetail, error) {
	detail, err := s.Store.AddProductionDetail(ctx, d)
	if err == nil {
		s.m.DetailAdded(detail.Model, detail.Quantity)
	}
	return detail, err
}

func (s *instrumentedStore) CreateInstruction(ctx context.Context, in storage.NewInstruction) (storage.Instruction, error) {
	instruction, err := s.Store.CreateInstruction(ctx, in)
	if err == nil {
		s.m.InstructionCreated(instruction.Type)
	}
	return instruction, err
}
