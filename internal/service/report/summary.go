package report

import (
	"context"
	"fmt"
	"sort"

	"prodlog/internal/constants"
	"prodlog/internal/storage"
)

type Store interface {
	GetProductionEntries(ctx context.Context, f storage.EntryFilter) ([]storage.ProductionEntryWithDetails, error)
	GetInstructions(ctx context.Context, f storage.InstructionFilter) ([]storage.Instruction, error)
}

type Service struct {
	store Store
}

func New(store Store) *Service {
	return &Service{store: store}
}

// Bucket - сумма выпуска по одному ключу (смена, процесс или модель).
// Count для смен и процессов - число записей, для моделей - число позиций.
type Bucket struct {
	Key      string  `json:"key"`
	Quantity float64 `json:"quantity"`
	Count    int     `json:"count"`
}

type Summary struct {
	Entries       int      `json:"entries"`
	TotalQuantity float64  `json:"totalQuantity"`
	ByTime        []Bucket `json:"byTime"`
	ByProcess     []Bucket `json:"byProcess"`
	ByModel       []Bucket `json:"byModel"`
}

func (s *Service) Summary(ctx context.Context, f storage.EntryFilter) (Summary, error) {
	const op = "service.report.Summary"

	entries, err := s.store.GetProductionEntries(ctx, f)
	if err != nil {
		return Summary{}, fmt.Errorf("%s: %w", op, err)
	}

	return Summarize(entries), nil
}

// Summarize агрегирует записи как график у менеджмента: смены в хронологическом порядке,
// процессы и модели в порядке справочника. Пустые корзины не выводятся.
func Summarize(entries []storage.ProductionEntryWithDetails) Summary {
	byTime := newAccumulator()
	byProcess := newAccumulator()
	byModel := newAccumulator()

	sum := Summary{Entries: len(entries)}

	for _, e := range entries {
		var entryQty float64
		for _, d := range e.Details {
			entryQty += d.Quantity
			byModel.add(d.Model, d.Quantity)
		}

		sum.TotalQuantity += entryQty
		byTime.add(e.Time, entryQty)
		byProcess.add(e.Process, entryQty)
	}

	sum.ByTime = byTime.ordered(constants.ShiftOrder)
	sum.ByProcess = byProcess.ordered(constants.Processes)
	sum.ByModel = byModel.ordered(constants.Models)

	return sum
}

type accumulator struct {
	buckets map[string]*Bucket
}

func newAccumulator() *accumulator {
	return &accumulator{buckets: make(map[string]*Bucket)}
}

func (a *accumulator) add(key string, qty float64) {
	b, ok := a.buckets[key]
	if !ok {
		b = &Bucket{Key: key}
		a.buckets[key] = b
	}
	b.Quantity += qty
	b.Count++
}

// ordered выдает корзины в порядке known, неизвестные ключи в конце по алфавиту
func (a *accumulator) ordered(known []string) []Bucket {
	result := make([]Bucket, 0, len(a.buckets))
	seen := make(map[string]bool, len(known))

	for _, k := range known {
		seen[k] = true
		if b, ok := a.buckets[k]; ok {
			result = append(result, *b)
		}
	}

	var extra []string
	for k := range a.buckets {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		result = append(result, *a.buckets[k])
	}

	return result
}
