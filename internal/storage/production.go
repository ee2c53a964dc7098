package storage

import "time"

type ProductionEntry struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	OperatorID string    `json:"operatorId"`
	Process    string    `json:"process"`
	Station    string    `json:"station"`
	Time       string    `json:"time"`
	CreatedAt  time.Time `json:"createdAt"`
}

type NewProductionEntry struct {
	UserID     int64  `json:"userId"`
	OperatorID string `json:"operatorId"`
	Process    string `json:"process"`
	Station    string `json:"station"`
	Time       string `json:"time"`
}

type ProductionDetail struct {
	ID       int64   `json:"id"`
	EntryID  int64   `json:"entryId"`
	Model    string  `json:"model"`
	Quantity float64 `json:"quantity"`
}

type NewProductionDetail struct {
	EntryID  int64   `json:"entryId"`
	Model    string  `json:"model"`
	Quantity float64 `json:"quantity"`
}

// ProductionEntryWithDetails запись смены вместе со всеми позициями (модель/кол-во)
type ProductionEntryWithDetails struct {
	ProductionEntry
	Details []ProductionDetail `json:"details"`
}

// EntryFilter - все заданные условия объединяются через AND.
// Пустые строки и nil означают "без фильтра".
type EntryFilter struct {
	UserID    *int64
	Process   string
	Station   string
	StartDate *time.Time
	EndDate   *time.Time
}

// Match проверяет запись по фильтру, границы дат включительные
func (f EntryFilter) Match(e ProductionEntry) bool {
	if f.UserID != nil && e.UserID != *f.UserID {
		return false
	}
	if f.Process != "" && e.Process != f.Process {
		return false
	}
	if f.Station != "" && e.Station != f.Station {
		return false
	}
	if f.StartDate != nil && e.CreatedAt.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && e.CreatedAt.After(*f.EndDate) {
		return false
	}
	return true
}
