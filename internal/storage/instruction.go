package storage

import (
	"sort"
	"time"
)

const (
	AllProcesses = "All Processes"
	AllStations  = "All Stations"
)

type Instruction struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	Type          string    `json:"type"`
	TargetProcess string    `json:"targetProcess"`
	TargetStation string    `json:"targetStation"`
	Details       *string   `json:"details"`
	CreatedAt     time.Time `json:"createdAt"`
}

type NewInstruction struct {
	UserID        int64   `json:"userId"`
	Type          string  `json:"type"`
	TargetProcess string  `json:"targetProcess"`
	TargetStation string  `json:"targetStation"`
	Details       *string `json:"details"`
}

type InstructionFilter struct {
	TargetProcess string
	TargetStation string
}

// Match - широковещательная семантика: запрос "All Processes" видит всё,
// а инструкция на "All Processes" видна любому конкретному процессу. Для станций так же.
func (f InstructionFilter) Match(in Instruction) bool {
	if !matchTarget(f.TargetProcess, in.TargetProcess, AllProcesses) {
		return false
	}
	return matchTarget(f.TargetStation, in.TargetStation, AllStations)
}

func matchTarget(query, target, broadcast string) bool {
	if query == "" || query == broadcast {
		return true
	}
	return target == query || target == broadcast
}

// SortInstructionsNewestFirst сортирует по createdAt desc, при равенстве по id desc
func SortInstructionsNewestFirst(list []Instruction) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
}
