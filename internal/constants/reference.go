package constants

import "slices"

const (
	DrillingProcess = "Mul.Drilling"

	CustomMessage = "Custom message"
)

var (
	Processes = []string{
		"Welding Jig",
		"Welding Bracket",
		DrillingProcess,
		"Buffing",
		"Chromatic In",
		"Chromatic Out",
		"Painting",
		"Balancing",
		"QAQC",
	}

	Models = []string{
		"NTSU",
		"NTRB",
		"NTSN",
		"NTSM",
		"NTSW",
		"NTSX",
		"NTSY",
		"NTST",
		"NTSZ",
		"NTSJ",
	}

	// Times - метки смен в том виде, как их отдает справочник
	Times = []string{
		"9.45am",
		"11.30am",
		"2.45pm",
		"5pm",
		"8pm",
		"8am",
	}

	// ShiftOrder - хронологический порядок смен для графиков и сводок
	ShiftOrder = []string{"8am", "9.45am", "11.30am", "2.45pm", "5pm", "8pm"}

	RegularStations  = []string{"1", "2", "3", "4", "5", "6", "7"}
	DrillingStations = []string{"F", "G", "H"}

	InstructionTypes = []string{
		"Increase output",
		"Quality check",
		"Slow down production",
		"Maintenance required",
		CustomMessage,
	}
)

// StationsByProcess в формате справочника фронта: сверловка отдельно, остальные "default"
func StationsByProcess() map[string][]string {
	return map[string][]string{
		DrillingProcess: DrillingStations,
		"default":       RegularStations,
	}
}

// StationsFor возвращает допустимые станции для процесса
func StationsFor(process string) []string {
	if process == DrillingProcess {
		return DrillingStations
	}
	return RegularStations
}

func IsProcess(v string) bool { return slices.Contains(Processes, v) }

func IsModel(v string) bool { return slices.Contains(Models, v) }

func IsTime(v string) bool { return slices.Contains(Times, v) }

func IsInstructionType(v string) bool { return slices.Contains(InstructionTypes, v) }

func IsStation(process, station string) bool {
	return slices.Contains(StationsFor(process), station)
}

// IsAnyStation - станция существует хотя бы у одного процесса
func IsAnyStation(station string) bool {
	return slices.Contains(RegularStations, station) || slices.Contains(DrillingStations, station)
}
