package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStationsFor(t *testing.T) {
	assert.Equal(t, []string{"F", "G", "H"}, StationsFor(DrillingProcess))
	assert.Equal(t, RegularStations, StationsFor("Painting"))

	assert.True(t, IsStation(DrillingProcess, "G"))
	assert.False(t, IsStation(DrillingProcess, "1"))
	assert.False(t, IsStation("Buffing", "F"))
}

func TestIsAnyStation(t *testing.T) {
	assert.True(t, IsAnyStation("7"))
	assert.True(t, IsAnyStation("H"))
	assert.False(t, IsAnyStation("8"))
	assert.False(t, IsAnyStation(""))
}

func TestShiftOrderCoversTimes(t *testing.T) {
	assert.ElementsMatch(t, Times, ShiftOrder)
}

func TestReferenceSizes(t *testing.T) {
	assert.Len(t, Processes, 9)
	assert.Len(t, Models, 10)
	assert.Len(t, Times, 6)
	assert.Contains(t, InstructionTypes, CustomMessage)
}
