package get

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"prodlog/internal/lib/logger"
	"prodlog/internal/storage"
)

type MockInstructionProvider struct {
	mock.Mock
}

func (m *MockInstructionProvider) GetInstructions(ctx context.Context, f storage.InstructionFilter) ([]storage.Instruction, error) {
	args := m.Called(ctx, f)
	list, _ := args.Get(0).([]storage.Instruction)
	return list, args.Error(1)
}

func get(p InstructionProvider, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	GetInstructions(logger.Discard(), p).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestGetInstructions_Filter(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	p := new(MockInstructionProvider)
	p.On("GetInstructions", mock.Anything, storage.InstructionFilter{TargetProcess: "Mul.Drilling", TargetStation: "F"}).
		Return([]storage.Instruction{{ID: 2, CreatedAt: now}, {ID: 1, CreatedAt: now.Add(-time.Hour)}}, nil)

	rr := get(p, "/api/instructions?targetProcess=Mul.Drilling&targetStation=F")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":2`)
	p.AssertExpectations(t)
}

func TestGetInstructions_EmptyIsArray(t *testing.T) {
	p := new(MockInstructionProvider)
	p.On("GetInstructions", mock.Anything, storage.InstructionFilter{}).Return(nil, nil)

	rr := get(p, "/api/instructions")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestGetInstructions_Error(t *testing.T) {
	p := new(MockInstructionProvider)
	p.On("GetInstructions", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	rr := get(p, "/api/instructions")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
