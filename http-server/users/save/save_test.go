package save

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"prodlog/internal/lib/api"
	"prodlog/internal/lib/logger"
	"prodlog/internal/service/auth"
	"prodlog/internal/storage"
)

type MockUserRegistrar struct {
	mock.Mock
}

func (m *MockUserRegistrar) Register(ctx context.Context, acc auth.Account) (storage.User, error) {
	args := m.Called(ctx, acc)
	return args.Get(0).(storage.User), args.Error(1)
}

func post(reg UserRegistrar, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	SaveUser(logger.Discard(), reg).ServeHTTP(rr, req)
	return rr
}

func TestSaveUser_Operator(t *testing.T) {
	reg := new(MockUserRegistrar)
	reg.On("Register", mock.Anything, mock.MatchedBy(func(acc auth.Account) bool {
		return acc.Username == "op2" && acc.Password == "pw" && acc.OperatorID != nil && *acc.OperatorID == "30001"
	})).Return(storage.User{ID: 3, Username: "op2", Name: "Second Operator", Role: storage.RoleOperator}, nil)

	rr := post(reg, `{"username":"op2","password":"pw","name":"Second Operator","role":"operator","operatorId":"30001"}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":3`)
	reg.AssertExpectations(t)
}

func TestSaveUser_ManagementDropsOperatorID(t *testing.T) {
	reg := new(MockUserRegistrar)
	reg.On("Register", mock.Anything, mock.MatchedBy(func(acc auth.Account) bool {
		return acc.Role == storage.RoleManagement && acc.OperatorID == nil
	})).Return(storage.User{ID: 4, Username: "boss", Role: storage.RoleManagement}, nil)

	rr := post(reg, `{"username":"boss","password":"pw","name":"Boss","role":"management","operatorId":"1"}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
	reg.AssertExpectations(t)
}

func TestSaveUser_Validation(t *testing.T) {
	reg := new(MockUserRegistrar)

	rr := post(reg, `{"username":"op","password":"","name":"X","role":"operator"}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "password")
	assert.Contains(t, resp.Errors, "operatorId")
	reg.AssertNotCalled(t, "Register")
}

func TestSaveUser_UnknownRole(t *testing.T) {
	reg := new(MockUserRegistrar)

	rr := post(reg, `{"username":"x","password":"pw","name":"X","role":"admin"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "role")
}

func TestSaveUser_RegisterError(t *testing.T) {
	reg := new(MockUserRegistrar)
	reg.On("Register", mock.Anything, mock.Anything).Return(storage.User{}, errors.New("hash failed"))

	rr := post(reg, `{"username":"boss","password":"pw","name":"Boss","role":"management"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestSaveUser_PasswordTooLong(t *testing.T) {
	cases := []struct {
		name     string
		password string
	}{
		{"80 ascii bytes", strings.Repeat("p", 80)},
		{"40 cyrillic runes are 80 bytes", strings.Repeat("ж", 40)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := new(MockUserRegistrar)

			body, err := json.Marshal(map[string]string{"username": "op", "password": tc.password, "name": "X", "role": "management"})
			require.NoError(t, err)

			rr := post(reg, string(body))

			require.Equal(t, http.StatusBadRequest, rr.Code)

			var resp api.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "must be at most 72 bytes", resp.Errors["password"])
			reg.AssertNotCalled(t, "Register")
		})
	}
}

func TestSaveUser_PasswordAtLimit(t *testing.T) {
	reg := new(MockUserRegistrar)
	reg.On("Register", mock.Anything, mock.Anything).Return(storage.User{ID: 5, Role: storage.RoleManagement}, nil)

	body, err := json.Marshal(map[string]string{"username": "op", "password": strings.Repeat("p", 72), "name": "X", "role": "management"})
	require.NoError(t, err)

	rr := post(reg, string(body))

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestSaveUser_HashRejectsPassword(t *testing.T) {
	reg := new(MockUserRegistrar)
	reg.On("Register", mock.Anything, mock.Anything).
		Return(storage.User{}, fmt.Errorf("service.auth.Register: hash password: %w", bcrypt.ErrPasswordTooLong))

	rr := post(reg, `{"username":"boss","password":"pw","name":"Boss","role":"management"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "password")
}
