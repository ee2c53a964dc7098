package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ErrorsGoToFile(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "errors.log")

	log := New(EnvLocal, &out, path)
	log.Info("entry created", "id", 1)
	log.With("op", "test").Error("store failed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "entry created")
	assert.Contains(t, out.String(), "store failed")
	assert.Contains(t, string(data), "store failed")
	assert.Contains(t, string(data), "op=test")
	assert.NotContains(t, string(data), "entry created")
}

func TestNew_DevIsJSON(t *testing.T) {
	var out bytes.Buffer

	log := New(EnvDev, &out, "")
	log.Debug("polling instructions")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "polling instructions", rec["msg"])
}

func TestNew_ProdSkipsDebug(t *testing.T) {
	var out bytes.Buffer

	log := New(EnvProd, &out, "")
	log.Debug("hidden")

	assert.Empty(t, out.String())
}
