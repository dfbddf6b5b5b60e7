package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDictionary(t *testing.T, content string) *Dictionary {
	t.Helper()

	path := filepath.Join(t.TempDir(), "companies.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	d, err := New(path)
	require.NoError(t, err)

	return d
}

func TestCompanyName(t *testing.T) {
	d := newTestDictionary(t, `{"AAPL": "Apple Inc.", "msft": "Microsoft"}`)

	assert.Equal(t, "Apple Inc.", d.CompanyName("AAPL"))
	assert.Equal(t, "Apple Inc.", d.CompanyName("aapl"))
	// Keys are normalized to upper case on load.
	assert.Equal(t, "Microsoft", d.CompanyName("MSFT"))
	assert.Equal(t, UnknownCompany, d.CompanyName("NOPE"))
}

func TestTickers(t *testing.T) {
	d := newTestDictionary(t, `{"AAPL": "Apple Inc.", "MSFT": "Microsoft"}`)

	assert.ElementsMatch(t, []string{"AAPL", "MSFT"}, d.Tickers())
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestNew_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companies.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o644))

	_, err := New(path)
	assert.Error(t, err)
}
