package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Text(t *testing.T) {
	var buf bytes.Buffer
	f := New(&buf, false)

	err := f.Table(
		[]string{"Ticker", "Value"},
		[][]string{{"AAPL", "$1,700.00"}, {"VTI", "$3,000.00"}},
	)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Ticker")
	assert.Contains(t, out, "------")
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "$3,000.00")
}

func TestTable_JSON(t *testing.T) {
	var buf bytes.Buffer
	f := New(&buf, true)

	err := f.Table(
		[]string{"Ticker", "Value"},
		[][]string{{"AAPL", "1700"}},
	)
	require.NoError(t, err)

	var result []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	require.Len(t, result, 1)
	assert.Equal(t, "AAPL", result[0]["Ticker"])
	assert.Equal(t, "1700", result[0]["Value"])
}

func TestTable_JSON_ShortRow(t *testing.T) {
	var buf bytes.Buffer
	f := New(&buf, true)

	require.NoError(t, f.Table([]string{"A", "B"}, [][]string{{"only-a"}}))

	var result []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "", result[0]["B"])
}

func TestPrint_JSON(t *testing.T) {
	var buf bytes.Buffer
	f := New(&buf, true)

	require.NoError(t, f.Print(map[string]string{"status": "ok"}))
	assert.JSONEq(t, `{"status":"ok"}`, buf.String())
}
