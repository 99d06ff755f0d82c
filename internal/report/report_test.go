package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finwatch/upi-audit/internal/logging"
	"finwatch/upi-audit/internal/models"
)

func sampleResult() models.AnalysisResult {
	return models.AnalysisResult{
		RunID:       "run-1",
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Rows: []models.StructuredRow{
			{
				TransactionID:  "t1",
				Rail:           "UPI",
				Handle:         "ALICE@OKHDFC",
				HandleUser:     "ALICE",
				RawKey:         "upi:alice",
				Confidence:     "RELIABLE",
				OtherParty:     "SHOP A",
				RawDescription: "UPI/REF1/ALICE@OKHDFC",
			},
		},
		Groups: []models.CounterpartyGroup{
			{
				RawKey:         "upi:alice",
				Rail:           "UPI",
				Confidence:     "RELIABLE",
				Labels:         []string{"SHOP A", "SHOP B"},
				DistinctCount:  2,
				TransactionIDs: []string{"t1", "t2"},
				Flagged:        true,
			},
		},
	}
}

func TestWriteStructuredCSV(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger())
	path := filepath.Join(t.TempDir(), "out", "structured.csv")

	result := sampleResult()
	require.NoError(t, g.WriteStructuredCSV(result.Rows, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "Transaction_ID")
	assert.Contains(t, content, "upi:alice")
	assert.Contains(t, content, "UPI/REF1/ALICE@OKHDFC")
}

func TestWriteGroupsCSV(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger())
	path := filepath.Join(t.TempDir(), "flagged.csv")

	result := sampleResult()
	require.NoError(t, g.WriteGroupsCSV(result.Groups, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Other_Parties")
	assert.Contains(t, lines[1], "SHOP A;SHOP B")
	assert.Contains(t, lines[1], "t1;t2")
}

func TestWriteGroupsCSVEmpty(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger())
	path := filepath.Join(t.TempDir(), "flagged.csv")

	require.NoError(t, g.WriteGroupsCSV(nil, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Header only.
	assert.Contains(t, string(data), "Raw_Key")
}

func TestWriteJSONRoundTrip(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger())
	path := filepath.Join(t.TempDir(), "nested", "result.json")

	result := sampleResult()
	require.NoError(t, g.WriteJSON(result, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded models.AnalysisResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, result.RunID, decoded.RunID)
	require.Len(t, decoded.Groups, 1)
	assert.Equal(t, []string{"SHOP A", "SHOP B"}, decoded.Groups[0].Labels)
	assert.True(t, decoded.Groups[0].Flagged)
}

func TestWriteJSONBadPath(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger())
	// Parent is a file, so directory creation fails.
	parent := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0o600))

	err := g.WriteJSON(sampleResult(), filepath.Join(parent, "result.json"))
	assert.Error(t, err)
}
