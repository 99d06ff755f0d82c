package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finwatch/upi-audit/internal/classifier"
	"finwatch/upi-audit/internal/logging"
)

// chdir replicates testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadKeywordsDefaultsWhenAbsent(t *testing.T) {
	chdir(t, t.TempDir())

	s := NewKeywordStore("keywords.yaml", logging.NewMockLogger())
	cfg, err := s.LoadKeywords()
	require.NoError(t, err)

	defaults := classifier.DefaultConfig()
	assert.Equal(t, defaults.BankKeywords, cfg.BankKeywords)
	assert.Equal(t, defaults.SystemKeywords, cfg.SystemKeywords)
}

func TestLoadKeywordsMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	content := `bank_keywords:
  - MYBANK
system_keywords:
  - SETTLEMENT
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keywords.yaml"), []byte(content), 0o600))

	s := NewKeywordStore("keywords.yaml", logging.NewMockLogger())
	cfg, err := s.LoadKeywords()
	require.NoError(t, err)

	assert.Equal(t, []string{"MYBANK"}, cfg.BankKeywords)
	assert.Equal(t, []string{"SETTLEMENT"}, cfg.SystemKeywords)
	// Section absent from the file keeps the defaults.
	assert.Equal(t, classifier.DefaultConfig().BankShortCodes, cfg.BankShortCodes)
}

func TestLoadKeywordsUnparseableFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "keywords.yaml"),
		[]byte("bank_keywords: [unclosed"), 0o600))

	s := NewKeywordStore("keywords.yaml", logging.NewMockLogger())
	_, err := s.LoadKeywords()
	assert.Error(t, err)
}

func TestFindConfigFileSearchOrder(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "keywords.yaml"), []byte("{}"), 0o600))

	s := NewKeywordStore("", logging.NewMockLogger())
	path, err := s.FindConfigFile("keywords.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("config", "keywords.yaml"), path)

	// A file in the working directory shadows config/.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keywords.yaml"), []byte("{}"), 0o600))
	path, err = s.FindConfigFile("keywords.yaml")
	require.NoError(t, err)
	assert.Equal(t, "keywords.yaml", path)
}

func TestFindConfigFileAbsolutePath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "kw.yaml")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o600))

	s := NewKeywordStore("", logging.NewMockLogger())
	path, err := s.FindConfigFile(file)
	require.NoError(t, err)
	assert.Equal(t, file, path)

	_, err = s.FindConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveKeywordsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "keywords.yaml")

	s := NewKeywordStore("", logging.NewMockLogger())
	in := classifier.Config{
		BankKeywords:   []string{"MYBANK"},
		BankShortCodes: []string{"MYB"},
		SystemKeywords: []string{"SETTLEMENT"},
	}
	require.NoError(t, s.SaveKeywords(in, path))

	loaded := NewKeywordStore(path, logging.NewMockLogger())
	cfg, err := loaded.LoadKeywords()
	require.NoError(t, err)
	assert.Equal(t, []string{"MYBANK"}, cfg.BankKeywords)
	assert.Equal(t, []string{"MYB"}, cfg.BankShortCodes)
	assert.Equal(t, []string{"SETTLEMENT"}, cfg.SystemKeywords)
}
