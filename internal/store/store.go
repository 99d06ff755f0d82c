// Package store loads the keyword lists the classifier runs on from YAML
// files. The lists are deployment data, not code: a missing file degrades
// to the built-in defaults, never to an error.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"finwatch/upi-audit/internal/classifier"
	"finwatch/upi-audit/internal/logging"
)

// keywordsFile is the on-disk shape of keywords.yaml.
type keywordsFile struct {
	BankKeywords   []string `yaml:"bank_keywords"`
	BankShortCodes []string `yaml:"bank_short_codes"`
	SystemKeywords []string `yaml:"system_keywords"`
}

// KeywordStore resolves and loads keyword configuration files.
type KeywordStore struct {
	KeywordsFile string
	logger       logging.Logger
}

// NewKeywordStore creates a store reading the given file name. An empty
// name defaults to "keywords.yaml".
func NewKeywordStore(keywordsFile string, logger logging.Logger) *KeywordStore {
	if keywordsFile == "" {
		keywordsFile = "keywords.yaml"
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &KeywordStore{KeywordsFile: keywordsFile, logger: logger}
}

// FindConfigFile looks for filename in the standard locations: as given,
// under ./config/, and under the user config directory.
func (s *KeywordStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "upi-audit", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadKeywords reads the keyword file and merges it over the classifier
// defaults. Absent file or empty sections keep the defaults; a present but
// unparseable file is an error so typos do not silently disable keywords.
func (s *KeywordStore) LoadKeywords() (classifier.Config, error) {
	cfg := classifier.DefaultConfig()

	path, err := s.FindConfigFile(s.KeywordsFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("keyword file not found, using built-in defaults",
				logging.Field{Key: logging.FieldFile, Value: s.KeywordsFile})
			return cfg, nil
		}
		return cfg, fmt.Errorf("error resolving keyword file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("error reading keyword file %s: %w", path, err)
	}

	var kf keywordsFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return cfg, fmt.Errorf("error parsing keyword file %s: %w", path, err)
	}

	if len(kf.BankKeywords) > 0 {
		cfg.BankKeywords = kf.BankKeywords
	}
	if len(kf.BankShortCodes) > 0 {
		cfg.BankShortCodes = kf.BankShortCodes
	}
	if len(kf.SystemKeywords) > 0 {
		cfg.SystemKeywords = kf.SystemKeywords
	}

	s.logger.Info("keyword lists loaded",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: "bank_keywords", Value: len(cfg.BankKeywords)},
		logging.Field{Key: "system_keywords", Value: len(cfg.SystemKeywords)})
	return cfg, nil
}

// SaveKeywords writes the keyword lists back out, creating parent
// directories as needed.
func (s *KeywordStore) SaveKeywords(cfg classifier.Config, path string) error {
	data, err := yaml.Marshal(keywordsFile{
		BankKeywords:   cfg.BankKeywords,
		BankShortCodes: cfg.BankShortCodes,
		SystemKeywords: cfg.SystemKeywords,
	})
	if err != nil {
		return fmt.Errorf("error marshalling keywords: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("error writing keyword file %s: %w", path, err)
	}
	return nil
}
