// Package common contains shared wiring for command handlers.
package common

import (
	"finwatch/upi-audit/internal/classifier"
	"finwatch/upi-audit/internal/config"
	"finwatch/upi-audit/internal/engine"
	"finwatch/upi-audit/internal/extractor"
	"finwatch/upi-audit/internal/grouper"
	"finwatch/upi-audit/internal/ingest"
	"finwatch/upi-audit/internal/logging"
	"finwatch/upi-audit/internal/models"
	"finwatch/upi-audit/internal/store"
)

// BuildPipeline assembles the analysis pipeline from configuration:
// keyword lists from the store, classifier thresholds and extractor bounds
// from the config file or environment.
func BuildPipeline(cfg *config.Config, log logging.Logger) *engine.Pipeline {
	keywordStore := store.NewKeywordStore(cfg.Classify.KeywordsFile, log)
	classifyCfg, err := keywordStore.LoadKeywords()
	if err != nil {
		log.WithError(err).Warn("Falling back to built-in keyword lists")
		classifyCfg = classifier.DefaultConfig()
	}
	classifyCfg.HashLengthThreshold = cfg.Classify.HashLengthThreshold
	classifyCfg.PhoneMinDigits = cfg.Classify.PhoneMinDigits

	ex := extractor.New(classifier.New(classifyCfg), extractor.Options{
		MinAccountDigits:         cfg.Extract.MinAccountDigits,
		MaxAccountDigits:         cfg.Extract.MaxAccountDigits,
		FallbackMinAccountDigits: cfg.Extract.FallbackMinAccountDigits,
	}, log)
	gr := grouper.New(cfg.Group.DistinctThreshold, log)

	return engine.New(ex, gr, log)
}

// RunAnalysis ingests one statement file and executes a full pipeline run.
func RunAnalysis(cfg *config.Config, inputFile string, log logging.Logger) (models.AnalysisResult, error) {
	records, err := ingest.NewReader(log).ReadFile(inputFile)
	if err != nil {
		return models.AnalysisResult{}, err
	}
	return BuildPipeline(cfg, log).Run(records), nil
}
