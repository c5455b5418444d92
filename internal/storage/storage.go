package storage

import (
	"time"

	"siderunner/internal/config"
	"siderunner/internal/domain"

	"github.com/google/uuid"
)

// Storage persists and loads run results (e.g. for the faills viewer).
type Storage interface {
	Save(results []domain.SuiteResult, duration time.Duration) error
	Load() (*domain.RunOutput, error)
	// SaveOutput writes the full output (e.g. after marking failures resolved).
	SaveOutput(output *domain.RunOutput) error
}

// New returns MySQL storage when a results DSN is configured, JSON storage otherwise
func New(cfg *config.Config) Storage {
	if cfg.ResultsDSN != "" {
		return NewMySQLStorage(cfg)
	}
	return NewJSONStorage(cfg)
}

// NewRunOutput summarizes suite results into the stored form
func NewRunOutput(cfg *config.Config, results []domain.SuiteResult, duration time.Duration) *domain.RunOutput {
	meta := domain.RunMeta{
		RunID:           uuid.NewString(),
		BaseURL:         cfg.BaseURL,
		Browser:         cfg.Browser,
		TotalSuites:     len(results),
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Timestamp:       time.Now().Format(time.RFC3339),
	}
	failures := []domain.Failure{}

	for _, suite := range results {
		if suite.Success {
			meta.PassedSuites++
		} else {
			meta.FailedSuites++
		}
		meta.SkippedCases += suite.Skipped
		meta.TotalCases += len(suite.Cases) + suite.Skipped
		for _, c := range suite.Cases {
			if c.Success {
				meta.PassedCases++
				continue
			}
			meta.FailedCases++
			failures = append(failures, domain.NewFailure(suite, c))
		}
		// a suite that failed before any case ran (e.g. browser error)
		if !suite.Success && len(suite.Cases) == 0 && suite.Error != nil {
			failures = append(failures, domain.Failure{
				Suite:     suite.Title,
				SuitePath: suite.SuitePath,
				Message:   suite.Error.Error(),
			})
		}
	}

	return &domain.RunOutput{Meta: meta, Details: failures}
}
