package ui

import "siderunner/internal/domain"

// Viewer displays run failures
type Viewer interface {
	View(results *domain.RunOutput) error
}
