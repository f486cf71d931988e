package storage

import "beer-reviews/models"

// TableWriter is the interface any export sink for the canonical table must
// satisfy.
type TableWriter interface {
	Write(t models.Table) error
	Close() error
}
