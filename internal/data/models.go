// File: internal/data/models.go
package data

import "log/slog"

// Models groups the read models served by the API.
type Models struct {
	Sales   SalesModel
	Options FilterOptionModel
}

// NewModels wires every model to the same record store.
func NewModels(store RecordStore, logger *slog.Logger) Models {
	return Models{
		Sales:   SalesModel{Store: store, Logger: logger},
		Options: FilterOptionModel{Store: store},
	}
}
