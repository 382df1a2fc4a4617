// Package engine applies command batches to inventory state
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/rpg-inventory/internal/engine Engine

import (
	"context"
)

// Engine applies typed commands to a copy of the state
type Engine interface {
	// Execute applies the commands in order. The input state is never modified; on
	// error nothing is applied.
	Execute(ctx context.Context, input *ExecuteInput) (*ExecuteOutput, error)
}
