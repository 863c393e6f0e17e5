package requirements

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/robbyt/go-princeofversions/internal/helpers"
)

// Processor checks requirement sets against the registered checkers.
type Processor struct {
	checkers map[string]Checker
	logger   *slog.Logger
}

// NewProcessor copies checkers so later changes to the map are not observed.
func NewProcessor(handler slog.Handler, checkers map[string]Checker) *Processor {
	_, logger := helpers.SetupLogger(handler, "requirements", "Processor")
	return &Processor{
		checkers: maps.Clone(checkers),
		logger:   logger,
	}
}

// Keys returns the registered requirement keys in sorted order.
func (p *Processor) Keys() []string {
	return slices.Sorted(maps.Keys(p.checkers))
}

// AreSatisfied reports whether every requirement has a registered checker
// that approves its value. A missing checker, a rejection or a checker error
// all make the set unsatisfied; errors are logged and not returned. An empty
// set is satisfied.
func (p *Processor) AreSatisfied(ctx context.Context, reqs map[string]string) bool {
	for _, key := range slices.Sorted(maps.Keys(reqs)) {
		value := reqs[key]
		checker, ok := p.checkers[key]
		if !ok {
			p.logger.DebugContext(ctx, "no checker registered for requirement", "key", key)
			return false
		}

		satisfied, err := checker.CheckRequirement(ctx, value)
		if err != nil {
			p.logger.WarnContext(ctx, "requirement check failed", "key", key, "value", value, "error", err)
			return false
		}
		if !satisfied {
			p.logger.DebugContext(ctx, "requirement not satisfied", "key", key, "value", value)
			return false
		}
	}
	return true
}
