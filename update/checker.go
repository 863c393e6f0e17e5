package update

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robbyt/go-princeofversions/internal/helpers"
	"github.com/robbyt/go-princeofversions/loader"
	"github.com/robbyt/go-princeofversions/storage"
)

// Checker applies notification bookkeeping on top of an Interactor.
type Checker struct {
	interactor *Interactor
	storage    storage.Storage
	logger     *slog.Logger
}

func NewChecker(handler slog.Handler, interactor *Interactor, store storage.Storage) *Checker {
	_, logger := helpers.SetupLogger(handler, "update", "Checker")
	return &Checker{
		interactor: interactor,
		storage:    store,
		logger:     logger,
	}
}

// Check runs an update check. Mandatory updates are always reported and
// remembered. An optional update is reported when its version differs from
// the last notified one or its notification type is Always; otherwise the
// result is downgraded to NoUpdate but still carries the update version.
func (c *Checker) Check(ctx context.Context, ldr loader.Loader) (*Result, error) {
	logger := c.logger.WithGroup("Check")

	res, err := c.interactor.Evaluate(ctx, ldr)
	if err != nil {
		return nil, err
	}

	switch res.Status() {
	case Mandatory:
		if err := c.storage.SaveVersion(ctx, res.Version()); err != nil {
			return nil, fmt.Errorf("failed to save notified version: %w", err)
		}
		logger.InfoContext(ctx, "mandatory update", "version", res.Version())
		return newResult(res, Mandatory), nil

	case Optional:
		last, saved, err := c.storage.LastSavedVersion(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read last notified version: %w", err)
		}
		nt, err := res.SafeNotificationType()
		if err != nil {
			return nil, err
		}

		alreadyNotified := saved && last == res.Version()
		if alreadyNotified && nt != Always {
			logger.DebugContext(ctx, "optional update already notified", "version", res.Version())
			return newResult(res, NoUpdate), nil
		}

		if err := c.storage.SaveVersion(ctx, res.Version()); err != nil {
			return nil, fmt.Errorf("failed to save notified version: %w", err)
		}
		logger.InfoContext(ctx, "optional update", "version", res.Version(), "notification", nt)
		return newResult(res, Optional), nil

	default:
		logger.DebugContext(ctx, "no update", "version", res.Version())
		return newResult(res, NoUpdate), nil
	}
}

func newResult(res *CheckResult, status Status) *Result {
	metadata := res.Metadata()
	if metadata == nil {
		metadata = map[string]string{}
	}
	return &Result{
		Version:  res.Version(),
		Status:   status,
		Metadata: metadata,
	}
}
