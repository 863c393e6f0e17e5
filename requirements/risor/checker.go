// Package risor runs requirement checks written in Risor. The requirement
// value is available as the global `value` and the script's final
// expression must evaluate to a bool.
package risor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	risorLib "github.com/risor-io/risor"
	risorCompiler "github.com/risor-io/risor/compiler"
	risorErrors "github.com/risor-io/risor/errz"
	risorParser "github.com/risor-io/risor/parser"

	"github.com/robbyt/go-princeofversions/internal/helpers"
	"github.com/robbyt/go-princeofversions/loader"
	"github.com/robbyt/go-princeofversions/requirements"
)

const valueName = "value"

type Checker struct {
	code   *risorCompiler.Code
	source string
	logger *slog.Logger
}

var _ requirements.Checker = (*Checker)(nil)

// New loads the script from ldr and compiles it to bytecode.
func New(ctx context.Context, handler slog.Handler, ldr loader.Loader) (*Checker, error) {
	_, logger := helpers.SetupLogger(handler, "risor", "Checker")

	content, err := ldr.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load requirement script: %w", err)
	}

	code, err := compile(ctx, content)
	if err != nil {
		return nil, err
	}

	source := ldr.GetSourceURL().String()
	logger.DebugContext(ctx, "requirement script compiled", "source", source)
	return &Checker{
		code:   code,
		source: source,
		logger: logger.With("source", source),
	}, nil
}

func (c *Checker) String() string {
	return fmt.Sprintf("risor.Checker{Source: %s}", c.source)
}

func (c *Checker) CheckRequirement(ctx context.Context, value string) (bool, error) {
	result, err := risorLib.EvalCode(ctx, c.code, risorLib.WithGlobal(valueName, value))
	if err != nil {
		return false, fmt.Errorf("%w: %w", requirements.ErrScriptExec, err)
	}
	if result == nil {
		return false, fmt.Errorf("%w: script returned nothing", requirements.ErrScriptResult)
	}

	b, ok := result.Interface().(bool)
	if !ok {
		return false, fmt.Errorf("%w: got %s", requirements.ErrScriptResult, result.Inspect())
	}

	c.logger.DebugContext(ctx, "requirement script evaluated", "value", value, "result", b)
	return b, nil
}

func compile(ctx context.Context, content string) (*risorCompiler.Code, error) {
	ast, err := risorParser.Parse(ctx, content)
	if err != nil {
		msg := err.Error()
		var friendly risorErrors.FriendlyError
		if errors.As(err, &friendly) {
			msg = friendly.FriendlyErrorMessage()
		}
		return nil, fmt.Errorf("%w: %s", requirements.ErrScriptCompile, msg)
	}

	globals := append(risorLib.NewConfig().GlobalNames(), valueName)
	code, err := risorCompiler.Compile(ast, risorCompiler.WithGlobalNames(globals))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", requirements.ErrScriptCompile, err)
	}
	return code, nil
}
