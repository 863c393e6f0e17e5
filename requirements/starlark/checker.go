// Package starlark runs requirement checks written in Starlark.
//
// The script sees the requirement value as the predeclared string `value`
// and must assign a bool to `result`:
//
//	result = value in ("beta", "internal")
//
// A script without `result` may end in a bool expression instead:
//
//	value == "beta"
//
// The json, math and time modules are available.
package starlark

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	starlarkJSON "go.starlark.net/lib/json"
	starlarkMath "go.starlark.net/lib/math"
	starlarkTime "go.starlark.net/lib/time"
	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/robbyt/go-princeofversions/internal/helpers"
	"github.com/robbyt/go-princeofversions/loader"
	"github.com/robbyt/go-princeofversions/requirements"
)

const (
	valueName    = "value"
	resultName   = "result"
	lastExprName = "_"
)

// Checker evaluates a compiled Starlark program once per requirement check.
type Checker struct {
	prog   *starlarkLib.Program
	source string
	logger *slog.Logger
}

var _ requirements.Checker = (*Checker)(nil)

// New loads the script from ldr and compiles it.
func New(ctx context.Context, handler slog.Handler, ldr loader.Loader) (*Checker, error) {
	_, logger := helpers.SetupLogger(handler, "starlark", "Checker")

	content, err := ldr.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load requirement script: %w", err)
	}

	source := ldr.GetSourceURL().String()
	prog, err := compile(source, content)
	if err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "requirement script compiled", "source", source)
	return &Checker{
		prog:   prog,
		source: source,
		logger: logger.With("source", source),
	}, nil
}

func (c *Checker) String() string {
	return fmt.Sprintf("starlark.Checker{Source: %s}", c.source)
}

// CheckRequirement runs the program with value bound to the requirement value.
func (c *Checker) CheckRequirement(ctx context.Context, value string) (bool, error) {
	thread := &starlarkLib.Thread{
		Name: "requirement",
		Print: func(_ *starlarkLib.Thread, msg string) {
			c.logger.InfoContext(ctx, msg)
		},
	}
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(ctx.Err().Error())
	})
	defer stop()

	globals := standardModules()
	globals[valueName] = starlarkLib.String(value)

	out, err := c.prog.Init(thread, globals)
	if err != nil {
		return false, fmt.Errorf("%w: %w", requirements.ErrScriptExec, err)
	}

	res, ok := out[resultName]
	if !ok {
		res = out[lastExprName]
	}
	b, ok := res.(starlarkLib.Bool)
	if !ok {
		return false, fmt.Errorf("%w: got %v", requirements.ErrScriptResult, res)
	}

	c.logger.DebugContext(ctx, "requirement script evaluated", "value", value, "result", bool(b))
	return bool(b), nil
}

func compile(filename, content string) (*starlarkLib.Program, error) {
	opts := &syntax.FileOptions{
		TopLevelControl: true,
		GlobalReassign:  true,
	}
	f, err := opts.Parse(filename, content, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", requirements.ErrScriptCompile, err)
	}

	bindLastExpr(f)

	predeclared := standardModules()
	predeclared[valueName] = starlarkLib.None

	prog, err := starlarkLib.FileProgram(f, predeclared.Has)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", requirements.ErrScriptCompile, err)
	}
	return prog, nil
}

// bindLastExpr turns a trailing top-level expression statement into an
// assignment to `_` so its value survives as a module global.
func bindLastExpr(f *syntax.File) {
	if len(f.Stmts) == 0 {
		return
	}
	last, ok := f.Stmts[len(f.Stmts)-1].(*syntax.ExprStmt)
	if !ok {
		return
	}
	start, _ := last.X.Span()
	f.Stmts[len(f.Stmts)-1] = &syntax.AssignStmt{
		OpPos: start,
		Op:    syntax.EQ,
		LHS:   &syntax.Ident{NamePos: start, Name: lastExprName},
		RHS:   last.X,
	}
}

func standardModules() starlarkLib.StringDict {
	globals := maps.Clone(starlarkLib.Universe)
	globals["json"] = starlarkJSON.Module
	globals["math"] = starlarkMath.Module
	globals["time"] = starlarkTime.Module
	return globals
}
