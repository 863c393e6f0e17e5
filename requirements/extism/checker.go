// Package extism runs requirement checks compiled to WebAssembly and hosted
// by the Extism SDK on wazero.
//
// The plugin's entry point receives {"value": "<requirement value>"} and
// must answer either {"satisfied": true|false} or the plain text true/false.
package extism

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	extismSDK "github.com/extism/go-sdk"

	"github.com/robbyt/go-princeofversions/internal/helpers"
	"github.com/robbyt/go-princeofversions/loader"
	"github.com/robbyt/go-princeofversions/requirements"
)

type Checker struct {
	plugin     CompiledPlugin
	entryPoint string
	source     string
	logger     *slog.Logger
}

var _ requirements.Checker = (*Checker)(nil)

// New loads a base64 encoded WASM module from ldr and compiles it.
func New(ctx context.Context, handler slog.Handler, ldr loader.Loader, opts ...Option) (*Checker, error) {
	content, err := ldr.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load requirement plugin: %w", err)
	}

	wasm, err := base64.StdEncoding.DecodeString(strings.TrimSpace(content))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 module: %w", requirements.ErrScriptCompile, err)
	}
	return newFromBytes(ctx, handler, wasm, ldr.GetSourceURL().String(), opts...)
}

// NewFromBytes compiles a raw WASM module.
func NewFromBytes(ctx context.Context, handler slog.Handler, wasm []byte, opts ...Option) (*Checker, error) {
	return newFromBytes(ctx, handler, wasm, fmt.Sprintf("wasm://bytes/%s", helpers.SHA256Bytes(wasm)[:8]), opts...)
}

func newFromBytes(
	ctx context.Context,
	handler slog.Handler,
	wasm []byte,
	source string,
	opts ...Option,
) (*Checker, error) {
	if len(wasm) == 0 {
		return nil, fmt.Errorf("%w: empty module", requirements.ErrScriptCompile)
	}

	cfg := defaultSettings()
	for _, opt := range opts {
		opt(cfg)
	}

	manifest := extismSDK.Manifest{
		Wasm: []extismSDK.Wasm{extismSDK.WasmData{Data: wasm}},
	}
	pluginConfig := extismSDK.PluginConfig{
		EnableWasi:    cfg.enableWASI,
		RuntimeConfig: cfg.runtimeConfig,
	}
	plugin, err := extismSDK.NewCompiledPlugin(ctx, manifest, pluginConfig, cfg.hostFunctions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", requirements.ErrScriptCompile, err)
	}

	return newWithPlugin(handler, newCompiledPluginAdapter(plugin), source, cfg.entryPoint), nil
}

func newWithPlugin(handler slog.Handler, plugin CompiledPlugin, source, entryPoint string) *Checker {
	_, logger := helpers.SetupLogger(handler, "extism", "Checker")
	return &Checker{
		plugin:     plugin,
		entryPoint: entryPoint,
		source:     source,
		logger:     logger.With("source", source),
	}
}

func (c *Checker) String() string {
	return fmt.Sprintf("extism.Checker{Source: %s, EntryPoint: %s}", c.source, c.entryPoint)
}

// CheckRequirement instantiates the plugin, calls the entry point and closes
// the instance again. Instances are not reused between checks.
func (c *Checker) CheckRequirement(ctx context.Context, value string) (bool, error) {
	instance, err := c.plugin.Instance(ctx, newPluginInstanceConfig())
	if err != nil {
		return false, fmt.Errorf("%w: failed to create plugin instance: %w", requirements.ErrScriptExec, err)
	}
	defer func() {
		if err := instance.Close(ctx); err != nil {
			c.logger.WarnContext(ctx, "failed to close plugin instance", "error", err)
		}
	}()

	if !instance.FunctionExists(c.entryPoint) {
		return false, fmt.Errorf("%w: entry point %q not exported", requirements.ErrScriptExec, c.entryPoint)
	}

	input, err := json.Marshal(map[string]string{"value": value})
	if err != nil {
		return false, fmt.Errorf("%w: %w", requirements.ErrScriptExec, err)
	}

	exit, output, err := instance.CallWithContext(ctx, c.entryPoint, input)
	if err != nil {
		if ctx.Err() != nil {
			return false, fmt.Errorf("%w: cancelled: %w", requirements.ErrScriptExec, ctx.Err())
		}
		return false, fmt.Errorf("%w: %w", requirements.ErrScriptExec, err)
	}
	if exit != 0 {
		return false, fmt.Errorf("%w: exit code %d", requirements.ErrScriptExec, exit)
	}

	satisfied, err := parseOutput(output)
	if err != nil {
		return false, err
	}
	c.logger.DebugContext(ctx, "requirement plugin evaluated", "value", value, "result", satisfied)
	return satisfied, nil
}

// Close releases the compiled module.
func (c *Checker) Close(ctx context.Context) error {
	return c.plugin.Close(ctx)
}

func parseOutput(output []byte) (bool, error) {
	var doc struct {
		Satisfied *bool `json:"satisfied"`
	}
	if err := json.Unmarshal(output, &doc); err == nil && doc.Satisfied != nil {
		return *doc.Satisfied, nil
	}

	switch strings.TrimSpace(string(output)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: got %q", requirements.ErrScriptResult, output)
}
