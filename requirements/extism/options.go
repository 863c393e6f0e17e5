package extism

import (
	extismSDK "github.com/extism/go-sdk"
	"github.com/tetratelabs/wazero"
)

const DefaultEntryPoint = "check"

type settings struct {
	entryPoint    string
	enableWASI    bool
	runtimeConfig wazero.RuntimeConfig
	hostFunctions []extismSDK.HostFunction
}

func defaultSettings() *settings {
	return &settings{
		entryPoint:    DefaultEntryPoint,
		enableWASI:    true,
		runtimeConfig: wazero.NewRuntimeConfig(),
	}
}

// Option configures a Checker.
type Option func(*settings)

// WithEntryPoint sets the exported function called for each check.
func WithEntryPoint(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.entryPoint = name
		}
	}
}

func WithWASI(enabled bool) Option {
	return func(s *settings) {
		s.enableWASI = enabled
	}
}

// WithRuntimeConfig replaces the wazero runtime configuration, for example to
// set a memory limit or to use the interpreter instead of the compiler.
func WithRuntimeConfig(cfg wazero.RuntimeConfig) Option {
	return func(s *settings) {
		if cfg != nil {
			s.runtimeConfig = cfg
		}
	}
}

func WithHostFunctions(funcs ...extismSDK.HostFunction) Option {
	return func(s *settings) {
		s.hostFunctions = append(s.hostFunctions, funcs...)
	}
}
