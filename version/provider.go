package version

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/magiconair/properties"
)

// DefaultPropertiesKey is the key looked up by FromProperties when none is given.
const DefaultPropertiesKey = "application.version"

// Provider reports the version of the running application.
type Provider interface {
	GetVersion() (string, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func() (string, error)

func (f ProviderFunc) GetVersion() (string, error) {
	return f()
}

// Static always reports the same version.
type Static struct {
	version string
}

func NewStatic(version string) *Static {
	return &Static{version: version}
}

func (s *Static) GetVersion() (string, error) {
	return s.version, nil
}

func (s *Static) String() string {
	return fmt.Sprintf("version.Static{Version: %s}", s.version)
}

// FromProperties reads the version from a Java-style properties file, the
// format used by desktop builds ("application.version=1.2.3").
type FromProperties struct {
	path string
	key  string
}

func NewFromProperties(path, key string) *FromProperties {
	if key == "" {
		key = DefaultPropertiesKey
	}
	return &FromProperties{path: path, key: key}
}

// GetVersion re-reads the file on every call.
func (p *FromProperties) GetVersion() (string, error) {
	props, err := properties.LoadFile(p.path, properties.UTF8)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrVersionUnavailable, err)
	}

	v, ok := props.Get(p.key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("%w: key %q not found in %s", ErrVersionUnavailable, p.key, p.path)
	}
	return strings.TrimSpace(v), nil
}

// FromBuildInfo reports the main module version embedded by the Go toolchain.
type FromBuildInfo struct {
	readBuildInfo func() (*debug.BuildInfo, bool)
}

func NewFromBuildInfo() *FromBuildInfo {
	return &FromBuildInfo{readBuildInfo: debug.ReadBuildInfo}
}

// GetVersion strips a leading "v" so "v1.4.0" is reported as "1.4.0".
// Binaries built from a working tree report "(devel)", which is treated as
// unavailable.
func (b *FromBuildInfo) GetVersion() (string, error) {
	info, ok := b.readBuildInfo()
	if !ok || info == nil {
		return "", fmt.Errorf("%w: build info not embedded", ErrVersionUnavailable)
	}

	v := info.Main.Version
	if v == "" || v == "(devel)" {
		return "", fmt.Errorf("%w: main module version is %q", ErrVersionUnavailable, v)
	}
	return strings.TrimPrefix(v, "v"), nil
}
