package povtest

import "github.com/robbyt/go-princeofversions/version"

// FakeVersionProvider reports whatever Version currently holds. Assign a new
// value between checks to simulate an installed upgrade.
type FakeVersionProvider struct {
	Version string
}

var _ version.Provider = (*FakeVersionProvider)(nil)

func NewFakeVersionProvider(v string) *FakeVersionProvider {
	return &FakeVersionProvider{Version: v}
}

// GetVersion returns Version verbatim and never fails.
func (p *FakeVersionProvider) GetVersion() (string, error) {
	return p.Version, nil
}
