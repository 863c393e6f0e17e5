package loader

import "errors"

var (
	ErrSchemeUnsupported  = errors.New("unsupported scheme")
	ErrConfigNotAvailable = errors.New("configuration not available")
	ErrInputEmpty         = errors.New("input is empty")
)
