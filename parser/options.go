package parser

import "log/slog"

// Option configures a JSON parser.
type Option func(*JSON)

// WithPlatform sets the platform section name. The flat section is the same
// name with "2" appended.
func WithPlatform(platform string) Option {
	return func(p *JSON) {
		if platform != "" {
			p.platform = platform
		}
	}
}

func WithLogHandler(handler slog.Handler) Option {
	return func(p *JSON) {
		p.logHandler = handler
	}
}

// WithSchemaValidation checks every document against DocumentSchema before
// selecting an entry.
func WithSchemaValidation(enabled bool) Option {
	return func(p *JSON) {
		p.validateSchema = enabled
	}
}
