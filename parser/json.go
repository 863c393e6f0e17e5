// Package parser reads update configuration documents.
//
// A document carries a platform section, by default "ios". The flat form
// lives under "<platform>2" and may be a single entry or a list of entries
// guarded by requirements; the older nested form lives under "<platform>".
// When both are present the flat form wins.
//
//	{
//	  "ios2": [
//	    {"required_version": "2.0.0", "requirements": {"required_os_version": "15"}},
//	    {"required_version": "1.8.0"}
//	  ],
//	  "meta": {"title": "New release"}
//	}
package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"strconv"
	"strings"

	"github.com/robbyt/go-princeofversions/internal/helpers"
	"github.com/robbyt/go-princeofversions/requirements"
	"github.com/robbyt/go-princeofversions/update"
)

const (
	DefaultPlatform = "ios"

	keyMeta         = "meta"
	keyRequirements = "requirements"

	// flat entries
	keyRequiredVersion = "required_version"
	keyLastVersion     = "last_version_available"
	keyNotifyFrequency = "notify_last_version_frequency"

	// nested entries
	keyMinimumVersion   = "minimum_version"
	keyLatestVersion    = "latest_version"
	keyVersion          = "version"
	keyNotificationType = "notification_type"
)

// RequirementsChecker decides whether an entry's requirements hold.
// *requirements.Processor satisfies it.
type RequirementsChecker interface {
	AreSatisfied(ctx context.Context, reqs map[string]string) bool
}

// JSON parses JSON update configurations.
type JSON struct {
	checker        RequirementsChecker
	platform       string
	validateSchema bool
	logHandler     slog.Handler
	logger         *slog.Logger
}

var _ update.ConfigurationParser = (*JSON)(nil)

// New returns a parser that filters entries with checker. A nil checker
// accepts only entries without requirements.
func New(checker RequirementsChecker, opts ...Option) *JSON {
	p := &JSON{
		checker:  checker,
		platform: DefaultPlatform,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logHandler, p.logger = helpers.SetupLogger(p.logHandler, "parser", "JSON")
	if p.checker == nil {
		p.checker = requirements.NewProcessor(p.logHandler, nil)
	}
	return p
}

func (p *JSON) Platform() string {
	return p.platform
}

func (p *JSON) String() string {
	return fmt.Sprintf("parser.JSON{Platform: %s}", p.platform)
}

// Parse decodes content and selects the applicable update entry.
func (p *JSON) Parse(ctx context.Context, content string) (*update.Config, error) {
	root, err := decodeObject(content)
	if err != nil {
		return nil, err
	}

	if p.validateSchema {
		if err := ValidateDocument(p.platform, content); err != nil {
			return nil, err
		}
	}

	rootMeta := stringMap(root[keyMeta])

	flatKey := p.platform + "2"
	key := flatKey
	if _, ok := root[flatKey]; !ok {
		if _, ok := root[p.platform]; !ok {
			return nil, fmt.Errorf("%w: config resource does not contain %s key", update.ErrInvalidConfiguration, p.platform)
		}
		key = p.platform
	}
	p.logger.DebugContext(ctx, "parsing update section", "key", key)

	switch section := root[key].(type) {
	case []any:
		return p.parseFlatList(ctx, section, rootMeta)
	case map[string]any:
		if key == p.platform {
			return p.parseNested(section, rootMeta)
		}
		return p.parseFlatEntry(ctx, section, rootMeta)
	default:
		return nil, fmt.Errorf("%w: unsupported type %T for %q key", update.ErrInvalidConfiguration, section, key)
	}
}

func (p *JSON) parseFlatList(ctx context.Context, entries []any, rootMeta map[string]string) (*update.Config, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: document doesn't contain any feasible update", update.ErrInvalidConfiguration)
	}

	for idx, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			p.logger.WarnContext(ctx, "skipping update entry that is not an object", "index", idx)
			continue
		}

		cfg, ok, err := p.flatConfig(ctx, entry, rootMeta)
		if err != nil {
			return nil, err
		}
		if ok {
			p.logger.DebugContext(ctx, "selected update entry", "index", idx)
			return cfg, nil
		}
	}
	return nil, update.NewRequirementsNotSatisfiedError(rootMeta)
}

func (p *JSON) parseFlatEntry(ctx context.Context, entry map[string]any, rootMeta map[string]string) (*update.Config, error) {
	cfg, ok, err := p.flatConfig(ctx, entry, rootMeta)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, update.NewRequirementsNotSatisfiedError(rootMeta)
	}
	return cfg, nil
}

// flatConfig reports false when the entry's requirements are not met.
func (p *JSON) flatConfig(
	ctx context.Context,
	entry map[string]any,
	rootMeta map[string]string,
) (*update.Config, bool, error) {
	reqs := stringMap(entry[keyRequirements])
	if len(reqs) > 0 && !p.checker.AreSatisfied(ctx, reqs) {
		return nil, false, nil
	}

	nt, err := flatNotificationType(entry)
	if err != nil {
		return nil, false, err
	}

	mandatory, _ := stringify(entry[keyRequiredVersion])
	optional, _ := stringify(entry[keyLastVersion])

	return &update.Config{
		MandatoryVersion:         mandatory,
		OptionalVersion:          optional,
		OptionalNotificationType: nt,
		Metadata:                 mergeMeta(rootMeta, stringMap(entry[keyMeta])),
		Requirements:             reqs,
	}, true, nil
}

func (p *JSON) parseNested(section map[string]any, rootMeta map[string]string) (*update.Config, error) {
	mandatory, _ := stringify(section[keyMinimumVersion])

	var optional string
	nt := update.Once
	if latest, ok := section[keyLatestVersion].(map[string]any); ok {
		optional, _ = stringify(latest[keyVersion])
		if raw, ok := stringify(latest[keyNotificationType]); ok {
			nt = update.ParseNotificationType(raw)
		}
	}

	return &update.Config{
		MandatoryVersion:         mandatory,
		OptionalVersion:          optional,
		OptionalNotificationType: nt,
		Metadata:                 mergeMeta(rootMeta, nil),
		Requirements:             map[string]string{},
	}, nil
}

func flatNotificationType(entry map[string]any) (update.NotificationType, error) {
	raw, ok := entry[keyNotifyFrequency]
	if !ok || raw == nil {
		return update.Once, nil
	}
	s, ok := raw.(string)
	if !ok {
		return update.Once, fmt.Errorf(
			"%w: in update configuration %s should be a string, but the actual value is %v",
			update.ErrInvalidConfiguration, keyNotifyFrequency, raw,
		)
	}
	return update.ParseNotificationType(s), nil
}

func decodeObject(content string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %w", update.ErrInvalidConfiguration, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after JSON document", update.ErrInvalidConfiguration)
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: root JSON must be an object", update.ErrInvalidConfiguration)
	}
	return obj, nil
}

// stringify renders scalar JSON values as text. Objects and arrays are
// re-encoded; null is reported as absent.
func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}

func stringMap(v any) map[string]string {
	obj, ok := v.(map[string]any)
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(obj))
	for k, raw := range obj {
		if s, ok := stringify(raw); ok {
			out[k] = s
		}
	}
	return out
}

func mergeMeta(root, entry map[string]string) map[string]string {
	out := make(map[string]string, len(root)+len(entry))
	maps.Copy(out, root)
	maps.Copy(out, entry)
	return out
}
