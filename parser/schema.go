package parser

import (
	"errors"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/robbyt/go-princeofversions/update"
)

// DocumentSchema returns the JSON schema of an update configuration for the
// given platform.
func DocumentSchema(platform string) map[string]any {
	if platform == "" {
		platform = DefaultPlatform
	}

	versionValue := map[string]any{"type": []string{"string", "number", "null"}}
	stringOrNull := map[string]any{"type": []string{"string", "null"}}
	objectOrNull := map[string]any{"type": []string{"object", "null"}}

	flatEntry := map[string]any{
		"type": "object",
		"properties": map[string]any{
			keyRequiredVersion: versionValue,
			keyLastVersion:     versionValue,
			keyNotifyFrequency: stringOrNull,
			keyRequirements:    objectOrNull,
			keyMeta:            objectOrNull,
		},
	}
	flatList := map[string]any{
		"type":  "array",
		"items": flatEntry,
	}
	nestedEntry := map[string]any{
		"type": "object",
		"properties": map[string]any{
			keyMinimumVersion: versionValue,
			keyLatestVersion: map[string]any{
				"type": []string{"object", "null"},
				"properties": map[string]any{
					keyVersion:          versionValue,
					keyNotificationType: stringOrNull,
				},
			},
		},
	}

	return map[string]any{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"title":   "update configuration",
		"type":    "object",
		"properties": map[string]any{
			keyMeta:        objectOrNull,
			platform:       map[string]any{"oneOf": []any{nestedEntry, flatList}},
			platform + "2": map[string]any{"oneOf": []any{flatEntry, flatList}},
		},
		"anyOf": []any{
			map[string]any{"required": []string{platform}},
			map[string]any{"required": []string{platform + "2"}},
		},
	}
}

// ValidateDocument checks content against DocumentSchema. Violations are
// reported as a single error wrapping update.ErrInvalidConfiguration.
func ValidateDocument(platform, content string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(DocumentSchema(platform)),
		gojsonschema.NewStringLoader(content),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", update.ErrInvalidConfiguration, err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]error, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		errs = append(errs, fmt.Errorf("%s: %s", re.Field(), re.Description()))
	}
	return fmt.Errorf("%w: schema validation failed: %w", update.ErrInvalidConfiguration, errors.Join(errs...))
}
