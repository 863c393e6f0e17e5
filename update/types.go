package update

import (
	"context"
	"fmt"
	"maps"
)

// Config is a parsed update configuration. Empty version strings mean the
// version is absent.
type Config struct {
	MandatoryVersion         string
	OptionalVersion          string
	OptionalNotificationType NotificationType
	Metadata                 map[string]string
	Requirements             map[string]string
}

// ConfigurationParser turns loaded content into a Config.
type ConfigurationParser interface {
	Parse(ctx context.Context, content string) (*Config, error)
}

// ParserFunc adapts a function to ConfigurationParser.
type ParserFunc func(ctx context.Context, content string) (*Config, error)

func (f ParserFunc) Parse(ctx context.Context, content string) (*Config, error) {
	return f(ctx, content)
}

// Info describes what was compared during a check.
type Info struct {
	RequiredVersion       string
	LastVersionAvailable  string
	Requirements          map[string]string
	InstalledVersion      string
	NotificationFrequency NotificationType
}

func (i Info) String() string {
	return fmt.Sprintf(
		"update.Info{Installed: %s, Required: %q, Last: %q, Requirements: %v, Frequency: %s}",
		i.InstalledVersion, i.RequiredVersion, i.LastVersionAvailable, i.Requirements, i.NotificationFrequency,
	)
}

// CheckResult is the decision made by the Interactor before notification
// bookkeeping. Build it with MandatoryUpdate, OptionalUpdate or
// NoUpdateResult.
type CheckResult struct {
	status           Status
	version          string
	notificationType NotificationType
	metadata         map[string]string
	info             Info
}

func MandatoryUpdate(version string, metadata map[string]string, info Info) *CheckResult {
	return &CheckResult{status: Mandatory, version: version, metadata: maps.Clone(metadata), info: info}
}

func OptionalUpdate(version string, nt NotificationType, metadata map[string]string, info Info) *CheckResult {
	return &CheckResult{
		status:           Optional,
		version:          version,
		notificationType: nt,
		metadata:         maps.Clone(metadata),
		info:             info,
	}
}

func NoUpdateResult(version string, metadata map[string]string, info Info) *CheckResult {
	return &CheckResult{status: NoUpdate, version: version, metadata: maps.Clone(metadata), info: info}
}

func (r *CheckResult) Status() Status              { return r.status }
func (r *CheckResult) Version() string             { return r.version }
func (r *CheckResult) Metadata() map[string]string { return maps.Clone(r.metadata) }
func (r *CheckResult) Info() Info                  { return r.info }

func (r *CheckResult) HasUpdate() bool {
	return r.status == Mandatory || r.status == Optional
}

// IsOptional fails with ErrNoUpdate when there is no update at all.
func (r *CheckResult) IsOptional() (bool, error) {
	if !r.HasUpdate() {
		return false, ErrNoUpdate
	}
	return r.status == Optional, nil
}

// SafeNotificationType is only defined for optional updates.
func (r *CheckResult) SafeNotificationType() (NotificationType, error) {
	optional, err := r.IsOptional()
	if err != nil {
		return Once, err
	}
	if !optional {
		return Once, ErrNotOptional
	}
	return r.notificationType, nil
}

// Result is what a caller of an update check receives.
type Result struct {
	Version  string            `json:"version"  yaml:"version"`
	Status   Status            `json:"status"   yaml:"status"`
	Metadata map[string]string `json:"metadata" yaml:"metadata"`
}

func (r *Result) String() string {
	return fmt.Sprintf("update.Result{Status: %s, Version: %s, Metadata: %v}", r.Status, r.Version, r.Metadata)
}
