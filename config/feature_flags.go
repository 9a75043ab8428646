package config

import (
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// FeatureFlags holds named boolean toggles. Safe for concurrent use.
type FeatureFlags struct {
	mu       sync.RWMutex
	features map[string]*Feature
}

// Feature represents a single feature flag.
type Feature struct {
	Name        string
	Description string
	Enabled     bool
}

// Predefined feature flag names.
const (
	FeatureLessonOverlapCheck = "lessons.overlap_check" // reject lessons that overlap an existing one
	FeatureLiveSearch         = "shell.live_search"     // filter the list while a search is typed
)

// LoadFeatureFlags returns the defaults overridden by FEATURE_* variables.
func LoadFeatureFlags() *FeatureFlags {
	ff := NewFeatureFlags()
	ff.loadFromEnvironment()
	return ff
}

// NewFeatureFlags returns every flag at its default.
func NewFeatureFlags() *FeatureFlags {
	ff := &FeatureFlags{features: make(map[string]*Feature)}
	ff.features[FeatureLessonOverlapCheck] = &Feature{
		Name:        FeatureLessonOverlapCheck,
		Description: "Reject a scheduled lesson that overlaps an existing lesson",
		Enabled:     true,
	}
	ff.features[FeatureLiveSearch] = &Feature{
		Name:        FeatureLiveSearch,
		Description: "Filter the person list while a search command is typed",
		Enabled:     true,
	}
	return ff
}

// loadFromEnvironment applies FEATURE_<NAME>=true|false overrides.
// Example: FEATURE_LESSONS_OVERLAP_CHECK=false
func (ff *FeatureFlags) loadFromEnvironment() {
	for name, feature := range ff.features {
		for _, key := range envKeys(name) {
			if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
				feature.Enabled = b
			}
		}
	}
}

// featureNameToEnvKey converts feature name to environment variable key.
// "shell.live_search" -> "FEATURE_SHELL_LIVE_SEARCH"
func featureNameToEnvKey(name string) string {
	key := strings.ToUpper(name)
	key = strings.ReplaceAll(key, ".", "_")
	return "FEATURE_" + key
}

// envKeys lists the variables read for a flag, later ones winning.
func envKeys(name string) []string {
	keys := []string{featureNameToEnvKey(name)}
	switch name {
	case FeatureLessonOverlapCheck:
		keys = append(keys, "FEATURE_LESSON_OVERLAP_CHECK")
	case FeatureLiveSearch:
		keys = append(keys, "FEATURE_LIVE_SEARCH")
	}
	return keys
}

// IsEnabled reports whether the named feature is on. Unknown names are off.
func (ff *FeatureFlags) IsEnabled(featureName string) bool {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	feature, ok := ff.features[featureName]
	return ok && feature.Enabled
}

// Set turns a feature on or off.
func (ff *FeatureFlags) Set(featureName string, enabled bool) error {
	ff.mu.Lock()
	defer ff.mu.Unlock()

	feature, ok := ff.features[featureName]
	if !ok {
		return ErrFeatureNotFound
	}
	feature.Enabled = enabled
	return nil
}

// EnableFeature enables a feature.
func (ff *FeatureFlags) EnableFeature(featureName string) error {
	return ff.Set(featureName, true)
}

// DisableFeature disables a feature.
func (ff *FeatureFlags) DisableFeature(featureName string) error {
	return ff.Set(featureName, false)
}

// Names returns the flag names in sorted order.
func (ff *FeatureFlags) Names() []string {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	names := make([]string, 0, len(ff.features))
	for name := range ff.features {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// --- Convenience methods for common checks ---

// LessonOverlapCheck reports whether scheduling rejects overlapping lessons.
func (ff *FeatureFlags) LessonOverlapCheck() bool {
	return ff.IsEnabled(FeatureLessonOverlapCheck)
}

// LiveSearch reports whether the shell filters while a search is typed.
func (ff *FeatureFlags) LiveSearch() bool {
	return ff.IsEnabled(FeatureLiveSearch)
}

// --- Errors ---

// ErrFeatureNotFound is returned for an unknown flag name.
var ErrFeatureNotFound = &FeatureFlagError{Message: "feature not found"}

// FeatureFlagError represents a feature flag error.
type FeatureFlagError struct {
	Message string
}

func (e *FeatureFlagError) Error() string {
	return e.Message
}
