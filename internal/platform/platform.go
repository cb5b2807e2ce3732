package platform

import "fmt"

// Target defines the interface for site-specific upload behavior
type Target interface {
	// GetName returns the target name
	GetName() string

	// GetUploadURL returns the page the automation collaborator must open
	// to reach an upload-ready state
	GetUploadURL() string

	// GetBatchSize returns how many artifacts are uploaded per interaction cycle
	GetBatchSize() int

	// GetTagSlots returns the number of tag input slots the full tag set is
	// broadcast into, including redundant safety slots
	GetTagSlots() int

	// GetSafetySlots returns how many of the tag slots are redundant
	// safety slots
	GetSafetySlots() int

	// GetTagCount returns the tag cardinality the target expects
	GetTagCount() int
}

var targets = make(map[string]Target)

// Register adds a target to the registry
func Register(t Target) {
	targets[t.GetName()] = t
}

// Get returns a target by name
func Get(name string) (Target, error) {
	t, ok := targets[name]
	if !ok {
		return nil, fmt.Errorf("unsupported upload target: %s", name)
	}
	return t, nil
}

// GetSupportedTargets returns a list of supported target names
func GetSupportedTargets() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	return names
}
