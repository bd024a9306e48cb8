// Package schema holds the typed model of one Godot extension API dump.
// A loaded ExtensionAPI is read-only for the rest of the pipeline run.
package schema

import "fmt"

// Header carries the engine version information of an API dump.
type Header struct {
	VersionMajor    int    `json:"version_major"`
	VersionMinor    int    `json:"version_minor"`
	VersionPatch    int    `json:"version_patch"`
	VersionStatus   string `json:"version_status"`
	VersionBuild    string `json:"version_build"`
	VersionFullName string `json:"version_full_name"`
	Precision       string `json:"precision"`
}

// Signal is one signal declared by a class.
type Signal struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Class is one class record from the extension API.
// Inherits is empty for the hierarchy root (Object).
// Signals is nil when the class declares no "signals" key at all,
// which is distinct from an empty list.
type Class struct {
	Name             string   `json:"name"`
	APIType          string   `json:"api_type"`
	IsRefcounted     bool     `json:"is_refcounted"`
	IsInstantiable   bool     `json:"is_instantiable"`
	Inherits         string   `json:"inherits"`
	Signals          []Signal `json:"signals"`
	BriefDescription string   `json:"brief_description"`
	Description      string   `json:"description"`
}

// ExtensionAPI is one complete, versioned API snapshot.
type ExtensionAPI struct {
	Header  Header  `json:"header"`
	Classes []Class `json:"classes"`

	// Version is the label the generator was asked to process ("4.4"),
	// which may differ textually from Header.VersionFullName.
	Version string `json:"-"`
}

// Class returns the record for name, or nil if the schema does not contain it.
func (api *ExtensionAPI) Class(name string) *Class {
	for i := range api.Classes {
		if api.Classes[i].Name == name {
			return &api.Classes[i]
		}
	}
	return nil
}

// Validate checks the structural invariants the pipeline depends on:
// a non-empty class list and unique class names. Hierarchy invariants
// (root presence, acyclic inheritance) are checked by the indexer.
func (api *ExtensionAPI) Validate() error {
	if len(api.Classes) == 0 {
		return fmt.Errorf("schema %s contains no classes", api.Version)
	}
	seen := make(map[string]bool, len(api.Classes))
	for _, c := range api.Classes {
		if c.Name == "" {
			return fmt.Errorf("schema %s contains a class with an empty name", api.Version)
		}
		if seen[c.Name] {
			return fmt.Errorf("schema %s declares class %q more than once", api.Version, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}
