package pipeline

import (
	"path/filepath"
	"sort"
	"strings"
)

// Paths lays out every file the generation pipeline reads or writes,
// relative to the godot-bevy project root.
type Paths struct {
	Root string
}

// NewPaths creates the path layout rooted at the project root.
func NewPaths(root string) Paths {
	return Paths{Root: root}
}

func versionSuffix(version string) string {
	return strings.ReplaceAll(version, ".", "_")
}

func (p Paths) interopPath() string {
	return filepath.Join(p.Root, "godot-bevy", "src", "interop")
}

func (p Paths) sceneTreePluginPath() string {
	return filepath.Join(p.Root, "godot-bevy", "src", "plugins", "scene_tree")
}

func (p Paths) gdscriptPluginPath() string {
	return filepath.Join(p.Root, "addons", "godot-bevy")
}

// DumpDir holds the versioned extension API dumps.
func (p Paths) DumpDir() string {
	return filepath.Join(p.Root, "godot_extension_api")
}

// ExtensionAPIFile is where the raw engine dump for a version lives.
func (p Paths) ExtensionAPIFile(version string) string {
	return filepath.Join(p.DumpDir(), "extension_api"+version+".json")
}

// NodeMarkersFile is the marker declarations artifact for a version.
func (p Paths) NodeMarkersFile(version string) string {
	return filepath.Join(p.interopPath(), "node_markers", "node_markers"+versionSuffix(version)+".rs")
}

// TypeCheckingFile is the dispatch artifact for a version.
func (p Paths) TypeCheckingFile(version string) string {
	return filepath.Join(p.sceneTreePluginPath(), "node_type_checking", "type_checking"+versionSuffix(version)+".rs")
}

// WatcherFile is the per-version GDScript watcher artifact. The gd_ignore
// suffix keeps Godot from parsing inactive versions as scripts.
func (p Paths) WatcherFile(version string) string {
	return filepath.Join(p.gdscriptPluginPath(), "optimized_scene_tree_watcher_versions",
		"optimized_scene_tree_watcher"+versionSuffix(version)+".gd_ignore")
}

// SignalNamesFile is the signal constants artifact for a version.
func (p Paths) SignalNamesFile(version string) string {
	return filepath.Join(p.interopPath(), "signal_names", "signal_names"+versionSuffix(version)+".rs")
}

// ActiveWatcherFile is the version-agnostic path the plugin actually loads.
func (p Paths) ActiveWatcherFile() string {
	return filepath.Join(p.gdscriptPluginPath(), "optimized_scene_tree_watcher.gd")
}

// AllGeneratedFiles lists every artifact of a run, sorted.
func (p Paths) AllGeneratedFiles(versions []string) []string {
	var paths []string
	for _, version := range versions {
		paths = append(paths,
			p.ExtensionAPIFile(version),
			p.NodeMarkersFile(version),
			p.TypeCheckingFile(version),
			p.WatcherFile(version),
			p.SignalNamesFile(version),
		)
	}
	paths = append(paths, p.ActiveWatcherFile())
	sort.Strings(paths)
	return paths
}
