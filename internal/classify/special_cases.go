package classify

// Classes Godot marks experimental. godot-rust puts their bindings behind
// the "experimental-godot-api" feature flag, so generated declarations that
// reference them must carry the same gate.
var experimentalClasses = map[string]bool{
	"AudioSample":                          true,
	"AudioSamplePlayback":                  true,
	"Compositor":                           true,
	"CompositorEffect":                     true,
	"GraphEdit":                            true,
	"GraphElement":                         true,
	"GraphFrame":                           true,
	"GraphNode":                            true,
	"NavigationAgent2D":                    true,
	"NavigationAgent3D":                    true,
	"NavigationLink2D":                     true,
	"NavigationLink3D":                     true,
	"NavigationMesh":                       true,
	"NavigationMeshSourceGeometryData2D":   true,
	"NavigationMeshSourceGeometryData3D":   true,
	"NavigationObstacle2D":                 true,
	"NavigationObstacle3D":                 true,
	"NavigationPathQueryParameters2D":      true,
	"NavigationPathQueryParameters3D":      true,
	"NavigationPathQueryResult2D":          true,
	"NavigationPathQueryResult3D":          true,
	"NavigationPolygon":                    true,
	"NavigationRegion2D":                   true,
	"NavigationRegion3D":                   true,
	"NavigationServer2D":                   true,
	"NavigationServer3D":                   true,
	"Parallax2D":                           true,
	"SkeletonModification2D":               true,
	"SkeletonModification2DCCDIK":          true,
	"SkeletonModification2DFABRIK":         true,
	"SkeletonModification2DJiggle":         true,
	"SkeletonModification2DLookAt":         true,
	"SkeletonModification2DPhysicalBones":  true,
	"SkeletonModification2DStackHolder":    true,
	"SkeletonModification2DTwoBoneIK":      true,
	"SkeletonModificationStack2D":          true,
	"StreamPeerGZIP":                       true,
	"XRBodyModifier3D":                     true,
	"XRBodyTracker":                        true,
	"XRFaceModifier3D":                     true,
	"XRFaceTracker":                        true,
}

// Classes absent from the web/WASM extension API. Declarations referencing
// them must not exist in WASM builds.
var wasmExcludedClasses = map[string]bool{
	"OpenXRRenderModel":        true,
	"OpenXRRenderModelManager": true,
}

// IsExperimental reports whether class needs the experimental feature gate.
func IsExperimental(class string) bool {
	return experimentalClasses[class]
}

// IsWASMExcluded reports whether class is missing from WASM builds.
func IsWASMExcluded(class string) bool {
	return wasmExcludedClasses[class]
}

// CfgAttribute renders the #[cfg(...)] guard a class needs, without a
// trailing newline, or "" when the class needs no gating. When both
// predicates apply they are conjoined with all(), WASM exclusion first.
// The guard must be identical everywhere a class appears, in both backends.
func CfgAttribute(class string) string {
	var predicates []string
	if IsWASMExcluded(class) {
		predicates = append(predicates, `not(feature = "experimental-wasm")`)
	}
	if IsExperimental(class) {
		predicates = append(predicates, `feature = "experimental-godot-api"`)
	}
	switch len(predicates) {
	case 0:
		return ""
	case 1:
		return "#[cfg(" + predicates[0] + ")]"
	default:
		return "#[cfg(all(" + predicates[0] + ", " + predicates[1] + "))]"
	}
}
