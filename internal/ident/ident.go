// Package ident rewrites Godot schema names into identifiers that are legal
// and idiomatic for the generated Rust sources.
package ident

import (
	"regexp"
	"strings"
	"unicode"
)

// Historical overrides for names the general folding rule gets wrong.
// godot-rust special-cases these literally, so we must too.
var classNameOverrides = map[string]string{
	"GPUParticlesCollisionSDF3D": "GpuParticlesCollisionSdf3d",
	"SkeletonIK3D":               "SkeletonIk3d",
}

// RustClassName folds Godot-style acronym runs into Rust-idiomatic casing.
//
// Each maximal run of 2+ uppercase letters is folded to Capitalized form
// (first letter kept, rest lowercased), unless the run is immediately
// followed by an uppercase-then-lowercase pair, in which case the run's
// final letter is the start of the next word and stays out of the fold.
// A run glued to a following digit or the end of the name folds whole.
//
//	CSGBox3D  → CsgBox3D
//	VoxelGI   → VoxelGi
//	XRAnchor3D → XrAnchor3D
//	LODGroup  → LodGroup
func RustClassName(name string) string {
	if override, ok := classNameOverrides[name]; ok {
		return override
	}

	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name))

	for i := 0; i < len(runes); {
		if !unicode.IsUpper(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}

		// Measure the maximal uppercase run starting here.
		end := i
		for end < len(runes) && unicode.IsUpper(runes[end]) {
			end++
		}
		runLen := end - i

		switch {
		case runLen < 2:
			b.WriteRune(runes[i])
		case end < len(runes) && unicode.IsLower(runes[end]):
			// The run's last letter starts the next capitalized word.
			// Fold the prefix only if it is still 2+ letters long.
			if runLen-1 >= 2 {
				b.WriteRune(runes[i])
				for _, r := range runes[i+1 : end-1] {
					b.WriteRune(unicode.ToLower(r))
				}
				b.WriteRune(runes[end-1])
			} else {
				for _, r := range runes[i:end] {
					b.WriteRune(r)
				}
			}
		case end == len(runes) || unicode.IsDigit(runes[end]):
			// Glued to a digit or at the end of the name: fold the whole run.
			b.WriteRune(runes[i])
			for _, r := range runes[i+1 : end] {
				b.WriteRune(unicode.ToLower(r))
			}
		default:
			for _, r := range runes[i:end] {
				b.WriteRune(r)
			}
		}
		i = end
	}

	return b.String()
}

var (
	camelBoundary   = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	underscoreRuns  = regexp.MustCompile(`_+`)
)

// ConstSentinel is the fallback constant name for signal names that are
// empty or normalize to nothing.
const ConstSentinel = "SIGNAL"

// ConstName converts a signal name to an UPPER_SNAKE_CASE constant name.
func ConstName(signalName string) string {
	if signalName == "" {
		return ConstSentinel
	}

	result := camelBoundary.ReplaceAllString(signalName, "${1}_${2}")
	result = nonAlphanumeric.ReplaceAllString(result, "_")
	result = strings.ToUpper(result)
	result = underscoreRuns.ReplaceAllString(result, "_")
	result = strings.Trim(result, "_")

	if result != "" && result[0] >= '0' && result[0] <= '9' {
		result = "_" + result
	}
	if result == "" {
		return ConstSentinel
	}
	return result
}
