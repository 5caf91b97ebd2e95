// File: suite/feature.go

package suite

import "strings"

// Feature tags what a kernel exercises
type Feature uint32

const (
	FeatureForall Feature = 1 << iota
	FeatureWorkgroup
	FeatureReduction
	FeatureAtomic
	FeatureView
)

var featureNames = []struct {
	f    Feature
	name string
}{
	{FeatureForall, "Forall"},
	{FeatureWorkgroup, "Workgroup"},
	{FeatureReduction, "Reduction"},
	{FeatureAtomic, "Atomic"},
	{FeatureView, "View"},
}

// Has checks if every bit of f is set
func (fs Feature) Has(f Feature) bool {
	return fs&f == f
}

func (fs Feature) String() string {
	var parts []string
	for _, fn := range featureNames {
		if fs.Has(fn.f) {
			parts = append(parts, fn.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Group is the family a kernel belongs to
type Group int

const (
	Basic Group = iota + 1
	Stream
	Apps
	Polybench
)

func (g Group) String() string {
	switch g {
	case Basic:
		return "Basic"
	case Stream:
		return "Stream"
	case Apps:
		return "Apps"
	case Polybench:
		return "Polybench"
	default:
		return "Unknown"
	}
}
