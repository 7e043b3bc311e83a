package importer

import (
	"path/filepath"
	"strings"
)

// Flags selects post-processing steps.
type Flags uint32

const (
	Triangulate Flags = 1 << iota
	JoinIdenticalVertices
	CalcTangentSpace
	LimitBoneWeights
	SortByPType
	FlipUVs
	GenNormals
)

// DefaultFlags are requested for every file.
const DefaultFlags = Triangulate | JoinIdenticalVertices | CalcTangentSpace | LimitBoneWeights | SortByPType

var flagNames = []struct {
	flag Flags
	name string
}{
	{Triangulate, "Triangulate"},
	{JoinIdenticalVertices, "JoinIdenticalVertices"},
	{CalcTangentSpace, "CalcTangentSpace"},
	{LimitBoneWeights, "LimitBoneWeights"},
	{SortByPType, "SortByPType"},
	{FlipUVs, "FlipUVs"},
	{GenNormals, "GenNormals"},
}

// Has reports whether all bits of o are set.
func (f Flags) Has(o Flags) bool { return f&o == o }

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// FlagsForPath returns the post-processing flags for a model file, keyed on
// the lower-cased extension: .obj adds FlipUVs and .fbx adds GenNormals.
func FlagsForPath(path string) Flags {
	flags := DefaultFlags
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		flags |= FlipUVs
	case ".fbx":
		flags |= GenNormals
	}
	return flags
}
