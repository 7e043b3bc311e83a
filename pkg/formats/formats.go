// Package formats parses the text model formats the importer reads
// directly: Wavefront OBJ geometry and MTL material libraries.
package formats
