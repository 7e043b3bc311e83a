// Wavefront MTL material library parser.
package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/Faultbox/modelview/pkg/encoding"
)

// MTLMaterial is one newmtl block.
type MTLMaterial struct {
	Name       string
	Ambient    [3]float32
	Diffuse    [3]float32
	Specular   [3]float32
	HasDiffuse bool
	Shininess  float32
	Dissolve   float32

	MapAmbient  string // map_Ka
	MapDiffuse  string // map_Kd
	MapSpecular string // map_Ks
	MapBump     string // map_Bump, bump
	MapNormal   string // norm
}

// MTL is a parsed material library.
type MTL struct {
	Materials []*MTLMaterial
}

// Find returns the material with the given name.
func (m *MTL) Find(name string) (*MTLMaterial, bool) {
	for _, mat := range m.Materials {
		if mat.Name == name {
			return mat, true
		}
	}
	return nil, false
}

// ParseMTLFile reads and parses an MTL file from disk.
func ParseMTLFile(path string) (*MTL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading MTL file: %w", err)
	}
	return ParseMTL(data)
}

// ParseMTL parses material library data. Map statements keep only the file
// name, which is the last token after any options.
func ParseMTL(data []byte) (*MTL, error) {
	lib := &MTL{}
	var cur *MTLMaterial

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)

		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: newmtl without name: %w", lineNo, ErrMalformedOBJ)
			}
			cur = &MTLMaterial{Name: encoding.DecodeName(strings.Join(fields[1:], " ")), Dissolve: 1}
			lib.Materials = append(lib.Materials, cur)
			continue
		}
		if cur == nil {
			continue
		}

		var err error
		switch fields[0] {
		case "Ka":
			cur.Ambient, err = parseColor(fields[1:])
		case "Kd":
			cur.Diffuse, err = parseColor(fields[1:])
			cur.HasDiffuse = err == nil
		case "Ks":
			cur.Specular, err = parseColor(fields[1:])
		case "Ns":
			var v []float32
			if v, err = parseFloats(fields[1:], 1); err == nil {
				cur.Shininess = v[0]
			}
		case "d":
			var v []float32
			if v, err = parseFloats(fields[1:], 1); err == nil {
				cur.Dissolve = v[0]
			}
		case "map_Ka":
			cur.MapAmbient = lastField(fields)
		case "map_Kd":
			cur.MapDiffuse = lastField(fields)
		case "map_Ks":
			cur.MapSpecular = lastField(fields)
		case "map_Bump", "map_bump", "bump":
			cur.MapBump = lastField(fields)
		case "norm":
			cur.MapNormal = lastField(fields)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning MTL: %w", err)
	}
	return lib, nil
}

// parseColor accepts "r g b" or a single grey value.
func parseColor(fields []string) ([3]float32, error) {
	v, err := parseFloats(fields, 1)
	if err != nil {
		return [3]float32{}, err
	}
	if len(v) < 3 {
		return [3]float32{v[0], v[0], v[0]}, nil
	}
	return [3]float32{v[0], v[1], v[2]}, nil
}

func lastField(fields []string) string {
	if len(fields) < 2 {
		return ""
	}
	return fields[len(fields)-1]
}
