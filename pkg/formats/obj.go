// Wavefront OBJ geometry parser.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/modelview/pkg/encoding"
)

// OBJ format errors.
var (
	ErrMalformedOBJ    = errors.New("malformed OBJ statement")
	ErrInvalidOBJIndex = errors.New("OBJ index out of range")
	ErrEmptyOBJ        = errors.New("OBJ has no geometry")
)

// OBJIndex references one corner of an element. Indices are 0-based; -1 means absent.
type OBJIndex struct {
	V  int
	VT int
	VN int
}

// OBJFace is one element: 1 corner for points, 2 for lines, 3+ for polygons.
type OBJFace struct {
	Corners []OBJIndex
}

// OBJObject is a run of faces sharing an object/group name and material.
type OBJObject struct {
	Name     string
	Material string
	Faces    []OBJFace
}

// OBJ is a parsed Wavefront OBJ file. Faces are left as written, untriangulated.
type OBJ struct {
	Positions    [][3]float32
	Normals      [][3]float32
	TexCoords    [][2]float32
	Objects      []*OBJObject
	MaterialLibs []string
}

// HasNormals reports whether any vn statements were present.
func (o *OBJ) HasNormals() bool { return len(o.Normals) > 0 }

// HasTexCoords reports whether any vt statements were present.
func (o *OBJ) HasTexCoords() bool { return len(o.TexCoords) > 0 }

// ParseOBJFile reads and parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data)
}

// ParseOBJ parses OBJ data. A new object starts on each o/g statement and
// whenever usemtl changes the material of an object that already has faces.
func ParseOBJ(data []byte) (*OBJ, error) {
	obj := &OBJ{}
	cur := &OBJObject{Name: "default"}

	flush := func() {
		if len(cur.Faces) > 0 {
			obj.Objects = append(obj.Objects, cur)
		}
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			obj.Positions = append(obj.Positions, [3]float32{v[0], v[1], v[2]})

		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			obj.Normals = append(obj.Normals, [3]float32{v[0], v[1], v[2]})

		case "vt":
			// w is optional and ignored
			v, err := parseFloats(fields[1:], 1)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			var uv [2]float32
			uv[0] = v[0]
			if len(v) > 1 {
				uv[1] = v[1]
			}
			obj.TexCoords = append(obj.TexCoords, uv)

		case "o", "g":
			flush()
			name := "default"
			if len(fields) > 1 {
				name = encoding.DecodeName(strings.Join(fields[1:], " "))
			}
			cur = &OBJObject{Name: name, Material: cur.Material}

		case "usemtl":
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: usemtl without name: %w", lineNo, ErrMalformedOBJ)
			}
			mat := encoding.DecodeName(strings.Join(fields[1:], " "))
			if len(cur.Faces) > 0 && mat != cur.Material {
				flush()
				cur = &OBJObject{Name: cur.Name}
			}
			cur.Material = mat

		case "mtllib":
			obj.MaterialLibs = append(obj.MaterialLibs, fields[1:]...)

		case "f", "l", "p":
			need := map[string]int{"f": 3, "l": 2, "p": 1}[fields[0]]
			if len(fields)-1 < need {
				return nil, fmt.Errorf("line %d: %s needs %d corners: %w", lineNo, fields[0], need, ErrMalformedOBJ)
			}
			face := OBJFace{Corners: make([]OBJIndex, 0, len(fields)-1)}
			for _, tok := range fields[1:] {
				idx, err := obj.parseCorner(tok)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				face.Corners = append(face.Corners, idx)
			}
			if fields[0] == "p" {
				// Each point is its own element
				for _, c := range face.Corners {
					cur.Faces = append(cur.Faces, OBJFace{Corners: []OBJIndex{c}})
				}
				continue
			}
			if fields[0] == "l" && len(face.Corners) > 2 {
				// Polyline becomes segments
				for i := 0; i+1 < len(face.Corners); i++ {
					cur.Faces = append(cur.Faces, OBJFace{Corners: []OBJIndex{face.Corners[i], face.Corners[i+1]}})
				}
				continue
			}
			cur.Faces = append(cur.Faces, face)
		}
		// Other statements (s, vp, curves) are ignored
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning OBJ: %w", err)
	}

	flush()
	if len(obj.Objects) == 0 {
		return nil, ErrEmptyOBJ
	}
	return obj, nil
}

// parseCorner parses "v", "v/vt", "v//vn" or "v/vt/vn". Negative indices are
// relative to the current end of each list.
func (o *OBJ) parseCorner(tok string) (OBJIndex, error) {
	parts := strings.Split(tok, "/")
	if len(parts) > 3 || parts[0] == "" {
		return OBJIndex{}, fmt.Errorf("corner %q: %w", tok, ErrMalformedOBJ)
	}

	res := OBJIndex{V: -1, VT: -1, VN: -1}
	var err error
	if res.V, err = resolveIndex(parts[0], len(o.Positions)); err != nil {
		return res, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if res.VT, err = resolveIndex(parts[1], len(o.TexCoords)); err != nil {
			return res, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if res.VN, err = resolveIndex(parts[2], len(o.Normals)); err != nil {
			return res, err
		}
	}
	return res, nil
}

func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1, fmt.Errorf("index %q: %w", s, ErrMalformedOBJ)
	}
	idx := n - 1
	if n < 0 {
		idx = count + n
	}
	if n == 0 || idx < 0 || idx >= count {
		return -1, fmt.Errorf("index %d of %d: %w", n, count, ErrInvalidOBJIndex)
	}
	return idx, nil
}

// parseFloats parses at least need float fields.
func parseFloats(fields []string, need int) ([]float32, error) {
	if len(fields) < need {
		return nil, fmt.Errorf("expected %d values, got %d: %w", need, len(fields), ErrMalformedOBJ)
	}
	out := make([]float32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", f, ErrMalformedOBJ)
		}
		out = append(out, float32(v))
	}
	return out, nil
}
