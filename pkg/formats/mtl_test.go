package formats

import (
	"errors"
	"testing"
)

const sampleMTL = `# materials
newmtl Red
Ka 0.1 0.1 0.1
Kd 1 0 0
Ks 0.5
Ns 32
d 0.8
map_Kd -s 1 1 1 textures/red.png
map_Ks spec.png
bump -bm 0.5 bump.png
norm normal.png
map_Ka ao.png

newmtl Plain
`

func TestParseMTL(t *testing.T) {
	lib, err := ParseMTL([]byte(sampleMTL))
	if err != nil {
		t.Fatalf("ParseMTL: %v", err)
	}
	if len(lib.Materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(lib.Materials))
	}

	red, ok := lib.Find("Red")
	if !ok {
		t.Fatal("Red not found")
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"diffuse", red.Diffuse, [3]float32{1, 0, 0}},
		{"has diffuse", red.HasDiffuse, true},
		{"specular grey", red.Specular, [3]float32{0.5, 0.5, 0.5}},
		{"shininess", red.Shininess, float32(32)},
		{"dissolve", red.Dissolve, float32(0.8)},
		{"map_Kd drops options", red.MapDiffuse, "textures/red.png"},
		{"map_Ks", red.MapSpecular, "spec.png"},
		{"bump", red.MapBump, "bump.png"},
		{"norm", red.MapNormal, "normal.png"},
		{"map_Ka", red.MapAmbient, "ao.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	plain, _ := lib.Find("Plain")
	if plain.HasDiffuse {
		t.Error("Plain should have no diffuse color")
	}
	if plain.Dissolve != 1 {
		t.Errorf("default dissolve = %v, want 1", plain.Dissolve)
	}
	if _, ok := lib.Find("Missing"); ok {
		t.Error("Find should miss unknown material")
	}
}

func TestParseMTLErrors(t *testing.T) {
	if _, err := ParseMTL([]byte("newmtl\n")); !errors.Is(err, ErrMalformedOBJ) {
		t.Errorf("expected ErrMalformedOBJ for nameless newmtl, got %v", err)
	}
	if _, err := ParseMTL([]byte("newmtl A\nKd a b c\n")); !errors.Is(err, ErrMalformedOBJ) {
		t.Errorf("expected ErrMalformedOBJ for bad color, got %v", err)
	}
	// Statements before newmtl are ignored
	if _, err := ParseMTL([]byte("Kd 1 1 1\n")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLegacyEncodedNames(t *testing.T) {
	// "café" as written by a Windows-1252 exporter.
	mtl, err := ParseMTL([]byte("newmtl caf\xe9\nKd 1 1 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := mtl.Find("café"); !ok {
		t.Errorf("material names = %q, want café", mtl.Materials[0].Name)
	}

	obj, err := ParseOBJ([]byte("v 0 0 0\nv 1 0 0\nv 0 1 0\no caf\xe9\nusemtl caf\xe9\nf 1 2 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := obj.Objects[0]; got.Name != "café" || got.Material != "café" {
		t.Errorf("object = %q material = %q", got.Name, got.Material)
	}
}
