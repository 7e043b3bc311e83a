package shader

import (
	"errors"
	"strings"
	"testing"

	"github.com/Faultbox/modelview/internal/engine/shader/shaders"
)

func TestCompileErrorMessage(t *testing.T) {
	tests := []struct {
		err  *CompileError
		want string
	}{
		{&CompileError{Name: "default", Stage: StageVertex, Log: "bad token"}, "default: vertex shader: bad token"},
		{&CompileError{Name: "line", Stage: StageFragment, Log: "x"}, "line: fragment shader: x"},
		{&CompileError{Name: "skybox", Stage: StageLink, Log: "no main"}, "skybox: link: no main"},
	}
	for _, tt := range tests {
		t.Run(string(tt.err.Stage), func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompileErrorAs(t *testing.T) {
	var err error = &CompileError{Stage: StageFragment}
	var ce *CompileError
	if !errors.As(err, &ce) || ce.Stage != StageFragment {
		t.Errorf("errors.As failed for %v", err)
	}
}

func TestZeroProgramInvalid(t *testing.T) {
	var p *Program
	if p.Valid() {
		t.Error("nil program should be invalid")
	}
	if (&Program{}).Valid() {
		t.Error("zero program should be invalid")
	}
	if !(&Program{id: 3}).Valid() {
		t.Error("program with id should be valid")
	}
}

func TestLoadMissingFile(t *testing.T) {
	p, err := Load("x", "/nonexistent/a.vert", "/nonexistent/a.frag")
	if err == nil || !strings.Contains(err.Error(), "vertex") {
		t.Errorf("expected vertex read error, got %v", err)
	}
	if p == nil || p.Valid() || p.Name() != "x" {
		t.Errorf("failed load should return an invalid named program, got %+v", p)
	}
}

func TestEmbeddedSources(t *testing.T) {
	sources := map[string]string{
		"default.vert": shaders.DefaultVertexShader,
		"default.frag": shaders.DefaultFragmentShader,
		"line.vert":    shaders.LineVertexShader,
		"line.frag":    shaders.LineFragmentShader,
		"skybox.vert":  shaders.SkyboxVertexShader,
		"skybox.frag":  shaders.SkyboxFragmentShader,
	}
	for name, src := range sources {
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Errorf("%s: missing version header", name)
		}
	}

	// Uniform names the engine binds by string
	for _, u := range []string{"u_Model", "u_View", "u_Projection"} {
		if !strings.Contains(shaders.DefaultVertexShader, u) {
			t.Errorf("default.vert missing %s", u)
		}
	}
	for _, u := range []string{"u_HasTexture", "u_HasDiffuse", "u_BaseColor", "texture_diffuse1", "u_LightDir", "u_LightColor", "u_Ambient"} {
		if !strings.Contains(shaders.DefaultFragmentShader, u) {
			t.Errorf("default.frag missing %s", u)
		}
	}
	if !strings.Contains(shaders.LineFragmentShader, "u_Color") {
		t.Error("line.frag missing u_Color")
	}
}
