package parallax

import (
	"errors"
	"testing"
)

func TestKageUniforms(t *testing.T) {
	src := []byte(`//kage:unit pixels
package main

var Alpha float
var (
	Time   float
	Offset vec2
)

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	var local float
	local = Alpha
	return imageSrc0At(src) * local
}
`)
	got, err := kageUniforms(src)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"Alpha", "Time", "Offset"} {
		if _, ok := got[name]; !ok {
			t.Errorf("uniform %q not found", name)
		}
	}
	if _, ok := got["local"]; ok {
		t.Error("function-local var reported as uniform")
	}
	if len(got) != 3 {
		t.Errorf("uniforms = %v, want 3", got)
	}
}

func TestBuildProgramCompileError(t *testing.T) {
	_, err := BuildProgram([]byte("this is not kage"), "Alpha")
	var perr *ProgramError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ProgramError", err)
	}
	if perr.Stage != StageCompile {
		t.Errorf("stage = %v, want compile", perr.Stage)
	}
}

func TestBuildProgramMissingUniform(t *testing.T) {
	src := []byte(`//kage:unit pixels
package main

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	return imageSrc0At(src)
}
`)
	_, err := BuildProgram(src, "Alpha")
	var perr *ProgramError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ProgramError", err)
	}
	if perr.Stage != StageLink {
		t.Errorf("stage = %v, want link", perr.Stage)
	}
}

func TestBuildProgramBuiltin(t *testing.T) {
	p, err := BuildProgram([]byte(quadShaderSrc), "Alpha")
	if err != nil {
		t.Fatal(err)
	}
	if !p.HasUniform("Alpha") {
		t.Error("built-in shader should declare Alpha")
	}
	if p.Shader() == nil {
		t.Error("shader is nil")
	}
}

func TestProgramError(t *testing.T) {
	inner := errors.New("boom")
	err := &ProgramError{Stage: StageLink, Err: inner}
	if !errors.Is(err, inner) {
		t.Error("ProgramError should unwrap to its cause")
	}
	if got, want := err.Error(), "parallax: shader link: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := ProgramStage(9).String(); got != "unknown" {
		t.Errorf("String() = %q", got)
	}
}
