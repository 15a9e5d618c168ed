package parallax

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"

	"github.com/hajimehoshi/ebiten/v2"
)

// quadShaderSrc samples one texture and scales it by a single alpha
// uniform. Ebitengine works in premultiplied alpha, so all four channels
// are scaled.
const quadShaderSrc = `//kage:unit pixels
package main

var Alpha float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	return imageSrc0At(src) * Alpha
}
`

// ProgramStage identifies where building a shader program failed.
type ProgramStage uint8

const (
	StageCompile ProgramStage = iota // source did not compile
	StageLink                        // compiled, but a required uniform is missing
)

func (s ProgramStage) String() string {
	switch s {
	case StageCompile:
		return "compile"
	case StageLink:
		return "link"
	}
	return "unknown"
}

// ProgramError is returned by BuildProgram.
type ProgramError struct {
	Stage ProgramStage
	Err   error
}

func (e *ProgramError) Error() string {
	return fmt.Sprintf("parallax: shader %s: %v", e.Stage, e.Err)
}

func (e *ProgramError) Unwrap() error { return e.Err }

// Program is a compiled shader together with the uniforms it declares.
type Program struct {
	shader   *ebiten.Shader
	uniforms map[string]struct{}
}

// BuildProgram compiles Kage source and checks that every required uniform
// is declared. Errors are always *ProgramError.
func BuildProgram(src []byte, required ...string) (*Program, error) {
	shader, err := ebiten.NewShader(src)
	if err != nil {
		return nil, &ProgramError{Stage: StageCompile, Err: err}
	}
	uniforms, err := kageUniforms(src)
	if err != nil {
		shader.Deallocate()
		return nil, &ProgramError{Stage: StageLink, Err: err}
	}
	for _, name := range required {
		if _, ok := uniforms[name]; !ok {
			shader.Deallocate()
			return nil, &ProgramError{Stage: StageLink, Err: fmt.Errorf("uniform %q not declared", name)}
		}
	}
	return &Program{shader: shader, uniforms: uniforms}, nil
}

// HasUniform reports whether the program declares the named uniform.
func (p *Program) HasUniform(name string) bool {
	_, ok := p.uniforms[name]
	return ok
}

// Shader returns the compiled shader.
func (p *Program) Shader() *ebiten.Shader { return p.shader }

// Deallocate releases the shader.
func (p *Program) Deallocate() {
	if p.shader != nil {
		p.shader.Deallocate()
		p.shader = nil
	}
}

// kageUniforms lists the package-level variables of a Kage program. Kage
// is Go syntax, and its package-level variables are its uniforms.
func kageUniforms(src []byte) (map[string]struct{}, error) {
	f, err := parser.ParseFile(token.NewFileSet(), "shader.kage", src, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}
	uniforms := make(map[string]struct{})
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.VAR {
			continue
		}
		for _, spec := range gd.Specs {
			vs := spec.(*ast.ValueSpec)
			for _, name := range vs.Names {
				uniforms[name.Name] = struct{}{}
			}
		}
	}
	return uniforms, nil
}
