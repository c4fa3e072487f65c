//go:build !tinygo && cgo

package glcheck

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/all-core/gl"
	"github.com/soypat/glgl/v4.6-core/glgl"
)

// Init1x1GLFW starts a 1x1 sized GLFW window so compile checks have a GL
// context. Call the returned terminate function when done with the GPU.
func Init1x1GLFW() (terminate func(), err error) {
	_, terminate, err = glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:   "compile-check",
		Version: [2]int{4, 6},
		Width:   1,
		Height:  1,
	})
	return terminate, err
}

// CompileCheck compiles source as a compute program on the current GL
// context and discards the program. A nil return means the driver accepted
// the generated code.
func CompileCheck(source string) error {
	prog, err := glgl.CompileProgram(glgl.ShaderSource{Compute: source})
	if err != nil {
		return errors.New(source + "\n" + err.Error())
	}
	prog.Delete()
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("GL error 0x%x after compile check", code)
	}
	return nil
}
