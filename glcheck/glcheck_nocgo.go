//go:build tinygo || !cgo

package glcheck

import "errors"

var errNoCGO = errors.New("GPU compile check requires CGo and is not supported on TinyGo")

// Init1x1GLFW starts a 1x1 sized GLFW window so compile checks have a GL
// context. Requires CGo.
func Init1x1GLFW() (terminate func(), err error) {
	return nil, errNoCGO
}

// CompileCheck compiles source as a compute program on the current GL
// context. Requires CGo.
func CompileCheck(source string) error {
	return errNoCGO
}
