package hlslbuild

import (
	"fmt"
	"path"
	"strings"

	"github.com/shadergraph/customfn"
)

// PathResolver resolves an opaque file reference to an include path.
// An empty result means the reference could not be resolved; callers fall
// back to the raw reference so includes stored by older versions keep
// working.
type PathResolver interface {
	Resolve(ref customfn.FileRef) string
}

// MapResolver is a PathResolver backed by a plain map.
type MapResolver map[customfn.FileRef]string

func (m MapResolver) Resolve(ref customfn.FileRef) string { return m[ref] }

// resolvePath applies the raw-reference fallback.
func resolvePath(r PathResolver, ref customfn.FileRef) string {
	if r != nil {
		if p := r.Resolve(ref); p != "" {
			return p
		}
	}
	return string(ref)
}

// DefaultExtensions is the accepted set of include file extensions.
var DefaultExtensions = []string{".hlsl", ".cginc"}

func extensionAccepted(p string, accepted []string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, a := range accepted {
		if ext == a {
			return true
		}
	}
	return false
}

// ValidSpec reports whether a function spec is configured well enough to
// generate a definition and call. Invalid specs suppress code generation
// for their node but never abort the surrounding pass.
func ValidSpec(spec customfn.FunctionSpec, resolver PathResolver, acceptedExts []string) bool {
	if spec.Name == "" || spec.Name == customfn.DefaultFunctionName {
		return false
	}
	switch spec.Mode {
	case customfn.SourceInline:
		return spec.Body != "" && spec.Body != customfn.DefaultFunctionBody
	case customfn.SourceFile:
		if spec.File == "" || spec.File == customfn.DefaultFunctionName {
			return false
		}
		return extensionAccepted(resolvePath(resolver, spec.File), acceptedExts)
	}
	return false
}

// NodeDiagnostics reports authoring problems on a node. These are cosmetic
// for graph editing purposes: a node with warnings still exists and may
// still generate a preview declaration, it just produces no call.
func NodeDiagnostics(node *customfn.FunctionNode, resolver PathResolver, acceptedExts []string) []Diagnostic {
	var diags []Diagnostic
	warnf := func(format string, args ...any) {
		diags = append(diags, Diagnostic{Severity: SeverityWarning, NodeID: node.ID, Message: fmt.Sprintf(format, args...)})
	}
	errf := func(format string, args ...any) {
		diags = append(diags, Diagnostic{Severity: SeverityError, NodeID: node.ID, Message: fmt.Sprintf(format, args...)})
	}

	if len(node.Outputs) == 0 {
		warnf("node has no output slots and will generate nothing")
	}
	if node.Spec.Name == "" || node.Spec.Name == customfn.DefaultFunctionName {
		warnf("function name is not set")
	}
	switch node.Spec.Mode {
	case customfn.SourceInline:
		if node.Spec.Body == "" || node.Spec.Body == customfn.DefaultFunctionBody {
			warnf("function body is not set")
		}
	case customfn.SourceFile:
		if node.Spec.File == "" {
			warnf("function source file is not set")
		} else {
			resolved := resolvePath(resolver, node.Spec.File)
			if resolver != nil && resolver.Resolve(node.Spec.File) == "" {
				warnf("source file %q could not be resolved", node.Spec.File)
			}
			if !extensionAccepted(resolved, acceptedExts) {
				errf("source file %q must have one of the extensions %v", resolved, acceptedExts)
			}
		}
	default:
		errf("unrecognized source mode %d", node.Spec.Mode)
	}

	// Sanitized slot names become header parameter names and must not collide.
	seen := make(map[string]string)
	for _, s := range append(append([]customfn.Slot{}, node.Inputs...), node.Outputs...) {
		clean := SanitizeIdentifier(s.Name)
		if prev, dup := seen[clean]; dup {
			errf("slot names %q and %q collide as parameter %q", prev, s.Name, clean)
		}
		seen[clean] = s.Name
		if s.Dir == customfn.DirInput && !s.Default.Finite() {
			warnf("input %q has a non-finite default value", s.Name)
		}
	}
	return diags
}
