package hlslbuild

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/shadergraph/customfn"
)

// Programmer implements source generation for a customfn graph. It owns the
// function registry and diagnostics of one generation pass; passes run on
// the calling goroutine with no shared state, so a Programmer must not be
// used concurrently.
type Programmer struct {
	// Dialect, Precision and Mode configure rendering of the whole pass.
	Dialect   Dialect
	Precision Precision
	Mode      GenerationMode
	// Resolver maps file references to include paths. Unresolved references
	// fall back to their raw string.
	Resolver PathResolver
	// Adapter converts producer output expressions to consumer slot types.
	// Nil selects the built-in cast/swizzle adapter.
	Adapter ExpressionAdapter
	// AcceptedExtensions gates file-mode definitions. Nil selects
	// DefaultExtensions.
	AcceptedExtensions []string
	// EntryName names the generated graph evaluation function.
	EntryName string
	// InvocX is the compute work group X size used by WriteComputeShader.
	InvocX int

	registry *Registry
	sources  []FunctionSource
	diags    []Diagnostic
	scratch  []byte
}

// NewDefaultProgrammer returns a Programmer generating HLSL at float
// precision in final mode.
func NewDefaultProgrammer() *Programmer {
	return &Programmer{
		Dialect:   DialectHLSL,
		Precision: PrecisionFloat,
		Mode:      ModeFinal,
		EntryName: "EvaluateGraph",
		InvocX:    32,
		registry:  NewRegistry(),
		scratch:   make([]byte, 0, 1024),
	}
}

// FunctionSource is a pre-written function definition injected verbatim at
// the top of generated source, ahead of all node definitions. Inline node
// bodies may call these helpers by name.
type FunctionSource struct {
	// Name is the function identifier parsed from Source, including any
	// precision suffix. It is the registry identity of the definition.
	Name string
	// Source is the complete function definition.
	Source []byte
}

// MakeFunctionSource parses a function definition of the form
// "<ret> <name>(<params>) {...}" into a FunctionSource.
func MakeFunctionSource(def []byte) (FunctionSource, error) {
	def = bytes.TrimSpace(def)
	nameEnd := bytes.IndexByte(def, '(')
	nameStart := bytes.IndexByte(def, ' ')
	if nameEnd < 0 || nameStart < 0 || nameStart > nameEnd {
		return FunctionSource{}, newError(ErrBadSnippet, "unable to parse function name")
	}
	name := bytes.TrimSpace(def[nameStart:nameEnd])
	if len(name) == 0 {
		return FunctionSource{}, newError(ErrBadSnippet, "empty function name")
	}
	return FunctionSource{Name: string(name), Source: def}, nil
}

// RegisterSource queues a helper definition for every subsequent pass.
func (p *Programmer) RegisterSource(src FunctionSource) error {
	if src.Name == "" || len(src.Source) == 0 {
		return newError(ErrBadSnippet, "function source missing name or body")
	}
	p.sources = append(p.sources, src)
	return nil
}

// Diagnostics returns the authoring diagnostics of the last pass.
func (p *Programmer) Diagnostics() []Diagnostic { return p.diags }

// Registry exposes the function registry of the last pass.
func (p *Programmer) Registry() *Registry { return p.registry }

func (p *Programmer) accepted() []string {
	if p.AcceptedExtensions == nil {
		return DefaultExtensions
	}
	return p.AcceptedExtensions
}

func (p *Programmer) adapter() ExpressionAdapter {
	if p.Adapter != nil {
		return p.Adapter
	}
	return castAdapter{dialect: p.Dialect, precision: p.Precision}
}

func (p *Programmer) entryName() string {
	if p.EntryName == "" {
		return "EvaluateGraph"
	}
	return p.EntryName
}

// ValidNode reports whether the node's function spec allows code generation
// under this Programmer's configuration.
func (p *Programmer) ValidNode(node *customfn.FunctionNode) bool {
	return ValidSpec(node.Spec, p.Resolver, p.accepted())
}

// ProvideFunction registers the node's function definition with the pass
// registry: an include directive for file definitions, a header plus the
// verbatim body for inline definitions. Invalid nodes are a silent no-op.
// The registry guarantees at most one write per identity; colliding inline
// definitions surface as an ErrDuplicateFunction fault.
func (p *Programmer) ProvideFunction(node *customfn.FunctionNode) (written bool, err error) {
	if p.registry == nil {
		p.registry = NewRegistry()
	}
	if !p.ValidNode(node) {
		return false, nil
	}
	switch node.Spec.Mode {
	case customfn.SourceFile:
		path := resolvePath(p.Resolver, node.Spec.File)
		return p.registry.Provide(path, func(dst []byte) []byte {
			dst = append(dst, "#include \""...)
			dst = append(dst, path...)
			dst = append(dst, "\"\n"...)
			return dst
		})
	case customfn.SourceInline:
		return p.registry.Provide(node.Spec.Name, func(dst []byte) []byte {
			dst = AppendFunctionHeader(dst, node.Spec, node.Inputs, node.Outputs, p.Dialect, p.Precision)
			dst = append(dst, " {\n"...)
			dst = append(dst, node.Spec.Body...)
			dst = append(dst, "\n}\n"...)
			return dst
		})
	}
	return false, newError(ErrUnsupportedSourceMode, "node %d has source mode %d", node.ID, node.Spec.Mode)
}

// resolveInput produces the value expression for an input slot: the adapted
// producer expression when wired, the slot default literal otherwise.
// Dangling edges resolve to the empty expression; the resulting hole in the
// generated call is reported by the downstream shader compiler, not here.
func (p *Programmer) resolveInput(g *customfn.Graph, node *customfn.FunctionNode, slot customfn.Slot) string {
	if edge, wired := g.Incoming(node.ID, slot.ID); wired {
		producer, ok := g.Node(edge.FromNode)
		if !ok {
			return ""
		}
		return p.adapter().Adapt(producer, edge.FromSlot, slot.Type)
	}
	if slot.Default.Kind() == slot.Type {
		return string(AppendValue(nil, slot.Default, p.Dialect, p.Precision))
	}
	return string(AppendZeroValue(nil, slot.Type, p.Dialect, p.Precision))
}

// WriteSource generates the complete source for the graph: helper sources
// and deduplicated function definitions first, then an entry function
// containing every node's call site in dependency order. Authoring problems
// are collected as diagnostics and never stop generation of sibling nodes;
// only programming faults and writer failures return an error.
func (p *Programmer) WriteSource(w io.Writer, g *customfn.Graph) (n int, err error) {
	p.diags = p.diags[:0]
	if p.registry == nil {
		p.registry = NewRegistry()
	}
	p.registry.Reset()

	sorted, err := g.SortedByDependency()
	if err != nil {
		return 0, newError(ErrGraph, "%s", err.Error())
	}
	for _, src := range p.sources {
		if _, err := p.registry.Provide(src.Name, func(dst []byte) []byte {
			dst = append(dst, src.Source...)
			dst = append(dst, '\n')
			return dst
		}); err != nil {
			return 0, err
		}
	}

	body := p.scratch[:0]
	for _, node := range sorted {
		p.diags = append(p.diags, NodeDiagnostics(node, p.Resolver, p.accepted())...)
		valid := p.ValidNode(node)
		if valid {
			if _, err := p.ProvideFunction(node); err != nil {
				var genErr *Error
				if errors.As(err, &genErr) && genErr.Kind == ErrDuplicateFunction {
					// First definition wins; keep compiling sibling nodes.
					p.diags = append(p.diags, Diagnostic{
						Severity: SeverityError,
						NodeID:   node.ID,
						Message:  genErr.Message,
					})
				} else {
					return n, err
				}
			}
		}
		body = AppendCallSite(body, node, valid, p.Mode, func(s customfn.Slot) string {
			return p.resolveInput(g, node, s)
		}, p.Dialect, p.Precision)
	}
	p.scratch = body[:0]

	ngot, err := w.Write(p.registry.Bytes())
	n += ngot
	if err != nil {
		return n, err
	}
	ngot, err = fmt.Fprintf(w, "\nvoid %s_%s() {\n", p.entryName(), p.Precision.Suffix())
	n += ngot
	if err != nil {
		return n, err
	}
	ngot, err = w.Write(body)
	n += ngot
	if err != nil {
		return n, err
	}
	ngot, err = io.WriteString(w, "}\n")
	n += ngot
	return n, err
}

// WriteComputeShader generates a standalone GLSL compute program evaluating
// the graph, suitable for compile verification on a GL context. The
// Programmer must be configured with DialectGLSL; include-based (file mode)
// definitions cannot appear since GL compilers take a single source string.
func (p *Programmer) WriteComputeShader(w io.Writer, g *customfn.Graph) (n int, err error) {
	if p.Dialect != DialectGLSL {
		return 0, errors.New("compute shader generation requires DialectGLSL")
	}
	invocX := p.InvocX
	if invocX < 1 {
		invocX = 32
	}
	n, err = fmt.Fprintf(w, "#version 430\nlayout(local_size_x = %d, local_size_y = 1, local_size_z = 1) in;\n\n", invocX)
	if err != nil {
		return n, err
	}
	ngot, err := p.WriteSource(w, g)
	n += ngot
	if err != nil {
		return n, err
	}
	if bytes.Contains(p.registry.Bytes(), []byte("#include")) {
		return n, errors.New("compute shader generation does not support file mode includes")
	}
	ngot, err = fmt.Fprintf(w, "\nvoid main() {\n\t%s_%s();\n}\n", p.entryName(), p.Precision.Suffix())
	n += ngot
	return n, err
}
