// Package tools defines the tool surface: named operations with declared
// input shapes, and the dispatcher that routes a validated invocation to
// exactly one handler.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/forgebridge/forgebridge/pkg/envelope"
)

// Handler executes one tool invocation. Handlers catch their own remote-call
// failures and fold them into the envelope; a returned error is a fault that
// escaped the handler and is converted by the dispatcher as a last resort.
type Handler func(ctx context.Context, args json.RawMessage) (envelope.Result, error)

// Tool is a named operation exposed at the system boundary.
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"inputSchema"`
	Handler     Handler     `json:"-"`
}

// Registry holds the registered tools and dispatches invocations.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Registering two tools under one name is a
// programming error and is rejected.
func (r *Registry) Register(tool Tool) error {
	if tool.Name == "" {
		return fmt.Errorf("tool name is required")
	}
	if tool.Handler == nil {
		return fmt.Errorf("tool %q has no handler", tool.Name)
	}
	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("tool %q is already registered", tool.Name)
	}
	r.tools[tool.Name] = tool
	return nil
}

// MustRegister registers a tool and panics on conflict. Used at wiring time.
func (r *Registry) MustRegister(tool Tool) {
	if err := r.Register(tool); err != nil {
		panic(err)
	}
}

// List returns all registered tools sorted by name.
func (r *Registry) List() []Tool {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]Tool, 0, len(names))
	for _, name := range names {
		list = append(list, r.tools[name])
	}
	return list
}

// UnknownToolError rejects an invocation naming no registered tool.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// InvalidArgsError rejects an invocation whose arguments do not match the
// tool's declared input shape.
type InvalidArgsError struct {
	Tool   string
	Reason string
}

func (e *InvalidArgsError) Error() string {
	return fmt.Sprintf("invalid arguments for tool %s: %s", e.Tool, e.Reason)
}

// Dispatch invokes the named tool with the given argument bundle.
//
// Boundary rejections (unknown tool, schema-invalid arguments) return an
// error before any handler runs; the transport maps those to protocol
// errors. Once a handler runs, its envelope is returned unchanged, except
// that an error or panic escaping the handler is converted into a generic
// failure envelope rather than propagating a raw fault to the transport.
func (r *Registry) Dispatch(ctx context.Context, name string, args json.RawMessage) (result envelope.Result, err error) {
	tool, ok := r.tools[name]
	if !ok {
		return envelope.Result{}, &UnknownToolError{Name: name}
	}

	if verr := ValidateArgs(tool.InputSchema, args); verr != nil {
		return envelope.Result{}, &InvalidArgsError{Tool: name, Reason: verr.Error()}
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = envelope.Errorf("tool %s failed: %v", name, rec)
			err = nil
		}
	}()

	res, herr := tool.Handler(ctx, args)
	if herr != nil {
		return envelope.Errorf("tool %s failed: %v", name, herr), nil
	}
	return res, nil
}
