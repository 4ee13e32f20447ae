package xmlrpc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
)

// MethodFunc handles one XML-RPC method. params are the positional values of
// the call, decoded as documented on DecodeCall.
type MethodFunc func(ctx context.Context, params []any) (any, error)

// Methods is the dispatch table keyed by method name.
type Methods map[string]MethodFunc

// MethodsFilter receives the current dispatch table and returns it with its
// own entries added.
type MethodsFilter func(Methods) Methods

// Server dispatches decoded calls to the table built at construction time.
type Server struct {
	methods Methods
}

// NewServer builds the dispatch table from the built-in methods and then runs
// every filter in order over it.
func NewServer(filters ...MethodsFilter) *Server {
	s := &Server{}
	methods := Methods{
		"system.listMethods": s.listMethods,
		"demo.sayHello":      sayHello,
	}
	for _, filter := range filters {
		methods = filter(methods)
	}
	s.methods = methods
	return s
}

// MethodNames returns the registered method names sorted.
func (s *Server) MethodNames() []string {
	names := make([]string, 0, len(s.methods))
	for name := range s.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call invokes a registered method. Unknown methods yield a FaultMethodNotFound.
func (s *Server) Call(ctx context.Context, method string, params []any) (any, error) {
	fn, ok := s.methods[method]
	if !ok {
		return nil, NewFault(FaultMethodNotFound, "server error. requested method %s does not exist.", method)
	}
	return fn(ctx, params)
}

// Result is the outcome of serving one request body.
type Result struct {
	Method string
	Fault  *Fault
	Body   []byte
}

// Serve decodes a methodCall from r, dispatches it and encodes the response.
// Handler errors that are not a *Fault are reported as FaultInternalError.
func (s *Server) Serve(ctx context.Context, r io.Reader) Result {
	call, err := DecodeCall(r)
	if err != nil {
		return faultResult("", NewFault(FaultParseError, "parse error. not well formed"))
	}

	value, err := s.Call(ctx, call.Method, call.Params)
	if err != nil {
		var fault *Fault
		if !errors.As(err, &fault) {
			fault = NewFault(FaultInternalError, "%s", err.Error())
		}
		return faultResult(call.Method, fault)
	}

	var buf bytes.Buffer
	if err := EncodeResponse(&buf, value); err != nil {
		return faultResult(call.Method, NewFault(FaultInternalError, "server error. could not encode response: %s", err.Error()))
	}
	return Result{Method: call.Method, Body: buf.Bytes()}
}

func faultResult(method string, f *Fault) Result {
	var buf bytes.Buffer
	// a Fault always encodes: it is a struct of an int and a string
	_ = EncodeFault(&buf, f)
	return Result{Method: method, Fault: f, Body: buf.Bytes()}
}

func (s *Server) listMethods(_ context.Context, _ []any) (any, error) {
	return s.MethodNames(), nil
}

func sayHello(_ context.Context, _ []any) (any, error) {
	return "Hello!", nil
}
