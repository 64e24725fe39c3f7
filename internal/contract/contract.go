package contract

import (
	"fmt"
	"strings"
)

// Operation is one registered contract entry. Entries are immutable after
// Define; both consumers read them concurrently without locking.
type Operation struct {
	Key       string
	Method    string
	Path      string
	Input     Schema
	Responses map[int]Schema
}

// Registry holds every operation declaration. It is populated once during
// process initialization and read-only afterwards.
type Registry struct {
	ops map[string]*Operation
}

func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]*Operation)}
}

// Define registers an operation. Registration problems are configuration
// errors, fatal at startup: a duplicate key, a malformed path template
// (must start with "/", parameters as ":name"), or an empty response set
// all panic.
func (r *Registry) Define(key, method, path string, input Schema, responses map[int]Schema) *Operation {
	if _, dup := r.ops[key]; dup {
		panic(fmt.Sprintf("contract: operation %q already defined", key))
	}
	if err := checkPath(path); err != nil {
		panic(fmt.Sprintf("contract: operation %q: %v", key, err))
	}
	if len(responses) == 0 {
		panic(fmt.Sprintf("contract: operation %q has no response schemas", key))
	}
	resp := make(map[int]Schema, len(responses))
	for status, s := range responses {
		resp[status] = s
	}
	op := &Operation{Key: key, Method: method, Path: path, Input: input, Responses: resp}
	r.ops[key] = op
	return op
}

// Resolve returns the operation registered under key.
func (r *Registry) Resolve(key string) (*Operation, error) {
	op, ok := r.ops[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, key)
	}
	return op, nil
}

// MustResolve is Resolve for startup wiring, where keys are constants and
// a miss is a programming error.
func (r *Registry) MustResolve(key string) *Operation {
	op, err := r.Resolve(key)
	if err != nil {
		panic(err)
	}
	return op
}

// BuildPath substitutes :name placeholders with the supplied values.
// Values are inserted verbatim; callers must pass URL-safe strings.
func (o *Operation) BuildPath(params map[string]string) (string, error) {
	if !strings.Contains(o.Path, ":") {
		return o.Path, nil
	}
	segs := strings.Split(o.Path, "/")
	for i, seg := range segs {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		name := seg[1:]
		val, ok := params[name]
		if !ok {
			return "", &MissingPathParamError{Param: name}
		}
		segs[i] = val
	}
	return strings.Join(segs, "/"), nil
}

// ValidateResponse checks a response body value against the schema
// registered for status. An unregistered status is a contract violation.
func (o *Operation) ValidateResponse(status int, v any) error {
	s, ok := o.Responses[status]
	if !ok {
		return &ContractViolationError{Key: o.Key, Status: status}
	}
	if err := s.Validate(v); err != nil {
		return &ContractViolationError{Key: o.Key, Status: status, Err: err}
	}
	return nil
}

func checkPath(path string) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path template %q must start with /", path)
	}
	for _, seg := range strings.Split(path[1:], "/") {
		if seg == ":" {
			return fmt.Errorf("path template %q has an unnamed parameter", path)
		}
	}
	return nil
}
