// File path: internal/dispatch/dispatcher.go

// Package dispatch validates and executes the named side-effecting
// functions the generation service may call: ticket creation and lookup,
// system status, and directory search.
package dispatch

import (
	"fmt"

	"github.com/deskmate-ai/deskmate/internal/common"
)

// ValidationError reports a call whose arguments violate the function's
// declared schema. It names the offending field and is raised before any
// execution happens.
type ValidationError struct {
	Function string
	Field    string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid call to %s: field %q %s", e.Function, e.Field, e.Reason)
}

// UnknownFunctionResult is the structured payload returned when the model
// names a function that does not exist. It is a result, not an error, so a
// hallucinated name never escapes the dispatcher as a fault.
type UnknownFunctionResult struct {
	Error string `json:"error"`
}

// Dispatcher routes validated function calls to their implementations. The
// ticket store is shared process-wide mutable state; the status table and
// roster are fixed.
type Dispatcher struct {
	tickets TicketStore
	specs   []Spec
	byName  map[string]Spec
}

func New(tickets TicketStore) *Dispatcher {
	if tickets == nil {
		tickets = NewMemoryTicketStore(nil)
	}
	specs := Specs()
	byName := make(map[string]Spec, len(specs))
	for _, spec := range specs {
		byName[spec.Name] = spec
	}
	return &Dispatcher{tickets: tickets, specs: specs, byName: byName}
}

// Specs returns the declarations of every dispatchable function.
func (d *Dispatcher) Specs() []Spec {
	return d.specs
}

// Tickets exposes the backing ticket store for direct (non-model) callers.
func (d *Dispatcher) Tickets() TicketStore {
	return d.tickets
}

// Dispatch validates the named call against its schema and executes it.
// Unknown names return an UnknownFunctionResult; schema violations return a
// *ValidationError before any side effect occurs.
func (d *Dispatcher) Dispatch(name string, args map[string]interface{}) (interface{}, error) {
	logger := common.Logger()
	spec, ok := d.byName[name]
	if !ok {
		logger.Warn("dispatch: unknown function requested", "function", name)
		return UnknownFunctionResult{Error: fmt.Sprintf("Function %s not found", name)}, nil
	}
	if err := validate(spec, args); err != nil {
		logger.Warn("dispatch: argument validation failed", "function", name, "error", err)
		return nil, err
	}
	logger.Info("dispatch: executing function", "function", name)
	switch name {
	case "create_support_ticket":
		priority := stringArg(args, "priority")
		if priority == "" {
			priority = "medium"
		}
		return d.tickets.Create(
			stringArg(args, "title"),
			stringArg(args, "description"),
			stringArg(args, "category"),
			priority,
		)
	case "check_ticket_status":
		return StatusOf(d.tickets, stringArg(args, "ticket_id")), nil
	case "check_system_status":
		return CheckSystemStatus(stringArg(args, "system_name")), nil
	case "search_employee_directory":
		return SearchDirectory(
			stringArg(args, "name"),
			stringArg(args, "department"),
			stringArg(args, "email"),
		), nil
	default:
		// Declared but unrouted specs are a programming error.
		return nil, fmt.Errorf("function %s declared but not implemented", name)
	}
}

func validate(spec Spec, args map[string]interface{}) error {
	for _, field := range spec.Required {
		value, ok := args[field]
		if !ok {
			return &ValidationError{Function: spec.Name, Field: field, Reason: "is required"}
		}
		str, isString := value.(string)
		if !isString || str == "" {
			return &ValidationError{Function: spec.Name, Field: field, Reason: "must be a non-empty string"}
		}
	}
	for field, value := range args {
		param, declared := spec.Properties[field]
		if !declared {
			return &ValidationError{Function: spec.Name, Field: field, Reason: "is not a declared parameter"}
		}
		str, isString := value.(string)
		if !isString {
			return &ValidationError{Function: spec.Name, Field: field, Reason: fmt.Sprintf("must be of type %s", param.Type)}
		}
		if len(param.Enum) > 0 && !param.AdvisoryEnum && str != "" && !contains(param.Enum, str) {
			return &ValidationError{Function: spec.Name, Field: field, Reason: fmt.Sprintf("must be one of %v", param.Enum)}
		}
	}
	return nil
}

func stringArg(args map[string]interface{}, key string) string {
	value, ok := args[key]
	if !ok {
		return ""
	}
	str, _ := value.(string)
	return str
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
