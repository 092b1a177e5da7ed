// File path: internal/dispatch/dispatcher_test.go
package dispatch

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

func ticketArgs() map[string]interface{} {
	return map[string]interface{}{
		"title":       "VPN down",
		"description": "Cannot connect to the VPN since this morning",
		"category":    "network",
		"priority":    "high",
	}
}

func TestDispatchCreateTicket(t *testing.T) {
	d := New(nil)
	result, err := d.Dispatch("create_support_ticket", ticketArgs())
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	ticket, ok := result.(Ticket)
	if !ok {
		t.Fatalf("expected Ticket result, got %T", result)
	}
	if !regexp.MustCompile(`^INC\d{4,}$`).MatchString(ticket.TicketID) {
		t.Fatalf("unexpected ticket id %q", ticket.TicketID)
	}
	if ticket.Status != "open" {
		t.Fatalf("new ticket status should be open, got %q", ticket.Status)
	}
	if ticket.EstimatedResolution != "4-8 hours" {
		t.Fatalf("high priority resolution mismatch: %q", ticket.EstimatedResolution)
	}
	if ticket.AssignedTo != "IT Support Team" {
		t.Fatalf("unexpected assignee %q", ticket.AssignedTo)
	}
}

func TestTicketIDsStrictlyIncreasing(t *testing.T) {
	d := New(nil)
	prev := 0
	for i := 0; i < 5; i++ {
		result, err := d.Dispatch("create_support_ticket", ticketArgs())
		if err != nil {
			t.Fatalf("Dispatch: %v", err)
		}
		ticket := result.(Ticket)
		number, err := strconv.Atoi(strings.TrimPrefix(ticket.TicketID, "INC"))
		if err != nil {
			t.Fatalf("non-numeric ticket id %q", ticket.TicketID)
		}
		if i == 0 && number != 1000 {
			t.Fatalf("first ticket number should be 1000, got %d", number)
		}
		if number <= prev {
			t.Fatalf("ticket numbers not strictly increasing: %d after %d", number, prev)
		}
		prev = number
	}
}

func TestDispatchPriorityDefaultsToMedium(t *testing.T) {
	d := New(nil)
	args := ticketArgs()
	delete(args, "priority")
	result, err := d.Dispatch("create_support_ticket", args)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	ticket := result.(Ticket)
	if ticket.Priority != "medium" {
		t.Fatalf("expected default priority medium, got %q", ticket.Priority)
	}
	if ticket.EstimatedResolution != "1-2 business days" {
		t.Fatalf("medium resolution mismatch: %q", ticket.EstimatedResolution)
	}
}

func TestResolutionTimeTable(t *testing.T) {
	cases := map[string]string{
		"critical": "1-2 hours",
		"high":     "4-8 hours",
		"medium":   "1-2 business days",
		"low":      "3-5 business days",
		"urgent":   "2-3 business days",
		"":         "2-3 business days",
	}
	for priority, want := range cases {
		if got := ResolutionTime(priority); got != want {
			t.Fatalf("ResolutionTime(%q) = %q, want %q", priority, got, want)
		}
	}
}

func TestDispatchMissingRequiredField(t *testing.T) {
	d := New(nil)
	args := ticketArgs()
	delete(args, "description")
	_, err := d.Dispatch("create_support_ticket", args)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "description" {
		t.Fatalf("error should name the missing field, got %q", verr.Field)
	}
}

func TestDispatchRejectsUndeclaredParameter(t *testing.T) {
	d := New(nil)
	args := ticketArgs()
	args["severity"] = "high"
	_, err := d.Dispatch("create_support_ticket", args)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "severity" {
		t.Fatalf("error should name the undeclared field, got %q", verr.Field)
	}
}

func TestDispatchRejectsEnumViolation(t *testing.T) {
	d := New(nil)
	args := ticketArgs()
	args["priority"] = "urgent"
	_, err := d.Dispatch("create_support_ticket", args)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "priority" {
		t.Fatalf("error should name the enum field, got %q", verr.Field)
	}
}

func TestDispatchRejectsNonStringArgument(t *testing.T) {
	d := New(nil)
	args := ticketArgs()
	args["title"] = 42
	var verr *ValidationError
	if _, err := d.Dispatch("create_support_ticket", args); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestDispatchUnknownFunction(t *testing.T) {
	d := New(nil)
	result, err := d.Dispatch("reboot_datacenter", map[string]interface{}{})
	if err != nil {
		t.Fatalf("unknown function must not be an error, got %v", err)
	}
	payload, ok := result.(UnknownFunctionResult)
	if !ok {
		t.Fatalf("expected UnknownFunctionResult, got %T", result)
	}
	if payload.Error != "Function reboot_datacenter not found" {
		t.Fatalf("unexpected payload %q", payload.Error)
	}
}

func TestDispatchTicketStatus(t *testing.T) {
	d := New(nil)
	created, err := d.Dispatch("create_support_ticket", ticketArgs())
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	ticket := created.(Ticket)

	result, err := d.Dispatch("check_ticket_status", map[string]interface{}{"ticket_id": ticket.TicketID})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	status := result.(TicketStatus)
	if !status.Found || status.TicketID != ticket.TicketID || status.Status != "open" {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestDispatchTicketStatusNotFound(t *testing.T) {
	d := New(nil)
	result, err := d.Dispatch("check_ticket_status", map[string]interface{}{"ticket_id": "INC9999"})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	status := result.(TicketStatus)
	if status.Found {
		t.Fatal("expected not found")
	}
	if status.Message != "Ticket INC9999 not found in the system" {
		t.Fatalf("unexpected message %q", status.Message)
	}
}

func TestDispatchSystemStatusUnknownName(t *testing.T) {
	// system_name carries an enum in the declaration, but out-of-enum names
	// flow through to the lookup and come back as status unknown.
	d := New(nil)
	result, err := d.Dispatch("check_system_status", map[string]interface{}{"system_name": "nonexistent"})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	status := result.(SystemStatus)
	if status.Status != "unknown" {
		t.Fatalf("expected status unknown, got %q", status.Status)
	}
	if status.Message != "System not monitored or invalid system name" {
		t.Fatalf("unexpected message %q", status.Message)
	}
}

func TestDispatchDirectorySearch(t *testing.T) {
	d := New(nil)
	result, err := d.Dispatch("search_employee_directory", map[string]interface{}{"department": "security"})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	employees := result.([]Employee)
	if len(employees) != 1 || employees[0].Name != "Sarah Johnson" {
		t.Fatalf("unexpected directory result %+v", employees)
	}
}
