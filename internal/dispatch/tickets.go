// File path: internal/dispatch/tickets.go
package dispatch

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// ticketSeqStart is the first ticket number ever issued.
	ticketSeqStart = 1000
	ticketPrefix   = "INC"

	createdAtLayout = "2006-01-02 15:04:05"

	defaultAssignee = "IT Support Team"
)

// Ticket is the full support-ticket record as returned to callers. Tickets
// are never deleted within the process lifetime; status transitions are the
// only future mutation the schema allows.
type Ticket struct {
	TicketID            string `json:"ticket_id" db:"ticket_id"`
	Title               string `json:"title" db:"title"`
	Description         string `json:"description" db:"description"`
	Category            string `json:"category" db:"category"`
	Priority            string `json:"priority" db:"priority"`
	Status              string `json:"status" db:"status"`
	CreatedAt           string `json:"created_at" db:"created_at"`
	EstimatedResolution string `json:"estimated_resolution" db:"estimated_resolution"`
	AssignedTo          string `json:"assigned_to" db:"assigned_to"`
}

// TicketStatus is the lookup view for check_ticket_status.
type TicketStatus struct {
	Found               bool   `json:"found"`
	TicketID            string `json:"ticket_id,omitempty"`
	Status              string `json:"status,omitempty"`
	Title               string `json:"title,omitempty"`
	Priority            string `json:"priority,omitempty"`
	CreatedAt           string `json:"created_at,omitempty"`
	EstimatedResolution string `json:"estimated_resolution,omitempty"`
	Message             string `json:"message,omitempty"`
}

// Sequence issues globally unique, strictly increasing ticket numbers.
// Injected into the store so concurrent allocation and tests both have a
// single narrow seam.
type Sequence interface {
	Next() int
}

type atomicSequence struct {
	next int64
}

// NewSequence returns an atomic Sequence whose first issued value is start.
func NewSequence(start int) Sequence {
	return &atomicSequence{next: int64(start)}
}

func (s *atomicSequence) Next() int {
	return int(atomic.AddInt64(&s.next, 1) - 1)
}

// TicketStore owns the shared ticket records and the identifier sequence.
type TicketStore interface {
	Create(title, description, category, priority string) (Ticket, error)
	Get(ticketID string) (Ticket, bool)
}

// ResolutionTime maps a priority to its estimated resolution window.
// Unrecognized priorities get the catch-all window.
func ResolutionTime(priority string) string {
	switch strings.ToLower(priority) {
	case "low":
		return "3-5 business days"
	case "medium":
		return "1-2 business days"
	case "high":
		return "4-8 hours"
	case "critical":
		return "1-2 hours"
	default:
		return "2-3 business days"
	}
}

func newTicket(number int, title, description, category, priority string) Ticket {
	return Ticket{
		TicketID:            fmt.Sprintf("%s%d", ticketPrefix, number),
		Title:               title,
		Description:         description,
		Category:            category,
		Priority:            priority,
		Status:              "open",
		CreatedAt:           time.Now().Format(createdAtLayout),
		EstimatedResolution: ResolutionTime(priority),
		AssignedTo:          defaultAssignee,
	}
}

// MemoryTicketStore keeps tickets in process memory. This is the default
// store; durability is opt-in via the SQLite-backed store.
type MemoryTicketStore struct {
	mu      sync.RWMutex
	seq     Sequence
	tickets []Ticket
	byID    map[string]int
}

func NewMemoryTicketStore(seq Sequence) *MemoryTicketStore {
	if seq == nil {
		seq = NewSequence(ticketSeqStart)
	}
	return &MemoryTicketStore{seq: seq, byID: make(map[string]int)}
}

func (s *MemoryTicketStore) Create(title, description, category, priority string) (Ticket, error) {
	ticket := newTicket(s.seq.Next(), title, description, category, priority)
	s.mu.Lock()
	s.byID[ticket.TicketID] = len(s.tickets)
	s.tickets = append(s.tickets, ticket)
	s.mu.Unlock()
	return ticket, nil
}

func (s *MemoryTicketStore) Get(ticketID string) (Ticket, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byID[ticketID]
	if !ok {
		return Ticket{}, false
	}
	return s.tickets[idx], true
}

// Len reports the number of stored tickets.
func (s *MemoryTicketStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tickets)
}

// StatusOf builds the check_ticket_status response for a ticket id.
func StatusOf(store TicketStore, ticketID string) TicketStatus {
	ticket, ok := store.Get(ticketID)
	if !ok {
		return TicketStatus{
			Found:   false,
			Message: fmt.Sprintf("Ticket %s not found in the system", ticketID),
		}
	}
	return TicketStatus{
		Found:               true,
		TicketID:            ticket.TicketID,
		Status:              ticket.Status,
		Title:               ticket.Title,
		Priority:            ticket.Priority,
		CreatedAt:           ticket.CreatedAt,
		EstimatedResolution: ticket.EstimatedResolution,
	}
}
