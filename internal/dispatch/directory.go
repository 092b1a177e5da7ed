// File path: internal/dispatch/directory.go
package dispatch

import "strings"

// Employee is one record in the company directory.
type Employee struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
	Location   string `json:"location"`
}

// roster is the fixed in-memory directory this deployment ships with.
var roster = []Employee{
	{Name: "John Smith", Email: "john.smith@company.com", Department: "IT Support", Phone: "ext. 4357", Location: "Building A, Floor 3"},
	{Name: "Sarah Johnson", Email: "sarah.johnson@company.com", Department: "IT Security", Phone: "ext. 4358", Location: "Building A, Floor 3"},
	{Name: "Mike Chen", Email: "mike.chen@company.com", Department: "Network Admin", Phone: "ext. 4359", Location: "Building A, Floor 3"},
	{Name: "Emily Davis", Email: "emily.davis@company.com", Department: "IT Manager", Phone: "ext. 4350", Location: "Building A, Floor 3"},
}

// SearchDirectory filters the roster by case-insensitive substring match on
// each provided field. All provided filters are ANDed; empty filters pass
// through unconstrained. The result may be empty and preserves roster
// order.
func SearchDirectory(name, department, email string) []Employee {
	results := make([]Employee, 0, len(roster))
	for _, employee := range roster {
		if !fieldMatches(employee.Name, name) {
			continue
		}
		if !fieldMatches(employee.Department, department) {
			continue
		}
		if !fieldMatches(employee.Email, email) {
			continue
		}
		results = append(results, employee)
	}
	return results
}

func fieldMatches(value, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(filter))
}
