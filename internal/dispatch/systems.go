// File path: internal/dispatch/systems.go
package dispatch

import "strings"

// SystemStatus reports the operational state of one monitored system.
type SystemStatus struct {
	System       string `json:"system"`
	Status       string `json:"status"`
	Uptime       string `json:"uptime,omitempty"`
	LastIncident string `json:"last_incident,omitempty"`
	Note         string `json:"note,omitempty"`
	Message      string `json:"message,omitempty"`
}

// monitoredSystems is the fixed table of systems this deployment tracks.
// Real-time freshness is out of scope; the table is a stubbed collaborator.
var monitoredSystems = map[string]SystemStatus{
	"email":       {Status: "operational", Uptime: "99.9%", LastIncident: "2 days ago"},
	"vpn":         {Status: "operational", Uptime: "99.5%", LastIncident: "5 days ago"},
	"file_server": {Status: "operational", Uptime: "99.8%", LastIncident: "1 day ago"},
	"internet":    {Status: "operational", Uptime: "99.95%", LastIncident: "10 days ago"},
	"office365":   {Status: "operational", Uptime: "99.9%", LastIncident: "3 days ago"},
	"printer": {
		Status:       "degraded",
		Uptime:       "95%",
		LastIncident: "2 hours ago",
		Note:         "Building B printers experiencing delays",
	},
}

// CheckSystemStatus looks up a system by name. Names are normalized
// case- and whitespace-insensitively; unrecognized systems report status
// "unknown" rather than an error.
func CheckSystemStatus(systemName string) SystemStatus {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(systemName)), " ", "_")
	status, ok := monitoredSystems[normalized]
	if !ok {
		return SystemStatus{
			System:  normalized,
			Status:  "unknown",
			Message: "System not monitored or invalid system name",
		}
	}
	status.System = normalized
	return status
}
