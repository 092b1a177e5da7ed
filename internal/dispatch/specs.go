// File path: internal/dispatch/specs.go
package dispatch

// ParamSpec describes one named parameter in a function's schema. An
// advisory enum is still advertised to the model but values outside it are
// handled by the function itself rather than rejected up front.
type ParamSpec struct {
	Type         string   `json:"type"`
	Description  string   `json:"description,omitempty"`
	Enum         []string `json:"enum,omitempty"`
	AdvisoryEnum bool     `json:"-"`
}

// Spec is the static declaration of one callable function: its name,
// description, and parameter schema. The dispatcher validates every call
// against its Spec before execution.
type Spec struct {
	Name        string
	Description string
	Required    []string
	Properties  map[string]ParamSpec
}

// ParametersSchema renders the parameter declaration as a JSON-schema
// object, the form the generation service expects for tool advertising.
func (s Spec) ParametersSchema() map[string]interface{} {
	properties := make(map[string]interface{}, len(s.Properties))
	for name, param := range s.Properties {
		prop := map[string]interface{}{"type": param.Type}
		if param.Description != "" {
			prop["description"] = param.Description
		}
		if len(param.Enum) > 0 {
			prop["enum"] = param.Enum
		}
		properties[name] = prop
	}
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(s.Required) > 0 {
		schema["required"] = s.Required
	}
	return schema
}

// Specs returns the declarations for every exposed function.
func Specs() []Spec {
	return []Spec{
		{
			Name: "create_support_ticket",
			Description: "Create a new IT support ticket when the user's issue cannot be resolved " +
				"through the knowledge base or when they explicitly request to create a ticket",
			Required: []string{"title", "description", "category"},
			Properties: map[string]ParamSpec{
				"title": {
					Type:        "string",
					Description: "Brief title summarizing the issue (max 100 characters)",
				},
				"description": {
					Type:        "string",
					Description: "Detailed description of the problem including what the user has already tried",
				},
				"category": {
					Type:        "string",
					Enum:        []string{"password", "hardware", "software", "network", "access", "other"},
					Description: "Category of the IT issue",
				},
				"priority": {
					Type:        "string",
					Enum:        []string{"low", "medium", "high", "critical"},
					Description: "Priority level: critical (system down), high (affecting work), medium (inconvenient), low (minor)",
				},
			},
		},
		{
			Name:        "check_ticket_status",
			Description: "Check the current status of an existing IT support ticket using the ticket ID",
			Required:    []string{"ticket_id"},
			Properties: map[string]ParamSpec{
				"ticket_id": {
					Type:        "string",
					Description: "The ticket ID (format: INC followed by numbers, e.g., INC1000)",
				},
			},
		},
		{
			Name:        "check_system_status",
			Description: "Check if a company system or service is currently operational",
			Required:    []string{"system_name"},
			Properties: map[string]ParamSpec{
				"system_name": {
					Type:         "string",
					Enum:         []string{"email", "vpn", "file_server", "internet", "office365", "printer"},
					AdvisoryEnum: true,
					Description:  "Name of the system to check status",
				},
			},
		},
		{
			Name:        "search_employee_directory",
			Description: "Search for employee contact information in the company directory",
			Properties: map[string]ParamSpec{
				"name": {
					Type:        "string",
					Description: "Employee name to search for",
				},
				"department": {
					Type:        "string",
					Description: "Department name to filter results",
				},
				"email": {
					Type:        "string",
					Description: "Email address to search for",
				},
			},
		},
	}
}
