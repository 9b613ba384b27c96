package personalization

import "github.com/janisto/realty-portal/internal/platform/timeutil"

// State is the personalization state of the calling visitor.
type State struct {
	VisitorID   string `json:"visitorId"      doc:"Visitor identifier"                       example:"0d7b6f3c-2a51-4d8e-9a44-5b1e3c9f7a02"`
	City        string `json:"city,omitempty" doc:"Normalized city used to personalize the catalog" example:"gramado"`
	PromptShown bool   `json:"promptShown"    doc:"Whether the onboarding prompt was already shown"`
}

// Event is streamed when the visitor's city changes.
type Event struct {
	City    string `json:"city,omitempty" doc:"New city, empty when cleared" example:"gramado"`
	Cleared bool   `json:"cleared"        doc:"Whether personalization was cleared"`
}

// Heartbeat keeps idle streams open through proxies.
type Heartbeat struct {
	Time timeutil.Time `json:"time" doc:"Server time" example:"2024-05-01T12:00:00.000Z"`
}
