package models

// ContextLayers are optional prompt-context overrides.
type ContextLayers struct {
	Customer      string `json:"customer,omitempty"`
	Industry      string `json:"industry,omitempty"`
	Scope         string `json:"scope,omitempty"`
	CustomContext string `json:"customContext,omitempty"`
}

// Settings is the single user-preferences record.
type Settings struct {
	ID               string         `json:"id"`
	SelectedModel    string         `json:"selectedModel,omitempty"`
	CostTracking     *bool          `json:"costTracking,omitempty"`
	ShowMessageCosts *bool          `json:"showMessageCosts,omitempty"`
	CurrentPersona   string         `json:"currentPersona,omitempty"`
	ContextLayers    *ContextLayers `json:"contextLayers,omitempty"`
}
