package ws

// Server message kinds.
const (
	KindRender = "render"
	KindAck    = "ack"
)

// ClientMessage is one DOM event forwarded by the browser.
type ClientMessage struct {
	Type   string `json:"type"`
	Target string `json:"target"`
	// Types and Data carry the browser's drag payload. They are used only
	// when the drag did not start in this session.
	Types []string          `json:"types,omitempty"`
	Data  map[string]string `json:"data,omitempty"`
	Form  map[string]string `json:"form,omitempty"`
}

// ServerMessage is pushed to the browser. A render carries the new inner
// markup of the app host; an ack reports the outcome of one event.
type ServerMessage struct {
	Kind           string            `json:"kind"`
	HTML           string            `json:"html,omitempty"`
	Event          string            `json:"event,omitempty"`
	PreventDefault bool              `json:"prevent_default,omitempty"`
	Alert          string            `json:"alert,omitempty"`
	Data           map[string]string `json:"data,omitempty"`
	EffectAllowed  string            `json:"effect_allowed,omitempty"`
	Error          string            `json:"error,omitempty"`
}
