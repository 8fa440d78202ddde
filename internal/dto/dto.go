package dto

// UpgradeContextRequest sets the purchase context before an attempt starts.
type UpgradeContextRequest struct {
	CourseID       string `json:"course_id"`
	Pacing         string `json:"pacing"`
	BlockID        string `json:"block_id,omitempty"`
	LocalizedPrice string `json:"localized_price"`
	Screen         string `json:"screen"`
}

// Cause carries the underlying failure reported by a pipeline step.
type Cause struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Cancelled bool   `json:"cancelled,omitempty"`
}

// StateEventRequest is one pipeline transition reported by the client app.
// Payload fields are only read for the states that carry them.
type StateEventRequest struct {
	State string `json:"state"`
	Mode  string `json:"mode,omitempty"`
	SKU   string `json:"sku,omitempty"`

	// fulfillment
	ShowLoader bool `json:"show_loader,omitempty"`

	// success
	CourseID    string `json:"course_id,omitempty"`
	ComponentID string `json:"component_id,omitempty"`

	// error
	ErrorKind string `json:"error_kind,omitempty"`
	Cause     *Cause `json:"cause,omitempty"`
}

// AlertActionRequest answers a previously presented alert.
type AlertActionRequest struct {
	AlertID string `json:"alert_id"`
	Action  string `json:"action"`
}

// RecordResponse is the pending in-progress purchase, if any.
type RecordResponse struct {
	CourseID string `json:"course_id"`
	SKU      string `json:"sku"`
	Pacing   string `json:"pacing"`
}
