package schema

// APICall is one function invocation requested by the model during the
// identify stage. Kwargs is structurally opaque here; it is handed to the
// registered function as-is.
type APICall struct {
	Name   string         `json:"name"`
	Kwargs map[string]any `json:"kwargs"`
}

// APIPlan is the parsed identify-stage response.
type APIPlan struct {
	APIs  []APICall `json:"apis"`
	Notes string    `json:"notes,omitempty"`
}

// APIResult is an APICall augmented with the function's return value.
type APIResult struct {
	Name   string         `json:"name"`
	Kwargs map[string]any `json:"kwargs"`
	Result any            `json:"result"`
}

// AnswerPayload is the JSON body sent to the answer stage: the original
// user request plus every call result, in invocation order.
type AnswerPayload struct {
	UserRequest string      `json:"user_request"`
	APIs        []APIResult `json:"apis"`
}
