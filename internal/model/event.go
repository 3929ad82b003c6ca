package model

import (
	"encoding/json"
	"fmt"
)

// Event is the input the orchestrator passes to a step.
//
// Payload holds the previous step's result as returned by the Lambda
// invocation task, typically [200, {"Status": ..., "output_file": ...}].
// Other event fields are ignored.
type Event struct {
	Payload []json.RawMessage `json:"Payload,omitempty"`
}

// NewEvent builds the event a step receives after prev has completed.
func NewEvent(prev StepResult) (Event, error) {
	raw, err := json.Marshal(prev)
	if err != nil {
		return Event{}, fmt.Errorf("encode previous result: %w", err)
	}
	var payload []json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Event{}, fmt.Errorf("decode previous result: %w", err)
	}
	return Event{Payload: payload}, nil
}

// PriorOutputFile returns the output_file reported by the last Payload entry.
func (e Event) PriorOutputFile() (string, error) {
	if len(e.Payload) == 0 {
		return "", &MissingInputError{Reason: "event has no Payload"}
	}

	var last struct {
		OutputFile *string `json:"output_file"`
	}
	if err := json.Unmarshal(e.Payload[len(e.Payload)-1], &last); err != nil {
		return "", &MissingInputError{Reason: "last Payload entry is not an object"}
	}
	if last.OutputFile == nil || *last.OutputFile == "" {
		return "", &MissingInputError{Reason: "output_file is not set"}
	}

	return *last.OutputFile, nil
}
