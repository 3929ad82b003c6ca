package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// StatusDone is the only status a step reports; failures are returned as errors.
const StatusDone = "Done"

// StepResult is what a step hands back to the orchestrator.
// It is encoded as [status_code, {"Status", "output_file", "input_file"}].
type StepResult struct {
	StatusCode int
	Status     string
	OutputFile *string
	InputFile  *string
}

type resultBody struct {
	Status     string  `json:"Status"`
	OutputFile *string `json:"output_file"`
	InputFile  *string `json:"input_file"`
}

// Done builds a successful result. Either file may be nil.
func Done(outputFile, inputFile *string) StepResult {
	return StepResult{
		StatusCode: http.StatusOK,
		Status:     StatusDone,
		OutputFile: outputFile,
		InputFile:  inputFile,
	}
}

// File returns a pointer to name, for use with Done.
func File(name string) *string {
	return &name
}

func (r StepResult) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.StatusCode, resultBody{
		Status:     r.Status,
		OutputFile: r.OutputFile,
		InputFile:  r.InputFile,
	}})
}

func (r *StepResult) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("step result must be a JSON array: %w", err)
	}
	if len(parts) != 2 {
		return fmt.Errorf("step result must have 2 elements, got %d", len(parts))
	}

	var code int
	if err := json.Unmarshal(parts[0], &code); err != nil {
		return fmt.Errorf("step result status code: %w", err)
	}
	var body resultBody
	if err := json.Unmarshal(parts[1], &body); err != nil {
		return fmt.Errorf("step result body: %w", err)
	}

	*r = StepResult{
		StatusCode: code,
		Status:     body.Status,
		OutputFile: body.OutputFile,
		InputFile:  body.InputFile,
	}
	return nil
}
