package models

// Label is the classification verdict for a news text
type Label string

// Label values
const (
	LabelReal    Label = "REAL"
	LabelFake    Label = "FAKE"
	LabelUnknown Label = "UNKNOWN"
)

// MaxSources is the upper bound on supporting URLs attached to a result
const MaxSources = 3

// FewShotExample is a demonstration input/output pair embedded in the prompt
type FewShotExample struct {
	Text        string   `json:"text"`
	Label       Label    `json:"label"`
	Explanation string   `json:"explanation"`
	Sources     []string `json:"sources"`
}

// ClassificationResult is the structured verdict extracted from model output
type ClassificationResult struct {
	Label       Label    `json:"label"`
	Confidence  float64  `json:"confidence"`
	Explanation string   `json:"explanation"`
	Sources     []string `json:"sources"`
}

// UnknownResult returns the sentinel result used when the model output
// cannot be parsed. The raw text is kept so a human can audit it.
func UnknownResult(raw string) ClassificationResult {
	return ClassificationResult{
		Label:       LabelUnknown,
		Confidence:  0.0,
		Explanation: raw,
		Sources:     []string{},
	}
}

// ClassificationRequest represents an incoming classification request
type ClassificationRequest struct {
	Text string  `json:"text" binding:"required"`
	ID   *string `json:"id"`
}

// ClassificationResponse wraps a result with the caller's correlation id
type ClassificationResponse struct {
	ID     *string              `json:"id"`
	Input  string               `json:"input"`
	Result ClassificationResult `json:"result"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HealthResponse is the fixed liveness payload
type HealthResponse struct {
	Status string `json:"status"`
}
