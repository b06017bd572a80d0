package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"news-verifier/models"
	"news-verifier/utils"
)

// ErrNotAnObject is returned when model output parses but is not a JSON object
var ErrNotAnObject = errors.New("model output is not a JSON object")

// ExtractResult parses raw model output into a ClassificationResult.
// It never fails: unparseable output yields the UNKNOWN sentinel with the
// raw text preserved as the explanation.
func ExtractResult(raw string) models.ClassificationResult {
	result, err := ParseResult(raw)
	if err != nil {
		return models.UnknownResult(raw)
	}
	return result
}

// ParseResult is ExtractResult with the parse error exposed.
//
// The candidate JSON is the widest span from the first '{' to the last '}'.
// Only when no such span exists is the whole text tried. A span that fails
// to parse is not retried as whole text.
func ParseResult(raw string) (models.ClassificationResult, error) {
	candidate, ok := utils.BraceSpan(raw)
	if !ok {
		candidate = raw
	}

	fields, err := decodeObject(candidate)
	if err != nil {
		return models.ClassificationResult{}, err
	}
	return coerceResult(fields), nil
}

// decodeObject parses text as exactly one JSON object. Numbers are kept as
// json.Number so values outside float64 range still decode.
func decodeObject(text string) (map[string]interface{}, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("failed to parse model output: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("failed to parse model output: trailing data after JSON value")
	}

	fields, ok := value.(map[string]interface{})
	if !ok {
		return nil, ErrNotAnObject
	}
	return fields, nil
}

// coerceResult maps loosely typed model fields onto the result shape,
// forcing each field into its documented domain.
func coerceResult(fields map[string]interface{}) models.ClassificationResult {
	return models.ClassificationResult{
		Label:       coerceLabel(fields["label"]),
		Confidence:  coerceConfidence(fields["confidence"]),
		Explanation: coerceString(fields["explanation"]),
		Sources:     coerceSources(fields["sources"]),
	}
}

func coerceLabel(v interface{}) models.Label {
	s, ok := v.(string)
	if !ok {
		return models.LabelUnknown
	}
	switch label := models.Label(strings.ToUpper(strings.TrimSpace(s))); label {
	case models.LabelReal, models.LabelFake:
		return label
	default:
		return models.LabelUnknown
	}
}

func coerceConfidence(v interface{}) float64 {
	var text string
	switch val := v.(type) {
	case float64:
		return utils.Clamp(val, 0, 1)
	case json.Number:
		text = val.String()
	case string:
		text = strings.TrimSpace(val)
	default:
		return 0
	}

	// Out-of-range values come back as +/-Inf with ErrRange and clamp to a bound
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	if math.IsNaN(f) {
		return 0
	}
	return utils.Clamp(f, 0, 1)
}

func coerceString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

func coerceSources(v interface{}) []string {
	var urls []string
	switch val := v.(type) {
	case []interface{}:
		for _, item := range val {
			if s, ok := item.(string); ok {
				urls = append(urls, s)
			}
		}
	case string:
		urls = []string{val}
	}
	return utils.CompactStrings(urls, models.MaxSources)
}
