// Package analysis turns a captured watch photo into a validated appraisal. It
// owns the result schema, the error taxonomy and the retrying request pipeline.
package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultCurrency is used when the service omits a currency.
const DefaultCurrency = "USD"

type EstimatedValue struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

type Authenticity struct {
	IsAuthentic            bool     `json:"isAuthentic"`
	Confidence             float64  `json:"confidence"`
	Reasoning              string   `json:"reasoning"`
	RedFlags               []string `json:"redFlags"`
	AuthenticityIndicators []string `json:"authenticityIndicators"`
}

type Details struct {
	Material         string   `json:"material,omitempty"`
	Movement         string   `json:"movement,omitempty"`
	YearOfProduction string   `json:"yearOfProduction,omitempty"`
	Condition        string   `json:"condition,omitempty"`
	NotableFeatures  []string `json:"notableFeatures"`
}

// Result is a validated analysis of a single watch photo.
type Result struct {
	Brand           string         `json:"brand"`
	Model           string         `json:"model"`
	ReferenceNumber string         `json:"referenceNumber,omitempty"`
	EstimatedValue  EstimatedValue `json:"estimatedValue"`
	Authenticity    Authenticity   `json:"authenticity"`
	Details         Details        `json:"details"`
	Confidence      float64        `json:"confidence"`
	Notes           string         `json:"notes,omitempty"`
}

// wire types use pointers so missing keys can be told apart from zero values.
type wireEstimatedValue struct {
	Min      *float64 `json:"min" validate:"required,gte=0"`
	Max      *float64 `json:"max" validate:"required,gte=0"`
	Currency string   `json:"currency"`
}

type wireAuthenticity struct {
	IsAuthentic            *bool     `json:"isAuthentic" validate:"required"`
	Confidence             *float64  `json:"confidence" validate:"required,gte=0,lte=100"`
	Reasoning              *string   `json:"reasoning" validate:"required"`
	RedFlags               *[]string `json:"redFlags" validate:"required"`
	AuthenticityIndicators *[]string `json:"authenticityIndicators" validate:"required"`
}

type wireDetails struct {
	Material         string    `json:"material"`
	Movement         string    `json:"movement"`
	YearOfProduction yearField `json:"yearOfProduction"`
	Condition        string    `json:"condition"`
	NotableFeatures  *[]string `json:"notableFeatures" validate:"required"`
}

type wireResult struct {
	Brand           *string             `json:"brand" validate:"required"`
	Model           *string             `json:"model" validate:"required"`
	ReferenceNumber string              `json:"referenceNumber"`
	EstimatedValue  *wireEstimatedValue `json:"estimatedValue" validate:"required"`
	Authenticity    *wireAuthenticity   `json:"authenticity" validate:"required"`
	Details         *wireDetails        `json:"details" validate:"required"`
	Confidence      *float64            `json:"confidence" validate:"required,gte=0,lte=100"`
	Notes           string              `json:"notes"`
}

// yearField accepts both "2019" and 2019.
type yearField string

func (y *yearField) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*y = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*y = yearField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("yearOfProduction must be a string or number")
	}
	*y = yearField(n.String())
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode parses and validates a raw service response. A blank or null body is
// an EmptyResult; anything malformed or out of range is a ResponseParseFailure.
// Values are never clamped.
func Decode(data []byte) (*Result, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, Errorf(KindEmptyResult, "service returned no content")
	}

	var w wireResult
	if err := json.Unmarshal(trimmed, &w); err != nil {
		return nil, NewError(KindResponseParseFailure, fmt.Errorf("failed to parse response: %w", err))
	}
	if err := validate.Struct(&w); err != nil {
		return nil, NewError(KindResponseParseFailure, describeValidation(err))
	}
	if *w.EstimatedValue.Min > *w.EstimatedValue.Max {
		return nil, Errorf(KindResponseParseFailure, "estimatedValue.min %v exceeds max %v",
			*w.EstimatedValue.Min, *w.EstimatedValue.Max)
	}

	currency := strings.ToUpper(strings.TrimSpace(w.EstimatedValue.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	return &Result{
		Brand:           *w.Brand,
		Model:           *w.Model,
		ReferenceNumber: w.ReferenceNumber,
		EstimatedValue: EstimatedValue{
			Min:      *w.EstimatedValue.Min,
			Max:      *w.EstimatedValue.Max,
			Currency: currency,
		},
		Authenticity: Authenticity{
			IsAuthentic:            *w.Authenticity.IsAuthentic,
			Confidence:             *w.Authenticity.Confidence,
			Reasoning:              *w.Authenticity.Reasoning,
			RedFlags:               nonNil(*w.Authenticity.RedFlags),
			AuthenticityIndicators: nonNil(*w.Authenticity.AuthenticityIndicators),
		},
		Details: Details{
			Material:         w.Details.Material,
			Movement:         w.Details.Movement,
			YearOfProduction: string(w.Details.YearOfProduction),
			Condition:        w.Details.Condition,
			NotableFeatures:  nonNil(*w.Details.NotableFeatures),
		},
		Confidence: *w.Confidence,
		Notes:      w.Notes,
	}, nil
}

// Validate checks the invariants of an already constructed result.
func (r *Result) Validate() error {
	switch {
	case r.Confidence < 0 || r.Confidence > 100:
		return fmt.Errorf("confidence %v out of range [0,100]", r.Confidence)
	case r.Authenticity.Confidence < 0 || r.Authenticity.Confidence > 100:
		return fmt.Errorf("authenticity.confidence %v out of range [0,100]", r.Authenticity.Confidence)
	case r.EstimatedValue.Min < 0 || r.EstimatedValue.Max < 0:
		return fmt.Errorf("estimatedValue must be non-negative")
	case r.EstimatedValue.Min > r.EstimatedValue.Max:
		return fmt.Errorf("estimatedValue.min %v exceeds max %v", r.EstimatedValue.Min, r.EstimatedValue.Max)
	}
	return nil
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid response: %w", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", jsonPath(fe.Namespace()), fe.Tag()))
	}
	return fmt.Errorf("invalid response fields: %s", strings.Join(fields, ", "))
}

// jsonPath turns "wireResult.EstimatedValue.Min" into "estimatedValue.min".
func jsonPath(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
