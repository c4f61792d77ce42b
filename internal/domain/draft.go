package domain

import (
	"math"
	"strings"
	"time"
)

// Draft is the input of a create request. It never carries an ID or a
// status: both are assigned by the remote API.
type Draft struct {
	CustomerName   string  `json:"customerName"`
	Address        string  `json:"address"`
	ScheduledAtISO string  `json:"scheduledAtIso"`
	TotalCAD       float64 `json:"totalCad"`
	Paid           *bool   `json:"paid,omitempty"`
}

// FieldError describes one invalid draft field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned by Draft.Validate.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid booking draft: " + strings.Join(parts, "; ")
}

// Validate checks the draft the way the create form does before submitting.
func (d Draft) Validate() error {
	var fields []FieldError

	if strings.TrimSpace(d.CustomerName) == "" {
		fields = append(fields, FieldError{Field: "customerName", Message: "is required"})
	}
	if strings.TrimSpace(d.Address) == "" {
		fields = append(fields, FieldError{Field: "address", Message: "is required"})
	}
	if _, err := time.Parse(time.RFC3339, strings.TrimSpace(d.ScheduledAtISO)); err != nil {
		fields = append(fields, FieldError{Field: "scheduledAtIso", Message: "must be an RFC 3339 timestamp with offset"})
	}
	if math.IsNaN(d.TotalCAD) || math.IsInf(d.TotalCAD, 0) || d.TotalCAD < 0 {
		fields = append(fields, FieldError{Field: "totalCad", Message: "must be a non-negative amount"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Normalized returns a copy with surrounding whitespace trimmed.
func (d Draft) Normalized() Draft {
	d.CustomerName = strings.TrimSpace(d.CustomerName)
	d.Address = strings.TrimSpace(d.Address)
	d.ScheduledAtISO = strings.TrimSpace(d.ScheduledAtISO)
	return d
}
