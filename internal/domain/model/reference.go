// Package model defines the reference records flowing through the pipeline.
package model

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Text length bounds for a standardized reference text.
const (
	MinTextLength = 20
	MaxTextLength = 10000
)

// RatingMax is the upper bound of a submitted KPI rating.
const RatingMax = 5.0

// normalizedTolerance is the floating tolerance when checking that
// normalized == rating/5.
const normalizedTolerance = 1e-9

// SchemaVersion identifies the ValidatedReference schema produced by the
// current validator.
const SchemaVersion = "1.2.0"

// ValidationStatus is the terminal decision for a validated reference.
type ValidationStatus string

// Validation statuses, ordered from hardest rejection to clean approval.
const (
	StatusRejectedHighFraudRisk  ValidationStatus = "REJECTED_HIGH_FRAUD_RISK"
	StatusRejectedCriticalIssues ValidationStatus = "REJECTED_CRITICAL_ISSUES"
	StatusRejectedInconsistent   ValidationStatus = "REJECTED_INCONSISTENT"
	StatusApprovedWithWarnings   ValidationStatus = "APPROVED_WITH_WARNINGS"
	StatusApproved               ValidationStatus = "APPROVED"
)

// IsApproved reports whether the status admits the reference into scoring.
func (s ValidationStatus) IsApproved() bool {
	return s == StatusApproved || s == StatusApprovedWithWarnings
}

// Valid reports whether s is a known status value.
func (s ValidationStatus) Valid() bool {
	switch s {
	case StatusRejectedHighFraudRisk, StatusRejectedCriticalIssues,
		StatusRejectedInconsistent, StatusApprovedWithWarnings, StatusApproved:
		return true
	}
	return false
}

// FlagSeverity grades a validation flag.
type FlagSeverity string

// Flag severities.
const (
	SeverityInfo     FlagSeverity = "info"
	SeverityWarning  FlagSeverity = "warning"
	SeverityCritical FlagSeverity = "critical"
)

// Valid reports whether sev is a known severity value.
func (sev FlagSeverity) Valid() bool {
	return sev == SeverityInfo || sev == SeverityWarning || sev == SeverityCritical
}

// Flag records one finding the validator made about a submission.
type Flag struct {
	Type     string         `json:"type"`
	Severity FlagSeverity   `json:"severity"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details,omitempty"`
}

// Dimension is one structured KPI dimension derived from a submitted rating.
type Dimension struct {
	Rating     float64 `json:"rating"`
	Confidence float64 `json:"confidence"`
	Normalized float64 `json:"normalized"`
	Feedback   string  `json:"feedback,omitempty"`
}

// Metadata describes how a ValidatedReference was produced.
type Metadata struct {
	Version          string `json:"version"`
	Timestamp        string `json:"timestamp"`
	TextLength       int    `json:"text_length"`
	KPICount         int    `json:"kpi_count"`
	HasEmbedding     bool   `json:"has_embedding"`
	ProcessingTimeMS int64  `json:"processing_time_ms"`
}

// ReferenceSubmission is the raw input a referrer submits for a candidate.
// Immutable once created; superseding submissions create new records.
type ReferenceSubmission struct {
	Summary          string             `json:"summary"`
	KPIRatings       map[string]float64 `json:"kpi_ratings"`
	DetailedFeedback map[string]string  `json:"detailed_feedback,omitempty"`
	OwnerID          string             `json:"owner_id"`
	ReferrerEmail    string             `json:"referrer_email"`
	SubmittedAt      time.Time          `json:"submitted_at"`
}

// Validate rejects submissions that are not even schema-valid. Borderline
// content (too short, implausible) is NOT rejected here; the validator
// resolves that to flags and statuses.
func (s *ReferenceSubmission) Validate() error {
	if strings.TrimSpace(s.Summary) == "" {
		return fmt.Errorf("%w: summary must not be empty", ErrInvalidSubmission)
	}
	if len(s.KPIRatings) == 0 {
		return fmt.Errorf("%w: kpi_ratings must not be empty", ErrInvalidSubmission)
	}
	for kpi, rating := range s.KPIRatings {
		if rating < 0 || rating > RatingMax {
			return fmt.Errorf("%w: rating %v for %q outside [0,%v]", ErrInvalidSubmission, rating, kpi, RatingMax)
		}
	}
	if strings.TrimSpace(s.OwnerID) == "" {
		return fmt.Errorf("%w: owner_id must not be empty", ErrInvalidSubmission)
	}
	if strings.TrimSpace(s.ReferrerEmail) == "" {
		return fmt.Errorf("%w: referrer_email must not be empty", ErrInvalidSubmission)
	}
	return nil
}

// ValidatedReference is the structured, flagged, scored record derived from
// exactly one submission. Produced once, never mutated.
type ValidatedReference struct {
	ID                   string               `json:"id"`
	OwnerID              string               `json:"owner_id"`
	ReferrerEmail        string               `json:"referrer_email"`
	StandardizedText     string               `json:"standardized_text"`
	StructuredDimensions map[string]Dimension `json:"structured_dimensions"`
	ConsistencyScore     float64              `json:"consistency_score"`
	FraudScore           int                  `json:"fraud_score"`
	Confidence           float64              `json:"confidence"`
	ValidationStatus     ValidationStatus     `json:"validation_status"`
	Flags                []Flag               `json:"flags"`
	EmbeddingVector      []float64            `json:"embedding_vector,omitempty"`
	Metadata             Metadata             `json:"metadata"`
}

// HasCriticalFlag reports whether any flag carries critical severity.
func (v *ValidatedReference) HasCriticalFlag() bool {
	for _, f := range v.Flags {
		if f.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// Validate checks schema conformance of a ValidatedReference. It is used at
// every boundary that persists or returns a record and fails loudly, since a
// nonconforming record indicates a programming error upstream.
//
// Text length below MinTextLength is tolerated only when a critical flag
// documents it: the validator keeps the (short) standardized text on rejected
// records so the rejection is auditable.
func (v *ValidatedReference) Validate() error {
	if !v.ValidationStatus.Valid() {
		return fmt.Errorf("%w: unknown validation_status %q", ErrInvalidRecord, v.ValidationStatus)
	}
	if len(v.StandardizedText) > MaxTextLength {
		return fmt.Errorf("%w: standardized_text length %d above %d", ErrInvalidRecord, len(v.StandardizedText), MaxTextLength)
	}
	if len(v.StandardizedText) < MinTextLength && !v.HasCriticalFlag() {
		return fmt.Errorf("%w: standardized_text length %d below %d without critical flag", ErrInvalidRecord, len(v.StandardizedText), MinTextLength)
	}
	if v.FraudScore < 0 || v.FraudScore > 100 {
		return fmt.Errorf("%w: fraud_score %d outside [0,100]", ErrInvalidRecord, v.FraudScore)
	}
	if v.ConsistencyScore < 0 || v.ConsistencyScore > 1 {
		return fmt.Errorf("%w: consistency_score %v outside [0,1]", ErrInvalidRecord, v.ConsistencyScore)
	}
	if v.Confidence < 0 || v.Confidence > 1 {
		return fmt.Errorf("%w: confidence %v outside [0,1]", ErrInvalidRecord, v.Confidence)
	}
	for kpi, d := range v.StructuredDimensions {
		if d.Rating < 0 || d.Rating > RatingMax {
			return fmt.Errorf("%w: dimension %q rating %v outside [0,%v]", ErrInvalidRecord, kpi, d.Rating, RatingMax)
		}
		if d.Confidence < 0 || d.Confidence > 1 {
			return fmt.Errorf("%w: dimension %q confidence %v outside [0,1]", ErrInvalidRecord, kpi, d.Confidence)
		}
		if math.Abs(d.Normalized-d.Rating/RatingMax) > normalizedTolerance {
			return fmt.Errorf("%w: dimension %q normalized %v != rating/5", ErrInvalidRecord, kpi, d.Normalized)
		}
	}
	for i, f := range v.Flags {
		if !f.Severity.Valid() {
			return fmt.Errorf("%w: flag %d has unknown severity %q", ErrInvalidRecord, i, f.Severity)
		}
		if f.Type == "" {
			return fmt.Errorf("%w: flag %d has empty type", ErrInvalidRecord, i)
		}
	}
	if v.Metadata.Version == "" || v.Metadata.Timestamp == "" {
		return fmt.Errorf("%w: metadata version and timestamp are required", ErrInvalidRecord)
	}
	if v.Metadata.HasEmbedding != (len(v.EmbeddingVector) > 0) {
		return fmt.Errorf("%w: metadata has_embedding disagrees with embedding_vector", ErrInvalidRecord)
	}
	return nil
}

// SafeValidateResult is the non-throwing variant's outcome.
type SafeValidateResult struct {
	Success bool                `json:"success"`
	Data    *ValidatedReference `json:"data,omitempty"`
	Errors  []string            `json:"errors,omitempty"`
}

// SafeValidate checks schema conformance without returning an error.
// On success the input record is echoed back unchanged.
func SafeValidate(v *ValidatedReference) SafeValidateResult {
	if v == nil {
		return SafeValidateResult{Success: false, Errors: []string{"record is nil"}}
	}
	if err := v.Validate(); err != nil {
		return SafeValidateResult{Success: false, Errors: []string{err.Error()}}
	}
	return SafeValidateResult{Success: true, Data: v}
}
