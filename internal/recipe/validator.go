package recipe

import (
	"encoding/json/jsontext"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/takibiapp/takibi-server/internal/domain"
)

// requiredFields are the members every raw recipe object must carry.
// Presence is checked before decoding so that a missing field is reported by
// name instead of surfacing as a zero value.
var requiredFields = []string{
	"name", "meal", "description", "ingredients", "equipment",
	"equipmentCapabilities", "heatSources", "steps", "cookTime", "tip",
}

// Validator is the data-integrity gate for recipe records. Every recipe
// entering the system — bundled data files, imports, AI suggestions — is
// arbitrary JSON until it passes here. Malformed records are filtered and
// reported through the logger, never propagated as errors: one bad record
// in a batch of hundreds must not abort the whole load.
type Validator struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewValidator creates a validator that reports rejections to the logger.
func NewValidator(logger *slog.Logger) *Validator {
	v := validator.New()

	// Use JSON member names in diagnostics.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		if comma := strings.IndexByte(name, ','); comma >= 0 {
			return name[:comma]
		}
		return name
	})

	return &Validator{validate: v, logger: logger}
}

// ValidateMany structurally validates a batch of raw records. Accepted
// records are returned in encounter order. Each rejection emits one
// diagnostic naming the record and its first failing field; if anything was
// rejected, a final summary diagnostic states how many of the total were
// excluded.
func (v *Validator) ValidateMany(records []jsontext.Value) []domain.Recipe {
	accepted := make([]domain.Recipe, 0, len(records))
	rejected := 0

	for _, raw := range records {
		rec, ferr := v.check(raw)
		if ferr != nil {
			rejected++
			v.logger.Warn("recipe rejected",
				"record", recordLabel(raw),
				"field", ferr.Field,
				"reason", ferr.Message,
			)
			continue
		}
		accepted = append(accepted, *rec)
	}

	if rejected > 0 {
		v.logger.Warn("recipes excluded by validation",
			"excluded", rejected,
			"total", len(records),
		)
	}
	return accepted
}

// ValidateOne validates a single raw record. On failure it emits one
// diagnostic and returns nil.
func (v *Validator) ValidateOne(record jsontext.Value) *domain.Recipe {
	rec, ferr := v.check(record)
	if ferr != nil {
		v.logger.Warn("recipe rejected",
			"record", recordLabel(record),
			"field", ferr.Field,
			"reason", ferr.Message,
		)
		return nil
	}
	return rec
}

// fieldError describes the first validation failure found in a record.
// Validation is not exhaustive per record; the first failure wins.
type fieldError struct {
	Field   string
	Message string
}

// check runs the three validation stages: required-member presence, typed
// decode, then constraint checks (enums, ranges) via validator tags.
func (v *Validator) check(raw jsontext.Value) (*domain.Recipe, *fieldError) {
	var members map[string]jsontext.Value
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, &fieldError{Field: "$", Message: "not a JSON object"}
	}
	for _, f := range requiredFields {
		if _, ok := members[f]; !ok {
			return nil, &fieldError{Field: f, Message: "is required"}
		}
	}

	var rec domain.Recipe
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, decodeFieldError(err)
	}

	if err := v.validate.Struct(&rec); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, &fieldError{Field: verrs[0].Field(), Message: friendlyMessage(verrs[0])}
		}
		return nil, &fieldError{Field: "$", Message: err.Error()}
	}

	return &rec, nil
}

// decodeFieldError maps a json/v2 decode error to the offending member path.
func decodeFieldError(err error) *fieldError {
	var semErr *json.SemanticError
	if errors.As(err, &semErr) && semErr.JSONPointer != "" {
		field := strings.TrimPrefix(string(semErr.JSONPointer), "/")
		return &fieldError{Field: field, Message: "has the wrong type"}
	}
	return &fieldError{Field: "$", Message: err.Error()}
}

// recordLabel identifies a raw record for diagnostics: its name field if
// present, else its id field, else the literal "unknown".
func recordLabel(raw jsontext.Value) string {
	var probe struct {
		Name jsontext.Value `json:"name"`
		ID   jsontext.Value `json:"id"`
	}
	_ = json.Unmarshal(raw, &probe)

	for _, val := range []jsontext.Value{probe.Name, probe.ID} {
		if len(val) == 0 || string(val) == "null" {
			continue
		}
		var s string
		if err := json.Unmarshal(val, &s); err == nil && s != "" {
			return s
		}
		return string(val)
	}
	return "unknown"
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "min":
		return fmt.Sprintf("must have at least %s entries", e.Param())
	default:
		return "is invalid"
	}
}
