package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"travelog/pkg/logger"
	"travelog/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type RecordValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewRecordValidator(log *logger.Logger) *RecordValidator {
	return &RecordValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// requiredFields are the only fields a creation payload must carry; everything
// else in the document passes through unvalidated.
var requiredFields = []string{model.FieldName, model.FieldFrom, model.FieldTo}

func (v *RecordValidator) ValidateCreate(record model.Record) error {
	var errs ValidationErrors
	for _, field := range requiredFields {
		value, ok := record[field].(string)
		if !ok || v.validate.Var(value, "required") != nil {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s is required and must be a non-empty string", field),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateID checks the path identifier against the store's ObjectID format.
func (v *RecordValidator) ValidateID(id string) error {
	if err := v.validate.Var(id, "required,mongodb"); err != nil {
		return ValidationErrors{{
			Field:   "id",
			Message: "must be a valid 24-character hex identifier",
		}}
	}
	return nil
}
