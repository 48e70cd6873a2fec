// ABOUTME: Shape validation for check-in records and survey answers.
// ABOUTME: Uses validator struct tags and reports failures as MalformedRecordError.
package scoring

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/harperreed/journey/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so errors match what callers send.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateRecord checks a check-in record before it is written.
func ValidateRecord(r *models.CheckinRecord) error {
	if r == nil {
		return &MalformedRecordError{Field: "record", Reason: "missing"}
	}
	if !r.Date.IsValid() {
		return &MalformedRecordError{Field: "date", Reason: "missing or invalid date"}
	}
	if err := structError(validate.Struct(r)); err != nil {
		return err
	}
	if want := DailyScore(r.PositiveYesCount, r.NegativeYesCount); r.DailyScore != want {
		return &MalformedRecordError{
			Field:  "daily_score",
			Reason: fmt.Sprintf("got %d, counts %d/%d give %d", r.DailyScore, r.PositiveYesCount, r.NegativeYesCount, want),
		}
	}
	return nil
}

// ValidateAnswer checks a survey answer before it is recorded.
func ValidateAnswer(a *models.SurveyAnswer) error {
	if a == nil {
		return &MalformedRecordError{Field: "answer", Reason: "missing"}
	}
	return structError(validate.Struct(a))
}

// structError converts the first validator failure into a MalformedRecordError.
func structError(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		reason := fmt.Sprintf("value %v fails %s", fe.Value(), fe.Tag())
		if fe.Param() != "" {
			reason += "=" + fe.Param()
		}
		return &MalformedRecordError{Field: fe.Field(), Reason: reason}
	}
	return &MalformedRecordError{Field: "record", Reason: err.Error()}
}
