package academic

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/Himethwe/Gradely-Webapp/core"
)

var (
	gradeStatusTag  = "grade_status"
	gradeStatusText = "{0} must be a letter grade, MC, REPEAT or empty"

	gradeLetterTag  = "grade_letter"
	gradeLetterText = "{0} must be a letter grade from A+ to E"

	studentTypeTag  = "student_type"
	studentTypeText = "{0} must be one of day, cadet"
)

// InitValidators registers the grade validation tags.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(gradeStatusTag, gradeStatusValidation)
	core.RegisterCustomTranslation(validate, translator, gradeStatusTag, gradeStatusText)

	_ = validate.RegisterValidation(gradeLetterTag, gradeLetterValidation)
	core.RegisterCustomTranslation(validate, translator, gradeLetterTag, gradeLetterText)

	_ = validate.RegisterValidation(studentTypeTag, studentTypeValidation)
	core.RegisterCustomTranslation(validate, translator, studentTypeTag, studentTypeText)
}

// gradeStatusValidation accepts the statuses a student can pick for a module.
func gradeStatusValidation(fl validator.FieldLevel) bool {
	s := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	switch s {
	case "", StatusMedical, StatusRepeat:
		return true
	}
	return IsLetter(s)
}

// gradeLetterValidation accepts a resit letter; empty means no resit yet.
func gradeLetterValidation(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return true
	}
	_, ok := canonicalLetter(s)
	return ok
}

func studentTypeValidation(fl validator.FieldLevel) bool {
	switch StudentType(strings.ToLower(strings.TrimSpace(fl.Field().String()))) {
	case "", DayScholar, Cadet:
		return true
	}
	return false
}
