package academic

import (
	"database/sql/driver"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	DefaultCategory  = "General"
	MilitaryCategory = "Military"
)

// StudentType selects which categories count for a student.
type StudentType string

const (
	DayScholar StudentType = "day"
	Cadet      StudentType = "cadet"
)

// ParseStudentType defaults to DayScholar for anything but "cadet".
func ParseStudentType(s string) StudentType {
	if StudentType(strings.ToLower(strings.TrimSpace(s))) == Cadet {
		return Cadet
	}
	return DayScholar
}

// Includes reports whether a module of the given category is relevant to this student type.
func (st StudentType) Includes(category string) bool {
	return st == Cadet || category != MilitaryCategory
}

// GPAFlag tells whether a module counts toward the GPA.
// The zero value counts; only false, 0, "false" and "0" exclude.
type GPAFlag struct {
	excluded bool
}

func CountsTowardGPA(counts bool) GPAFlag {
	return GPAFlag{excluded: !counts}
}

// ParseGPAFlag decodes the loosely typed flag stored by the curriculum.
func ParseGPAFlag(v interface{}) GPAFlag {
	switch val := v.(type) {
	case bool:
		return GPAFlag{excluded: !val}
	case int:
		return GPAFlag{excluded: val == 0}
	case int64:
		return GPAFlag{excluded: val == 0}
	case float64:
		return GPAFlag{excluded: val == 0}
	case string:
		return GPAFlag{excluded: strings.ToLower(val) == "false" || val == "0"}
	default:
		return GPAFlag{}
	}
}

func (f GPAFlag) Counts() bool { return !f.excluded }

func (f GPAFlag) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatBool(f.Counts())), nil
}

func (f *GPAFlag) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrap(err, "decoding is_gpa")
	}
	*f = ParseGPAFlag(v)
	return nil
}

// Scan implements sql.Scanner.
func (f *GPAFlag) Scan(src interface{}) error {
	if b, ok := src.([]byte); ok {
		src = string(b)
	}
	*f = ParseGPAFlag(src)
	return nil
}

// Value implements driver.Valuer.
func (f GPAFlag) Value() (driver.Value, error) {
	return f.Counts(), nil
}

type Degree struct {
	ID            int    `json:"id" db:"id"`
	Name          string `json:"name" db:"name" validate:"notblank"`
	DurationYears int    `json:"duration_years" db:"duration_years" validate:"gte=1"`
	TotalCredits  int    `json:"total_credits" db:"total_credits" validate:"gte=0"`
}

type Module struct {
	ID       int     `json:"id" db:"id"`
	DegreeID int     `json:"degree_id" db:"degree_id"`
	Code     string  `json:"code,omitempty" db:"code"`
	Name     string  `json:"name" db:"name" validate:"notblank"`
	Credits  float64 `json:"credits" db:"credits" validate:"gt=0"`
	Year     int     `json:"year" db:"year" validate:"gte=1"`
	Semester int     `json:"semester" db:"semester" validate:"gte=1"`
	Category string  `json:"category" db:"category"`
	IsGPA    GPAFlag `json:"is_gpa" db:"is_gpa"`
}

// CategoryOrDefault returns the module category, or DefaultCategory when empty.
func (m Module) CategoryOrDefault() string {
	if m.Category == "" {
		return DefaultCategory
	}
	return m.Category
}

// relevant filters modules by student type.
func relevant(modules []Module, st StudentType) []Module {
	r := make([]Module, 0, len(modules))
	for _, m := range modules {
		if st.Includes(m.Category) {
			r = append(r, m)
		}
	}
	return r
}

// ModulesForSemester returns the modules scheduled in the given year and semester.
func ModulesForSemester(modules []Module, year, semester int) []Module {
	r := make([]Module, 0)
	for _, m := range modules {
		if m.Year == year && m.Semester == semester {
			r = append(r, m)
		}
	}
	return r
}
