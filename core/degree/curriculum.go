package degree

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/Himethwe/Gradely-Webapp/core"
	"github.com/Himethwe/Gradely-Webapp/core/academic"
)

// Curriculum is the TOML file describing a degree and its modules:
//
//	[degree]
//	name = "BSc (Hons) in Computer Engineering"
//	duration_years = 4
//
//	[[modules]]
//	code = "CS1012"
//	name = "Programming Fundamentals"
//	credits = 3
//	year = 1
//	semester = 1
//	category = "Computing"
//	is_gpa = true
type Curriculum struct {
	Degree  CurriculumDegree   `toml:"degree"`
	Modules []CurriculumModule `toml:"modules"`
}

type CurriculumDegree struct {
	Name          string `toml:"name"`
	DurationYears int    `toml:"duration_years"`
	TotalCredits  int    `toml:"total_credits"`
}

type CurriculumModule struct {
	Code     string      `toml:"code"`
	Name     string      `toml:"name"`
	Credits  float64     `toml:"credits"`
	Year     int         `toml:"year"`
	Semester int         `toml:"semester"`
	Category string      `toml:"category"`
	IsGPA    interface{} `toml:"is_gpa"`
}

// ParseCurriculum decodes a curriculum TOML document. Unknown keys are rejected.
func ParseCurriculum(r io.Reader) (Curriculum, error) {
	var c Curriculum
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Curriculum{}, core.NewValidationError(errors.Errorf("curriculum line %d, column %d: %s", row, col, derr.Error()))
		}
		return Curriculum{}, core.NewValidationError(errors.Wrap(err, "decoding curriculum"))
	}
	return c, nil
}

// Build converts the file into the degree and its modules.
func (c Curriculum) Build() (academic.Degree, []academic.Module, error) {
	if len(c.Modules) == 0 {
		return academic.Degree{}, nil, core.NewValidationError(nil, core.FieldError{Field: "modules", Error: "a curriculum needs at least one module"})
	}

	d := academic.Degree{
		Name:          core.CleanString(c.Degree.Name),
		DurationYears: c.Degree.DurationYears,
		TotalCredits:  c.Degree.TotalCredits,
	}

	var total float64
	maxYear := 0
	seen := make(map[string]bool, len(c.Modules))
	modules := make([]academic.Module, 0, len(c.Modules))
	for i, cm := range c.Modules {
		code := strings.ToUpper(core.CleanString(cm.Code))
		switch {
		case code == "":
			return academic.Degree{}, nil, core.NewValidationError(nil, core.FieldError{Field: "modules", Error: fmt.Sprintf("module %d has no code", i+1)})
		case seen[code]:
			return academic.Degree{}, nil, core.NewValidationError(nil, core.FieldError{Field: "modules", Error: "duplicate module code " + code})
		}
		seen[code] = true
		m := academic.Module{
			Code:     code,
			Name:     core.CleanString(cm.Name),
			Credits:  cm.Credits,
			Year:     cm.Year,
			Semester: cm.Semester,
			Category: core.CleanString(cm.Category),
			IsGPA:    academic.ParseGPAFlag(cm.IsGPA),
		}
		if m.Category == "" {
			m.Category = academic.DefaultCategory
		}
		if m.Year > maxYear {
			maxYear = m.Year
		}
		total += m.Credits
		modules = append(modules, m)
	}

	if d.TotalCredits == 0 {
		d.TotalCredits = int(math.Round(total))
	}
	if d.DurationYears == 0 {
		d.DurationYears = maxYear
	}
	return d, modules, nil
}
