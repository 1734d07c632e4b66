package echoapi

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Himethwe/Gradely-Webapp/core"
	"github.com/Himethwe/Gradely-Webapp/core/academic"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.DBOrdering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return
	}

	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
}

// intParam reads a positive integer path parameter. Anything else is a 404.
func intParam(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id <= 0 {
		return 0, errHttpNotFound
	}
	return id, nil
}

type ReportQuery struct {
	StudentType string  `query:"student_type" validate:"student_type"`
	TargetGPA   float64 `query:"target_gpa" validate:"gte=0,lte=4"`
	Year        int     `query:"year" validate:"gte=0"`
	Semester    int     `query:"semester" validate:"gte=0"`
}

func (q *ReportQuery) Validate(validate *validator.Validate) error {
	q.StudentType = strings.ToLower(strings.TrimSpace(q.StudentType))
	return validate.Struct(q)
}

// Options picks the insight target only when both year and semester are given.
func (q ReportQuery) Options() academic.ReportOptions {
	opts := academic.ReportOptions{
		StudentType: academic.ParseStudentType(q.StudentType),
		TargetGPA:   q.TargetGPA,
	}
	if q.Year > 0 && q.Semester > 0 {
		opts.Target = &academic.Target{Year: q.Year, Semester: q.Semester}
	}
	return opts
}
