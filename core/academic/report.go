package academic

// Report bundles every analytic of a student's record.
type Report struct {
	StudentType    StudentType          `json:"student_type"`
	GPA            string               `json:"gpa"`
	MaxPossibleGPA string               `json:"max_possible_gpa"`
	Class          string               `json:"class"`
	MaxClass       string               `json:"max_class"`
	Progress       ProgressStats        `json:"progress"`
	Trend          []TrendPoint         `json:"trend"`
	Categories     CategoryProfileStats `json:"categories"`
	Projection     Projection           `json:"projection"`
	Insight        *Insight             `json:"insight"`
	Supplementary  Supplementary        `json:"supplementary"`
}

type ReportOptions struct {
	StudentType StudentType
	TargetGPA   float64
	Target      *Target
}

// BuildReport runs every calculator over the same normalized state.
func BuildReport(modules []Module, n Normalized, opts ReportOptions) Report {
	st := opts.StudentType
	gpa := GPA(modules, n, st)
	maxGPA := MaxPossibleGPA(modules, n, st)
	return Report{
		StudentType:    st,
		GPA:            FormatGPA(gpa),
		MaxPossibleGPA: FormatGPA(maxGPA),
		Class:          Classify(round2(gpa)),
		MaxClass:       Classify(round2(maxGPA)),
		Progress:       Progress(modules, n, st),
		Trend:          SemesterTrend(modules, n, st),
		Categories:     CategoryProfile(modules, n, st),
		Projection:     Project(modules, n, st, opts.TargetGPA),
		Insight:        FutureInsights(modules, n, st, opts.Target),
		Supplementary:  PendingSupplementary(modules, n, st),
	}
}
