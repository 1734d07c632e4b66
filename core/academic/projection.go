package academic

// Projection is the performance required on the remaining modules to reach a target GPA.
type Projection struct {
	CurrentGPA       float64 `json:"current_gpa"`
	TargetGPA        float64 `json:"target_gpa"`
	CompletedCredits float64 `json:"completed_credits"`
	RemainingCredits float64 `json:"remaining_credits"`
	TotalCredits     float64 `json:"total_credits"`
	RequiredAverage  float64 `json:"required_avg"`
	RequiredGrade    string  `json:"required_grade"`
	IsDegreeComplete bool    `json:"is_degree_complete"`
	IsTargetAchieved bool    `json:"is_target_achieved"`
	IsDone           bool    `json:"is_done"`
	IsImpossible     bool    `json:"is_impossible"`
	IsPossible       bool    `json:"is_possible"`
}

// Project solves for the average needed on the remaining GPA credits.
// Medical exemptions without a resit are neither completed nor remaining.
func Project(modules []Module, n Normalized, st StudentType, targetGPA float64) Projection {
	var remaining float64
	for _, m := range countingModules(modules, st) {
		if n.Grade(m.ID).State == StateCleared {
			remaining += m.Credits
		}
	}

	f := currentFold(modules, n, st)
	p := Projection{
		CurrentGPA:       round2(f.gpa()),
		TargetGPA:        targetGPA,
		CompletedCredits: f.credits,
		RemainingCredits: remaining,
		TotalCredits:     f.credits + remaining,
	}
	if remaining > 0 {
		p.RequiredAverage = (targetGPA*p.TotalCredits - f.points) / remaining
	}

	p.IsDegreeComplete = remaining == 0
	p.IsTargetAchieved = p.CurrentGPA >= targetGPA
	p.IsDone = p.RequiredAverage < 0
	p.IsImpossible = p.RequiredAverage > MaxGradePoint
	p.IsPossible = !p.IsImpossible && !p.IsDone
	p.RequiredGrade = ClosestGrade(p.RequiredAverage)
	return p
}
