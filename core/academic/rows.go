package academic

import (
	"github.com/volatiletech/null/v8"
)

// GradeRow is one persisted grade of a student, unique on (StudentID, ModuleID).
type GradeRow struct {
	StudentID   string      `json:"student_id" db:"student_id"`
	ModuleID    int         `json:"module_id" db:"module_id"`
	Grade       null.String `json:"grade" db:"grade"`
	GradePoint  float64     `json:"grade_point" db:"grade_point"`
	IsRepeat    bool        `json:"is_repeat" db:"is_repeat"`
	IsCompleted bool        `json:"is_completed" db:"is_completed"`
}

// RawFromRow maps a persisted row back into the raw state shape.
func RawFromRow(row GradeRow) RawState {
	if row.IsRepeat {
		return RawState{Status: StatusRepeat, Supplementary: row.Grade.String}
	}
	return RawState{Status: row.Grade.String}
}

// RawFromRows indexes rows by module id.
func RawFromRows(rows []GradeRow) map[int]RawState {
	raw := make(map[int]RawState, len(rows))
	for _, row := range rows {
		raw[row.ModuleID] = RawFromRow(row)
	}
	return raw
}

// EncodeRow builds the persisted row of a module from its normalized state.
func EncodeRow(studentID string, id int, g EffectiveGrade, repeat bool) GradeRow {
	row := GradeRow{StudentID: studentID, ModuleID: id}
	switch g.State {
	case StateCleared:
		return row
	case StateExempt:
		row.Grade = null.StringFrom(StatusMedical)
	case StatePendingRepeat:
		row.Grade = null.StringFrom(StatusRepeatPending)
		row.IsRepeat = true
	case StateGraded:
		row.Grade = null.StringFrom(g.Letter)
		row.GradePoint = g.Value(repeat)
		row.IsRepeat = repeat
	}
	row.IsCompleted = true
	return row
}

// EncodeRows builds the rows to upsert for every module in the normalized state, ordered by module id.
func EncodeRows(studentID string, n Normalized) []GradeRow {
	ids := n.IDs()
	rows := make([]GradeRow, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, EncodeRow(studentID, id, n.Grade(id), n.Repeat(id)))
	}
	return rows
}
