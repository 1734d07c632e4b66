package academic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name          string
		raw           RawState
		want          GradeRecord
		wantAnomalies int
	}{
		{name: "empty", raw: RawState{}, want: Cleared{}},
		{name: "blank", raw: RawState{Status: "  "}, want: Cleared{}},
		{name: "letter", raw: RawState{Status: "B+"}, want: Normal{Letter: "B+"}},
		{name: "lower case letter", raw: RawState{Status: " a- "}, want: Normal{Letter: "A-"}},
		{name: "letter ignores supplementary", raw: RawState{Status: "C", Supplementary: "A"}, want: Normal{Letter: "C"}},
		{name: "medical", raw: RawState{Status: StatusMedical}, want: Medical{}},
		{name: "medical with resit", raw: RawState{Status: StatusMedical, Supplementary: "B"}, want: Medical{Resit: "B"}},
		{name: "repeat", raw: RawState{Status: StatusRepeat}, want: Repeat{}},
		{name: "repeat pending placeholder", raw: RawState{Status: StatusRepeat, Supplementary: StatusRepeatPending}, want: Repeat{}},
		{name: "repeat with resit", raw: RawState{Status: StatusRepeat, Supplementary: "A"}, want: Repeat{Resit: "A"}},
		{name: "unknown status", raw: RawState{Status: "Z"}, want: Cleared{}, wantAnomalies: 1},
		{name: "unknown resit", raw: RawState{Status: StatusRepeat, Supplementary: "A++"}, want: Repeat{}, wantAnomalies: 1},
		{name: "nested medical resit", raw: RawState{Status: StatusRepeat, Supplementary: StatusMedical}, want: Repeat{}, wantAnomalies: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, anomalies := Decode(7, tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Len(t, anomalies, tt.wantAnomalies)
		})
	}
}

func TestDecode_anomalySuggestion(t *testing.T) {
	_, anomalies := Decode(3, RawState{Status: StatusMedical, Supplementary: "A++"})
	require.Len(t, anomalies, 1)
	assert.Equal(t, Anomaly{ModuleID: 3, Field: "supplementary", Value: "A++", Suggestion: "A+"}, anomalies[0])
	assert.Contains(t, anomalies[0].String(), `closest: "A+"`)
}

func TestNormalize(t *testing.T) {
	raw := map[int]RawState{
		1: {},
		2: {Status: "A"},
		3: {Status: StatusMedical},
		4: {Status: StatusMedical, Supplementary: "A"},
		5: {Status: StatusRepeat},
		6: {Status: StatusRepeat, Supplementary: "B"},
		7: {Status: "??"},
	}
	n, anomalies := Normalize(raw)

	assert.Len(t, n.Grades, len(raw))
	assert.Len(t, n.Repeats, len(raw))
	assert.Len(t, anomalies, 1)

	assert.Equal(t, EffectiveGrade{State: StateCleared}, n.Grade(1))
	assert.Equal(t, EffectiveGrade{State: StateGraded, Letter: "A"}, n.Grade(2))
	assert.Equal(t, EffectiveGrade{State: StateExempt}, n.Grade(3))
	assert.Equal(t, EffectiveGrade{State: StateGraded, Letter: "A"}, n.Grade(4))
	assert.Equal(t, EffectiveGrade{State: StatePendingRepeat}, n.Grade(5))
	assert.Equal(t, EffectiveGrade{State: StateGraded, Letter: "B"}, n.Grade(6))
	assert.Equal(t, EffectiveGrade{State: StateCleared}, n.Grade(7))

	assert.Equal(t, Repeats{1: false, 2: false, 3: false, 4: false, 5: true, 6: true, 7: false}, n.Repeats)

	// absent modules are cleared
	assert.Equal(t, EffectiveGrade{State: StateCleared}, n.Grade(99))
	assert.False(t, n.Repeat(99))
}

func TestEncodeRows(t *testing.T) {
	n, _ := Normalize(map[int]RawState{
		1: {},
		2: {Status: StatusRepeat},
		3: {Status: StatusRepeat, Supplementary: "A-"},
		4: {Status: StatusMedical},
		5: {Status: "B+"},
		6: {Status: StatusMedical, Supplementary: "A"},
	})

	want := []GradeRow{
		{StudentID: "s", ModuleID: 1},
		{StudentID: "s", ModuleID: 2, Grade: null.StringFrom(StatusRepeatPending), IsRepeat: true, IsCompleted: true},
		{StudentID: "s", ModuleID: 3, Grade: null.StringFrom("A-"), GradePoint: 2.0, IsRepeat: true, IsCompleted: true},
		{StudentID: "s", ModuleID: 4, Grade: null.StringFrom(StatusMedical), IsCompleted: true},
		{StudentID: "s", ModuleID: 5, Grade: null.StringFrom("B+"), GradePoint: 3.3, IsCompleted: true},
		{StudentID: "s", ModuleID: 6, Grade: null.StringFrom("A"), GradePoint: 4.0, IsCompleted: true},
	}
	assert.Equal(t, want, EncodeRows("s", n))
}

func TestNormalize_idempotent(t *testing.T) {
	raw := map[int]RawState{
		1: {},
		2: {Status: "A"},
		3: {Status: StatusMedical},
		4: {Status: StatusMedical, Supplementary: "C+"},
		5: {Status: StatusRepeat},
		6: {Status: StatusRepeat, Supplementary: "A+"},
		7: {Status: StatusRepeat, Supplementary: "D"},
		8: {Status: "e"},
	}
	first, _ := Normalize(raw)

	// round trip through the persisted row encoding
	second, anomalies := Normalize(RawFromRows(EncodeRows("student", first)))
	assert.Empty(t, anomalies)
	assert.Equal(t, first, second)

	third, _ := Normalize(RawFromRows(EncodeRows("student", second)))
	assert.Equal(t, second, third)
}

func TestEncode(t *testing.T) {
	records := []GradeRecord{Cleared{}, Normal{Letter: "B"}, Medical{}, Medical{Resit: "A"}, Repeat{}, Repeat{Resit: "C"}}
	for _, rec := range records {
		got, anomalies := Decode(1, Encode(rec))
		assert.Empty(t, anomalies)
		assert.Equal(t, rec, got)
	}
}
