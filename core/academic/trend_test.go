package academic

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemesterTrend(t *testing.T) {
	modules := []Module{
		mod(1, 3, 1, 1, "Core"),
		mod(2, 3, 1, 1, "Core"),
		mod(3, 4, 1, 2, "Core"),
		mod(4, 2, 2, 1, "Core"),
		mod(5, 2, 10, 1, "Core"),
		mod(6, 2, 2, 2, "Core"),
		mod(7, 2, 3, 1, "Core"),
	}
	n := normalized(t, map[int]RawState{
		1: {Status: "A"},
		2: {Status: StatusRepeat, Supplementary: "A"},
		3: {Status: StatusRepeat},
		4: {Status: "B"},
		5: {Status: "C"},
		6: {Status: StatusMedical},
	})

	trend := SemesterTrend(modules, n, DayScholar)
	require.Len(t, trend, 4)

	assert.Equal(t, TrendPoint{
		Key: "Y1 S1", Year: 1, Semester: 1, GPA: 3.0, Credits: 6,
		Modules: []TrendModule{{Name: "M1", Grade: "A"}, {Name: "M2", Grade: "A (R)"}},
	}, trend[0])
	assert.Equal(t, TrendPoint{
		Key: "Y1 S2", Year: 1, Semester: 2, GPA: 0, Credits: 4,
		Modules: []TrendModule{{Name: "M3", Grade: StatusRepeat}},
	}, trend[1])

	// numeric ordering: Y10 comes after Y2
	assert.Equal(t, "Y2 S1", trend[2].Key)
	assert.Equal(t, "Y10 S1", trend[3].Key)
}

func TestSemesterTrend_empty(t *testing.T) {
	assert.Empty(t, SemesterTrend(nil, Normalized{}, DayScholar))
	assert.Empty(t, SemesterTrend([]Module{mod(1, 3, 1, 1, "Core")}, Normalized{}, DayScholar))
}

func TestGroupModules(t *testing.T) {
	modules := []Module{
		mod(1, 3, 2, 1, "Core"),
		mod(2, 3, 1, 2, "Core"),
		mod(3, 3, 1, 1, "Core"),
		mod(4, 3, 1, 2, "Core"),
		mod(5, 3, 0, 1, "Core"),
		mod(6, 3, 10, 1, "Core"),
	}
	groups := GroupModules(modules)
	require.Len(t, groups, 3)

	assert.Equal(t, 1, groups[0].Year)
	require.Len(t, groups[0].Semesters, 2)
	assert.Equal(t, 1, groups[0].Semesters[0].Semester)
	assert.Equal(t, []Module{modules[2], modules[4]}, groups[0].Semesters[0].Modules)
	assert.Equal(t, []Module{modules[1], modules[3]}, groups[0].Semesters[1].Modules)

	assert.Equal(t, 2, groups[1].Year)
	assert.Equal(t, 10, groups[2].Year)

	assert.Empty(t, GroupModules(nil))
}

func TestGPAFlag(t *testing.T) {
	tests := []struct {
		json string
		want bool
	}{
		{`{"is_gpa": true}`, true},
		{`{"is_gpa": false}`, false},
		{`{"is_gpa": 0}`, false},
		{`{"is_gpa": 1}`, true},
		{`{"is_gpa": "false"}`, false},
		{`{"is_gpa": "FALSE"}`, false},
		{`{"is_gpa": "0"}`, false},
		{`{"is_gpa": "no"}`, true},
		{`{"is_gpa": null}`, true},
		{`{}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			var m Module
			require.NoError(t, json.Unmarshal([]byte(tt.json), &m))
			assert.Equal(t, tt.want, m.IsGPA.Counts())
		})
	}

	data, err := json.Marshal(Module{IsGPA: CountsTowardGPA(false)})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"is_gpa":false`)
}

func TestScale(t *testing.T) {
	p, ok := Points("A-")
	assert.True(t, ok)
	assert.Equal(t, 3.7, p)

	_, ok = Points(StatusRepeat)
	assert.False(t, ok)
	assert.False(t, IsLetter(StatusMedical))
	assert.Len(t, GradingSchema, len(Scale))

	tests := []struct {
		gpa  float64
		want string
	}{
		{4.2, "Requires > 4.0"},
		{-0.1, "Target Secured"},
		{4.0, "A+"},
		{3.8, "A-"},
		{3.14, "B"},
		{0.4, "E"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClosestGrade(tt.gpa), tt.gpa)
	}

	assert.Equal(t, ClassFirst, Classify(3.7))
	assert.Equal(t, ClassSecondUpper, Classify(3.69))
	assert.Equal(t, ClassSecondLower, Classify(3.0))
	assert.Equal(t, ClassGeneralPass, Classify(2.0))
	assert.Equal(t, ClassNotClassified, Classify(1.99))
}
