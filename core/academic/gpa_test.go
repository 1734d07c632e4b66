package academic

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mod(id int, credits float64, year, sem int, category string) Module {
	return Module{ID: id, Name: "M" + strconv.Itoa(id), Credits: credits, Year: year, Semester: sem, Category: category}
}

func normalized(t *testing.T, raw map[int]RawState) Normalized {
	t.Helper()
	n, anomalies := Normalize(raw)
	assert.Empty(t, anomalies)
	return n
}

func TestCalculateGPA(t *testing.T) {
	core := []Module{mod(1, 3, 1, 1, "Core"), mod(2, 4, 1, 1, "Core")}
	nonGPA := mod(3, 2, 1, 1, "Core")
	nonGPA.IsGPA = CountsTowardGPA(false)
	military := mod(4, 2, 1, 2, MilitaryCategory)

	tests := []struct {
		name    string
		modules []Module
		raw     map[int]RawState
		st      StudentType
		want    string
	}{
		{name: "no modules", want: "0.00"},
		{name: "no grades", modules: core, want: "0.00"},
		{
			name:    "unresolved repeat counts as zero",
			modules: core,
			raw:     map[int]RawState{1: {Status: "A"}, 2: {Status: StatusRepeat}},
			want:    "1.71",
		},
		{
			name:    "resolved repeat is capped",
			modules: core,
			raw:     map[int]RawState{1: {Status: "A"}, 2: {Status: StatusRepeat, Supplementary: "A-"}},
			want:    "2.86",
		},
		{
			name:    "resolved repeat below cap keeps its value",
			modules: core,
			raw:     map[int]RawState{1: {Status: "A"}, 2: {Status: StatusRepeat, Supplementary: "D"}},
			want:    "2.29",
		},
		{
			name:    "medical without resit is excluded",
			modules: core,
			raw:     map[int]RawState{1: {Status: "B"}, 2: {Status: StatusMedical}},
			want:    "3.00",
		},
		{
			name:    "medical with resit is uncapped",
			modules: core,
			raw:     map[int]RawState{1: {Status: "B"}, 2: {Status: StatusMedical, Supplementary: "A"}},
			want:    "3.57",
		},
		{
			name:    "cleared is excluded",
			modules: core,
			raw:     map[int]RawState{1: {Status: "A-"}, 2: {}},
			want:    "3.70",
		},
		{
			name:    "non gpa module is ignored",
			modules: append(append([]Module{}, core...), nonGPA),
			raw:     map[int]RawState{1: {Status: "A"}, 2: {Status: "A"}, 3: {Status: "E"}},
			want:    "4.00",
		},
		{
			name:    "military excluded for day scholars",
			modules: append(append([]Module{}, core...), military),
			raw:     map[int]RawState{1: {Status: "A"}, 2: {Status: "A"}, 4: {Status: "E"}},
			st:      DayScholar,
			want:    "4.00",
		},
		{
			name:    "military included for cadets",
			modules: append(append([]Module{}, core...), military),
			raw:     map[int]RawState{1: {Status: "A"}, 2: {Status: "A"}, 4: {Status: "E"}},
			st:      Cadet,
			want:    "3.11",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := normalized(t, tt.raw)
			assert.Equal(t, tt.want, CalculateGPA(tt.modules, n, tt.st))
		})
	}
}

func TestCalculateMaxPossibleGPA(t *testing.T) {
	modules := []Module{mod(1, 3, 1, 1, "Core"), mod(2, 4, 1, 1, "Core"), mod(3, 3, 1, 2, "Core")}

	tests := []struct {
		name string
		raw  map[int]RawState
		want string
	}{
		{name: "nothing graded", want: "4.00"},
		{
			name: "unresolved repeat is capped optimistically",
			raw:  map[int]RawState{1: {Status: "A"}, 2: {Status: StatusRepeat}, 3: {Status: "A"}},
			want: "3.20",
		},
		{
			name: "medical assumes best case",
			raw:  map[int]RawState{1: {Status: "C"}, 2: {Status: StatusMedical}, 3: {Status: "C"}},
			want: "2.80",
		},
		{
			name: "resolved repeat uses capped value",
			raw:  map[int]RawState{1: {Status: "C"}, 2: {Status: StatusRepeat, Supplementary: "A+"}, 3: {Status: "C"}},
			want: "2.00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := normalized(t, tt.raw)
			assert.Equal(t, tt.want, CalculateMaxPossibleGPA(modules, n, DayScholar))
		})
	}

	t.Run("ceiling respects the repeat cap", func(t *testing.T) {
		two := modules[:2]
		n := normalized(t, map[int]RawState{1: {Status: "A"}, 2: {Status: StatusRepeat}})
		assert.Equal(t, "2.86", CalculateMaxPossibleGPA(two, n, DayScholar))
	})
}

func TestGPAProperties(t *testing.T) {
	modules := []Module{
		mod(1, 3, 1, 1, "Core"), mod(2, 4, 1, 1, "Math"), mod(3, 2, 1, 2, "Core"), mod(4, 1, 2, 1, "Lab"),
	}
	statuses := []RawState{
		{}, {Status: "A+"}, {Status: "B-"}, {Status: "E"}, {Status: StatusMedical},
		{Status: StatusMedical, Supplementary: "B"}, {Status: StatusRepeat}, {Status: StatusRepeat, Supplementary: "A"},
	}

	// every combination of statuses over the four modules
	for i := 0; i < len(statuses)*len(statuses)*len(statuses)*len(statuses); i++ {
		raw := make(map[int]RawState)
		k := i
		for id := 1; id <= 4; id++ {
			raw[id] = statuses[k%len(statuses)]
			k /= len(statuses)
		}
		n, _ := Normalize(raw)

		gpaStr := CalculateGPA(modules, n, DayScholar)
		gpa, err := strconv.ParseFloat(gpaStr, 64)
		assert.NoError(t, err)
		assert.Regexp(t, `^\d\.\d\d$`, gpaStr)
		assert.True(t, gpa >= 0 && gpa <= 4, "gpa %s out of range for %v", gpaStr, raw)

		maxGPA, err := strconv.ParseFloat(CalculateMaxPossibleGPA(modules, n, DayScholar), 64)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, maxGPA, gpa, "max below current for %v", raw)
	}
}

func TestRepeatCap(t *testing.T) {
	for _, l := range Scale {
		g, repeat := Resolve(Repeat{Resit: l.Grade})
		assert.True(t, repeat)
		if l.Point > RepeatCap {
			assert.Equal(t, RepeatCap, g.Value(repeat), l.Grade)
		} else {
			assert.Equal(t, l.Point, g.Value(repeat), l.Grade)
		}
	}
}

func TestMedicalExclusion(t *testing.T) {
	modules := []Module{mod(1, 3, 1, 1, "Core"), mod(2, 3, 1, 1, "Core")}
	n := normalized(t, map[int]RawState{1: {Status: "B+"}, 2: {Status: StatusMedical}})

	f := currentFold(modules, n, DayScholar)
	assert.Equal(t, 3.0, f.credits)
	assert.InDelta(t, 9.9, f.points, 1e-9)
}
