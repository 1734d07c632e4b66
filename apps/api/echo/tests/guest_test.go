package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Himethwe/Gradely-Webapp/core/academic"
	"github.com/Himethwe/Gradely-Webapp/core/grade"
)

const guestID = "0F8FAD5B-D9CB-469F-A165-70867728950E"

func Test_guestApi(t *testing.T) {
	a := setup(t, true)
	base := "/v1/guest/" + guestID

	a.run(t, []httpTest{
		{name: "guest id must be a UUID", path: "/v1/guest/me/grades", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})},
		{
			name: "empty state", path: base + "/grades", wantCode: http.StatusOK,
			wantData: marchallObj(t, grade.GradeState{Grades: map[int]*string{}, Supplementary: map[int]string{}}),
		},
	})

	body := []byte(fmt.Sprintf(`{"grades": {"%d": "B", "%d": "MC", "%d": "Z"}, "supplementary": {"%d": "A"}}`,
		a.id("MA1013"), a.id("CS1012"), a.id("MA1023"), a.id("CS1012")))
	rec := a.do(httpTest{method: http.MethodPut, path: base + "/grades", body: body})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var saved struct {
		Anomalies []academic.Anomaly `json:"anomalies"`
	}
	decode(t, rec, &saved)
	require.Len(t, saved.Anomalies, 1)
	assert.Equal(t, "Z", saved.Anomalies[0].Value)

	// ids are case insensitive
	rec = a.do(httpTest{path: "/v1/guest/0f8fad5b-d9cb-469f-a165-70867728950e/grades"})
	require.Equal(t, http.StatusOK, rec.Code)
	var state grade.GradeState
	decode(t, rec, &state)
	assert.Len(t, state.Grades, 3)
	assert.Equal(t, "A", state.Supplementary[a.id("CS1012")])

	rec = a.do(httpTest{path: base + "/degrees/1/report"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var r academic.Report
	decode(t, rec, &r)
	// (3*3 + 2*4) / 5, the unknown status is cleared
	assert.Equal(t, "3.40", r.GPA)

	a.run(t, []httpTest{
		{name: "unknown degree", path: base + "/degrees/3/report", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "degree not found"})},
		{
			name: "another guest", path: "/v1/guest/6ba7b810-9dad-11d1-80b4-00c04fd430c8/degrees/1/report", wantCode: http.StatusOK,
		},
	})
}
