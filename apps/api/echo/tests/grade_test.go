package tests

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/Himethwe/Gradely-Webapp/apps/api/echo"
	"github.com/Himethwe/Gradely-Webapp/core/academic"
	"github.com/Himethwe/Gradely-Webapp/core/grade"
)

func Test_gradeApi_auth(t *testing.T) {
	a := setup(t, true)
	a.run(t, []httpTest{
		{name: "Auth required", path: "/v1/grades", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Expired token", path: "/v1/grades", token: getToken(t, studentID, -time.Minute),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Error: "invalid or expired jwt"}),
		},
		{
			name: "Subject must be a UUID", path: "/v1/grades", token: getToken(t, "admin"),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Error: "invalid token subject"}),
		},
		{name: "Report requires auth", path: "/v1/degrees/1/report", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
	})
}

func Test_gradeApi_save(t *testing.T) {
	a := setup(t, true)
	token := getToken(t, studentID)

	body := []byte(fmt.Sprintf(`{"grades": {"%d": "A", "%d": "REPEAT", "%d": "Q", "%d": null}, "supplementary": {"%d": "b+"}}`,
		a.id("MA1013"), a.id("CS1012"), a.id("MA1023"), a.id("PH2012"), a.id("CS1012")))
	rec := a.do(httpTest{method: http.MethodPut, path: "/v1/grades", token: token, body: body})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res grade.SaveResult
	decode(t, rec, &res)
	assert.Equal(t, 4, res.Saved)
	require.Len(t, res.Anomalies, 1)
	assert.Equal(t, a.id("MA1023"), res.Anomalies[0].ModuleID)
	assert.Equal(t, "Q", res.Anomalies[0].Value)

	rec = a.do(httpTest{path: "/v1/grades", token: token})
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []academic.GradeRow
	decode(t, rec, &rows)
	require.Len(t, rows, 4)
	for _, r := range rows {
		assert.Equal(t, studentID, r.StudentID)
		if r.ModuleID == a.id("CS1012") {
			assert.Equal(t, "B+", r.Grade.String)
			assert.Equal(t, academic.RepeatCap, r.GradePoint)
			assert.True(t, r.IsRepeat)
		}
	}

	t.Run("invalid body", func(t *testing.T) {
		rec := a.do(httpTest{method: http.MethodPut, path: "/v1/grades", token: token, body: []byte(`{"grades": [1]}`)})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("database down", func(t *testing.T) {
		a.db.FailWrites(fmt.Errorf("connection refused"))
		defer a.db.FailWrites(nil)

		rec := a.do(httpTest{method: http.MethodPut, path: "/v1/grades", token: token, body: []byte(`{"grades": {"1": "A"}}`)})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.True(t, a.logger.Contains("error", "Internal Server Error"))
	})
}

func Test_gradeApi_initialize(t *testing.T) {
	a := setup(t, true)
	token := getToken(t, studentID)

	a.run(t, []httpTest{
		{
			name: "seed", method: http.MethodPost, path: "/v1/grades/init/1", token: token,
			wantCode: http.StatusCreated, wantData: marchallObj(t, InitResponse{Created: len(a.modules)}),
		},
		{
			name: "idempotent", method: http.MethodPost, path: "/v1/grades/init/1", token: token,
			wantCode: http.StatusCreated, wantData: marchallObj(t, InitResponse{Created: 0}),
		},
		{
			name: "unknown degree", method: http.MethodPost, path: "/v1/grades/init/9", token: token,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "degree not found"}),
		},
	})
}

func Test_gradeApi_autosave(t *testing.T) {
	a := setup(t, true)
	token := getToken(t, studentID)
	path := func(code string) string { return fmt.Sprintf("/v1/grades/%d", a.id(code)) }

	a.run(t, []httpTest{
		{
			name: "unknown status", method: http.MethodPatch, path: path("MA1013"), token: token, body: []byte(`{"status": "Q"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"status": "status must be a letter grade, MC, REPEAT or empty"}),
		},
		{
			name: "bad resit", method: http.MethodPatch, path: path("MA1013"), token: token, body: []byte(`{"status": "REPEAT", "supplementary": "F"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"supplementary": "supplementary must be a letter grade from A+ to E"}),
		},
		{name: "bad module id", method: http.MethodPatch, path: "/v1/grades/0", token: token, body: []byte(`{"status": "A"}`), wantCode: http.StatusNotFound},
	})

	rec := a.do(httpTest{method: http.MethodPatch, path: path("MA1013"), token: token, body: []byte(`{"status": "B"}`)})
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	rec = a.do(httpTest{method: http.MethodPatch, path: path("CS1012"), token: token, body: []byte(`{"status": "mc", "supplementary": "a"}`)})
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	var res AutoSaveResponse
	decode(t, rec, &res)
	assert.True(t, res.Pending)

	rec = a.do(httpTest{method: http.MethodPost, path: "/v1/grades/flush", token: token})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: []byte(`{"status": "saved", "pending": false}`)}, rec)

	a.run(t, []httpTest{
		{name: "status", path: "/v1/grades/status", token: token, wantCode: http.StatusOK, wantData: []byte(`{"status": "saved", "pending": false}`)},
	})

	n, err := a.gradeSvc.Records(context.Background(), studentID)
	require.NoError(t, err)
	assert.Equal(t, "B", n.Grade(a.id("MA1013")).Letter)
	assert.Equal(t, academic.EffectiveGrade{State: academic.StateGraded, Letter: "A"}, n.Grade(a.id("CS1012")))
}

func Test_gradeApi_report(t *testing.T) {
	a := setup(t, true)
	token := getToken(t, studentID)

	body := []byte(fmt.Sprintf(`{"grades": {"%d": "A", "%d": "REPEAT", "%d": "E", "%d": "E"}}`,
		a.id("MA1013"), a.id("CS1012"), a.id("EN1002"), a.id("MS2011")))
	rec := a.do(httpTest{method: http.MethodPut, path: "/v1/grades", token: token, body: body})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	tests := []struct {
		name       string
		query      string
		wantGPA    string
		wantTarget float64
	}{
		{name: "defaults", query: "", wantGPA: "2.40", wantTarget: 3.7},
		{name: "cadet", query: "?student_type=Cadet&target_gpa=3", wantGPA: "2.00", wantTarget: 3},
		{name: "insight target", query: "?year=2&semester=1", wantGPA: "2.40", wantTarget: 3.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(httpTest{path: "/v1/degrees/1/report" + tt.query, token: token})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var r academic.Report
			decode(t, rec, &r)
			assert.Equal(t, tt.wantGPA, r.GPA)
			assert.Equal(t, tt.wantTarget, r.Projection.TargetGPA)
		})
	}

	a.run(t, []httpTest{
		{
			name: "bad student type", path: "/v1/degrees/1/report?student_type=night", token: token,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"student_type": "student_type must be one of day, cadet"}),
		},
		{name: "target out of range", path: "/v1/degrees/1/report?target_gpa=5", token: token, wantCode: http.StatusBadRequest},
		{name: "malformed target", path: "/v1/degrees/1/report?target_gpa=high", token: token, wantCode: http.StatusBadRequest},
		{
			name: "unknown degree", path: "/v1/degrees/7/report", token: token,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "degree not found"}),
		},
	})
}
