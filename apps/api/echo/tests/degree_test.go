package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Himethwe/Gradely-Webapp/core/academic"
)

func Test_home(t *testing.T) {
	a := setup(t, false)
	req, rec := newAuthRequest(http.MethodGet, "/", "")
	a.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Gradely API!", rec.Body.String())
}

func Test_gradingSchema(t *testing.T) {
	a := setup(t, false)
	a.run(t, []httpTest{
		{name: "schema", path: "/v1/grading-schema", wantCode: http.StatusOK, wantData: marchallObj(t, academic.GradingSchema)},
	})
}

func Test_degreeApi_empty(t *testing.T) {
	a := setup(t, false)
	a.run(t, []httpTest{
		{name: "no degrees", path: "/v1/degrees", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "degree not found"})},
		{name: "no modules", path: "/v1/degrees/1/modules", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "no modules found for this degree"})},
	})
}

func Test_degreeApi(t *testing.T) {
	a := setup(t, true)

	require.Equal(t, 1, a.degree.ID)

	a.run(t, []httpTest{
		{name: "list", path: "/v1/degrees", wantCode: http.StatusOK, wantData: marchallObj(t, []academic.Degree{a.degree})},
		{name: "list ordered", path: "/v1/degrees?ordering=-name", wantCode: http.StatusOK, wantData: marchallObj(t, []academic.Degree{a.degree})},
		{name: "retrieve", path: "/v1/degrees/1", wantCode: http.StatusOK, wantData: marchallObj(t, a.degree)},
		{name: "unknown", path: "/v1/degrees/42", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "degree not found"})},
		{name: "bad id", path: "/v1/degrees/abc", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})},
	})

	t.Run("modules", func(t *testing.T) {
		rec := a.do(httpTest{path: "/v1/degrees/1/modules"})
		require.Equal(t, http.StatusOK, rec.Code)
		var got []academic.Module
		decode(t, rec, &got)
		require.Len(t, got, len(a.modules))
		assert.Equal(t, "MA1013", got[0].Code)
		assert.Equal(t, "MS2011", got[len(got)-1].Code)
	})

	t.Run("curriculum", func(t *testing.T) {
		rec := a.do(httpTest{path: "/v1/degrees/1/curriculum"})
		require.Equal(t, http.StatusOK, rec.Code)
		var got []academic.Year
		decode(t, rec, &got)
		require.Len(t, got, 2)
		assert.Len(t, got[0].Semesters, 2)
		assert.Len(t, got[0].Semesters[0].Modules, 3)
		assert.Len(t, got[1].Semesters, 1)
	})
}
