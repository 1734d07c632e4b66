package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/Himethwe/Gradely-Webapp/apps/api/echo"
	"github.com/Himethwe/Gradely-Webapp/core"
	"github.com/Himethwe/Gradely-Webapp/core/academic"
	"github.com/Himethwe/Gradely-Webapp/core/degree"
	"github.com/Himethwe/Gradely-Webapp/core/grade"
	"github.com/Himethwe/Gradely-Webapp/storage/cache"
	"github.com/Himethwe/Gradely-Webapp/storage/database/inmem"
	"github.com/Himethwe/Gradely-Webapp/tests"
)

const studentID = "5b0b3a6e-4a52-4f6b-8c71-3f9d2f3c6a10"

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type app struct {
	server   *Server
	db       *inmemdb.DB
	logger   *testutil.Logger
	gradeSvc *grade.Service
	degree   academic.Degree
	modules  map[string]academic.Module
}

func (a app) id(code string) int { return a.modules[code].ID }

func setup(t *testing.T, seed bool) app {
	db, err := inmemdb.Open()
	require.NoError(t, err)

	conf := testutil.NewConfig()
	logger := testutil.NewLogger()

	validate := validator.New()
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	core.InitValidators(validate, translator)
	academic.InitValidators(validate, translator)

	degreeRepo := inmemdb.NewDegreeRepository(db)
	a := app{db: db, logger: logger}
	if seed {
		a.degree, a.modules = testutil.SeedCurriculum(t, degreeRepo)
	}

	degreeSvc := degree.NewService(degreeRepo, validate, logger)
	a.gradeSvc = grade.NewService(inmemdb.NewGradeRepository(db), degreeRepo, cache.NewGuestCache(conf), conf, logger)
	a.server = NewServer(conf, logger, degreeSvc, a.gradeSvc, validate, translator)
	return a
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func (a app) do(tt httpTest) *httptest.ResponseRecorder {
	method := tt.method
	if method == "" {
		method = http.MethodGet
	}
	req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
	a.server.ServeHTTP(rec, req)
	return rec
}

func (a app) run(t *testing.T, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(tt)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func getToken(t *testing.T, subject string, ttl ...time.Duration) string {
	d := time.Hour
	if len(ttl) > 0 {
		d = ttl[0]
	}
	token, err := GenerateToken(NewClaims(subject, "student@test.lk", d), testutil.SecretKey)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqualValues(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}
