package testutil

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Himethwe/Gradely-Webapp/core"
	"github.com/Himethwe/Gradely-Webapp/core/academic"
	"github.com/Himethwe/Gradely-Webapp/core/degree"
)

const SecretKey = "test-secret"

// NewConfig returns a TEST configuration that never touches the environment.
func NewConfig() *core.Config {
	return &core.Config{
		AppName:          "Gradely",
		Env:              "TEST",
		Build:            "test",
		TestMode:         true,
		SecretKey:        SecretKey,
		FrontendBaseURL:  "http://localhost:3000",
		DefaultFromEmail: mail.Address{Name: "Gradely", Address: "noreply@localhost"},
		Server: core.ServerConfig{
			ShutdownTimeout: time.Second,
			DisableReqLogs:  true,
		},
		Academic: core.AcademicConfig{
			AutosaveDelay:    10 * time.Millisecond,
			AutosaverIdleTTL: time.Minute,
			GuestCacheTTL:    time.Hour,
			DefaultTargetGPA: 3.7,
		},
	}
}

type LogEntry struct {
	Level   string
	Message string
	Args    []interface{}
}

// Logger records every message it receives.
type Logger struct {
	mu      sync.Mutex
	entries []LogEntry
}

var _ core.Logger = (*Logger)(nil)

func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Message: msg, Args: args})
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("debug", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("info", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("warn", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("error", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.log("fatal", msg, args)
	panic(fmt.Sprintf("fatal: %s", msg))
}

// Messages returns the messages logged at level, in order.
func (l *Logger) Messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	msgs := make([]string, 0)
	for _, e := range l.entries {
		if e.Level == level {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// Contains reports whether a message at level contains substr.
func (l *Logger) Contains(level, substr string) bool {
	for _, m := range l.Messages(level) {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func StrPtr(s string) *string { return &s }

// CurriculumFixture is a two year degree:
// year 1 has a Math, a Computing and a non-GPA English module in each semester,
// year 2 semester 1 has Math, Physics and a Military module.
func CurriculumFixture() degree.Curriculum {
	return degree.Curriculum{
		Degree: degree.CurriculumDegree{Name: "BSc Engineering", DurationYears: 2},
		Modules: []degree.CurriculumModule{
			{Code: "MA1013", Name: "Calculus", Credits: 3, Year: 1, Semester: 1, Category: "Math"},
			{Code: "CS1012", Name: "Programming", Credits: 2, Year: 1, Semester: 1, Category: "Computing"},
			{Code: "EN1002", Name: "English", Credits: 2, Year: 1, Semester: 1, Category: "Language", IsGPA: false},
			{Code: "MA1023", Name: "Linear Algebra", Credits: 3, Year: 1, Semester: 2, Category: "Math"},
			{Code: "CS1022", Name: "Data Structures", Credits: 2, Year: 1, Semester: 2, Category: "Computing"},
			{Code: "MA2013", Name: "Statistics", Credits: 3, Year: 2, Semester: 1, Category: "Math"},
			{Code: "PH2012", Name: "Physics", Credits: 2, Year: 2, Semester: 1, Category: "Physics"},
			{Code: "MS2011", Name: "Drill", Credits: 1, Year: 2, Semester: 1, Category: academic.MilitaryCategory},
		},
	}
}

// SeedCurriculum stores CurriculumFixture and returns the stored degree and modules keyed by code.
func SeedCurriculum(t *testing.T, repo degree.Repository) (academic.Degree, map[string]academic.Module) {
	t.Helper()

	d, modules, err := CurriculumFixture().Build()
	if err != nil {
		t.Fatalf("SeedCurriculum() failed: %v", err)
	}
	ctx := context.Background()
	if d, err = repo.CreateDegree(ctx, d); err != nil {
		t.Fatalf("SeedCurriculum() failed: %v", err)
	}
	for i := range modules {
		modules[i].DegreeID = d.ID
	}
	if modules, err = repo.CreateModules(ctx, modules); err != nil {
		t.Fatalf("SeedCurriculum() failed: %v", err)
	}

	byCode := make(map[string]academic.Module, len(modules))
	for _, m := range modules {
		byCode[m.Code] = m
	}
	return d, byCode
}
