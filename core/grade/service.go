package grade

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/Himethwe/Gradely-Webapp/core"
	"github.com/Himethwe/Gradely-Webapp/core/academic"
	"github.com/Himethwe/Gradely-Webapp/core/degree"
)

// guest cache slots
const (
	SlotGrades        = "guestGrades"
	SlotSupplementary = "guestSuppGrades"
)

type (
	Repository interface {
		QueryGrades(ctx context.Context, studentID string) ([]academic.GradeRow, error)
		// UpsertGrades writes rows keyed on (student_id, module_id).
		UpsertGrades(ctx context.Context, rows []academic.GradeRow) error
		// InitGrades inserts cleared rows for the modules the student has no row for yet.
		InitGrades(ctx context.Context, studentID string, moduleIDs []int) (int, error)
	}

	// Cache stores guest state. Entries expire on their own.
	Cache interface {
		Get(key string) ([]byte, bool)
		Set(key string, data []byte)
		Delete(key string)
	}

	// GradeState is the editable state of a record: a status per module, and the
	// resit letter of repeat and medical modules. A null status clears the module.
	GradeState struct {
		Grades        map[int]*string `json:"grades" validate:"dive,omitempty,max=16"`
		Supplementary map[int]string  `json:"supplementary" validate:"dive,max=16"`
	}

	SaveResult struct {
		Saved     int                `json:"saved"`
		Anomalies []academic.Anomaly `json:"anomalies"`
	}

	ServiceInterface interface {
		Rows(ctx context.Context, studentID string) ([]academic.GradeRow, error)
		Records(ctx context.Context, studentID string) (academic.Normalized, error)
		Save(ctx context.Context, studentID string, raw map[int]academic.RawState) (SaveResult, error)
		Initialize(ctx context.Context, studentID string, degreeID int) (int, error)
		Report(ctx context.Context, studentID string, degreeID int, opts academic.ReportOptions) (academic.Report, error)
		SaveGuest(guestID string, state GradeState) []academic.Anomaly
		LoadGuest(guestID string) GradeState
		GuestReport(ctx context.Context, guestID string, degreeID int, opts academic.ReportOptions) (academic.Report, error)
		AutoSaver(studentID string) *AutoSaver
		Edit(studentID string, moduleID int, raw academic.RawState) *AutoSaver
		Shutdown(ctx context.Context) error
	}

	Service struct {
		repo    Repository
		degrees degree.Repository
		cache   Cache
		conf    core.AcademicConfig
		logger  core.Logger

		mu     sync.Mutex
		savers map[string]*AutoSaver
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, degrees degree.Repository, cache Cache, conf *core.Config, logger core.Logger) *Service {
	return &Service{
		repo:    repo,
		degrees: degrees,
		cache:   cache,
		conf:    conf.Academic,
		logger:  logger,
		savers:  make(map[string]*AutoSaver),
	}
}

// Raw converts the state into raw module states.
func (s GradeState) Raw() map[int]academic.RawState {
	raw := make(map[int]academic.RawState, len(s.Grades))
	for id, status := range s.Grades {
		var st academic.RawState
		if status != nil {
			st.Status = *status
		}
		st.Supplementary = s.Supplementary[id]
		raw[id] = st
	}
	return raw
}

func (svc *Service) logAnomalies(studentID string, anomalies []academic.Anomaly) {
	for _, a := range anomalies {
		svc.logger.Warn(fmt.Sprintf("grade anomaly: %s", a), core.Student{ID: studentID})
	}
}

func (svc *Service) Rows(ctx context.Context, studentID string) ([]academic.GradeRow, error) {
	rows, err := svc.repo.QueryGrades(ctx, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying grades")
	}
	if rows == nil {
		rows = []academic.GradeRow{}
	}
	return rows, nil
}

// Records loads the stored rows of a student as normalized state.
func (svc *Service) Records(ctx context.Context, studentID string) (academic.Normalized, error) {
	rows, err := svc.Rows(ctx, studentID)
	if err != nil {
		return academic.Normalized{}, err
	}
	n, anomalies := academic.Normalize(academic.RawFromRows(rows))
	svc.logAnomalies(studentID, anomalies)
	return n, nil
}

// Save normalizes raw state and upserts one row per module. Anomalies are reported, not rejected.
func (svc *Service) Save(ctx context.Context, studentID string, raw map[int]academic.RawState) (SaveResult, error) {
	n, anomalies := academic.Normalize(raw)
	svc.logAnomalies(studentID, anomalies)

	rows := academic.EncodeRows(studentID, n)
	if len(rows) > 0 {
		if err := svc.repo.UpsertGrades(ctx, rows); err != nil {
			return SaveResult{}, errors.Wrap(err, "upserting grades")
		}
	}
	if anomalies == nil {
		anomalies = []academic.Anomaly{}
	}
	return SaveResult{Saved: len(rows), Anomalies: anomalies}, nil
}

// Initialize seeds cleared rows for every module of the degree.
func (svc *Service) Initialize(ctx context.Context, studentID string, degreeID int) (int, error) {
	if _, err := svc.degrees.GetDegree(ctx, degreeID); err != nil {
		return 0, err
	}
	modules, err := svc.degrees.QueryModules(ctx, degreeID)
	if err != nil {
		return 0, errors.Wrap(err, "querying modules")
	}
	if len(modules) == 0 {
		return 0, degree.ErrModulesNotFound
	}
	ids := make([]int, 0, len(modules))
	for _, m := range modules {
		ids = append(ids, m.ID)
	}
	created, err := svc.repo.InitGrades(ctx, studentID, ids)
	if err != nil {
		return 0, errors.Wrap(err, "initializing grades")
	}
	return created, nil
}

func (svc *Service) reportOptions(opts academic.ReportOptions) academic.ReportOptions {
	if opts.TargetGPA == 0 {
		opts.TargetGPA = svc.conf.DefaultTargetGPA
	}
	if opts.StudentType == "" {
		opts.StudentType = academic.DayScholar
	}
	return opts
}

// curriculum returns the degree modules. A degree without modules yields an empty curriculum.
func (svc *Service) curriculum(ctx context.Context, degreeID int) ([]academic.Module, error) {
	if _, err := svc.degrees.GetDegree(ctx, degreeID); err != nil {
		return nil, err
	}
	modules, err := svc.degrees.QueryModules(ctx, degreeID)
	return modules, errors.Wrap(err, "querying modules")
}

func (svc *Service) Report(ctx context.Context, studentID string, degreeID int, opts academic.ReportOptions) (academic.Report, error) {
	modules, err := svc.curriculum(ctx, degreeID)
	if err != nil {
		return academic.Report{}, err
	}
	n, err := svc.Records(ctx, studentID)
	if err != nil {
		return academic.Report{}, err
	}
	return academic.BuildReport(modules, n, svc.reportOptions(opts)), nil
}

func guestKey(guestID, slot string) string {
	return strings.ToLower(guestID) + ":" + slot
}

// SaveGuest replaces the cached state of a guest. Both slots are written independently.
func (svc *Service) SaveGuest(guestID string, state GradeState) []academic.Anomaly {
	_, anomalies := academic.Normalize(state.Raw())
	svc.logAnomalies(guestID, anomalies)

	grades, _ := json.Marshal(state.Grades)
	svc.cache.Set(guestKey(guestID, SlotGrades), grades)
	supp, _ := json.Marshal(state.Supplementary)
	svc.cache.Set(guestKey(guestID, SlotSupplementary), supp)

	if anomalies == nil {
		anomalies = []academic.Anomaly{}
	}
	return anomalies
}

// LoadGuest reads the cached state of a guest. A missing or corrupt slot reads as empty.
func (svc *Service) LoadGuest(guestID string) GradeState {
	state := GradeState{Grades: map[int]*string{}, Supplementary: map[int]string{}}
	if data, ok := svc.cache.Get(guestKey(guestID, SlotGrades)); ok {
		if err := json.Unmarshal(data, &state.Grades); err != nil {
			svc.logger.Warn(fmt.Sprintf("decoding guest grades: %v", err), err)
			state.Grades = map[int]*string{}
		}
	}
	if data, ok := svc.cache.Get(guestKey(guestID, SlotSupplementary)); ok {
		if err := json.Unmarshal(data, &state.Supplementary); err != nil {
			svc.logger.Warn(fmt.Sprintf("decoding guest supplementary grades: %v", err), err)
			state.Supplementary = map[int]string{}
		}
	}
	return state
}

func (svc *Service) GuestReport(ctx context.Context, guestID string, degreeID int, opts academic.ReportOptions) (academic.Report, error) {
	modules, err := svc.curriculum(ctx, degreeID)
	if err != nil {
		return academic.Report{}, err
	}
	n, anomalies := academic.Normalize(svc.LoadGuest(guestID).Raw())
	svc.logAnomalies(guestID, anomalies)
	return academic.BuildReport(modules, n, svc.reportOptions(opts)), nil
}

// AutoSaver returns the debounced writer of a student, creating it on first use.
// Savers of other students that stayed idle for AutosaverIdleTTL are evicted.
func (svc *Service) AutoSaver(studentID string) *AutoSaver {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.autoSaverLocked(studentID)
}

// Edit records a module edit on the student's saver. The lookup and the edit
// happen under one lock so an evicted saver never receives it.
func (svc *Service) Edit(studentID string, moduleID int, raw academic.RawState) *AutoSaver {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	s := svc.autoSaverLocked(studentID)
	s.Edit(moduleID, raw)
	return s
}

func (svc *Service) autoSaverLocked(studentID string) *AutoSaver {
	for id, s := range svc.savers {
		if id != studentID && s.Idle(svc.conf.AutosaverIdleTTL) {
			s.Close()
			delete(svc.savers, id)
		}
	}

	if s, ok := svc.savers[studentID]; ok {
		return s
	}
	s := NewAutoSaver(svc.conf.AutosaveDelay, func(ctx context.Context, raw map[int]academic.RawState) error {
		_, err := svc.Save(ctx, studentID, raw)
		return err
	}, svc.logger)
	svc.savers[studentID] = s
	return s
}

// Savers returns the number of live auto savers.
func (svc *Service) Savers() int {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return len(svc.savers)
}

// Shutdown flushes and stops every auto saver. The first flush error is returned.
func (svc *Service) Shutdown(ctx context.Context) error {
	svc.mu.Lock()
	savers := make([]*AutoSaver, 0, len(svc.savers))
	for _, s := range svc.savers {
		savers = append(savers, s)
	}
	svc.savers = make(map[string]*AutoSaver)
	svc.mu.Unlock()

	var firstErr error
	for _, s := range savers {
		if err := s.Flush(ctx); err != nil && firstErr == nil {
			firstErr = errors.Wrap(err, "flushing grades")
		}
		s.Close()
	}
	return firstErr
}
