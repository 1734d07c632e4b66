package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Himethwe/Gradely-Webapp/core/academic"
	"github.com/Himethwe/Gradely-Webapp/core/grade"
)

type gradeApi struct {
	svc      grade.ServiceInterface
	validate *validator.Validate
}

func registerGradeAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc grade.ServiceInterface, validate *validator.Validate) {
	api := gradeApi{svc: svc, validate: validate}

	gg := g.Group("/grades", jwt, studentMiddleware)
	gg.GET("", api.query)
	gg.PUT("", api.save)
	gg.POST("/init/:degree_id", api.initialize)
	gg.PATCH("/:module_id", api.edit)
	gg.POST("/flush", api.flush)
	gg.GET("/status", api.status)

	g.GET("/degrees/:id/report", api.report, jwt, studentMiddleware)
}

func (api *gradeApi) query(ctx echo.Context) error {
	st, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	rows, err := api.svc.Rows(ctx.Request().Context(), st.ID)
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	return ctx.JSON(http.StatusOK, rows)
}

// save replaces the whole record at once. Unknown statuses are stored cleared and reported back.
func (api *gradeApi) save(ctx echo.Context) error {
	st, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	var data grade.GradeState
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GradeState")
	}
	if err = api.validate.Struct(&data); err != nil {
		return err
	}

	res, err := api.svc.Save(ctx.Request().Context(), st.ID, data.Raw())
	if err != nil {
		return errors.Wrap(err, "saving grades")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *gradeApi) initialize(ctx echo.Context) error {
	st, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	degreeID, err := intParam(ctx, "degree_id")
	if err != nil {
		return err
	}
	created, err := api.svc.Initialize(ctx.Request().Context(), st.ID, degreeID)
	if err != nil {
		return errors.Wrap(err, "initializing grades")
	}
	return ctx.JSON(http.StatusCreated, InitResponse{Created: created})
}

// edit queues one module change behind the auto saver and answers before it is written.
func (api *gradeApi) edit(ctx echo.Context) error {
	st, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	moduleID, err := intParam(ctx, "module_id")
	if err != nil {
		return err
	}
	var data ModuleEdit
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ModuleEdit")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	saver := api.svc.Edit(st.ID, moduleID, data.RawState())
	return ctx.JSON(http.StatusAccepted, newAutoSaveResponse(saver))
}

func (api *gradeApi) flush(ctx echo.Context) error {
	st, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	saver := api.svc.AutoSaver(st.ID)
	if err = saver.Flush(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "flushing grades")
	}
	return ctx.JSON(http.StatusOK, newAutoSaveResponse(saver))
}

func (api *gradeApi) status(ctx echo.Context) error {
	st, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newAutoSaveResponse(api.svc.AutoSaver(st.ID)))
}

func (api *gradeApi) report(ctx echo.Context) error {
	st, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	degreeID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var query ReportQuery
	if err = ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to ReportQuery")
	}
	if err = query.Validate(api.validate); err != nil {
		return err
	}

	r, err := api.svc.Report(ctx.Request().Context(), st.ID, degreeID, query.Options())
	if err != nil {
		return errors.Wrap(err, "building report")
	}
	return ctx.JSON(http.StatusOK, r)
}

type (
	ModuleEdit struct {
		Status        string `json:"status" validate:"grade_status"`
		Supplementary string `json:"supplementary" validate:"grade_letter"`
	}

	InitResponse struct {
		Created int `json:"created"`
	}

	AutoSaveResponse struct {
		Status  grade.AutoSaveStatus `json:"status"`
		Pending bool                 `json:"pending"`
		Error   string               `json:"error,omitempty"`
	}
)

func (m *ModuleEdit) Validate(validate *validator.Validate) error {
	return validate.Struct(m)
}

func (m ModuleEdit) RawState() academic.RawState {
	return academic.RawState{Status: m.Status, Supplementary: m.Supplementary}
}

func newAutoSaveResponse(s *grade.AutoSaver) AutoSaveResponse {
	status, err := s.Status()
	res := AutoSaveResponse{Status: status, Pending: s.Pending()}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}
