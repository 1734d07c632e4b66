package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Himethwe/Gradely-Webapp/core/academic"
	"github.com/Himethwe/Gradely-Webapp/core/grade"
)

const contextGuestKey = "guest"

type guestApi struct {
	svc      grade.ServiceInterface
	validate *validator.Validate
}

// registerGuestAPI serves records kept only in the guest cache. Guests are identified by a client generated UUID.
func registerGuestAPI(g *echo.Group, svc grade.ServiceInterface, validate *validator.Validate) {
	api := guestApi{svc: svc, validate: validate}

	gg := g.Group("/guest/:guest_id", guestMiddleware)
	gg.GET("/grades", api.load)
	gg.PUT("/grades", api.save)
	gg.GET("/degrees/:id/report", api.report)
}

func guestMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := uuid.Parse(ctx.Param("guest_id"))
		if err != nil {
			return errHttpNotFound
		}
		ctx.Set(contextGuestKey, id.String())
		return next(ctx)
	}
}

func getContextGuest(ctx echo.Context) (string, error) {
	if id, ok := ctx.Get(contextGuestKey).(string); ok {
		return id, nil
	}
	return "", errHttpNotFound
}

func (api *guestApi) load(ctx echo.Context) error {
	guestID, err := getContextGuest(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.LoadGuest(guestID))
}

func (api *guestApi) save(ctx echo.Context) error {
	guestID, err := getContextGuest(ctx)
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

	anomalies := api.svc.SaveGuest(guestID, data)
	return ctx.JSON(http.StatusOK, GuestSaveResponse{Anomalies: anomalies})
}

func (api *guestApi) report(ctx echo.Context) error {
	guestID, err := getContextGuest(ctx)
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

	r, err := api.svc.GuestReport(ctx.Request().Context(), guestID, degreeID, query.Options())
	if err != nil {
		return errors.Wrap(err, "building guest report")
	}
	return ctx.JSON(http.StatusOK, r)
}

type GuestSaveResponse struct {
	Anomalies []academic.Anomaly `json:"anomalies"`
}
