package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Himethwe/Gradely-Webapp/core/degree"
)

type degreeApi struct {
	svc degree.ServiceInterface
}

func registerDegreeAPI(g *echo.Group, svc degree.ServiceInterface) {
	api := degreeApi{svc: svc}

	dg := g.Group("/degrees")
	dg.GET("", api.query)
	dg.GET("/:id", api.retrieve)
	dg.GET("/:id/modules", api.modules)
	dg.GET("/:id/curriculum", api.curriculum)
}

func (api *degreeApi) query(ctx echo.Context) error {
	ordering := new(Ordering)
	ordering.Bind(ctx)

	degrees, err := api.svc.QueryDegrees(ctx.Request().Context(), ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying degrees")
	}
	return ctx.JSON(http.StatusOK, degrees)
}

func (api *degreeApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	d, err := api.svc.GetDegree(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting degree")
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *degreeApi) modules(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	modules, err := api.svc.QueryModules(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "querying modules")
	}
	return ctx.JSON(http.StatusOK, modules)
}

func (api *degreeApi) curriculum(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	years, err := api.svc.Curriculum(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "grouping curriculum")
	}
	return ctx.JSON(http.StatusOK, years)
}
