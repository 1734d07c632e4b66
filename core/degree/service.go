package degree

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Himethwe/Gradely-Webapp/core"
	"github.com/Himethwe/Gradely-Webapp/core/academic"
)

var (
	// errors
	ErrNotFound        = errors.New("degree not found")
	ErrModulesNotFound = errors.New("modules not found for this degree")
)

type (
	Repository interface {
		QueryDegrees(ctx context.Context, ordering ...core.DBOrdering) ([]academic.Degree, error)
		GetDegree(ctx context.Context, id int) (academic.Degree, error)
		// QueryModules returns the curriculum of a degree, ordered by year, semester and id.
		QueryModules(ctx context.Context, degreeID int) ([]academic.Module, error)
		// CreateDegree creates the degree, or updates the one with the same name.
		CreateDegree(ctx context.Context, d academic.Degree) (academic.Degree, error)
		// CreateModules creates the modules, or updates the ones with the same degree and code.
		CreateModules(ctx context.Context, modules []academic.Module) ([]academic.Module, error)
	}

	ServiceInterface interface {
		QueryDegrees(ctx context.Context, ordering ...core.DBOrdering) ([]academic.Degree, error)
		GetDegree(ctx context.Context, id int) (academic.Degree, error)
		QueryModules(ctx context.Context, degreeID int) ([]academic.Module, error)
		Curriculum(ctx context.Context, degreeID int) ([]academic.Year, error)
		Import(ctx context.Context, c Curriculum) (academic.Degree, []academic.Module, error)
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
		logger   core.Logger
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, validate *validator.Validate, logger core.Logger) *Service {
	return &Service{repo: repo, validate: validate, logger: logger}
}

// QueryDegrees fails with ErrNotFound when no degree is registered.
func (svc *Service) QueryDegrees(ctx context.Context, ordering ...core.DBOrdering) ([]academic.Degree, error) {
	degrees, err := svc.repo.QueryDegrees(ctx, ordering...)
	if err != nil {
		return nil, errors.Wrap(err, "querying degrees")
	}
	if len(degrees) == 0 {
		return nil, ErrNotFound
	}
	return degrees, nil
}

func (svc *Service) GetDegree(ctx context.Context, id int) (academic.Degree, error) {
	return svc.repo.GetDegree(ctx, id)
}

// QueryModules fails with ErrModulesNotFound when the degree has no curriculum.
func (svc *Service) QueryModules(ctx context.Context, degreeID int) ([]academic.Module, error) {
	modules, err := svc.repo.QueryModules(ctx, degreeID)
	if err != nil {
		return nil, errors.Wrap(err, "querying modules")
	}
	if len(modules) == 0 {
		return nil, ErrModulesNotFound
	}
	return modules, nil
}

// Curriculum groups the degree modules by year and semester.
func (svc *Service) Curriculum(ctx context.Context, degreeID int) ([]academic.Year, error) {
	modules, err := svc.QueryModules(ctx, degreeID)
	if err != nil {
		return nil, err
	}
	return academic.GroupModules(modules), nil
}

// Import validates and stores a curriculum file. Total credits are derived from the modules when unset.
func (svc *Service) Import(ctx context.Context, c Curriculum) (academic.Degree, []academic.Module, error) {
	d, modules, err := c.Build()
	if err != nil {
		return academic.Degree{}, nil, err
	}
	if err = svc.validate.Struct(d); err != nil {
		return academic.Degree{}, nil, err
	}
	for i := range modules {
		if err = svc.validate.Struct(modules[i]); err != nil {
			return academic.Degree{}, nil, core.NewValidationError(
				errors.Wrapf(err, "module %d (%s)", i+1, modules[i].Code),
			)
		}
	}

	d, err = svc.repo.CreateDegree(ctx, d)
	if err != nil {
		return academic.Degree{}, nil, errors.Wrap(err, "creating degree")
	}
	for i := range modules {
		modules[i].DegreeID = d.ID
	}
	modules, err = svc.repo.CreateModules(ctx, modules)
	if err != nil {
		return academic.Degree{}, nil, errors.Wrap(err, "creating modules")
	}

	svc.logger.Info(fmt.Sprintf("imported degree %q: %d modules", d.Name, len(modules)))
	return d, modules, nil
}
