package dig_container

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/Himethwe/Gradely-Webapp/apps/api/echo"
	"github.com/Himethwe/Gradely-Webapp/core"
	"github.com/Himethwe/Gradely-Webapp/core/academic"
	"github.com/Himethwe/Gradely-Webapp/core/degree"
	"github.com/Himethwe/Gradely-Webapp/core/grade"
	emailsvc "github.com/Himethwe/Gradely-Webapp/services/email"
	logsvc "github.com/Himethwe/Gradely-Webapp/services/logger"
	"github.com/Himethwe/Gradely-Webapp/storage/cache"
	"github.com/Himethwe/Gradely-Webapp/storage/database"
	sqlxrepos "github.com/Himethwe/Gradely-Webapp/storage/database/sqlx"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) *sql.DB {
	setUp := func() (*sql.DB, error) {
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, err
		}

		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}

		if err = database.Migrate(db, conf); err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug || conf.SendgridAPIKey == "" {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// newValidator returns a validator with the core and grade tags registered.
func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	academic.InitValidators(validate, translator)
	return validate
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(newEmailService))
	must(c.Provide(sqlxrepos.NewDegreeRepository, dig.As(new(degree.Repository))))
	must(c.Provide(sqlxrepos.NewGradeRepository, dig.As(new(grade.Repository))))
	must(c.Provide(cache.NewGuestCache, dig.As(new(grade.Cache))))
	must(c.Provide(newTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(degree.NewService, dig.As(new(degree.ServiceInterface))))
	must(c.Provide(grade.NewService, dig.As(new(grade.ServiceInterface))))
	must(c.Provide(echoapi.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
