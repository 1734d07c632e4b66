package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

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

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)

	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	academic.InitValidators(validate, translator)
	core.ParseEmailTemplates(conf, logger)

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}
	if err = database.InitGoose(conf); err != nil {
		logger.Fatal(fmt.Sprintf("initializing migrations: %v", err), err)
	}

	degreeRepo := sqlxrepos.NewDegreeRepository(db)
	gradeRepo := sqlxrepos.NewGradeRepository(db)

	var mailSvc core.EmailService
	if conf.Debug || conf.SendgridAPIKey == "" {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	// start CLI
	cli := commandLine{
		db:        db,
		out:       os.Stdout,
		degreeSvc: degree.NewService(degreeRepo, validate, logger),
		gradeSvc:  grade.NewService(gradeRepo, degreeRepo, cache.NewGuestCache(conf), conf, logger),
		mailSvc:   mailSvc,
	}
	err = cli.run(os.Args)
	_ = db.Close()
	if err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %s", err), err)
		}
		os.Exit(1)
	}
}
