package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/Himethwe/Gradely-Webapp/core"
	"github.com/Himethwe/Gradely-Webapp/core/academic"
	"github.com/Himethwe/Gradely-Webapp/core/degree"
	"github.com/Himethwe/Gradely-Webapp/core/grade"
)

var (
	isTerminalFunc = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) } // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db        *sql.DB
	out       io.Writer
	degreeSvc degree.ServiceInterface
	gradeSvc  grade.ServiceInterface
	mailSvc   core.EmailService
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]                          - run a goose command (up, down, status, ...)")
	_, _ = fmt.Fprintln(cli.out, "  import -file FILE                               - import a curriculum from a TOML file")
	_, _ = fmt.Fprintln(cli.out, "  init -student UUID -degree ID                   - seed empty grades for every module of a degree")
	_, _ = fmt.Fprintln(cli.out, "  gpa -student UUID -degree ID [-type day|cadet]  - print a student's GPA report")
	_, _ = fmt.Fprintln(cli.out, "  report -student UUID -degree ID -email ADDRESS  - email a student's progress report")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	importCmd := flag.NewFlagSet("import", flag.ContinueOnError)
	importFile := importCmd.String("file", "", "Path of the curriculum TOML file.")

	initCmd := flag.NewFlagSet("init", flag.ContinueOnError)
	initStudent := initCmd.String("student", "", "The student's UUID.")
	initDegree := initCmd.Int("degree", 0, "The degree ID.")

	gpaCmd := flag.NewFlagSet("gpa", flag.ContinueOnError)
	gpaStudent := gpaCmd.String("student", "", "The student's UUID.")
	gpaDegree := gpaCmd.Int("degree", 0, "The degree ID.")
	gpaType := gpaCmd.String("type", string(academic.DayScholar), "The student type: day or cadet.")
	gpaJSON := gpaCmd.Bool("json", false, "Print JSON even on a terminal.")

	reportCmd := flag.NewFlagSet("report", flag.ContinueOnError)
	reportStudent := reportCmd.String("student", "", "The student's UUID.")
	reportDegree := reportCmd.Int("degree", 0, "The degree ID.")
	reportType := reportCmd.String("type", string(academic.DayScholar), "The student type: day or cadet.")
	reportEmail := reportCmd.String("email", "", "The address to send the report to.")

	for _, fs := range []*flag.FlagSet{importCmd, initCmd, gpaCmd, reportCmd} {
		fs.SetOutput(cli.out)
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *importFile == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importCurriculum(*importFile)
	case "init":
		if err := initCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		studentID, err := parseStudent(*initStudent, *initDegree)
		if err != nil {
			initCmd.Usage()
			return err
		}
		return cli.initGrades(studentID, *initDegree)
	case "gpa":
		if err := gpaCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		studentID, err := parseStudent(*gpaStudent, *gpaDegree)
		if err != nil {
			gpaCmd.Usage()
			return err
		}
		return cli.printGPA(studentID, *gpaDegree, academic.ParseStudentType(*gpaType), *gpaJSON || !isTerminalFunc())
	case "report":
		if err := reportCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		studentID, err := parseStudent(*reportStudent, *reportDegree)
		if err != nil || *reportEmail == "" {
			reportCmd.Usage()
			if err == nil {
				err = errHelp
			}
			return err
		}
		return cli.sendReport(studentID, *reportDegree, academic.ParseStudentType(*reportType), *reportEmail)
	default:
		cli.printUsage()
		return errHelp
	}
}

// parseStudent checks the student and degree flags. A missing flag is a help request.
func parseStudent(student string, degreeID int) (string, error) {
	if student == "" || degreeID <= 0 {
		return "", errHelp
	}
	id, err := uuid.Parse(student)
	if err != nil {
		return "", fmt.Errorf("invalid student id %q", student)
	}
	return id.String(), nil
}
