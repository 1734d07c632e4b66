package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/Himethwe/Gradely-Webapp/core"
	"github.com/Himethwe/Gradely-Webapp/core/academic"
)

var progressReportTemplate = "progress_report"

type progressReportData struct {
	Degree string
	Report academic.Report
}

func (cli *commandLine) initGrades(studentID string, degreeID int) error {
	created, err := cli.gradeSvc.Initialize(context.Background(), studentID, degreeID)
	if err != nil {
		return errors.Wrap(err, "initializing grades")
	}
	_, _ = fmt.Fprintf(cli.out, "%d grades initialized\n", created)
	return nil
}

func (cli *commandLine) report(studentID string, degreeID int, st academic.StudentType) (academic.Degree, academic.Report, error) {
	ctx := context.Background()
	d, err := cli.degreeSvc.GetDegree(ctx, degreeID)
	if err != nil {
		return academic.Degree{}, academic.Report{}, errors.Wrap(err, "getting degree")
	}
	r, err := cli.gradeSvc.Report(ctx, studentID, degreeID, academic.ReportOptions{StudentType: st})
	if err != nil {
		return academic.Degree{}, academic.Report{}, errors.Wrap(err, "building report")
	}
	return d, r, nil
}

// printGPA writes the report as JSON, or as a table for humans.
func (cli *commandLine) printGPA(studentID string, degreeID int, st academic.StudentType, asJSON bool) error {
	d, r, err := cli.report(studentID, degreeID, st)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(cli.out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Degree\t%s (%s)\n", d.Name, r.StudentType)
	_, _ = fmt.Fprintf(w, "GPA\t%s\t%s\n", r.GPA, r.Class)
	_, _ = fmt.Fprintf(w, "Max possible\t%s\t%s\n", r.MaxPossibleGPA, r.MaxClass)
	_, _ = fmt.Fprintf(w, "Credits\t%g / %g\t%d%%\n", r.Progress.Earned, r.Progress.Total, r.Progress.Percent)
	for _, p := range r.Trend {
		_, _ = fmt.Fprintf(w, "%s\t%.2f\t%g credits\n", p.Key, p.GPA, p.Credits)
	}
	if r.Insight != nil {
		for _, tip := range r.Insight.Tips {
			_, _ = fmt.Fprintf(w, "Tip\t%s\t%s\n", tip.Title, tip.Text)
		}
	}
	return w.Flush()
}

func (cli *commandLine) sendReport(studentID string, degreeID int, st academic.StudentType, email string) error {
	to, err := mail.ParseAddress(email)
	if err != nil {
		return errors.Wrapf(err, "parsing email %q", email)
	}
	d, r, err := cli.report(studentID, degreeID, st)
	if err != nil {
		return err
	}

	msg := &core.EmailMessage{
		To:           []mail.Address{*to},
		Subject:      "Your progress report",
		TemplateName: progressReportTemplate,
		TemplateData: progressReportData{Degree: d.Name, Report: r},
	}
	if err = msg.Render(); err != nil {
		return errors.Wrap(err, "rendering progress report")
	}
	if !msg.HasContent() {
		return errors.Errorf("email template %q rendered no content", progressReportTemplate)
	}

	cli.mailSvc.SendMessages(msg)
	cli.mailSvc.Wait()
	_, _ = fmt.Fprintf(cli.out, "report sent to %s\n", to.Address)
	return nil
}
