package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/Himethwe/Gradely-Webapp/core/degree"
)

// importCurriculum creates or updates a degree and its modules from a TOML file.
func (cli *commandLine) importCurriculum(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening curriculum")
	}
	defer func() { _ = f.Close() }()

	c, err := degree.ParseCurriculum(f)
	if err != nil {
		return err
	}
	d, modules, err := cli.degreeSvc.Import(context.Background(), c)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cli.out, "degree %d %q: %d modules, %d credits\n", d.ID, d.Name, len(modules), d.TotalCredits)
	return nil
}
