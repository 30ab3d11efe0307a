// Package info reports where bento keeps its configuration and state.
package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/bento/pkg/app"
	"tableflip.dev/bento/pkg/store"
)

type Info struct {
	Settings *store.Settings
	Service  *app.Service
	Out      io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	if n.Settings == nil {
		var err error
		n.Settings, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	if n.Service == nil {
		return errors.New("failed to create service")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("BENTO_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "BENTO_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "BENTO_CONFIG_PATH env var not set")
	}

	s := n.Settings
	file := s.File
	if file == "" {
		file = "none"
	}
	extractor := "lines"
	if s.Gemini.APIKey != "" {
		extractor = "gemini (" + s.Gemini.Model + ")"
	}

	r := n.Service.Report()
	tasks := 0
	if p := n.Service.Plan(); p != nil {
		tasks = len(p.Tasks)
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Config file:", file)
	tbl.AddRow("State:", filepath.Join(s.BasePath(), store.StateKey))
	tbl.AddRow("Log:", s.LogPath)
	tbl.AddRow("Log level:", s.LogLevel)
	tbl.AddRow("Extractor:", extractor)
	tbl.AddRow("Plan date:", r.Date)
	tbl.AddRow("Tasks:", tasks)
	tbl.AddRow("Lifetime completions:", r.Lifetime)
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
