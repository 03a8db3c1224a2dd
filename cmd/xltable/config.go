package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
)

// Job holds flag defaults loaded from a TOML file. Flags given on the
// command line win over job values.
//
//	[extract]
//	sheet = "Data"
//	anchor = ["Name"]
//	skip_foot = 1
//	columns = "Name|Age"
//	format = "json"
//
//	[export]
//	sheet = "Clean"
//	if_exists = "assert"
type Job struct {
	Extract ExtractJob `toml:"extract"`
	Export  ExportJob  `toml:"export"`
}

// ExtractJob mirrors the extract and describe flags.
type ExtractJob struct {
	Sheet      string   `toml:"sheet"`
	SheetIndex *int     `toml:"sheet_index"`
	Anchor     []string `toml:"anchor"`
	SkipTop    int      `toml:"skip_top"`
	SkipFoot   int      `toml:"skip_foot"`
	Columns    string   `toml:"columns"`
	Column     []string `toml:"column"`
	Infer      bool     `toml:"infer"`
	Raw        bool     `toml:"raw"`
	Format     string   `toml:"format"`
	Encoding   string   `toml:"encoding"`
	OutputDir  string   `toml:"output_dir"`
	Jobs       int      `toml:"jobs"`
}

// ExportJob mirrors the export flags.
type ExportJob struct {
	Sheet    string            `toml:"sheet"`
	IfExists string            `toml:"if_exists"`
	Infer    bool              `toml:"infer"`
	Comma    string            `toml:"comma"`
	Types    map[string]string `toml:"types"`
}

// LoadJob reads a TOML job file. Unknown keys are rejected so typos do not
// pass silently.
func LoadJob(path string) (*Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var job Job
	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&job); err != nil {
		return nil, fmt.Errorf("job file %s: %w", path, err)
	}
	return &job, nil
}

func (j ExtractJob) apply(fs *pflag.FlagSet, f *extractFlags) {
	unset := func(name string) bool { return !fs.Changed(name) }

	if j.Sheet != "" && unset("sheet") && unset("sheet-index") {
		f.sheet = j.Sheet
	}
	if j.SheetIndex != nil && unset("sheet-index") && unset("sheet") {
		f.sheetIndex = *j.SheetIndex
	}
	if len(j.Anchor) > 0 && unset("anchor") {
		f.anchors = j.Anchor
	}
	if j.SkipTop != 0 && unset("skip-top") {
		f.skipTop = j.SkipTop
	}
	if j.SkipFoot != 0 && unset("skip-foot") {
		f.skipFoot = j.SkipFoot
	}
	if j.Columns != "" && unset("columns") && unset("column") {
		f.columns = j.Columns
	}
	if len(j.Column) > 0 && unset("column") && unset("columns") {
		f.column = j.Column
	}
	if j.Infer && unset("infer") {
		f.infer = true
	}
	if j.Raw && unset("raw") {
		f.raw = true
	}
	if j.Format != "" && unset("format") {
		f.format = j.Format
	}
	if j.Encoding != "" && unset("encoding") {
		f.encoding = j.Encoding
	}
	if j.OutputDir != "" && unset("output-dir") {
		f.outputDir = j.OutputDir
	}
	if j.Jobs != 0 && unset("jobs") {
		f.jobs = j.Jobs
	}
}

func (j ExportJob) apply(fs *pflag.FlagSet, f *exportFlags) {
	unset := func(name string) bool { return !fs.Changed(name) }

	if j.Sheet != "" && unset("sheet") {
		f.sheet = j.Sheet
	}
	if j.IfExists != "" && unset("if-exists") {
		f.ifExists = j.IfExists
	}
	if j.Infer && unset("infer") {
		f.infer = true
	}
	if j.Comma != "" && unset("comma") {
		f.comma = j.Comma
	}
	if len(j.Types) > 0 && unset("type") {
		f.types = j.Types
	}
}
