package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/zerr"
)

// Column names of the project map table.
const (
	ProjectNameColumn = "Project Name"
	TablePathColumn   = "Table Path"
	virtualProjects   = "Virtual Projects"
)

// ProjectFiles implements ports.ProjectFiles over the JSON files of a project root.
type ProjectFiles struct {
	root        string
	mapPath     string
	projectsDir string
	now         func() time.Time
}

// NewProjectFiles reads project files from the locations named by cfg.
func NewProjectFiles(cfg *domain.Config) *ProjectFiles {
	return &ProjectFiles{
		root:        cfg.Root,
		mapPath:     cfg.ProjectMap,
		projectsDir: cfg.ProjectsDir,
		now:         time.Now,
	}
}

// ProjectMap loads the shared project map. Relative table paths are resolved against the root.
func (p *ProjectFiles) ProjectMap(_ context.Context) (*domain.ProjectMap, error) {
	var doc map[string]any
	if err := readJSON(p.mapPath, &doc); err != nil {
		return nil, err
	}
	section, ok := doc[virtualProjects]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrProjectFiles, "missing project map section"), "section", virtualProjects)
	}
	records, err := tableRecords(section)
	if err != nil {
		return nil, zerr.With(err, "path", p.mapPath)
	}

	m := &domain.ProjectMap{Tables: make(map[string]string, len(records)), Version: p.now()}
	for _, rec := range records {
		name := cellString(rec[ProjectNameColumn])
		if name == "" {
			continue
		}
		if _, dup := m.Tables[name]; dup {
			continue
		}
		m.Tables[name] = optionalPath(p.root, cellString(rec[TablePathColumn]))
		m.Names = append(m.Names, name)
	}
	return m, nil
}

// ProjectMapVersion returns the modification time of the project map file.
func (p *ProjectFiles) ProjectMapVersion() (time.Time, error) {
	return modTime(p.mapPath)
}

// VPS loads the virtual project settings of project.
func (p *ProjectFiles) VPS(_ context.Context, project string) (*domain.VPS, error) {
	version, err := p.VPSVersion(project)
	if err != nil {
		return nil, err
	}

	vps := &domain.VPS{Project: project, Version: version}
	if vps.Columns, err = p.sourceColumns(project); err != nil {
		return nil, err
	}
	if vps.Datasets, err = p.datasetTypes(project); err != nil {
		return nil, err
	}
	if vps.Classes, err = p.classTypes(project); err != nil {
		return nil, err
	}
	return vps, nil
}

// VPSVersion returns the newest modification time across the project's settings files.
// Every file must exist.
func (p *ProjectFiles) VPSVersion(project string) (time.Time, error) {
	var newest time.Time
	for _, name := range domain.VPSFiles {
		t, err := modTime(p.projectFile(project, name))
		if err != nil {
			return time.Time{}, zerr.With(err, "project", project)
		}
		if t.After(newest) {
			newest = t
		}
	}
	return newest, nil
}

// GeneralSettings loads the explicit date window of project.
func (p *ProjectFiles) GeneralSettings(_ context.Context, project string) (domain.ProjectSettings, error) {
	var doc map[string]any
	if err := readJSON(p.projectFile(project, domain.GeneralSettingsFile), &doc); err != nil {
		return domain.ProjectSettings{}, err
	}

	var s domain.ProjectSettings
	fields := []struct {
		key string
		dst *domain.Month
	}{
		{"origin_start_date", &s.OriginStart},
		{"origin_end_date", &s.OriginEnd},
		{"development_end_date", &s.DevEnd},
	}
	for _, f := range fields {
		raw, ok := doc[f.key]
		if !ok {
			return domain.ProjectSettings{}, zerr.With(
				zerr.Wrap(domain.ErrProjectFiles, "general settings field missing"), "field", f.key)
		}
		m, err := domain.ParseMonth(cellString(raw))
		if err != nil {
			return domain.ProjectSettings{}, zerr.With(err, "field", f.key)
		}
		*f.dst = m
	}
	return s, nil
}

func (p *ProjectFiles) projectFile(project, name string) string {
	return filepath.Join(p.projectsDir, project, name)
}

func (p *ProjectFiles) sourceColumns(project string) ([]domain.SourceColumn, error) {
	records, err := p.records(project, domain.FieldMappingFile)
	if err != nil {
		return nil, err
	}
	cols := make([]domain.SourceColumn, 0, len(records))
	for _, rec := range records {
		name := cellString(rec["field_name"])
		if name == "" {
			continue
		}
		level, _ := strconv.Atoi(cellString(rec["level"]))
		cols = append(cols, domain.SourceColumn{
			Name:         name,
			Significance: domain.Significance(cellString(rec["significance"])),
			Level:        level,
		})
	}
	return cols, nil
}

func (p *ProjectFiles) datasetTypes(project string) ([]domain.DatasetType, error) {
	records, err := p.records(project, domain.DatasetTypesFile)
	if err != nil {
		return nil, err
	}
	out := make([]domain.DatasetType, 0, len(records))
	for _, rec := range records {
		format := domain.FormatTriangle
		if strings.EqualFold(cellString(rec["Data Format"]), string(domain.FormatVector)) {
			format = domain.FormatVector
		}
		out = append(out, domain.DatasetType{
			Name:   cellString(rec["Name"]),
			Source: cellString(rec["Source"]),
			Format: format,
		})
	}
	return out, nil
}

func (p *ProjectFiles) classTypes(project string) ([]domain.ReservingClassType, error) {
	records, err := p.records(project, domain.ReservingClassTypesFile)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ReservingClassType, 0, len(records))
	for _, rec := range records {
		out = append(out, domain.ReservingClassType{
			Name:       cellString(rec["Name"]),
			Formula:    cellString(rec["Formula"]),
			EEXFormula: cellString(rec["EEX Formula"]),
		})
	}
	return out, nil
}

func (p *ProjectFiles) records(project, name string) ([]map[string]any, error) {
	path := p.projectFile(project, name)
	var doc any
	if err := readJSON(path, &doc); err != nil {
		return nil, err
	}
	records, err := tableRecords(doc)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return records, nil
}

// tableRecords accepts a list of records, an object whose "rows" holds one, or
// an object pairing "columns" (or "headers") with positional "rows".
func tableRecords(v any) ([]map[string]any, error) {
	switch t := v.(type) {
	case []any:
		return recordList(t), nil
	case map[string]any:
		rows, hasRows := t["rows"]
		if !hasRows {
			break
		}
		for _, key := range []string{"columns", "headers"} {
			if cols, ok := t[key]; ok {
				return positionalRows(cols, rows)
			}
		}
		if list, ok := rows.([]any); ok {
			return recordList(list), nil
		}
	}
	return nil, zerr.Wrap(domain.ErrProjectFiles, "unsupported table layout")
}

func recordList(list []any) []map[string]any {
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if rec, ok := item.(map[string]any); ok {
			out = append(out, rec)
		}
	}
	return out
}

func positionalRows(cols, rows any) ([]map[string]any, error) {
	colList, ok := cols.([]any)
	if !ok {
		return nil, zerr.Wrap(domain.ErrProjectFiles, "table columns are not a list")
	}
	rowList, ok := rows.([]any)
	if !ok {
		return nil, zerr.Wrap(domain.ErrProjectFiles, "table rows are not a list")
	}

	names := make([]string, len(colList))
	for i, c := range colList {
		names[i] = cellString(c)
	}
	out := make([]map[string]any, 0, len(rowList))
	for _, r := range rowList {
		cells, ok := r.([]any)
		if !ok {
			continue
		}
		rec := make(map[string]any, len(names))
		for i, name := range names {
			if i < len(cells) {
				rec[name] = cells[i]
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// cellString renders a decoded JSON scalar the way it appears in a spreadsheet cell.
// Null becomes the empty string.
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

func readJSON(path string, target any) error {
	// #nosec G304 -- project files live under the configured root
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrProjectFiles, "read project file"), "path", path), "cause", err.Error())
	}
	if err := json.Unmarshal(data, target); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrProjectFiles, "parse project file"), "path", path), "cause", err.Error())
	}
	return nil
}

func modTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, zerr.With(zerr.With(zerr.Wrap(domain.ErrProjectFiles, "stat project file"), "path", path), "cause", err.Error())
	}
	return info.ModTime(), nil
}
