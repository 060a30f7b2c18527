package domain

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// ProjectMap resolves project names to the physical path of their data table.
// It is replaced wholesale on reload.
type ProjectMap struct {
	// Tables maps Project Name to Table Path.
	Tables map[string]string
	// Names lists the projects in file order.
	Names []string
	// Version is the wall-clock time of the load that produced this map.
	Version time.Time
}

// TablePath returns the table path registered for project.
func (p *ProjectMap) TablePath(project string) (string, bool) {
	if p == nil {
		return "", false
	}
	path, ok := p.Tables[project]
	return path, ok
}

// ProjectSettings is the resolved date window of a project.
type ProjectSettings struct {
	OriginStart Month
	OriginEnd   Month
	DevEnd      Month
}

// Significance tags the semantic role of a source column.
type Significance string

const (
	// SignificanceOrigin marks the origin date column.
	SignificanceOrigin Significance = "Origin Date"
	// SignificanceDevelopment marks the development date column.
	SignificanceDevelopment Significance = "Development Date"
	// SignificanceReservingClass marks a hierarchy level column.
	SignificanceReservingClass Significance = "Reserving Class"
)

// SourceColumn describes one column of the raw data table.
type SourceColumn struct {
	Name         string
	Significance Significance
	Level        int
}

// DataFormat is the declared output shape of a dataset.
type DataFormat string

const (
	// FormatTriangle is a full origin by development matrix.
	FormatTriangle DataFormat = "Triangle"
	// FormatVector is constant across development age.
	FormatVector DataFormat = "Vector"
)

// DatasetType maps a user-facing dataset name to its source formula.
type DatasetType struct {
	Name   string
	Source string
	Format DataFormat
}

// ReservingClassType is one named category of the reserving-class hierarchy.
type ReservingClassType struct {
	Name       string
	Formula    string
	EEXFormula string
}

// VPS holds the virtual project settings of one project.
type VPS struct {
	Project  string
	Columns  []SourceColumn
	Datasets []DatasetType
	Classes  []ReservingClassType
	// Version is the newest modification time across the backing files.
	Version time.Time
}

// Dataset returns the dataset type declared under name.
func (v *VPS) Dataset(name string) (DatasetType, error) {
	for _, d := range v.Datasets {
		if d.Name == name {
			return d, nil
		}
	}
	return DatasetType{}, zerr.With(zerr.Wrap(ErrUnknownDataset, "lookup dataset"), KeyName, name)
}

// FormatOf returns the declared format of the dataset whose source is exactly source.
// Sources that no dataset declares are treated as triangles.
func (v *VPS) FormatOf(source string) DataFormat {
	for _, d := range v.Datasets {
		if d.Source == source {
			return d.Format
		}
	}
	return FormatTriangle
}

// Class resolves name case-insensitively to its reserving class type.
func (v *VPS) Class(name string) (ReservingClassType, bool) {
	for _, c := range v.Classes {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return ReservingClassType{}, false
}

// Schema is the column role assignment of a project's data table.
type Schema struct {
	OriginColumn      string
	DevelopmentColumn string
	// ClassColumns are the reserving class columns ordered by level.
	ClassColumns []string
}

// Schema derives the column roles from the source table.
func (v *VPS) Schema() (Schema, error) {
	var s Schema
	var classes []SourceColumn
	seen := make(map[string]bool)

	for _, c := range v.Columns {
		switch c.Significance {
		case SignificanceOrigin:
			if s.OriginColumn == "" {
				s.OriginColumn = c.Name
			}
		case SignificanceDevelopment:
			if s.DevelopmentColumn == "" {
				s.DevelopmentColumn = c.Name
			}
		case SignificanceReservingClass:
			if !seen[c.Name] {
				seen[c.Name] = true
				classes = append(classes, c)
			}
		}
	}

	if s.OriginColumn == "" {
		return s, zerr.With(zerr.Wrap(ErrMissingColumn, "no origin date column declared"), KeyName, string(SignificanceOrigin))
	}
	if s.DevelopmentColumn == "" {
		return s, zerr.With(zerr.Wrap(ErrMissingColumn, "no development date column declared"), KeyName, string(SignificanceDevelopment))
	}

	slices.SortStableFunc(classes, func(a, b SourceColumn) int {
		return cmp.Compare(a.Level, b.Level)
	})
	for _, c := range classes {
		s.ClassColumns = append(s.ClassColumns, c.Name)
	}
	return s, nil
}
