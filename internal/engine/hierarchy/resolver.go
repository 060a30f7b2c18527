// Package hierarchy turns a reserving class path into per-level row rules.
package hierarchy

import (
	"slices"
	"strings"

	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/tri/internal/engine/formula"
	"go.trai.ch/zerr"
)

// Catalog resolves category names case-insensitively.
type Catalog interface {
	Class(name string) (domain.ReservingClassType, bool)
}

// Level holds the rules of one hierarchy level.
type Level struct {
	// Column is the data column the level filters on.
	Column string
	// Included values keep a row. An empty list keeps every row.
	Included []string
	// Excluded values flip the sign of a row's measures.
	Excluded []string
	// Adjusted values zero the exposure measure of a row.
	Adjusted []string
}

// Filters reports whether the level restricts rows at all.
func (l Level) Filters() bool { return len(l.Included) > 0 }

// Includes reports whether v passes the level filter.
func (l Level) Includes(v string) bool { return !l.Filters() || slices.Contains(l.Included, v) }

// Excludes reports whether v must be sign-flipped.
func (l Level) Excludes(v string) bool { return slices.Contains(l.Excluded, v) }

// Adjusts reports whether v must have its exposure zeroed.
func (l Level) Adjusts(v string) bool { return slices.Contains(l.Adjusted, v) }

// Resolve walks path against the catalog, one segment per entry of columns.
// Segments beyond the declared columns are ignored. An empty segment yields a level
// without rules.
func Resolve(path string, columns []string, catalog Catalog) ([]Level, error) {
	segments := SplitPath(path)
	levels := make([]Level, 0, min(len(segments), len(columns)))

	for i, segment := range segments {
		if i >= len(columns) {
			break
		}
		level := Level{Column: columns[i]}
		segment = strings.TrimSpace(segment)
		if segment == "" {
			levels = append(levels, level)
			continue
		}

		class, ok := catalog.Class(segment)
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrUnknownCategory, "resolve category path"), domain.KeyName, segment)
		}

		level.Included = appendUnique(level.Included, class.Name)
		if strings.TrimSpace(class.Formula) != "" {
			terms := formula.Tokenize(class.Formula)
			for _, term := range terms {
				if term.Op == formula.Minus {
					level.Excluded = appendUnique(level.Excluded, term.Item)
				}
				level.Included = appendUnique(level.Included, term.Item)
			}

			if strings.TrimSpace(class.EEXFormula) != "" {
				kept := formula.Items(class.EEXFormula)
				for _, term := range terms {
					if !slices.Contains(kept, term.Item) {
						level.Adjusted = appendUnique(level.Adjusted, term.Item)
					}
				}
			}
		}
		levels = append(levels, level)
	}
	return levels, nil
}

// SplitPath splits a category path on '/' or '\\'. Empty segments are kept so
// that "A//C" still addresses the third level.
func SplitPath(path string) []string {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(path, "\\", "/"), "/")
}

func appendUnique(list []string, v string) []string {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}
