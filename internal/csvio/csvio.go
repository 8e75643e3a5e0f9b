// Package csvio maps completed-set collections to and from the flat CSV
// interchange format used for backup, restore, and merge.
package csvio

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// Header is the fixed first line of every export. Imports whose first line
// differs from it are rejected outright.
const Header = "setId,sessionId,exerciseId,plannedSetId,completedAt,notes,repGroupOrder,reps,weight"

const fieldCount = 9

// Filename returns the export filename convention for the given day,
// e.g. "workout-history-2026-08-29.csv".
func Filename(now time.Time) string {
	return "workout-history-" + now.UTC().Format("2006-01-02") + ".csv"
}

// Export writes the collection as CSV, one row per rep group. Sets sharing
// multiple rep groups repeat their shared fields on each row. Timestamps
// are encoded as ISO-8601 UTC.
func Export(w io.Writer, sets []models.CompletedSet) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return err
	}
	for _, set := range sets {
		completedAt := set.CompletedAt.UTC().Format(time.RFC3339)
		for _, g := range set.RepGroups {
			row := strings.Join([]string{
				quote(set.ID),
				quote(set.SessionID),
				quote(set.ExerciseID),
				quote(set.PlannedSetID),
				quote(completedAt),
				quote(set.Notes),
				strconv.Itoa(g.Order),
				strconv.Itoa(g.Reps),
				strconv.FormatFloat(g.Weight, 'f', -1, 64),
			}, ",")
			if _, err := bw.WriteString(row + "\n"); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// ExportString renders the collection to a string. Convenience wrapper
// around Export for callers that hold the result in memory.
func ExportString(sets []models.CompletedSet) string {
	var sb strings.Builder
	Export(&sb, sets) // strings.Builder writes cannot fail
	return sb.String()
}

// quote wraps a field in double quotes when it contains a comma, quote, or
// newline, doubling any embedded quotes (RFC 4180).
func quote(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Parse reads CSV text and reconstructs the completed-set collection.
// Rows are grouped by setId: the first row seen for a setId establishes the
// set's shared fields, and every row contributes one rep group. Rep groups
// are sorted by their order column, so row order in the file is free.
// Returns a FormatError on a header mismatch or a malformed row; the parse
// is all-or-nothing.
func Parse(r io.Reader) ([]models.CompletedSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != Header {
		return nil, &models.FormatError{Reason: "unexpected header; expected " + Header}
	}

	byID := make(map[string]*models.CompletedSet)
	var order []string

	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		lineNo := i + 1

		fields := splitLine(line)
		if len(fields) != fieldCount {
			return nil, &models.FormatError{
				Line:   lineNo,
				Reason: fmt.Sprintf("expected %d fields, got %d", fieldCount, len(fields)),
			}
		}

		setID := fields[0]
		set, ok := byID[setID]
		if !ok {
			completedAt, err := time.Parse(time.RFC3339, fields[4])
			if err != nil {
				return nil, &models.FormatError{Line: lineNo, Reason: "invalid completedAt timestamp " + strconv.Quote(fields[4])}
			}
			set = &models.CompletedSet{
				ID:           setID,
				SessionID:    fields[1],
				ExerciseID:   fields[2],
				PlannedSetID: fields[3],
				CompletedAt:  completedAt,
				Notes:        fields[5],
			}
			byID[setID] = set
			order = append(order, setID)
		}

		groupOrder, err := strconv.Atoi(fields[6])
		if err != nil {
			return nil, &models.FormatError{Line: lineNo, Reason: "invalid repGroupOrder " + strconv.Quote(fields[6])}
		}
		reps, err := strconv.Atoi(fields[7])
		if err != nil {
			return nil, &models.FormatError{Line: lineNo, Reason: "invalid reps " + strconv.Quote(fields[7])}
		}
		weight, err := strconv.ParseFloat(fields[8], 64)
		if err != nil {
			return nil, &models.FormatError{Line: lineNo, Reason: "invalid weight " + strconv.Quote(fields[8])}
		}

		set.RepGroups = append(set.RepGroups, models.RepGroup{
			Reps:   reps,
			Weight: weight,
			Order:  groupOrder,
		})
	}

	sets := make([]models.CompletedSet, 0, len(order))
	for _, id := range order {
		set := byID[id]
		sort.SliceStable(set.RepGroups, func(a, b int) bool {
			return set.RepGroups[a].Order < set.RepGroups[b].Order
		})
		sets = append(sets, *set)
	}
	return sets, nil
}

// splitLine splits one CSV row into fields, honoring quoted fields. A quote
// toggles in-quote state; a doubled quote inside a quoted field is a literal
// quote; commas inside quotes do not separate fields.
func splitLine(line string) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				field.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}
	fields = append(fields, field.String())
	return fields
}
