package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/suiamor/alignd/core"
)

// Source column names. The catalog is maintained as a single sheet where
// answer rows carry Is_Selectable=TRUE and alignment rows carry a non-empty
// Alignment_Type.
const (
	colAnswerID       = "Answer_ID"
	colQuestionID     = "Question_ID"
	colQuestionText   = "Question_Text"
	colAnswerText     = "Answer_Text"
	colCategory       = "Category"
	colParentAnswerID = "Parent_Answer_ID"
	colAxisEnergy     = "Axis_Energy"
	colAxisPace       = "Axis_Pace"
	colAxisOrient     = "Axis_Orientation"
	colAxisStructure  = "Axis_Structure"
	colAxisExpression = "Axis_Expression"
	colIsSelectable   = "Is_Selectable"
	colAlignmentID    = "Alignment_ID"
	colAlignmentType  = "Alignment_Type"
	colAlignmentName  = "Alignment_Name"
	colAlignmentText  = "Alignment_Text"
	colComponents     = "Alignment_Components"
)

// requiredColumns must all be present in the header; their absence is a
// structural failure that aborts the whole load. Every other column is
// optional and coerces to its zero value per row.
var requiredColumns = []string{
	colAnswerID,
	colAnswerText,
	colIsSelectable,
	colAlignmentID,
	colAlignmentType,
	colComponents,
}

// componentSeparator joins component ids in the source, e.g.
// "COLOR_RED+COLOR_YELLOW".
const componentSeparator = "+"

// Load parses catalog source CSV into answer options and alignments.
//
// Header-level problems (unparseable CSV, missing required columns, empty
// source) fail the load. Row-level problems are handled leniently: malformed
// axis values coerce to 0.0, rows without a usable id are skipped, and
// alignment rows that fail domain validation are skipped. Row order is
// preserved; it defines catalog iteration order downstream.
func Load(r io.Reader) ([]core.AnswerOption, []core.Alignment, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, ErrEmptySource
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrMalformedSource, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var (
		answers    []core.AnswerOption
		alignments []core.Alignment
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrMalformedSource, err)
		}

		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		if isSelectable(field(colIsSelectable)) {
			answer := core.AnswerOption{
				ID:           field(colAnswerID),
				QuestionID:   field(colQuestionID),
				QuestionText: field(colQuestionText),
				Text:         field(colAnswerText),
				Category:     field(colCategory),
				ParentID:     field(colParentAnswerID),
				Axes:         parseAxes(field),
			}
			if core.ValidateAnswerOption(&answer) == nil {
				answers = append(answers, answer)
			}
		}

		if rawType := field(colAlignmentType); rawType != "" {
			alignmentType, err := core.ParseAlignmentType(rawType)
			if err != nil {
				continue
			}
			alignment := core.Alignment{
				ID:             field(colAlignmentID),
				Type:           alignmentType,
				Title:          field(colAlignmentName),
				Description:    field(colAlignmentText),
				Components:     splitComponents(field(colComponents)),
				OrderSensitive: alignmentType.OrderSensitive(),
			}
			if core.ValidateAlignment(&alignment) == nil {
				alignments = append(alignments, alignment)
			}
		}
	}

	return answers, alignments, nil
}

// LoadSnapshot parses catalog source bytes and builds a ready-to-serve
// snapshot in one step. The snapshot revision is the content hash of the
// source.
func LoadSnapshot(source []byte) (*Snapshot, error) {
	answers, alignments, err := Load(strings.NewReader(string(source)))
	if err != nil {
		return nil, err
	}
	return NewSnapshot(answers, alignments, core.IDFromContent(source)), nil
}

// IsLoadError reports whether err is a catalog load failure, as opposed to an
// unrelated error from the surrounding operation.
func IsLoadError(err error) bool {
	return errors.Is(err, ErrEmptySource) ||
		errors.Is(err, ErrMissingColumn) ||
		errors.Is(err, ErrMalformedSource)
}

func isSelectable(raw string) bool {
	return strings.EqualFold(raw, "TRUE") || raw == "1"
}

func splitComponents(raw string) []string {
	parts := strings.Split(raw, componentSeparator)
	components := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			components = append(components, p)
		}
	}
	return components
}

func parseAxes(field func(string) string) core.Axes {
	var axes core.Axes
	axes[core.AxisEnergy] = safeFloat(field(colAxisEnergy))
	axes[core.AxisPace] = safeFloat(field(colAxisPace))
	axes[core.AxisOrientation] = safeFloat(field(colAxisOrient))
	axes[core.AxisStructure] = safeFloat(field(colAxisStructure))
	axes[core.AxisExpression] = safeFloat(field(colAxisExpression))
	return axes
}

// safeFloat converts a source value to float64, coercing anything
// unparseable to 0.0 rather than failing the row.
func safeFloat(raw string) float64 {
	if raw == "" {
		return 0.0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0.0
	}
	return v
}
