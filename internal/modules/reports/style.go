package reports

import (
	"math"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// Horizontal alignments understood by the XLSX writer.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
)

// Layout is the sheet-wide presentation of a report.
type Layout struct {
	Sheet         string
	FirstAlign    string // alignment of the first column
	OtherAlign    string // alignment of every other column
	WidthPadding  int    // added to the longest cell text of a column
	FreezeColumns int    // leading columns kept visible while scrolling
}

// DefaultLayout is shared by both reports.
var DefaultLayout = Layout{
	Sheet:         "Sheet1",
	FirstAlign:    AlignLeft,
	OtherAlign:    AlignCenter,
	WidthPadding:  2,
	FreezeColumns: 3,
}

// Align returns the alignment of the column at index col.
func (l Layout) Align(col int) string {
	if col == 0 {
		return l.FirstAlign
	}
	return l.OtherAlign
}

// ColumnWidths sizes every column to its longest cell text, header included,
// plus the layout padding, capped at the widest column a sheet allows.
func (l Layout) ColumnWidths(t Table) []float64 {
	widths := make([]float64, len(t.Columns))
	for i, name := range t.Columns {
		longest := utf8.RuneCountInString(name)
		for _, row := range t.Rows {
			if i >= len(row) {
				continue
			}
			if n := utf8.RuneCountInString(CellText(row[i])); n > longest {
				longest = n
			}
		}
		widths[i] = math.Min(float64(longest+l.WidthPadding), excelize.MaxColumnWidth)
	}
	return widths
}

// CellStyle is a named cell appearance.
type CellStyle struct {
	Name       string
	Background string
	FontColor  string
	Align      string
}

func (s CellStyle) excel() *excelize.Style {
	return &excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{s.Background}, Pattern: 1},
		Font:      &excelize.Font{Color: s.FontColor},
		Alignment: &excelize.Alignment{Horizontal: s.Align},
	}
}

// Criteria of a ConditionalRule, spelled the way excelize reports them back.
const (
	CriteriaLessThan    = "less than"
	CriteriaGreaterThan = "greater than"
)

// ConditionalRule applies Style to cells whose value compares to Value by Criteria.
type ConditionalRule struct {
	Criteria string
	Value    float64
	Style    CellStyle
}

// Matches evaluates the rule against a cell value.
func (r ConditionalRule) Matches(v float64) bool {
	switch r.Criteria {
	case CriteriaLessThan:
		return v < r.Value
	case CriteriaGreaterThan:
		return v > r.Value
	default:
		return false
	}
}

// ConditionalFormat attaches rules to the named columns of a table. Columns
// missing from the table are ignored.
type ConditionalFormat struct {
	Columns []string
	Rules   []ConditionalRule
}

// StyleFor returns the style of the first matching rule.
func (c ConditionalFormat) StyleFor(v float64) (CellStyle, bool) {
	for _, r := range c.Rules {
		if r.Matches(v) {
			return r.Style, true
		}
	}
	return CellStyle{}, false
}

var (
	// NegativeStyle highlights losses.
	NegativeStyle = CellStyle{Name: "negative", Background: "#FF0000", FontColor: "#FFFFFF", Align: AlignCenter}
	// PositiveStyle highlights gains.
	PositiveStyle = CellStyle{Name: "positive", Background: "#00FF00", FontColor: "#000000", Align: AlignCenter}

	// GainLossFormat colors the summary's change and profit/loss columns.
	// Zero matches neither rule.
	GainLossFormat = ConditionalFormat{
		Columns: []string{
			LabelChangePricePerShare,
			LabelLongOpenProfitLoss,
			LabelCurrentDayProfitLoss,
			LabelCurrentDayProfitLossPercent,
		},
		Rules: []ConditionalRule{
			{Criteria: CriteriaLessThan, Value: 0, Style: NegativeStyle},
			{Criteria: CriteriaGreaterThan, Value: 0, Style: PositiveStyle},
		},
	}
)
