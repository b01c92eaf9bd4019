// Package stats contains record summaries and plain-text reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/tuidrill/internal/model"
)

const sparkChars = " .:-=+*#%@"

const dateLayout = "2006-01-02 15:04"

// Summary aggregates the records of one character set.
type Summary struct {
	CharSetID   string
	Count       int
	BestSeconds int
	AvgSeconds  float64
	AvgMistakes float64
	// Trend holds elapsed seconds in chronological order, smoothed.
	Trend []float64
}

// Accuracy returns the share of correct keystrokes for a finished text of
// length chars typed with the given mistakes.
func Accuracy(chars, mistakes int) float64 {
	total := chars + mistakes
	if total <= 0 {
		return 0
	}
	return float64(chars) / float64(total)
}

// CharsPerMinute returns the typing speed for chars typed in seconds.
func CharsPerMinute(chars, seconds int) float64 {
	if seconds <= 0 {
		return 0
	}
	return float64(chars) / (float64(seconds) / 60.0)
}

// Filter returns the records for charSetID, or all records when it is empty.
func Filter(recs []model.Record, charSetID string) []model.Record {
	if charSetID == "" {
		out := make([]model.Record, len(recs))
		copy(out, recs)
		return out
	}
	out := make([]model.Record, 0, len(recs))
	for _, rec := range recs {
		if rec.CharSetID == charSetID {
			out = append(out, rec)
		}
	}
	return out
}

// Summarize groups records by character set. Summaries are ordered by record
// count, then id.
func Summarize(recs []model.Record, window int) []Summary {
	byID := map[string][]model.Record{}
	for _, rec := range recs {
		byID[rec.CharSetID] = append(byID[rec.CharSetID], rec)
	}
	out := make([]Summary, 0, len(byID))
	for id, group := range byID {
		chrono := make([]model.Record, len(group))
		copy(chrono, group)
		sort.SliceStable(chrono, func(i, j int) bool {
			return chrono[i].Timestamp < chrono[j].Timestamp
		})
		sum := Summary{CharSetID: id, Count: len(group), BestSeconds: group[0].ElapsedSeconds}
		times := make([]float64, len(chrono))
		var totalSec, totalMistakes int
		for i, rec := range chrono {
			if rec.ElapsedSeconds < sum.BestSeconds {
				sum.BestSeconds = rec.ElapsedSeconds
			}
			totalSec += rec.ElapsedSeconds
			totalMistakes += rec.Mistakes
			times[i] = float64(rec.ElapsedSeconds)
		}
		sum.AvgSeconds = float64(totalSec) / float64(len(chrono))
		sum.AvgMistakes = float64(totalMistakes) / float64(len(chrono))
		sum.Trend = MovingAverage(times, window)
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].CharSetID < out[j].CharSetID
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints one row per character set. trendWidth caps the
// sparkline to the most recent values; zero disables the trend column.
func RenderSummary(w io.Writer, sums []Summary, nameOf func(string) string, trendWidth int) error {
	if len(sums) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	headers := []string{"Set", "Runs", "Best (s)", "Avg (s)", "Avg mistakes"}
	if trendWidth > 0 {
		headers = append(headers, "Trend")
	}
	rows := make([][]string, 0, len(sums))
	for _, s := range sums {
		row := []string{
			nameOf(s.CharSetID),
			fmt.Sprintf("%d", s.Count),
			fmt.Sprintf("%d", s.BestSeconds),
			fmt.Sprintf("%.1f", s.AvgSeconds),
			fmt.Sprintf("%.1f", s.AvgMistakes),
		}
		if trendWidth > 0 {
			trend := s.Trend
			if len(trend) > trendWidth {
				trend = trend[len(trend)-trendWidth:]
			}
			row = append(row, Sparkline(trend))
		}
		rows = append(rows, row)
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderRecords prints the ranked records. limit <= 0 prints all of them.
func RenderRecords(w io.Writer, recs []model.Record, nameOf func(string) string, limit int) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, "No records found.")
		return err
	}
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	if _, err := fmt.Fprintln(w, "Records"); err != nil {
		return err
	}
	headers := []string{"#", "Time (s)", "Mistakes", "Set", "Date"}
	rows := make([][]string, 0, len(recs))
	for i, rec := range recs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", rec.ElapsedSeconds),
			fmt.Sprintf("%d", rec.Mistakes),
			nameOf(rec.CharSetID),
			FormatDate(rec),
		})
	}
	rightAlign := map[int]bool{0: true, 1: true, 2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// FormatDate renders a record timestamp for display.
func FormatDate(rec model.Record) string {
	return rec.Time().Format(dateLayout)
}

// RenderCharSets lists the catalog, marking the active set with '*'.
func RenderCharSets(w io.Writer, sets []model.CharacterSet, activeID string) error {
	headers := []string{"", "ID", "Name", "Mode", "Chars"}
	rows := make([][]string, 0, len(sets))
	for _, cs := range sets {
		marker := ""
		if cs.ID == activeID {
			marker = "*"
		}
		mode := cs.Mode.String()
		if cs.Mode == model.ModeGroupedNumeric {
			mode = fmt.Sprintf("%s %dx%d-%d", mode, cs.Groups.GroupCount, cs.Groups.MinDigits, cs.Groups.MaxDigits)
		}
		rows = append(rows, []string{marker, cs.ID, cs.Name, mode, fmt.Sprintf("%d", len([]rune(cs.Chars)))})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{4: true}) {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}
