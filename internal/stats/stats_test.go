package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuidrill/internal/model"
)

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if out := MovingAverage([]float64{1, 2}, 0); out[0] != 1 || out[1] != 2 {
		t.Fatalf("window <= 1 should copy values, got %v", out)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("expected flat sparkline, got %q", got)
	}
	got := Sparkline([]float64{0, 10})
	if got != " @" {
		t.Fatalf("expected min/max glyphs, got %q", got)
	}
}

func TestSummarize(t *testing.T) {
	recs := []model.Record{
		{Timestamp: 3, ElapsedSeconds: 20, Mistakes: 2, CharSetID: "all"},
		{Timestamp: 1, ElapsedSeconds: 40, Mistakes: 0, CharSetID: "all"},
		{Timestamp: 2, ElapsedSeconds: 30, Mistakes: 1, CharSetID: "symbols"},
	}
	sums := Summarize(recs, 0)
	if len(sums) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(sums))
	}
	all := sums[0]
	if all.CharSetID != "all" || all.Count != 2 || all.BestSeconds != 20 {
		t.Fatalf("unexpected summary %+v", all)
	}
	if all.AvgSeconds != 30 || all.AvgMistakes != 1 {
		t.Fatalf("unexpected averages %+v", all)
	}
	if len(all.Trend) != 2 || all.Trend[0] != 40 || all.Trend[1] != 20 {
		t.Fatalf("expected chronological trend, got %v", all.Trend)
	}
}

func TestFilter(t *testing.T) {
	recs := []model.Record{{CharSetID: "all"}, {CharSetID: "symbols"}}
	if got := Filter(recs, "symbols"); len(got) != 1 || got[0].CharSetID != "symbols" {
		t.Fatalf("unexpected filter result %+v", got)
	}
	if got := Filter(recs, ""); len(got) != 2 {
		t.Fatalf("empty filter should keep all, got %d", len(got))
	}
}

func TestAccuracyAndSpeed(t *testing.T) {
	if got := Accuracy(90, 10); math.Abs(got-0.9) > 1e-9 {
		t.Fatalf("unexpected accuracy %v", got)
	}
	if got := Accuracy(0, 0); got != 0 {
		t.Fatalf("expected zero accuracy, got %v", got)
	}
	if got := CharsPerMinute(100, 30); got != 200 {
		t.Fatalf("unexpected cpm %v", got)
	}
	if got := CharsPerMinute(100, 0); got != 0 {
		t.Fatalf("expected zero cpm for zero seconds, got %v", got)
	}
}

func TestRenderRecords(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderRecords(&buf, nil, strings.ToUpper, 0); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No records found.") {
		t.Fatalf("expected empty notice, got %q", buf.String())
	}

	buf.Reset()
	ts := time.Date(2024, 5, 6, 7, 8, 0, 0, time.Local).UnixMilli()
	recs := []model.Record{
		{Timestamp: ts, ElapsedSeconds: 12, Mistakes: 1, CharSetID: "all"},
		{Timestamp: ts, ElapsedSeconds: 15, Mistakes: 0, CharSetID: "symbols"},
	}
	if err := RenderRecords(&buf, recs, strings.ToUpper, 1); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Records", "ALL", "2024-05-06 07:08"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
	if strings.Contains(out, "SYMBOLS") {
		t.Fatalf("limit should drop the second record: %q", out)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	sums := Summarize([]model.Record{
		{Timestamp: 1, ElapsedSeconds: 10, CharSetID: "all"},
		{Timestamp: 2, ElapsedSeconds: 20, CharSetID: "all"},
		{Timestamp: 3, ElapsedSeconds: 30, CharSetID: "all"},
	}, 1)
	if err := RenderSummary(&buf, sums, func(id string) string { return "set-" + id }, 2); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "set-all") || !strings.Contains(out, "Trend") {
		t.Fatalf("unexpected summary output %q", out)
	}
	if !strings.Contains(out, " @") {
		t.Fatalf("expected trend limited to last two values, got %q", out)
	}
}

func TestTrendWidth(t *testing.T) {
	if got := TrendWidth(0); got != 10 {
		t.Fatalf("expected minimum trend width, got %d", got)
	}
	if got := TrendWidth(100); got != 40 {
		t.Fatalf("expected 40, got %d", got)
	}
}

func TestRenderCharSets(t *testing.T) {
	sets := []model.CharacterSet{
		{ID: "digits", Name: "Digits", Chars: "0123456789", Mode: model.ModeGroupedNumeric, Groups: model.GroupConfig{GroupCount: 4, MinDigits: 2, MaxDigits: 3}},
		{ID: "ab", Name: "AB", Chars: "ab"},
	}
	var buf bytes.Buffer
	if err := RenderCharSets(&buf, sets, "ab"); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", lines)
	}
	if !strings.Contains(lines[1], "grouped 4x2-3") {
		t.Fatalf("expected grouped parameters, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "*") || !strings.Contains(lines[2], "sequential") {
		t.Fatalf("expected active marker on sequential set, got %q", lines[2])
	}
}
