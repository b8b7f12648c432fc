package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/randgraph/pkg/bench"
)

func TestResultsTable(t *testing.T) {
	out := resultsTable([]bench.Result{
		{Size: 100, Runs: 10, Edges: 99, GenerateAvg: 1500 * time.Microsecond, SearchAvg: 20 * time.Microsecond, AvgHops: 7.25},
		{Size: 1000, Runs: 10, Edges: 9990, GenerateAvg: 30 * time.Millisecond, SearchAvg: time.Millisecond, AvgHops: 3.5},
	})
	for _, want := range []string{"Vertices", "100", "9990", "0.001500s", "0.000020s", "7.25", "3.50"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0.000000s"},
		{time.Microsecond, "0.000001s"},
		{1500 * time.Millisecond, "1.500000s"},
	}
	for _, tt := range tests {
		if got := formatSeconds(tt.d); got != tt.want {
			t.Errorf("formatSeconds(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, 10, 22, 7, true)
	for _, want := range []string{"10 vertices", "22 edges", "seed 7", iconCached} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("stats line missing %q: %q", want, buf.String())
		}
	}
}
