package main

import (
	"strings"
	"testing"
)

func TestRenderTableWithFooter(t *testing.T) {
	out := renderTableWithFooter(
		[]string{"Pair", "Pairs", "Detail"},
		[][]string{{"ep01", "12"}, {"ep02", "0", "sync ep02: no synchronized pairs"}},
		[]string{"total", "12"},
		[]columnAlignment{alignLeft, alignRight, alignLeft},
	)
	for _, want := range []string{"PAIR", "ep01", "ep02", "no synchronized pairs", "TOTAL"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected table to contain %q:\n%s", want, out)
		}
	}
	if renderTable(nil, nil, nil) != "" {
		t.Fatal("expected empty output without headers")
	}
}
