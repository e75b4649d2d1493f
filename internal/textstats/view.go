package textstats

import "sort"

// Metric selects how a ranked row's value is derived from its count.
type Metric string

const (
	// MetricCount reports the raw occurrence count.
	MetricCount Metric = "count"
	// MetricFreq reports the count divided by the total word count of the
	// entire mapping.
	MetricFreq Metric = "freq"
)

// ViewParams control ranking, filtering, and value derivation.
type ViewParams struct {
	MinCount int    // drop entries with a count below this (>= 1)
	TopN     int    // keep only the first N rows after filtering; 0 = unlimited
	Metric   Metric // count or freq
}

// Row is one ranked entry derived from a frequency mapping. Cumulative
// figures run over the emitted rows against the grand total of the whole
// mapping.
type Row struct {
	Word     string
	Count    int
	Value    float64
	CumCount int
	CumPct   float64
}

// TotalWords sums all counts in a frequency mapping.
func TotalWords(counts map[string]int) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

// BuildView produces the ordered, value-annotated rows for a frequency
// mapping: descending by count, ties broken by ascending word. The MinCount
// filter applies before TopN truncation. The freq metric divides by the
// total over the entire mapping, not the filtered subset.
func BuildView(counts map[string]int, p ViewParams) []Row {
	total := TotalWords(counts)

	rows := make([]Row, 0, len(counts))
	for word, count := range counts {
		if count < p.MinCount {
			continue
		}
		rows = append(rows, Row{Word: word, Count: count})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Word < rows[j].Word
	})

	if p.TopN > 0 && len(rows) > p.TopN {
		rows = rows[:p.TopN]
	}

	denom := float64(total)
	if denom == 0 {
		denom = 1
	}

	cum := 0
	for i := range rows {
		cum += rows[i].Count
		rows[i].CumCount = cum
		if total > 0 {
			rows[i].CumPct = float64(cum) / float64(total) * 100.0
		}
		if p.Metric == MetricFreq {
			rows[i].Value = float64(rows[i].Count) / denom
		} else {
			rows[i].Value = float64(rows[i].Count)
		}
	}

	return rows
}

// ParseMetric normalizes a metric selector. "frequency" is accepted as an
// alias for freq. Unknown values return false.
func ParseMetric(s string) (Metric, bool) {
	switch s {
	case "", string(MetricCount):
		return MetricCount, true
	case string(MetricFreq), "frequency":
		return MetricFreq, true
	}
	return "", false
}
