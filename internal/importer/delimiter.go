package importer

import "strings"

// delimiterCandidates is the fixed preference order used to break ties.
var delimiterCandidates = []rune{'\t', ';', ','}

// DetectDelimiter inspects the header line and picks the candidate whose
// naive split yields the most fields. Ties keep the earlier candidate, so
// tab beats semicolon beats comma. Quoted delimiters on the header line can
// fool the heuristic; that limitation is accepted.
func DetectDelimiter(header string) rune {
	best := delimiterCandidates[0]
	bestCount := 0
	for _, candidate := range delimiterCandidates {
		count := strings.Count(header, string(candidate)) + 1
		if count > bestCount {
			best = candidate
			bestCount = count
		}
	}
	return best
}
