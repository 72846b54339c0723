package registration

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ResolveOption maps typed input onto one of the configured options. An exact
// case-insensitive match wins, then a single fuzzy match. With no options the
// input is returned trimmed, and empty input is left for the field rules to
// report.
func ResolveOption(input string, options []string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" || len(options) == 0 {
		return input, nil
	}

	for _, opt := range options {
		if strings.EqualFold(opt, input) {
			return opt, nil
		}
	}

	ranks := fuzzy.RankFindFold(input, options)
	switch len(ranks) {
	case 0:
		return "", fmt.Errorf("unknown option %q (choose from: %s)", input, strings.Join(options, ", "))
	case 1:
		return ranks[0].Target, nil
	}

	sort.Sort(ranks)
	if ranks[0].Distance < ranks[1].Distance {
		return ranks[0].Target, nil
	}

	candidates := make([]string, len(ranks))
	for i, r := range ranks {
		candidates[i] = r.Target
	}
	return "", fmt.Errorf("ambiguous option %q (matches: %s)", input, strings.Join(candidates, ", "))
}
