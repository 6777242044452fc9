package youtube

import (
	"fmt"
	"regexp"
	"strconv"
)

// durationRe matches the ISO 8601 durations the API returns, e.g. PT1H2M3S,
// PT45S, P1DT2H or P0D.
var durationRe = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseDuration converts a compact duration to whole seconds. Absent
// components count as zero.
func ParseDuration(s string) (int, error) {
	m := durationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	units := [...]int{86400, 3600, 60, 1}
	total := 0
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		total += n * unit
	}
	return total, nil
}
