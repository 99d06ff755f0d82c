// Package rail determines which payment-rail grammar applies to a
// narration.
package rail

import (
	"regexp"
	"strings"

	"finwatch/upi-audit/internal/models"
)

// Keyword priority is fixed: when a narration mentions several rails
// (e.g. "UPI" inside an RTGS remark) the highest-priority match wins.
var detectors = []struct {
	pattern *regexp.Regexp
	rail    models.Rail
}{
	{regexp.MustCompile(`\bUPI\b`), models.RailUPI},
	{regexp.MustCompile(`\bRTGS\b`), models.RailRTGS},
	{regexp.MustCompile(`\bNEFT\b`), models.RailNEFT},
	{regexp.MustCompile(`\bIMPS\b`), models.RailIMPS},
	{regexp.MustCompile(`\bMMT\b`), models.RailIMPS},
	{regexp.MustCompile(`\bINFT\b`), models.RailINFT},
}

// Detect scans the case-folded original description for whole-word rail
// keywords. Absence of any keyword yields RailUnknown, which the extractor
// maps to "no identifier".
func Detect(description string) models.Rail {
	upper := strings.ToUpper(description)
	for _, d := range detectors {
		if d.pattern.MatchString(upper) {
			return d.rail
		}
	}
	return models.RailUnknown
}
