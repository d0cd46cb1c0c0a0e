package tabular

import (
	"strconv"
	"strings"
)

// naValues are the cell texts read as missing.
var naValues = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

func isNA(s string) bool {
	_, ok := naValues[s]
	return ok
}

// inferKind picks the narrowest kind every present cell parses as.
// A column with no present cells stays a string column.
func inferKind(c *Column) Kind {
	present := 0
	allInt := true
	for i, s := range c.raw {
		if c.null[i] {
			continue
		}
		present++
		s = strings.TrimSpace(s)
		if allInt {
			if _, err := strconv.ParseInt(s, 10, 64); err == nil {
				continue
			}
			allInt = false
		}
		if _, err := parseFloat(s); err != nil {
			return KindString
		}
	}

	switch {
	case present == 0:
		return KindString
	case allInt:
		return KindInt
	default:
		return KindFloat
	}
}

// parseFloat accepts decimal and exponent notation only.
func parseFloat(s string) (float64, error) {
	if strings.ContainsAny(s, "xX_pP") {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}
