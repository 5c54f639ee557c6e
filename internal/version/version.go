// Package version holds lazymvn build information and Maven version ordering.
package version

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"unicode"
)

// Info contains version information about lazymvn.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	GoVer   string `json:"go_version"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// NewInfo creates a new Info from the build variables.
func NewInfo(version, commit, date string) *Info {
	return &Info{
		Version: version,
		Commit:  commit,
		Date:    date,
		GoVer:   runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
}

// String returns a formatted version string.
func (i *Info) String() string {
	return fmt.Sprintf("lazymvn %s (commit: %s, built: %s)", i.Version, i.Commit, i.Date)
}

// FullString returns a detailed version string.
func (i *Info) FullString() string {
	return fmt.Sprintf(`lazymvn %s
  Commit:   %s
  Built:    %s
  Go:       %s
  OS/Arch:  %s/%s`, i.Version, i.Commit, i.Date, i.GoVer, i.OS, i.Arch)
}

// qualifier ranks relative to a plain release, which ranks 0.
var qualifierRank = map[string]int{
	"alpha":     -6,
	"a":         -6,
	"beta":      -5,
	"b":         -5,
	"milestone": -4,
	"m":         -4,
	"rc":        -3,
	"cr":        -3,
	"snapshot":  -2,
	"":          0,
	"ga":        0,
	"final":     0,
	"release":   0,
	"sp":        1,
}

// CompareVersions compares two Maven version strings.
// Returns: 1 if a > b, -1 if a < b, 0 if equal.
//
// Numeric segments compare numerically, trailing zero segments are ignored,
// and qualifiers order as alpha < beta < milestone < rc < snapshot < release < sp.
// Unknown qualifiers sort after known pre-release ones, alphabetically.
func CompareVersions(a, b string) int {
	at, bt := tokenize(a), tokenize(b)
	n := max(len(at), len(bt))
	for i := 0; i < n; i++ {
		var x, y string
		if i < len(at) {
			x = at[i]
		}
		if i < len(bt) {
			y = bt[i]
		}
		if c := compareToken(x, y); c != 0 {
			return c
		}
	}
	return 0
}

func compareToken(x, y string) int {
	xn, xNum := number(x)
	yn, yNum := number(y)
	switch {
	case xNum && yNum:
		return sign(xn - yn)
	case xNum:
		if xn == 0 && y == "" {
			return 0
		}
		return 1
	case yNum:
		if yn == 0 && x == "" {
			return 0
		}
		return -1
	}

	xr, xKnown := qualifierRank[x]
	yr, yKnown := qualifierRank[y]
	if !xKnown {
		xr = -1
	}
	if !yKnown {
		yr = -1
	}
	if xr != yr {
		return sign(xr - yr)
	}
	if xKnown && yKnown {
		return 0
	}
	return strings.Compare(x, y)
}

// tokenize splits on '.', '-' and '_' and on digit/letter transitions.
func tokenize(v string) []string {
	v = strings.ToLower(strings.TrimSpace(v))
	if len(v) > 1 && v[0] == 'v' && unicode.IsDigit(rune(v[1])) {
		v = v[1:]
	}

	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	prevDigit := false
	for i, r := range v {
		if r == '.' || r == '-' || r == '_' {
			flush()
			continue
		}
		digit := unicode.IsDigit(r)
		if i > 0 && cur.Len() > 0 && digit != prevDigit {
			flush()
		}
		cur.WriteRune(r)
		prevDigit = digit
	}
	flush()
	return tokens
}

func number(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
