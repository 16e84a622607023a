package version

import (
	"fmt"
	"strconv"
	"strings"
)

// parse splits "v1.2.3" or "1.2.3-rc.1" into its three numeric parts. Pre-release
// and build suffixes are ignored.
func parse(s string) ([3]int, error) {
	var parts [3]int

	core, _, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(s), "v"), "-")
	core, _, _ = strings.Cut(core, "+")

	fields := strings.Split(core, ".")
	if len(fields) != len(parts) {
		return parts, fmt.Errorf("version %q: want major.minor.patch", s)
	}

	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return parts, fmt.Errorf("version %q: bad component %q", s, field)
		}
		parts[i] = n
	}
	return parts, nil
}

// Compare orders two "major.minor.patch" versions, with or without a leading "v".
// It returns 1 if a > b, -1 if a < b and 0 if they are equal.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}
	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for i := range av {
		switch {
		case av[i] > bv[i]:
			return 1, nil
		case av[i] < bv[i]:
			return -1, nil
		}
	}
	return 0, nil
}
