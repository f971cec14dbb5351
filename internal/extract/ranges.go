package extract

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRange converts simulation number arguments into an ordered list:
// "7" -> [7], "2-4" -> [2 3 4], and explicit lists pass through.
func ParseRange(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("extract: no simulation numbers given")
	}

	if len(args) == 1 && strings.Contains(args[0], "-") {
		first, second, _ := strings.Cut(args[0], "-")
		lo, err := strconv.Atoi(first)
		if err != nil {
			return nil, fmt.Errorf("extract: malformed range %q", args[0])
		}
		hi, err := strconv.Atoi(second)
		if err != nil {
			return nil, fmt.Errorf("extract: malformed range %q", args[0])
		}
		if lo > hi {
			return nil, fmt.Errorf("extract: range %q is reversed", args[0])
		}

		numbers := make([]int, 0, hi-lo+1)
		for n := lo; n <= hi; n++ {
			numbers = append(numbers, n)
		}
		return numbers, nil
	}

	numbers := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("extract: invalid simulation number %q", arg)
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}
