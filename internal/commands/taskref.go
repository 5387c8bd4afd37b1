package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// maxRangeSize bounds how many numbers a single "a-b" reference may expand to.
const maxRangeSize = 10000

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a single 1-based task number.
func ParseTaskRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	if !isAllDigits(args[0]) {
		return 0, fmt.Errorf("invalid task reference: %s", args[0])
	}
	num, err := strconv.Atoi(args[0])
	if err != nil || num < 1 {
		return 0, fmt.Errorf("invalid task reference: %s", args[0])
	}
	return num, nil
}

// ParseTaskRefs parses one or more task references into 1-based numbers,
// in the order given, without duplicates.
//
// Each argument is a comma-separated list of items, and each item is either
// a number ("3") or an inclusive range ("4-6"). Zero is rejected.
func ParseTaskRefs(args []string) ([]int, error) {
	var nums []int
	seen := make(map[int]bool)
	add := func(n int) {
		if !seen[n] {
			seen[n] = true
			nums = append(nums, n)
		}
	}

	for _, arg := range args {
		for _, item := range strings.Split(arg, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}

			lo, hi, err := parseRefItem(item)
			if err != nil {
				return nil, err
			}
			for n := lo; n <= hi; n++ {
				add(n)
			}
		}
	}

	if len(nums) == 0 {
		return nil, ErrTaskRefRequired
	}
	return nums, nil
}

func parseRefItem(item string) (lo, hi int, err error) {
	start, end, isRange := strings.Cut(item, "-")
	if !isRange {
		end = start
	}
	if !isAllDigits(start) || !isAllDigits(end) {
		return 0, 0, fmt.Errorf("invalid task reference: %s", item)
	}

	lo, err = strconv.Atoi(start)
	if err != nil || lo < 1 {
		return 0, 0, fmt.Errorf("invalid task reference: %s", item)
	}
	hi, err = strconv.Atoi(end)
	if err != nil || hi < 1 {
		return 0, 0, fmt.Errorf("invalid task reference: %s", item)
	}
	if hi < lo || hi-lo >= maxRangeSize {
		return 0, 0, fmt.Errorf("invalid task range: %s", item)
	}
	return lo, hi, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// toPositions converts 1-based task numbers to 0-based view positions.
func toPositions(nums []int) []int {
	positions := make([]int, len(nums))
	for i, n := range nums {
		positions[i] = n - 1
	}
	return positions
}
