package tools

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JaimeStill/file-lab/internal/pdf"
)

// ParsePages parses a one-based page selection into zero-based indices.
// Supports "1", "1-5", "1,3,3,2", "-3" (start at 1), and "5-" (end at
// pageCount). Selection order and duplicates are preserved.
func ParsePages(expr string, pageCount int) ([]int, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("%w: empty page selection", ErrInvalidInput)
	}

	var indices []int
	for part := range strings.SplitSeq(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if strings.Contains(part, "-") {
			start, end, err := parseRange(part, pageCount)
			if err != nil {
				return nil, err
			}

			for i := start; i <= end; i++ {
				indices = append(indices, i-1)
			}
			continue
		}

		page, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid page %q", ErrInvalidInput, part)
		}
		if page < 1 || page > pageCount {
			return nil, fmt.Errorf("%w: page %d out of range [1-%d]", pdf.ErrIndexOutOfRange, page, pageCount)
		}
		indices = append(indices, page-1)
	}

	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: no pages selected", ErrInvalidInput)
	}

	return indices, nil
}

func parseRange(part string, pageCount int) (int, int, error) {
	idx := strings.Index(part, "-")

	startStr := strings.TrimSpace(part[:idx])
	endStr := strings.TrimSpace(part[idx+1:])

	var start, end int
	var err error

	if startStr == "" {
		start = 1
	} else {
		start, err = strconv.Atoi(startStr)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: invalid start %q", ErrInvalidInput, startStr)
		}
	}

	if endStr == "" {
		end = pageCount
	} else {
		end, err = strconv.Atoi(endStr)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: invalid end %q", ErrInvalidInput, endStr)
		}
	}

	if start < 1 {
		return 0, 0, fmt.Errorf("%w: start page must be >= 1", ErrInvalidInput)
	}
	if end > pageCount {
		return 0, 0, fmt.Errorf("%w: end page %d exceeds document pages (%d)", pdf.ErrIndexOutOfRange, end, pageCount)
	}
	if start > end {
		return 0, 0, fmt.Errorf("%w: start > end in %q", ErrInvalidInput, part)
	}

	return start, end, nil
}
