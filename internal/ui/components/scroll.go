package components

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Window renders as many blocks as fit in height, starting at offset and
// moving it so the selected block stays visible. It returns the rendered
// text and the adjusted offset.
func Window(blocks []string, selected, offset, height int) (string, int) {
	if len(blocks) == 0 {
		return "", 0
	}
	selected = min(max(selected, 0), len(blocks)-1)
	offset = min(max(offset, 0), selected)

	heights := make([]int, len(blocks))
	for i, b := range blocks {
		heights[i] = lipgloss.Height(b)
	}
	span := func(from, to int) int {
		n := 0
		for i := from; i <= to; i++ {
			n += heights[i]
		}
		return n
	}
	for offset < selected && span(offset, selected) > height {
		offset++
	}

	var out []string
	used := 0
	for i := offset; i < len(blocks); i++ {
		if used+heights[i] > height && i > offset {
			break
		}
		out = append(out, blocks[i])
		used += heights[i]
	}
	return strings.Join(out, "\n"), offset
}
