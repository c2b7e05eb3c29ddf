package chunker

import "strings"

// The section grammar recognized by the parser:
//
//	header  = divider title divider
//	divider = a line of 3+ '=' or 3+ '-' (both dividers of one header
//	          must use the same character)
//	title   = a non-empty line of uppercase text (A-Z, spaces, & - ( ))
//
// Text before the first header is an implicit introduction block whose
// first line is the title. A divider sandwich around a line that is not
// a valid title still delimits a block, but the block is tagged
// unrecognized so the caller can apply a fallback label.

type blockKind int

const (
	blockSection blockKind = iota
	blockUnrecognized
)

type rawBlock struct {
	kind  blockKind
	title string
	body  string
}

func parseBlocks(text string) []rawBlock {
	lines := strings.Split(text, "\n")
	var blocks []rawBlock

	i := 0
	var intro []string
	for i < len(lines) && !isHeaderAt(lines, i) {
		intro = append(intro, lines[i])
		i++
	}
	if blk, ok := introBlock(intro); ok {
		blocks = append(blocks, blk)
	}

	for i < len(lines) {
		title := strings.TrimSpace(lines[i+1])
		kind := blockSection
		if !isSectionTitle(title) {
			kind = blockUnrecognized
			title = ""
		}
		i += 3

		var body []string
		for i < len(lines) && !isHeaderAt(lines, i) {
			body = append(body, lines[i])
			i++
		}

		blocks = append(blocks, rawBlock{
			kind:  kind,
			title: title,
			body:  strings.TrimSpace(strings.Join(body, "\n")),
		})
	}

	return blocks
}

// introBlock turns the text before the first header into an implicit
// section: first line is the title, the rest the body. An intro with no
// body is dropped.
func introBlock(lines []string) (rawBlock, bool) {
	text := strings.TrimSpace(strings.Join(lines, "\n"))
	if text == "" {
		return rawBlock{}, false
	}

	title, rest, found := strings.Cut(text, "\n")
	if !found {
		return rawBlock{}, false
	}
	body := strings.TrimSpace(rest)
	if body == "" {
		return rawBlock{}, false
	}

	return rawBlock{
		kind:  blockSection,
		title: strings.TrimSpace(title),
		body:  body,
	}, true
}

// isHeaderAt reports whether a header starts at line i: a divider, a
// non-empty middle line, and a closing divider of the same character.
func isHeaderAt(lines []string, i int) bool {
	if i+2 >= len(lines) {
		return false
	}
	ch := dividerChar(lines[i])
	if ch == 0 {
		return false
	}
	if strings.TrimSpace(lines[i+1]) == "" {
		return false
	}
	return dividerChar(lines[i+2]) == ch
}

// dividerChar returns '=' or '-' if the line is a run of 3 or more of
// that single character, 0 otherwise.
func dividerChar(line string) byte {
	line = strings.TrimSpace(line)
	if len(line) < 3 {
		return 0
	}
	ch := line[0]
	if ch != '=' && ch != '-' {
		return 0
	}
	for i := 1; i < len(line); i++ {
		if line[i] != ch {
			return 0
		}
	}
	return ch
}

// isSectionTitle reports whether the line looks like an uppercase
// section title. The accepted character set matches the headers used in
// the knowledge-base documents.
func isSectionTitle(line string) bool {
	if line == "" {
		return false
	}
	hasLetter := false
	for _, r := range line {
		switch {
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		case r == ' ' || r == '\t' || r == '&' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return hasLetter
}
