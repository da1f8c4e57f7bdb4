package issue

import (
	"fmt"
	"strings"

	"github.com/scopeline-dev/scopeline/internal/codec"
)

// CurrentSchema is written into every saved record and gates future format
// migrations. Older schemas still decode.
const CurrentSchema = 1

// RecordFile is the record filename inside an issue directory.
const RecordFile = "Issue.md"

var recordSectionOrder = []string{LabelVersion, LabelStatus, LabelLocation}

// EncodeRecord renders an issue as Issue.md text: the reserved INI sections
// followed by one "## <Label>" Markdown section per body block.
func EncodeRecord(is *Issue) string {
	location := codec.Section{"filepath": is.Location.Filepath}
	if len(is.Location.References) > 0 {
		refs := make([]any, 0, len(is.Location.References))
		for _, ref := range is.Location.References {
			refs = append(refs, ref.String())
		}
		location["reference[]"] = refs
	}

	sections := codec.Sections{
		LabelVersion:  {"schema": is.Schema},
		LabelStatus:   {"status": string(is.Status)},
		LabelLocation: location,
	}

	var b strings.Builder
	b.WriteString(codec.Serialize(sections, recordSectionOrder))
	for _, block := range is.Blocks {
		b.WriteString("\n## " + block.Label + "\n")
		if block.Text != "" {
			b.WriteString("\n" + strings.TrimRight(block.Text, "\n") + "\n")
		}
	}
	return b.String()
}

// DecodeRecord parses Issue.md text. Decoding is read-permissive: unknown
// schema versions and unknown keys are tolerated, but a record without a
// status or filepath is invalid.
func DecodeRecord(text string) (*Issue, error) {
	head, body := splitRecord(text)
	sections := codec.Parse(head)

	statusValue, ok := sections[LabelStatus]["status"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing status", ErrInvalidFormat)
	}
	status := Status(statusValue)
	if status != StatusOpen && status != StatusClosed {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidFormat, statusValue)
	}

	path := stringValue(sections[LabelLocation]["filepath"])
	if path == "" {
		return nil, fmt.Errorf("%w: missing filepath", ErrInvalidFormat)
	}

	is := &Issue{
		Status:   status,
		Location: Location{Filepath: path},
		Schema:   intValue(sections[LabelVersion]["schema"]),
	}

	if raw, ok := sections[LabelLocation]["reference[]"].([]any); ok {
		for _, item := range raw {
			ref, err := ParseReference(stringValue(item))
			if err != nil {
				return nil, err
			}
			is.Location.References = append(is.Location.References, ref)
		}
	}

	is.Blocks = parseBlocks(body)
	return is, nil
}

// splitRecord separates the INI head from the Markdown body at the first
// "## " heading.
func splitRecord(text string) (head string, body []string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "## ") {
			return strings.Join(lines[:i], "\n"), lines[i:]
		}
	}
	return text, nil
}

func parseBlocks(lines []string) []Block {
	var blocks []Block
	var current *Block
	var acc []string

	flush := func() {
		if current == nil {
			return
		}
		current.Text = strings.TrimSpace(strings.Join(acc, "\n"))
		if !ReservedLabel(current.Label) {
			blocks = append(blocks, *current)
		}
		current = nil
		acc = nil
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "## ") {
			flush()
			current = &Block{Label: strings.TrimSpace(line[3:])}
			continue
		}
		if current != nil {
			acc = append(acc, line)
		}
	}
	flush()
	return blocks
}

func stringValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64, bool, int:
		return fmt.Sprint(value)
	default:
		return ""
	}
}

func intValue(v any) int {
	switch value := v.(type) {
	case float64:
		return int(value)
	case int:
		return value
	default:
		return 0
	}
}
