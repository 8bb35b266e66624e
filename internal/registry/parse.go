package registry

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

var (
	ErrMalformedLine        = errors.New("malformed registry line")
	ErrUnexpectedField      = errors.New("unexpected registry field")
	ErrRepeatedField        = errors.New("repeated registry field")
	ErrDuplicateSubtag      = errors.New("duplicate script subtag")
	ErrDuplicateDescription = errors.New("duplicate script description")
)

const recordSeparator = "%%"

type field struct {
	name  string
	value string
	line  int
}

type record struct {
	fields []field
	line   int
}

var ignoredLanguageFields = map[string]struct{}{
	"Added":           {},
	"Comments":        {},
	"Description":     {},
	"Scope":           {},
	"Macrolanguage":   {},
	"Deprecated":      {},
	"Preferred-Value": {},
}

var ignoredScriptFields = map[string]struct{}{
	"Added":    {},
	"Comments": {},
}

// ParseString parses a registry document held in memory.
func ParseString(document string) (*Index, error) {
	return Parse(strings.NewReader(document))
}

// Parse reads a full registry document and builds its Index.
func Parse(r io.Reader) (*Index, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	idx := newIndex()
	for _, rec := range records {
		if len(rec.fields) == 0 {
			continue
		}
		first := rec.fields[0]
		switch {
		case first.name == "File-Date":
			idx.fileDate = first.value
		case first.name == "Type" && first.value == "language":
			if err := idx.addLanguageRecord(rec); err != nil {
				return nil, err
			}
		case first.name == "Type" && first.value == "script":
			if err := idx.addScriptRecord(rec); err != nil {
				return nil, err
			}
		}
	}
	return idx, nil
}

// readRecords splits the document on %% lines and unfolds continuation lines
// into the preceding field value.
func readRecords(r io.Reader) ([]record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		records []record
		current record
		lineNo  int
	)
	flush := func() {
		if len(current.fields) > 0 {
			records = append(records, current)
		}
		current = record{}
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == recordSeparator {
			flush()
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			if len(current.fields) == 0 {
				return nil, fmt.Errorf("%w: line %d: continuation without a field", ErrMalformedLine, lineNo)
			}
			last := &current.fields[len(current.fields)-1]
			last.value = strings.TrimSpace(last.value + " " + strings.TrimSpace(line))
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedLine, lineNo, line)
		}
		if len(current.fields) == 0 {
			current.line = lineNo
		}
		current.fields = append(current.fields, field{
			name:  strings.TrimSpace(name),
			value: strings.TrimSpace(value),
			line:  lineNo,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	flush()
	return records, nil
}

func (i *Index) addLanguageRecord(rec record) error {
	var subtag, script string
	for _, f := range rec.fields[1:] {
		switch f.name {
		case "Subtag":
			if subtag != "" {
				return fieldError(ErrRepeatedField, "language", f)
			}
			subtag = f.value
		case "Suppress-Script":
			if script != "" {
				return fieldError(ErrRepeatedField, "language", f)
			}
			script = f.value
		default:
			if _, ok := ignoredLanguageFields[f.name]; !ok {
				return fieldError(ErrUnexpectedField, "language", f)
			}
		}
	}
	if subtag != "" && script != "" {
		i.addLanguage(subtag, script)
	}
	return nil
}

func (i *Index) addScriptRecord(rec record) error {
	var (
		subtag       string
		descriptions []string
	)
	for _, f := range rec.fields[1:] {
		switch f.name {
		case "Subtag":
			if subtag != "" {
				return fieldError(ErrRepeatedField, "script", f)
			}
			subtag = f.value
		case "Description":
			descriptions = append(descriptions, f.value)
		default:
			if _, ok := ignoredScriptFields[f.name]; !ok {
				return fieldError(ErrUnexpectedField, "script", f)
			}
		}
	}
	if subtag == "" {
		return nil
	}

	for _, description := range descriptions {
		if existing, ok := i.scriptsByDescription[description]; ok {
			if existing != subtag {
				return fmt.Errorf("%w: line %d: %q is registered for %s and %s",
					ErrDuplicateDescription, rec.line, description, existing, subtag)
			}
			continue
		}
		i.scriptsByDescription[description] = subtag
	}

	set := normalizeDescriptions(descriptions)
	if existing, ok := i.scriptsBySubtag[subtag]; ok {
		if !sameStrings(existing, set) {
			return fmt.Errorf("%w: line %d: %s", ErrDuplicateSubtag, rec.line, subtag)
		}
		return nil
	}
	i.scriptsBySubtag[subtag] = set
	return nil
}

func normalizeDescriptions(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func fieldError(marker error, recordType string, f field) error {
	return fmt.Errorf("%w: line %d: %s record field %q", marker, f.line, recordType, f.name)
}
