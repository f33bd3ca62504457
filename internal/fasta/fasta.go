package fasta

import (
	"bufio"
	"io"
	"strings"
)

// Record is a single FASTA record: the header line (without the leading
// '>') and its sequence lines concatenated.
type Record struct {
	Header   string
	Sequence string
}

// Parse reads FASTA records from r. Headers must be unique within one
// input; a repeated header returns a *DuplicateHeaderError. Sequence
// lines between headers are concatenated, so multi-line sequences are
// handled. Text before the first header is ignored.
func Parse(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	seen := make(map[string]bool)
	var records []Record
	var current *Record
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, ">") {
			if current != nil {
				records = append(records, *current)
			}
			header := line[1:]
			if seen[header] {
				return nil, &DuplicateHeaderError{Header: header}
			}
			seen[header] = true
			current = &Record{Header: header}
		} else if current != nil {
			current.Sequence += strings.TrimSpace(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if current != nil {
		records = append(records, *current)
	}
	return records, nil
}

// SequenceID extracts the sequence identifier from a UNITE-style FASTA
// header: the first whitespace-delimited token after the '>' delimiter.
func SequenceID(header string) string {
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// JoinFiles concatenates the contents of multiple FASTA files. A newline
// is inserted between files so the last sequence of one file cannot be
// concatenated with the first header of the next.
func JoinFiles(contents ...string) string {
	var b strings.Builder
	for _, c := range contents {
		b.WriteString(c)
		b.WriteString("\n")
	}
	return b.String()
}
