package program

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse reads a whole program source. Lines are numbered from 1.
func Parse(r io.Reader) (*Program, error) {
	b := NewBuilder()

	br := bufio.NewReader(r)

	for line := 1; ; line++ {
		text, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("line %d: read source: %w", line, err)
		}

		if text != "" {
			text = strings.TrimRight(text, "\r\n")
			if ferr := b.Feed(line, text); ferr != nil {
				return nil, ferr
			}
		}

		if err != nil {
			return b.Build(), nil
		}
	}
}

// ParseString parses a program held in memory.
func ParseString(src string) (*Program, error) {
	return Parse(strings.NewReader(src))
}

// LoadProgramFile parses the program stored at path.
func LoadProgramFile(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open program: %w", err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}
