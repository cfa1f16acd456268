package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/turtacn/sbgnqual/internal/domain/overrides"
)

// readFixedFile parses the two-column (name, value) fixed-overrides
// table named by -f/--fixed. Blank lines and lines starting with '#'
// are skipped; fields are comma- or whitespace-separated.
func readFixedFile(path string) ([]overrides.Override, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fixed-values file: %w", err)
	}
	defer f.Close()

	var rows []overrides.Override
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == '\t' || r == ' '
		})
		if len(fields) != 2 {
			return nil, fmt.Errorf("fixed-values file: line %d: expected \"name, value\", got %q", lineNo, line)
		}
		value, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("fixed-values file: line %d: value %q is not an integer", lineNo, fields[1])
		}
		rows = append(rows, overrides.Override{Name: fields[0], Value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("fixed-values file: %w", err)
	}
	return rows, nil
}
