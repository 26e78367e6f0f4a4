package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// PromptLines asks each field on its own line and reads one line of input per field.
//
// Empty input keeps the default. Defaults of secret fields are not echoed.
func PromptLines(in io.Reader, out io.Writer, fields []Field) ([]string, error) {
	reader := bufio.NewReader(in)
	values := make([]string, len(fields))

	for i, field := range fields {
		shown := field.Default
		if field.Secret && shown != "" {
			shown = maskedDefault
		}

		if shown != "" {
			fmt.Fprintf(out, "%s [%s]: ", field.Label, shown)
		} else {
			fmt.Fprintf(out, "%s: ", field.Label)
		}

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read %s: %w", strings.ToLower(field.Label), err)
		}

		values[i] = strings.TrimSpace(line)
		if values[i] == "" {
			values[i] = field.Default
		}
	}

	return values, nil
}
