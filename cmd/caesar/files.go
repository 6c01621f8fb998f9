package main

import (
	"fmt"
	"os"
	"strings"
)

// readMessage reads a file and joins its lines into a single string, the
// same shape a message given on the command line has.
func readMessage(file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read %q: %w", file, err)
	}
	return strings.ReplaceAll(string(data), "\n", ""), nil
}

func writeOutput(file, text string) error {
	err := os.WriteFile(file, []byte(text), 0644)
	if err != nil {
		return fmt.Errorf("write %q: %w", file, err)
	}
	return nil
}
