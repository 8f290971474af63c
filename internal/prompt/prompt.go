package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Errors for interactive prompting.
var (
	// ErrInputClosed indicates the input stream ended before an answer was read.
	ErrInputClosed = errors.New("input closed")
	// errRequiredInput indicates an empty answer to a required prompt.
	errRequiredInput = errors.New("required input missing")
	// errInvalidSelection indicates a menu answer outside the offered options.
	errInvalidSelection = errors.New("invalid selection")
	// errNoOptions indicates a selection prompt was built without options.
	errNoOptions = errors.New("no options provided")
	// errReadInputFailed indicates the input stream could not be read.
	errReadInputFailed = errors.New("failed to read input")
)

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// Config describes a single string prompt.
type Config struct {
	Message   string             // Question shown to the user
	Default   string             // Answer assumed on empty input
	Required  bool               // Reject empty answers without a default
	Validator func(string) error // Optional answer check
}

// New creates a Prompter reading from in and writing to out.
//
// The input stream is wrapped in a single buffered reader shared by all
// prompts, so input typed ahead of a question is not lost between calls.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// String asks for a free-form value.
//
// Empty input yields the default. When the input stream ends, the default is
// returned if one is set, otherwise an error wrapping ErrInputClosed.
func (p *Prompter) String(cfg Config) (string, error) {
	message := cfg.Message
	if cfg.Default != "" {
		message = fmt.Sprintf("%s [%s]", cfg.Message, cfg.Default)
	}

	fmt.Fprintf(p.out, "%s: ", message)

	response, err := p.readLine()
	if err != nil {
		if errors.Is(err, ErrInputClosed) && cfg.Default != "" {
			fmt.Fprintln(p.out)

			return cfg.Default, nil
		}

		return "", err
	}

	if response == "" {
		response = cfg.Default
	}

	if cfg.Required && response == "" {
		return "", errRequiredInput
	}

	if cfg.Validator != nil {
		if err := cfg.Validator(response); err != nil {
			return "", err
		}
	}

	return response, nil
}

// Confirm asks a yes/no question.
//
// Empty input and a closed input stream both yield defaultYes.
func (p *Prompter) Confirm(message string, defaultYes bool) (bool, error) {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	fmt.Fprintf(p.out, "%s %s ", message, hint)

	response, err := p.readLine()
	if err != nil {
		if errors.Is(err, ErrInputClosed) {
			fmt.Fprintln(p.out)

			return defaultYes, nil
		}

		return false, err
	}

	if response == "" {
		return defaultYes, nil
	}

	response = strings.ToLower(response)

	return response == "y" || response == "yes", nil
}

// Select asks the user to pick one of the numbered options and returns its
// index.
//
// Empty input yields defaultIdx. A closed input stream returns an error
// wrapping ErrInputClosed so menu loops can exit cleanly.
func (p *Prompter) Select(message string, options []string, defaultIdx int) (int, error) {
	if len(options) == 0 {
		return -1, errNoOptions
	}

	if defaultIdx < 0 || defaultIdx >= len(options) {
		defaultIdx = 0
	}

	fmt.Fprintf(p.out, "%s:\n", message)

	for i, option := range options {
		marker := "  "
		if i == defaultIdx {
			marker = "> "
		}

		fmt.Fprintf(p.out, "%s%d. %s\n", marker, i+1, option)
	}

	fmt.Fprintf(p.out, "Enter selection [%d]: ", defaultIdx+1)

	response, err := p.readLine()
	if err != nil {
		return -1, err
	}

	if response == "" {
		return defaultIdx, nil
	}

	idx, err := strconv.Atoi(response)
	if err != nil || idx < 1 || idx > len(options) {
		return -1, fmt.Errorf("%w: %s", errInvalidSelection, response)
	}

	return idx - 1, nil
}

// readLine reads one trimmed answer line from the shared reader.
func (p *Prompter) readLine() (string, error) {
	response, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			// A final line without a trailing newline still counts as an answer.
			if trimmed := strings.TrimSpace(response); trimmed != "" {
				return trimmed, nil
			}

			return "", ErrInputClosed
		}

		return "", fmt.Errorf("%w: %w", errReadInputFailed, err)
	}

	return strings.TrimSpace(response), nil
}
