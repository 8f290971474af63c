// Package prompt implements the interactive question helpers for pgbranch's menu mode.
// It reads answers line by line from a single buffered reader so sequential
// prompts never swallow each other's input.
//
// Key components:
//   - Prompter: Reads answers from an input stream and writes prompts to an output stream.
//   - Config: Describes a single string prompt (message, default, validation).
//   - ErrInputClosed: Reported when the input stream ends, letting menu loops exit cleanly.
//
// Usage example:
//
//	p := prompt.New(os.Stdin, os.Stderr)
//	name, err := p.String(prompt.Config{Message: "Feature name", Required: true})
//	if err != nil {
//	    return err
//	}
//
// Prompts are written to the output stream (normally stderr), keeping stdout
// free for data output.
package prompt
