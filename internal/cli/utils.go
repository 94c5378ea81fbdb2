package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// prompter asks questions on out and reads answers from in
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// ask prompts until validator accepts the answer. EOF ends the wizard with an error.
func (p *prompter) ask(prompt string, validator func(string) (string, error)) (string, error) {
	for {
		fmt.Fprint(p.out, prompt)
		input, err := p.in.ReadString('\n')
		if err != nil && (err != io.EOF || input == "") {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		input = strings.TrimSpace(input)

		result, verr := validator(input)
		if verr == nil {
			return result, nil
		}
		if err == io.EOF {
			return "", verr
		}

		fmt.Fprintf(p.out, "%s\n\n", FormatError("❌ "+verr.Error()))
	}
}

// yesNo prompts for yes/no input, Enter meaning no
func (p *prompter) yesNo(prompt string) (bool, error) {
	result, err := p.ask(prompt, func(input string) (string, error) {
		lower := strings.ToLower(input)
		if lower == "y" || lower == "yes" || lower == "n" || lower == "no" || lower == "" {
			return lower, nil
		}
		return "", fmt.Errorf("invalid input: %s (enter y/yes/n/no or press Enter for no)", input)
	})
	if err != nil {
		return false, err
	}

	return result == "y" || result == "yes", nil
}

// optional prompts with a default used on an empty answer, then validates
func (p *prompter) optional(prompt, defaultValue string, validator func(string) (string, error)) (string, error) {
	return p.ask(prompt, func(input string) (string, error) {
		if input == "" {
			input = defaultValue
		}
		if validator == nil {
			return input, nil
		}
		return validator(input)
	})
}
