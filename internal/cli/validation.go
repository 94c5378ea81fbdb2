package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/AI2HU/gdc/internal/db"
)

// validateProvider validates a counter store provider name
func validateProvider(input string) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	for _, p := range db.Providers {
		if input == p {
			return input, nil
		}
	}
	return "", fmt.Errorf("unknown provider: %s (choose one of %s)", input, strings.Join(db.Providers, ", "))
}

// validateNamespace validates a counter key namespace
func validateNamespace(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("namespace is required")
	}
	if strings.ContainsAny(input, " \t*?[]") {
		return "", fmt.Errorf("namespace must not contain spaces or glob characters")
	}
	return input, nil
}

// validateCronExpression validates a standard cron expression or descriptor such as @hourly
func validateCronExpression(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("cron expression is required")
	}
	if _, err := cron.ParseStandard(input); err != nil {
		return "", fmt.Errorf("invalid cron expression: %s (%v)", input, err)
	}
	return input, nil
}

// validateNumber validates numeric input within a range
func validateNumber(input string, min, max int) (int, error) {
	num, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", input)
	}
	if num < min || num > max {
		return 0, fmt.Errorf("number must be between %d and %d, got: %d", min, max, num)
	}
	return num, nil
}

// numberValidator adapts validateNumber to the prompter
func numberValidator(min, max int) func(string) (string, error) {
	return func(input string) (string, error) {
		n, err := validateNumber(input, min, max)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(n), nil
	}
}

// maskSensitiveData masks credentials inside a connection URI for display
func maskSensitiveData(uri string) string {
	if uri == "" {
		return "(not set)"
	}
	at := strings.LastIndex(uri, "@")
	scheme := strings.Index(uri, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return uri
	}
	return uri[:scheme+3] + "***" + uri[at:]
}
