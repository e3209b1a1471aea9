package client

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/atinyakov/tripwise/internal/models"
)

// PromptForPost reads a post interactively from in, writing the questions
// to out.
func PromptForPost(in io.Reader, out io.Writer) NewPost {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "What's on your mind? ")
	scanner.Scan()
	content := strings.TrimSpace(scanner.Text())

	fmt.Fprint(out, "Location tag (optional): ")
	scanner.Scan()
	tag := strings.TrimSpace(scanner.Text())

	return NewPost{Content: content, LocationTag: tag}
}

// PromptForTrip reads a recommendation request interactively. Unparseable
// or empty answers leave the field at its zero value.
func PromptForTrip(in io.Reader, out io.Writer) models.RecommendationRequest {
	scanner := bufio.NewScanner(in)
	var req models.RecommendationRequest

	fmt.Fprint(out, "Trip length in days: ")
	scanner.Scan()
	if n, err := strconv.Atoi(strings.TrimSpace(scanner.Text())); err == nil {
		req.Duration = n
	}

	fmt.Fprint(out, "Budget (budget/standard/luxury): ")
	scanner.Scan()
	req.Budget = models.Budget(strings.TrimSpace(scanner.Text()))

	fmt.Fprint(out, "Interests (comma separated): ")
	scanner.Scan()
	req.Interests = SplitList(scanner.Text())

	fmt.Fprint(out, "Region (leave empty for any): ")
	scanner.Scan()
	req.Region = models.Region(strings.TrimSpace(scanner.Text()))

	return req
}

// SplitList splits a comma-separated answer, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
