// Package ingest loads comment batches from files. The pipeline itself only
// ever sees validated model.Comment values; this package is the boundary
// where CSV and JSON inputs become those values.
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/signalsift/signalsift/internal/model"
)

// LoadComments reads a batch of comments from a .json or .csv file
func LoadComments(path string) ([]model.Comment, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadJSON(path)
	case ".csv":
		return loadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported input format: %s (expected .json or .csv)", path)
	}
}

func loadJSON(path string) ([]model.Comment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var comments []model.Comment
	if err := json.Unmarshal(data, &comments); err != nil {
		return nil, fmt.Errorf("parse JSON input: %w", err)
	}
	return comments, nil
}

func loadCSV(path string) ([]model.Comment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV input: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty CSV input")
	}

	// Map header names to columns so column order doesn't matter.
	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"id", "text"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("CSV input missing required column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	comments := make([]model.Comment, 0, len(rows)-1)
	for n, row := range rows[1:] {
		comment := model.Comment{
			ID:             field(row, "id"),
			Text:           field(row, "text"),
			AuthorUsername: field(row, "author_username"),
			AuthorBio:      field(row, "author_bio"),
			Context:        field(row, "context"),
			Verified:       strings.EqualFold(field(row, "verified"), "true"),
		}

		var convErr error
		comment.AuthorFollowers, convErr = parseCount(field(row, "author_followers"), convErr)
		comment.Likes, convErr = parseCount(field(row, "likes"), convErr)
		comment.Replies, convErr = parseCount(field(row, "replies"), convErr)
		comment.Shares, convErr = parseCount(field(row, "shares"), convErr)
		if convErr != nil {
			return nil, fmt.Errorf("CSV row %d: %w", n+2, convErr)
		}

		if raw := field(row, "account_age_days"); raw != "" {
			age, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("CSV row %d: account_age_days: %w", n+2, err)
			}
			comment.AccountAgeDays = &age
		}

		comments = append(comments, comment)
	}
	return comments, nil
}

// parseCount parses a non-negative integer field, treating blank as zero and
// threading an earlier error through.
func parseCount(raw string, prev error) (int, error) {
	if prev != nil {
		return 0, prev
	}
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return v, nil
}
