package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultCategory = "general"

// Loader reads subscription seed files.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load returns the subscriptions from the file. A missing file yields no subscriptions.
func (l *Loader) Load() ([]Subscription, error) {
	if l.path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		slog.Warn("Subscriptions file not found, skipping import", "path", l.path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var file SubscriptionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	subs, err := Normalize(file.Feeds)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded subscriptions", "path", l.path, "count", len(subs))
	return subs, nil
}

// Normalize trims and defaults each subscription, rejects invalid URLs and drops repeated ones.
func Normalize(feeds []Subscription) ([]Subscription, error) {
	seen := make(map[string]bool, len(feeds))
	subs := make([]Subscription, 0, len(feeds))
	for i, sub := range feeds {
		setDefaults(&sub)

		if err := validate(sub); err != nil {
			return nil, fmt.Errorf("invalid subscription at index %d: %w", i, err)
		}

		if seen[sub.URL] {
			slog.Warn("Duplicate subscription, skipping", "url", sub.URL)
			continue
		}
		seen[sub.URL] = true
		subs = append(subs, sub)
	}

	return subs, nil
}

func setDefaults(sub *Subscription) {
	sub.URL = strings.TrimSpace(sub.URL)
	sub.Category = strings.TrimSpace(sub.Category)
	if sub.Category == "" {
		sub.Category = DefaultCategory
	}
}

func validate(sub Subscription) error {
	if sub.URL == "" {
		return fmt.Errorf("feed URL is required")
	}

	u, err := url.Parse(sub.URL)
	if err != nil {
		return fmt.Errorf("feed URL is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("feed URL must use http or https: %s", sub.URL)
	}

	return nil
}
