package notes

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/axon/internal/config"
)

// DailyName is the filename of the daily note for t.
func DailyName(t time.Time) string {
	return "daily." + t.Format("2006.01.02") + ".md"
}

type dailyFrontmatter struct {
	Type string `yaml:"type"`
	Date string `yaml:"date"`
}

// DefaultDailyContent is written when no schema matches the daily filename.
func DefaultDailyContent(t time.Time) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(dailyFrontmatter{Type: "daily", Date: t.Format("2006-01-02")}); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return fmt.Sprintf("---\n%s---\n\n# %s\n\n", buf.String(), t.Format("Monday, January 2, 2006")), nil
}

// CreateDaily makes sure the daily note for now exists in dir and returns its
// path. created is false when the note was already there. New notes take
// their content from the schema whose glob matches the filename.
func CreateDaily(dir string, cfg *config.Config, now time.Time) (path string, created bool, err error) {
	name := DailyName(now)
	path = filepath.Join(dir, name)

	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !os.IsNotExist(err) {
		return "", false, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", false, fmt.Errorf("failed to create notes directory: %w", err)
	}

	if cfg == nil {
		cfg = &config.Config{}
	}
	content, ok, err := cfg.ResolveSchema(dir, name)
	if err != nil {
		return "", false, err
	}
	if !ok {
		content, err = DefaultDailyContent(now)
		if err != nil {
			return "", false, err
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return path, false, nil
		}
		return "", false, fmt.Errorf("failed to create daily note: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return "", false, fmt.Errorf("failed to write daily note: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", false, err
	}
	return path, true, nil
}
