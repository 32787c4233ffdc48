package cmd

import "strings"

// Config carries all runtime settings for the dispatch service.
// Values come from the environment, with a .env file as fallback.
type Config struct {
	HTTPPort       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	Cells          string
	ReportSchedule string
}

// CellLabels splits the configured cell list, trimming each label.
// Empty configuration yields nil so the caller can fall back to the
// built-in closed set.
func (c Config) CellLabels() []string {
	if strings.TrimSpace(c.Cells) == "" {
		return nil
	}

	parts := strings.Split(c.Cells, ",")
	labels := make([]string, 0, len(parts))
	for _, part := range parts {
		if label := strings.TrimSpace(part); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}
