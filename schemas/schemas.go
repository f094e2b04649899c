// Package schemas embeds the JSON Schemas for the config file and the JSON
// score report.
package schemas

import "embed"

// Schema file names.
const (
	Config      = "config.schema.json"
	ScoreReport = "score_report.schema.json"
)

//go:embed *.schema.json
var FS embed.FS

// Names lists every embedded schema.
func Names() []string {
	return []string{Config, ScoreReport}
}
