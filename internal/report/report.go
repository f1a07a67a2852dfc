package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/4elobrek9/repodoc-cli/internal/scan"
	"github.com/4elobrek9/repodoc-cli/internal/synth"
	"github.com/4elobrek9/repodoc-cli/internal/utils"
	"github.com/google/uuid"
)

// Report captures one documentation run: what was scanned, what the model
// produced per file, and the synthesized sections. It is persisted next to the
// generated README when requested.
type Report struct {
	RunID      string         `json:"run_id"`
	Repository string         `json:"repository"`
	RemoteURL  string         `json:"remote_url,omitempty"`
	Model      string         `json:"model"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Languages  map[string]int `json:"languages"`
	Files      []FileRecord   `json:"files"`
	Sections   synth.Sections `json:"sections"`
}

// FileRecord is the per-file slice of a report.
type FileRecord struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Analysis string `json:"analysis,omitempty"`
}

// New starts a report for the given run. Call Finish before saving.
func New(model string) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Model:     model,
		StartedAt: time.Now(),
	}
}

// Finish fills in the scan and synthesis outcome and stamps the end time.
func (r *Report) Finish(meta *scan.Metadata, sections synth.Sections) {
	r.Repository = meta.Name
	r.RemoteURL = meta.RemoteURL
	r.Languages = meta.LanguageStats
	r.Files = make([]FileRecord, 0, len(meta.Files))
	for _, f := range meta.Files {
		r.Files = append(r.Files, FileRecord{
			Path:     f.Path,
			Language: f.Language,
			Analysis: f.Analysis,
		})
	}
	r.Sections = sections
	r.FinishedAt = time.Now()
}

// Save writes the report as indented JSON using an atomic write.
func (r *Report) Save(path string) error {
	data, err := utils.PrettyJSON(r)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(path, data)
}

// Load reads a previously saved report.
func Load(path string) (*Report, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("report not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}
