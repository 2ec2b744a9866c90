// Package scraper runs the external scraping script and parses its output.
// The script itself is an opaque collaborator: it is expected to print a
// JSON array of flat listing objects to stdout and exit zero.
package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/john9012002/DoAnChuyenNganh/internal/model"
)

// Runner produces a batch of raw listing attribute sets.
type Runner interface {
	Run(ctx context.Context) ([]model.Attributes, error)
}

// ScriptRunner invokes an interpreter on a script file and decodes the JSON
// array it writes to stdout.
type ScriptRunner struct {
	Command string
	Script  string
	Dir     string
}

func NewScriptRunner(command, script, dir string) *ScriptRunner {
	return &ScriptRunner{
		Command: command,
		Script:  script,
		Dir:     dir,
	}
}

func (r *ScriptRunner) Run(ctx context.Context) ([]model.Attributes, error) {
	cmd := exec.CommandContext(ctx, r.Command, r.Script)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("scraper script failed: %w: %s", err, stderr.String())
		}
		return nil, fmt.Errorf("scraper script failed: %w", err)
	}

	var batch []model.Attributes
	if err := json.Unmarshal(stdout.Bytes(), &batch); err != nil {
		return nil, fmt.Errorf("scraper output is not a JSON array: %w", err)
	}
	return batch, nil
}
