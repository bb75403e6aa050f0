package storage

import (
	"bytes"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abatilo/tempo/internal/dates"
	"github.com/abatilo/tempo/internal/task"
)

const frontmatterDelimiter = "---"

// planFrontmatter is the YAML-serializable portion of a plan.
type planFrontmatter struct {
	Name  string            `yaml:"name"`
	Tasks []taskFrontmatter `yaml:"tasks"`
}

// taskFrontmatter carries the start as text so any accepted date format loads.
type taskFrontmatter struct {
	task.Task `yaml:",inline"`
	Start     string `yaml:"start"`
}

// ParseMarkdown parses a plan file with YAML frontmatter.
// Tasks whose start is missing or unparseable get today's date; their ids are
// returned so the caller can report them.
func ParseMarkdown(content []byte, today time.Time) (*Plan, []int, error) {
	lines := strings.Split(string(content), "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != frontmatterDelimiter {
		return nil, nil, &parseError{"missing YAML frontmatter"}
	}

	// Find closing delimiter
	var frontmatterEnd int
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterDelimiter {
			frontmatterEnd = i
			break
		}
	}
	if frontmatterEnd == 0 {
		return nil, nil, &parseError{"unclosed YAML frontmatter"}
	}

	yamlContent := strings.Join(lines[1:frontmatterEnd], "\n")
	var fm planFrontmatter
	if err := yaml.Unmarshal([]byte(yamlContent), &fm); err != nil {
		return nil, nil, &parseError{"invalid YAML: " + err.Error()}
	}

	plan := &Plan{
		Name:  fm.Name,
		Tasks: make([]task.Task, 0, len(fm.Tasks)),
	}
	var defaulted []int
	for _, tf := range fm.Tasks {
		t := tf.Task
		start, ok := dates.Parse(tf.Start)
		if !ok {
			start = dates.Midnight(today)
			defaulted = append(defaulted, t.ID)
		}
		t.Start = start
		if t.Type == "" {
			t.Type = task.TypeTask
		}
		plan.Tasks = append(plan.Tasks, t)
	}

	// Notes are everything after frontmatter
	if frontmatterEnd+1 < len(lines) {
		plan.Notes = strings.TrimSpace(strings.Join(lines[frontmatterEnd+1:], "\n"))
	}

	return plan, defaulted, nil
}

// SerializeMarkdown converts a plan to markdown with YAML frontmatter.
// Task order is written exactly as held.
func SerializeMarkdown(p *Plan) ([]byte, error) {
	fm := planFrontmatter{
		Name:  p.Name,
		Tasks: make([]taskFrontmatter, len(p.Tasks)),
	}
	for i, t := range p.Tasks {
		fm.Tasks[i] = taskFrontmatter{Task: t, Start: dates.ISO(t.Start)}
	}

	var buf bytes.Buffer
	buf.WriteString(frontmatterDelimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	buf.WriteString(frontmatterDelimiter + "\n")

	if p.Notes != "" {
		buf.WriteString("\n")
		buf.WriteString(p.Notes)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// parseError represents a parsing error.
type parseError struct {
	msg string
}

func (e *parseError) Error() string {
	return e.msg
}
