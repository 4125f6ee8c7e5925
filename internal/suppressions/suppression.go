// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package suppressions persists reviewed-and-accepted findings so they stop
// reappearing in later scans. Rules identify a finding by a hash of its
// category and matched text; the text itself never reaches the rule file.
package suppressions

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/neednlab/cn-pii-anonymization/internal/detector"
)

// DefaultFile is the rule file searched in the working directory.
const DefaultFile = ".cn-pii-suppressions.yaml"

// Rule represents a single suppression rule
type Rule struct {
	ID        string     `yaml:"id"`
	Hash      string     `yaml:"hash"`
	Category  string     `yaml:"category"`
	Reason    string     `yaml:"reason"`
	Enabled   bool       `yaml:"enabled"`
	CreatedAt time.Time  `yaml:"created_at"`
	ExpiresAt *time.Time `yaml:"expires_at,omitempty"`
}

// File represents the suppression configuration file
type File struct {
	Version string `yaml:"version"`
	Rules   []Rule `yaml:"rules"`
}

// Manager loads, matches and persists suppression rules.
type Manager struct {
	path    string
	file    *File
	enabled bool
}

// NewManager loads rules from the given path, falling back to the default
// file name. A missing file is an empty rule set, not an error.
func NewManager(path string) *Manager {
	if path == "" {
		path = DefaultFile
	}
	m := &Manager{path: path, enabled: true}
	m.load()
	return m
}

func (m *Manager) load() {
	m.file = &File{Version: "1.0"}

	data, err := os.ReadFile(filepath.Clean(m.path))
	if err != nil {
		return
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return
	}
	if f.Version == "" {
		f.Version = "1.0"
	}
	m.file = &f
}

// FindingHash identifies a finding by its category and matched text. Two
// occurrences of the same value suppress together, which is the useful
// behavior for fixed test fixtures and sample documents.
func FindingHash(category detector.Category, text string) string {
	sum := sha256.Sum256([]byte(string(category) + "|" + text))
	return fmt.Sprintf("%x", sum)
}

// IsSuppressed reports whether a span matches an active rule.
func (m *Manager) IsSuppressed(span detector.Span) (bool, *Rule) {
	if !m.enabled || m.file == nil {
		return false, nil
	}
	hash := FindingHash(span.Category, span.Text)
	for i := range m.file.Rules {
		rule := &m.file.Rules[i]
		if rule.Hash != hash || !rule.Enabled {
			continue
		}
		if rule.ExpiresAt != nil && time.Now().After(*rule.ExpiresAt) {
			continue
		}
		return true, rule
	}
	return false, nil
}

// Filter drops suppressed spans from a result set.
func (m *Manager) Filter(spans []detector.Span) []detector.Span {
	if !m.enabled || len(m.file.Rules) == 0 {
		return spans
	}
	kept := spans[:0]
	for _, s := range spans {
		if ok, _ := m.IsSuppressed(s); !ok {
			kept = append(kept, s)
		}
	}
	return kept
}

// Add creates and persists a rule for a span.
func (m *Manager) Add(span detector.Span, reason string, expiresAt *time.Time) error {
	hash := FindingHash(span.Category, span.Text)
	for _, rule := range m.file.Rules {
		if rule.Hash == hash {
			return fmt.Errorf("suppression already exists for this finding (id %s)", rule.ID)
		}
	}
	m.file.Rules = append(m.file.Rules, Rule{
		ID:        uuid.New().String(),
		Hash:      hash,
		Category:  string(span.Category),
		Reason:    reason,
		Enabled:   true,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
	})
	return m.save()
}

// Generate persists disabled rules for every finding, for later review.
// Existing rules are kept untouched.
func (m *Manager) Generate(spans []detector.Span, reason string) (int, error) {
	added := 0
	for _, s := range spans {
		hash := FindingHash(s.Category, s.Text)
		exists := false
		for _, rule := range m.file.Rules {
			if rule.Hash == hash {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		m.file.Rules = append(m.file.Rules, Rule{
			ID:        uuid.New().String(),
			Hash:      hash,
			Category:  string(s.Category),
			Reason:    reason,
			Enabled:   false,
			CreatedAt: time.Now().UTC(),
		})
		added++
	}
	if added == 0 {
		return 0, nil
	}
	return added, m.save()
}

// Remove deletes a rule by ID.
func (m *Manager) Remove(id string) error {
	for i, rule := range m.file.Rules {
		if rule.ID == id {
			m.file.Rules = append(m.file.Rules[:i], m.file.Rules[i+1:]...)
			return m.save()
		}
	}
	return fmt.Errorf("suppression rule %s not found", id)
}

// List returns a copy of the current rules.
func (m *Manager) List() []Rule {
	out := make([]Rule, len(m.file.Rules))
	copy(out, m.file.Rules)
	return out
}

// SetEnabled toggles suppression matching globally.
func (m *Manager) SetEnabled(enabled bool) { m.enabled = enabled }

// Path returns the rule file location.
func (m *Manager) Path() string { return m.path }

func (m *Manager) save() error {
	data, err := yaml.Marshal(m.file)
	if err != nil {
		return fmt.Errorf("failed to marshal suppression rules: %w", err)
	}
	if dir := filepath.Dir(m.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(m.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write suppression rules: %w", err)
	}
	return nil
}
