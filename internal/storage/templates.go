// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists teller's client-side state.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/teller-tui/internal/util"
)

// =============================================================================
// TRANSFER TEMPLATES
// =============================================================================

// MaxTemplates caps stored transfer templates at the most recent entries.
const MaxTemplates = 5

// Template is a saved transfer request for reuse.
type Template struct {
	Name        string    `json:"name"`
	ToAccount   string    `json:"toAccount"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// TemplateStore persists transfer templates.
type TemplateStore struct {
	// BaseDir is the application directory, default ~/.teller
	BaseDir string
}

// NewTemplateStore creates a template store rooted at baseDir.
func NewTemplateStore(baseDir string) (*TemplateStore, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, err
	}
	return &TemplateStore{BaseDir: baseDir}, nil
}

func (s *TemplateStore) path() string {
	return filepath.Join(s.BaseDir, "templates.json")
}

// List returns the saved templates, most recent last.
func (s *TemplateStore) List() []Template {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return nil
	}
	var templates []Template
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil
	}
	return templates
}

// Save appends a template, keeping only the MaxTemplates most recent.
func (s *TemplateStore) Save(tpl Template) error {
	if tpl.Timestamp.IsZero() {
		tpl.Timestamp = time.Now()
	}

	templates := append(s.List(), tpl)
	if len(templates) > MaxTemplates {
		templates = templates[len(templates)-MaxTemplates:]
	}

	data, err := json.MarshalIndent(templates, "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(s.path(), data, 0600)
}

// Clear removes all saved templates.
func (s *TemplateStore) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
