// ABOUTME: Export functionality for chambers data
// ABOUTME: Supports YAML and Markdown export formats
package sqlite

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// exportAuditLimit bounds the audit tail included in an export
const exportAuditLimit = 100

// ExportData represents the complete exportable data structure.
// Secrets are never exported.
type ExportData struct {
	Version    string          `yaml:"version" json:"version"`
	ExportedAt string          `yaml:"exported_at" json:"exported_at"`
	Tool       string          `yaml:"tool" json:"tool"`
	Accounts   []ExportAccount `yaml:"accounts,omitempty" json:"accounts,omitempty"`
	Assets     []ExportAsset   `yaml:"assets,omitempty" json:"assets,omitempty"`
	Audit      []ExportEvent   `yaml:"audit,omitempty" json:"audit,omitempty"`
}

// ExportAccount represents an account and its chambers for export
type ExportAccount struct {
	Key         string          `yaml:"key" json:"key"`
	DisplayName string          `yaml:"display_name" json:"display_name"`
	Tier        string          `yaml:"tier" json:"tier"`
	Status      string          `yaml:"status" json:"status"`
	QueryCount  int             `yaml:"query_count" json:"query_count"`
	CreatedAt   string          `yaml:"created_at" json:"created_at"`
	Chambers    []ExportChamber `yaml:"chambers" json:"chambers"`
}

// ExportChamber represents a chamber with its transcript for export
type ExportChamber struct {
	ID        int64           `yaml:"id" json:"id"`
	Label     string          `yaml:"label" json:"label"`
	Kind      string          `yaml:"kind" json:"kind"`
	Archived  bool            `yaml:"archived" json:"archived"`
	CreatedAt string          `yaml:"created_at" json:"created_at"`
	Messages  []ExportMessage `yaml:"messages" json:"messages"`
}

// ExportMessage represents a transcript entry for export
type ExportMessage struct {
	ID        int64  `yaml:"id" json:"id"`
	Role      string `yaml:"role" json:"role"`
	Body      string `yaml:"body" json:"body"`
	CreatedAt string `yaml:"created_at" json:"created_at"`
}

// ExportAsset represents a library asset for export
type ExportAsset struct {
	Filename  string  `yaml:"filename" json:"filename"`
	SizeKB    float64 `yaml:"size_kb" json:"size_kb"`
	Pages     int     `yaml:"pages" json:"pages"`
	IndexedAt string  `yaml:"indexed_at" json:"indexed_at"`
	Status    string  `yaml:"status" json:"status"`
}

// ExportEvent represents an audit event for export
type ExportEvent struct {
	AccountKey  string `yaml:"account_key,omitempty" json:"account_key,omitempty"`
	Kind        string `yaml:"kind" json:"kind"`
	Description string `yaml:"description" json:"description"`
	CreatedAt   string `yaml:"created_at" json:"created_at"`
}

// Export exports all data from storage
func (s *Storage) Export() (*ExportData, error) {
	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Tool:       "chambers",
	}

	accounts, err := s.accounts.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	for _, account := range accounts {
		exportAccount := ExportAccount{
			Key:         account.Key,
			DisplayName: account.DisplayName,
			Tier:        account.Tier,
			Status:      string(account.Status),
			QueryCount:  account.QueryCount,
			CreatedAt:   account.CreatedAt.Format(time.RFC3339),
		}

		chambers, err := s.chambers.ListByAccount(account.Key, true)
		if err != nil {
			return nil, fmt.Errorf("failed to list chambers for %s: %w", account.Key, err)
		}

		// ListByAccount is newest first; exports read oldest first
		for i := len(chambers) - 1; i >= 0; i-- {
			c := chambers[i]
			messages, err := s.messages.ListSince(c.ID, 0)
			if err != nil {
				return nil, fmt.Errorf("failed to read transcript %d: %w", c.ID, err)
			}

			exportChamber := ExportChamber{
				ID:        c.ID,
				Label:     c.Label,
				Kind:      c.Kind,
				Archived:  c.Archived,
				CreatedAt: c.CreatedAt.Format(time.RFC3339),
				Messages:  make([]ExportMessage, 0, len(messages)),
			}
			for _, m := range messages {
				exportChamber.Messages = append(exportChamber.Messages, ExportMessage{
					ID:        m.ID,
					Role:      string(m.Role),
					Body:      m.Body,
					CreatedAt: m.CreatedAt.Format(time.RFC3339),
				})
			}
			exportAccount.Chambers = append(exportAccount.Chambers, exportChamber)
		}

		data.Accounts = append(data.Accounts, exportAccount)
	}

	assets, err := s.assets.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	for _, a := range assets {
		data.Assets = append(data.Assets, ExportAsset{
			Filename:  a.Filename,
			SizeKB:    a.SizeKB,
			Pages:     a.Pages,
			IndexedAt: a.IndexedAt.Format(time.RFC3339),
			Status:    a.Status,
		})
	}

	events, err := s.audit.Recent(exportAuditLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to read audit trail: %w", err)
	}
	for _, e := range events {
		data.Audit = append(data.Audit, ExportEvent{
			AccountKey:  e.AccountKey,
			Kind:        string(e.Kind),
			Description: e.Description,
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		})
	}

	return data, nil
}

// WriteYAML encodes an export as YAML
func WriteYAML(w io.Writer, data *ExportData) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// WriteMarkdown renders an export as Markdown
func WriteMarkdown(w io.Writer, data *ExportData) error {
	_, _ = fmt.Fprintf(w, "# Chambers Export - %s\n\n", time.Now().Format("2006-01-02"))
	_, _ = fmt.Fprintf(w, "Generated: %s\n\n", data.ExportedAt)

	for _, account := range data.Accounts {
		_, _ = fmt.Fprintf(w, "## %s <%s>\n\n", account.DisplayName, account.Key)
		_, _ = fmt.Fprintf(w, "- **Tier:** %s\n- **Status:** %s\n- **Queries:** %d\n\n",
			account.Tier, account.Status, account.QueryCount)

		for _, c := range account.Chambers {
			state := "active"
			if c.Archived {
				state = "archived"
			}
			_, _ = fmt.Fprintf(w, "### %s (%s)\n\n", c.Label, state)
			for _, m := range c.Messages {
				_, _ = fmt.Fprintf(w, "**%s:** %s\n\n", m.Role, m.Body)
			}
			_, _ = fmt.Fprintln(w, "---")
			_, _ = fmt.Fprintln(w)
		}
	}

	if len(data.Assets) > 0 {
		_, _ = fmt.Fprintln(w, "## Library")
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "| Document | Size (KB) | Pages |")
		_, _ = fmt.Fprintln(w, "|----------|-----------|-------|")
		for _, a := range data.Assets {
			_, err := fmt.Fprintf(w, "| %s | %.2f | %d |\n", a.Filename, a.SizeKB, a.Pages)
			if err != nil {
				return err
			}
		}
		_, _ = fmt.Fprintln(w)
	}

	return nil
}

// ExportToFile writes an export to outputPath; format is "yaml" or "markdown"
func (s *Storage) ExportToFile(outputPath, format string) error {
	data, err := s.Export()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	switch format {
	case "yaml", "yml":
		return WriteYAML(file, data)
	case "markdown", "md":
		return WriteMarkdown(file, data)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
