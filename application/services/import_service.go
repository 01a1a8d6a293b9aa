// Package services implements the application workflows: sheet import,
// inbox scanning, calendar sync, queue generation and the scheduled jobs.
// Services orchestrate the domain rules against the ports; they hold no
// business logic of their own beyond sequencing.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"outreach-backend/application/ports"
	"outreach-backend/domain/contact"
	"outreach-backend/pkg/errors"
	"outreach-backend/pkg/utils"
)

// Settings keys owned by the import pipeline.
const (
	SettingSheetsConfig     = "sheets_config"
	SettingSheetsLastExport = "sheets_last_export"
)

// ColumnMapping maps spreadsheet column indexes (0-based) to contact fields.
// Nil means the column is absent from the sheet.
type ColumnMapping struct {
	Name    *int `json:"name,omitempty"`
	Email   *int `json:"email,omitempty"`
	Company *int `json:"company,omitempty"`
	Phone   *int `json:"phone,omitempty"`
	Website *int `json:"website,omitempty"`
	Notes   *int `json:"notes,omitempty"`
}

// SheetsConfig is the saved import source configuration.
type SheetsConfig struct {
	SpreadsheetID string        `json:"spreadsheetId"`
	SheetName     string        `json:"sheetName"`
	ColumnMapping ColumnMapping `json:"columnMapping"`
}

// DuplicateGroup pairs an unimported row with its candidate matches, for
// human review.
type DuplicateGroup struct {
	NewContact contact.Contact  `json:"newContact"`
	Matches    []MatchSummary   `json:"matches"`
}

// MatchSummary is the slimmed-down match the review UI needs.
type MatchSummary struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email,omitempty"`
	Company    string   `json:"company,omitempty"`
	Confidence int      `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

// ImportResult summarizes one sheet import.
type ImportResult struct {
	TotalProcessed  int                 `json:"totalProcessed"`
	Imported        int                 `json:"imported"`
	Updated         int                 `json:"updated"`
	DuplicatesFound int                 `json:"duplicatesFound"`
	Duplicates      []DuplicateGroup    `json:"duplicates,omitempty"`
	Stats           contact.DedupeStats `json:"stats"`
}

// ImportService pulls contact rows out of Google Sheets and lands them in
// the contact store with duplicate protection.
type ImportService struct {
	contacts ports.ContactRepository
	settings ports.SettingsRepository
	sheets   ports.SheetsGateway
	logger   *zap.Logger
}

// NewImportService wires the import pipeline.
func NewImportService(
	contacts ports.ContactRepository,
	settings ports.SettingsRepository,
	sheets ports.SheetsGateway,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		contacts: contacts,
		settings: settings,
		sheets:   sheets,
		logger:   logger,
	}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ParseRows turns raw sheet rows into contact candidates. The first row is
// assumed to be a header. Rows missing a name or a valid email are skipped.
// SheetsRowID records the 1-based spreadsheet row for provenance.
func ParseRows(rows [][]string, mapping ColumnMapping) []contact.Contact {
	if len(rows) < 2 {
		return nil
	}

	var parsed []contact.Contact
	for i, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}

		rowID := i + 2 // header skipped, sheet rows are 1-indexed
		c := contact.Contact{SheetsRowID: &rowID}
		c.Name = cell(row, mapping.Name)
		c.Email = strings.ToLower(cell(row, mapping.Email))
		c.Company = cell(row, mapping.Company)
		c.Phone = cell(row, mapping.Phone)
		c.Website = cell(row, mapping.Website)
		c.Notes = cell(row, mapping.Notes)

		if c.Name == "" || c.Email == "" || !emailPattern.MatchString(c.Email) {
			continue
		}
		parsed = append(parsed, c)
	}
	return parsed
}

func cell(row []string, idx *int) string {
	if idx == nil || *idx < 0 || *idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[*idx])
}

func emptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Sync reads the configured sheet, imports rows with no duplicate candidates
// and returns the rest for review. The configuration is saved for the
// nightly automatic sync.
func (s *ImportService) Sync(ctx context.Context, cfg SheetsConfig) (*ImportResult, error) {
	if cfg.SpreadsheetID == "" || cfg.SheetName == "" {
		return nil, errors.NewValidationError("spreadsheet ID and sheet name are required")
	}

	parsed, existing, err := s.loadRows(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if len(parsed) == 0 {
		return nil, errors.NewValidationError("no valid contacts found in spreadsheet")
	}

	result := &ImportResult{TotalProcessed: len(parsed)}
	var toInsert []contact.Contact

	for _, candidate := range parsed {
		matches := contact.FindDuplicates(candidate, existing)
		if len(matches) == 0 {
			toInsert = append(toInsert, newImported(candidate))
			continue
		}
		result.DuplicatesFound++
		result.Duplicates = append(result.Duplicates, DuplicateGroup{
			NewContact: candidate,
			Matches:    summarize(matches),
		})
		result.Stats = mergeStats(result.Stats, contact.Stats(matches))
	}

	if len(toInsert) > 0 {
		inserted, err := s.contacts.BulkInsert(ctx, toInsert)
		if err != nil {
			s.logger.Error("Failed to insert imported contacts", zap.Error(err))
		} else {
			result.Imported = inserted
		}
	}

	if err := s.saveConfig(ctx, cfg); err != nil {
		s.logger.Warn("Failed to save sheets configuration", zap.Error(err))
	}

	return result, nil
}

// AutoSync is the cron variant: rows with a high-confidence match (>= 90)
// are merged automatically, everything else with matches is left for manual
// review, the rest is inserted.
func (s *ImportService) AutoSync(ctx context.Context) (*ImportResult, error) {
	cfg, err := s.Config(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, nil // nothing configured, skip silently
	}

	parsed, existing, err := s.loadRows(ctx, *cfg)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{TotalProcessed: len(parsed)}

	for _, candidate := range parsed {
		matches := contact.FindDuplicates(candidate, existing)
		if len(matches) == 0 {
			if _, err := s.contacts.Create(ctx, newImported(candidate)); err != nil {
				s.logger.Warn("Failed to insert synced contact",
					zap.String("name", candidate.Name),
					zap.Error(err),
				)
				continue
			}
			result.Imported++
			continue
		}

		top := matches[0]
		if top.Confidence >= 90 {
			merged := contact.Merge(top.Contact, candidate)
			if _, err := s.contacts.Update(ctx, top.Contact.ID, merged); err != nil {
				s.logger.Warn("Failed to auto-merge contact",
					zap.String("contactID", top.Contact.ID),
					zap.Error(err),
				)
				continue
			}
			result.Updated++
		} else {
			result.DuplicatesFound++
		}
	}

	return result, nil
}

// ResolveAction names what the reviewer decided about a duplicate.
type ResolveAction string

const (
	ResolveMerge  ResolveAction = "merge"
	ResolveCreate ResolveAction = "create"
	ResolveSkip   ResolveAction = "skip"
)

// Resolve applies a reviewer's duplicate decision: merge into an existing
// contact, create anyway, or skip the row entirely.
func (s *ImportService) Resolve(ctx context.Context, action ResolveAction, newContact contact.Contact, existingID string) (*contact.Contact, error) {
	switch action {
	case ResolveMerge:
		if existingID == "" {
			return nil, errors.NewValidationError("existing contact ID required for merge")
		}
		existing, err := s.contacts.GetByID(ctx, existingID)
		if err != nil {
			return nil, err
		}
		merged := contact.Merge(*existing, newContact)
		return s.contacts.Update(ctx, existingID, merged)

	case ResolveCreate:
		return s.contacts.Create(ctx, newImported(newContact))

	case ResolveSkip:
		return nil, nil

	default:
		return nil, errors.NewValidationError(fmt.Sprintf("invalid action %q: must be merge, create, or skip", action))
	}
}

// ExportResult summarizes a push of app-created contacts back to the sheet.
type ExportResult struct {
	Exported int `json:"exported"`
}

// Export appends contacts created in the app since the last export to the
// configured sheet, keeping the spreadsheet a complete mirror of the contact
// store. Contacts that originated in the sheet are left alone. The export
// watermark only advances after a successful append.
func (s *ImportService) Export(ctx context.Context) (*ExportResult, error) {
	cfg, err := s.Config(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, errors.NewValidationError("no sheet configured")
	}

	var since time.Time
	if raw, err := s.settings.Get(ctx, SettingSheetsLastExport); err == nil {
		if t, perr := utils.ParseRFC3339(raw); perr == nil {
			since = t
		}
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	now := time.Now()
	created, err := s.contacts.CreatedBetween(ctx, since, now)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for _, c := range created {
		if c.SheetsRowID != nil {
			continue
		}
		rows = append(rows, exportRow(c, cfg.ColumnMapping))
	}

	result := &ExportResult{Exported: len(rows)}
	if len(rows) == 0 {
		return result, nil
	}

	writeRange := fmt.Sprintf("%s!A:Z", cfg.SheetName)
	if err := s.sheets.Append(ctx, cfg.SpreadsheetID, writeRange, rows); err != nil {
		return nil, err
	}
	if err := s.settings.Set(ctx, SettingSheetsLastExport, now.Format(time.RFC3339)); err != nil {
		s.logger.Warn("Failed to save export watermark", zap.Error(err))
	}
	return result, nil
}

// exportRow lays contact fields out according to the sheet's own column
// mapping, so exported rows land in the same columns imports read from.
func exportRow(c contact.Contact, mapping ColumnMapping) []string {
	width := 0
	for _, idx := range []*int{mapping.Name, mapping.Email, mapping.Company, mapping.Phone, mapping.Website, mapping.Notes} {
		if idx != nil && *idx+1 > width {
			width = *idx + 1
		}
	}

	row := make([]string, width)
	put := func(idx *int, v string) {
		if idx != nil && *idx >= 0 && *idx < width {
			row[*idx] = v
		}
	}
	put(mapping.Name, c.Name)
	put(mapping.Email, c.Email)
	put(mapping.Company, c.Company)
	put(mapping.Phone, c.Phone)
	put(mapping.Website, c.Website)
	put(mapping.Notes, c.Notes)
	return row
}

// Config returns the saved sheet configuration, or nil when none exists.
func (s *ImportService) Config(ctx context.Context) (*SheetsConfig, error) {
	raw, err := s.settings.Get(ctx, SettingSheetsConfig)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var cfg SheetsConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, errors.NewInternalError("corrupt sheets configuration").WithCause(err)
	}
	return &cfg, nil
}

func (s *ImportService) loadRows(ctx context.Context, cfg SheetsConfig) ([]contact.Contact, []contact.Contact, error) {
	readRange := fmt.Sprintf("%s!A:Z", cfg.SheetName)
	rows, err := s.sheets.Read(ctx, cfg.SpreadsheetID, readRange)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, errors.NewValidationError("no data found in spreadsheet")
	}

	parsed := ParseRows(rows, cfg.ColumnMapping)

	existing, err := s.contacts.List(ctx, ports.ContactFilter{})
	if err != nil {
		return nil, nil, err
	}
	return parsed, existing, nil
}

func (s *ImportService) saveConfig(ctx context.Context, cfg SheetsConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return s.settings.Set(ctx, SettingSheetsConfig, string(raw))
}

// newImported stamps the defaults a freshly imported row gets.
func newImported(c contact.Contact) contact.Contact {
	if c.Status == "" {
		c.Status = contact.StatusNew
	}
	if c.Priority == "" {
		c.Priority = contact.PriorityMedium
	}
	return c
}

func summarize(matches []contact.Match) []MatchSummary {
	out := make([]MatchSummary, len(matches))
	for i, m := range matches {
		out[i] = MatchSummary{
			ID:         m.Contact.ID,
			Name:       m.Contact.Name,
			Email:      m.Contact.Email,
			Company:    m.Contact.Company,
			Confidence: m.Confidence,
			Reasons:    m.Reasons,
		}
	}
	return out
}

func mergeStats(a, b contact.DedupeStats) contact.DedupeStats {
	return contact.DedupeStats{
		Total:            a.Total + b.Total,
		HighConfidence:   a.HighConfidence + b.HighConfidence,
		MediumConfidence: a.MediumConfidence + b.MediumConfidence,
		LowConfidence:    a.LowConfidence + b.LowConfidence,
	}
}
