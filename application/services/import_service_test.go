package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"outreach-backend/domain/contact"
)

func intPtr(n int) *int { return &n }

func defaultMapping() ColumnMapping {
	return ColumnMapping{
		Name:    intPtr(0),
		Email:   intPtr(1),
		Company: intPtr(2),
		Phone:   intPtr(3),
	}
}

func TestParseRows(t *testing.T) {
	rows := [][]string{
		{"Name", "Email", "Company", "Phone"},
		{"Jon Smith", "JON@Example.com", "Acme", "555-0100"},
		{"", "", "", ""},
		{"No Email", "", "Acme", ""},
		{"Bad Email", "not-an-email", "Acme", ""},
		{"  Jane Doe  ", " jane@example.com ", "", ""},
	}

	parsed := ParseRows(rows, defaultMapping())
	require.Len(t, parsed, 2)

	assert.Equal(t, "Jon Smith", parsed[0].Name)
	assert.Equal(t, "jon@example.com", parsed[0].Email, "email should be lowercased")
	require.NotNil(t, parsed[0].SheetsRowID)
	assert.Equal(t, 2, *parsed[0].SheetsRowID, "first data row is sheet row 2")

	assert.Equal(t, "Jane Doe", parsed[1].Name, "cells should be trimmed")
	require.NotNil(t, parsed[1].SheetsRowID)
	assert.Equal(t, 6, *parsed[1].SheetsRowID, "row numbering counts skipped rows")
}

func TestParseRowsHeaderOnly(t *testing.T) {
	parsed := ParseRows([][]string{{"Name", "Email"}}, defaultMapping())
	assert.Empty(t, parsed)
}

func newImportService(contacts *fakeContactRepo, sheets *fakeSheets, settings *fakeSettingsRepo) *ImportService {
	return NewImportService(contacts, settings, sheets, zap.NewNop())
}

func TestSyncImportsNewAndHoldsDuplicates(t *testing.T) {
	contacts := &fakeContactRepo{contacts: []contact.Contact{
		{ID: "c-existing", Name: "Jon Smith", Email: "jon@example.com", Status: contact.StatusContacted},
	}}
	sheets := &fakeSheets{rows: [][]string{
		{"Name", "Email", "Company", "Phone"},
		{"Jon Smith", "jon@example.com", "Acme", ""},
		{"Fresh Face", "fresh@example.com", "", ""},
	}}
	settings := &fakeSettingsRepo{}
	svc := newImportService(contacts, sheets, settings)

	result, err := svc.Sync(context.Background(), SheetsConfig{
		SpreadsheetID: "sheet-1",
		SheetName:     "Contacts",
		ColumnMapping: defaultMapping(),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalProcessed)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.DuplicatesFound)
	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, "c-existing", result.Duplicates[0].Matches[0].ID)
	assert.Equal(t, 100, result.Duplicates[0].Matches[0].Confidence)

	// New contact landed with defaults.
	require.Len(t, contacts.contacts, 2)
	assert.Equal(t, contact.StatusNew, contacts.contacts[1].Status)
	assert.Equal(t, contact.PriorityMedium, contacts.contacts[1].Priority)

	// Configuration was persisted for the nightly sync.
	assert.Contains(t, settings.values, SettingSheetsConfig)
}

func TestSyncRejectsMissingConfig(t *testing.T) {
	svc := newImportService(&fakeContactRepo{}, &fakeSheets{}, &fakeSettingsRepo{})
	_, err := svc.Sync(context.Background(), SheetsConfig{})
	assert.Error(t, err)
}

func TestAutoSyncMergesHighConfidence(t *testing.T) {
	contacts := &fakeContactRepo{contacts: []contact.Contact{
		{ID: "c-1", Name: "Jon Smith", Email: "jon@example.com", Status: contact.StatusContacted, Priority: contact.PriorityHigh},
		{ID: "c-2", Name: "Maria Garcia", Email: "maria@widgets.io", Status: contact.StatusNew},
	}}
	sheets := &fakeSheets{rows: [][]string{
		{"Name", "Email", "Company", "Phone"},
		{"Jon Smith", "jon@example.com", "Acme Corp", "555-0100"}, // exact email, merges
		{"Mariah Garcia", "mariah@other.net", "", ""},             // name distance 1, held
		{"Brand New", "new@example.com", "", ""},                  // inserted
	}}
	settings := &fakeSettingsRepo{}
	svc := newImportService(contacts, sheets, settings)

	cfg := SheetsConfig{SpreadsheetID: "s", SheetName: "Contacts", ColumnMapping: defaultMapping()}
	require.NoError(t, svc.saveConfig(context.Background(), cfg))

	result, err := svc.AutoSync(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 1, result.Updated, "exact email match should auto-merge")
	assert.Equal(t, 1, result.DuplicatesFound, "near-name match stays held for review")
	assert.Equal(t, 1, result.Imported)

	merged, err := contacts.GetByID(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", merged.Company, "merge should fill in the company")
	assert.Equal(t, "555-0100", merged.Phone)
	assert.Equal(t, contact.StatusContacted, merged.Status, "incoming row has no status, existing wins")
}

func TestAutoSyncWithoutConfigIsNoop(t *testing.T) {
	svc := newImportService(&fakeContactRepo{}, &fakeSheets{}, &fakeSettingsRepo{})
	result, err := svc.AutoSync(context.Background())
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestResolveMerge(t *testing.T) {
	contacts := &fakeContactRepo{contacts: []contact.Contact{
		{ID: "c-1", Name: "Jon Smith", Email: "jon@example.com", Notes: "original"},
	}}
	svc := newImportService(contacts, &fakeSheets{}, &fakeSettingsRepo{})

	incoming := contact.Contact{Name: "Jon Smith", Email: "jon@acme.com", Notes: "from sheet"}
	merged, err := svc.Resolve(context.Background(), ResolveMerge, incoming, "c-1")
	require.NoError(t, err)
	require.NotNil(t, merged)
	assert.Equal(t, "jon@acme.com", merged.Email)
	assert.Equal(t, "original\n\n---\n\nfrom sheet", merged.Notes)
}

func TestResolveCreateAndSkip(t *testing.T) {
	contacts := &fakeContactRepo{}
	svc := newImportService(contacts, &fakeSheets{}, &fakeSettingsRepo{})

	created, err := svc.Resolve(context.Background(), ResolveCreate, contact.Contact{Name: "X", Email: "x@y.co"}, "")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, contact.StatusNew, created.Status)

	skipped, err := svc.Resolve(context.Background(), ResolveSkip, contact.Contact{}, "")
	require.NoError(t, err)
	assert.Nil(t, skipped)

	_, err = svc.Resolve(context.Background(), ResolveAction("bogus"), contact.Contact{}, "")
	assert.Error(t, err)
}

func TestResolveMergeRequiresExistingID(t *testing.T) {
	svc := newImportService(&fakeContactRepo{}, &fakeSheets{}, &fakeSettingsRepo{})
	_, err := svc.Resolve(context.Background(), ResolveMerge, contact.Contact{Name: "X"}, "")
	assert.Error(t, err)
}

func savedSheetsConfig(t *testing.T, settings *fakeSettingsRepo) {
	t.Helper()
	require.NoError(t, settings.Set(context.Background(), SettingSheetsConfig,
		`{"spreadsheetId":"sheet-1","sheetName":"Contacts","columnMapping":{"name":0,"email":1,"company":2,"phone":3}}`))
}

func TestExportAppendsAppCreatedContacts(t *testing.T) {
	contacts := &fakeContactRepo{contacts: []contact.Contact{
		{ID: "c-1", Name: "From Sheet", Email: "sheet@example.com", SheetsRowID: intPtr(2)},
		{ID: "c-2", Name: "Fresh Face", Email: "fresh@example.com", Company: "Acme"},
	}}
	sheets := &fakeSheets{}
	settings := &fakeSettingsRepo{}
	savedSheetsConfig(t, settings)
	svc := newImportService(contacts, sheets, settings)

	result, err := svc.Export(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Exported, "sheet-sourced contacts stay out of the export")
	require.Len(t, sheets.appended, 1)
	assert.Equal(t, []string{"Fresh Face", "fresh@example.com", "Acme", ""}, sheets.appended[0],
		"row laid out per the saved column mapping")

	// The watermark advanced, so an immediate re-export is a no-op.
	again, err := svc.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, again.Exported)
	assert.Len(t, sheets.appended, 1)
}

func TestExportRequiresConfig(t *testing.T) {
	svc := newImportService(&fakeContactRepo{}, &fakeSheets{}, &fakeSettingsRepo{})
	_, err := svc.Export(context.Background())
	assert.Error(t, err)
}
