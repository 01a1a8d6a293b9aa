package google

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"outreach-backend/application/ports"
	"outreach-backend/pkg/errors"
	"outreach-backend/pkg/observability"
)

// SheetsAdapter implements ports.SheetsGateway on the Sheets API.
type SheetsAdapter struct {
	auth    *Auth
	metrics *observability.Collector
}

func NewSheetsAdapter(auth *Auth, metrics *observability.Collector) *SheetsAdapter {
	return &SheetsAdapter{auth: auth, metrics: metrics}
}

var _ ports.SheetsGateway = (*SheetsAdapter)(nil)

func (s *SheetsAdapter) service(ctx context.Context) (*sheets.Service, error) {
	ts, err := s.auth.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	srv, err := sheets.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, errors.NewExternalError("sheets", err)
	}
	return srv, nil
}

func (s *SheetsAdapter) Read(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	srv, err := s.service(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := srv.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		s.observe("error")
		return nil, errors.NewExternalError("sheets", err)
	}
	s.observe("ok")

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = fmt.Sprint(cell)
		}
		rows[i] = cells
	}
	return rows, nil
}

func (s *SheetsAdapter) Metadata(ctx context.Context, spreadsheetID string) (*ports.SheetMetadata, error) {
	srv, err := s.service(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := srv.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		s.observe("error")
		return nil, errors.NewExternalError("sheets", err)
	}
	s.observe("ok")

	meta := &ports.SheetMetadata{}
	if resp.Properties != nil {
		meta.Title = resp.Properties.Title
	}
	for _, sheet := range resp.Sheets {
		if sheet.Properties == nil {
			continue
		}
		tab := ports.SheetTab{
			ID:    sheet.Properties.SheetId,
			Title: sheet.Properties.Title,
			Index: sheet.Properties.Index,
		}
		if grid := sheet.Properties.GridProperties; grid != nil {
			tab.RowCount = grid.RowCount
			tab.ColCount = grid.ColumnCount
		}
		meta.Sheets = append(meta.Sheets, tab)
	}
	return meta, nil
}

func (s *SheetsAdapter) Append(ctx context.Context, spreadsheetID, writeRange string, values [][]string) error {
	srv, err := s.service(ctx)
	if err != nil {
		return err
	}

	body := &sheets.ValueRange{Values: make([][]interface{}, len(values))}
	for i, row := range values {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		body.Values[i] = cells
	}

	_, err = srv.Spreadsheets.Values.
		Append(spreadsheetID, writeRange, body).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		s.observe("error")
		return errors.NewExternalError("sheets", err)
	}
	s.observe("ok")
	return nil
}

func (s *SheetsAdapter) observe(status string) {
	if s.metrics != nil {
		s.metrics.GoogleCalls.WithLabelValues("sheets", status).Inc()
	}
}
