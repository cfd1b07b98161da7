package corpus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultSheetsBaseURL = "https://docs.google.com"

// Sheet reads one worksheet of a Google spreadsheet through its CSV export.
// The spreadsheet must be shared so that anyone with the link can view it.
type Sheet struct {
	Key       string
	Worksheet string

	// BaseURL overrides the Google Docs endpoint. Used in tests.
	BaseURL string
	Client  *http.Client
}

func (s Sheet) FetchAllRows(ctx context.Context) ([][]string, error) {
	if s.Key == "" {
		return nil, fmt.Errorf("spreadsheet key is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.exportURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch worksheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch worksheet: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return readCSV(resp.Body)
}

func (s Sheet) exportURL() string {
	base := s.BaseURL
	if base == "" {
		base = defaultSheetsBaseURL
	}
	q := url.Values{}
	q.Set("tqx", "out:csv")
	if s.Worksheet != "" {
		q.Set("sheet", s.Worksheet)
	}
	return fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq?%s",
		strings.TrimRight(base, "/"), url.PathEscape(s.Key), q.Encode())
}

func (s Sheet) String() string {
	return fmt.Sprintf("sheet:%s#%s", s.Key, s.Worksheet)
}
