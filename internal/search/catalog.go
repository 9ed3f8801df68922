package search

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	rerrors "github.com/scio-ly/resultsmcp/internal/errors"
)

// catalogTournament mirrors one entry of the external tournament
// metadata list.
type catalogTournament struct {
	Title    string   `json:"title"`
	Filename string   `json:"filename"`
	Location string   `json:"location"`
	Division string   `json:"division"`
	Year     int      `json:"year"`
	Official bool     `json:"official"`
	Keywords []string `json:"keywords"`
}

// CatalogSource builds entries from the external read-only catalog: a
// tournament metadata list (JSON) and a school directory (CSV with
// name, city, state columns).
//
// Both documents are fetched concurrently; if either fetch fails the
// whole call reports a fetch error rather than silently returning an
// empty corpus.
type CatalogSource struct {
	client         *http.Client
	tournamentsURL string
	schoolsURL     string
}

// NewCatalogSource creates a catalog source fetching from the given
// URLs with the given per-fetch timeout.
func NewCatalogSource(tournamentsURL, schoolsURL string, timeout time.Duration) *CatalogSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CatalogSource{
		client:         &http.Client{Timeout: timeout},
		tournamentsURL: tournamentsURL,
		schoolsURL:     schoolsURL,
	}
}

// Entries fetches and converts both catalog documents.
func (s *CatalogSource) Entries(ctx context.Context) ([]Entry, error) {
	var tournaments []Entry
	var schools []Entry

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tournaments, err = s.fetchTournaments(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		schools, err = s.fetchSchools(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return append(tournaments, schools...), nil
}

func (s *CatalogSource) fetchTournaments(ctx context.Context) ([]Entry, error) {
	body, err := s.fetch(ctx, s.tournamentsURL)
	if err != nil {
		return nil, err
	}

	var list []catalogTournament
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, rerrors.New(rerrors.ErrCodeCatalogMalformed,
			fmt.Sprintf("tournament catalog is not valid JSON: %v", err), err)
	}

	entries := make([]Entry, 0, len(list))
	for _, t := range list {
		text := strings.Join(append([]string{
			t.Title, t.Location, t.Filename, t.Division, fmt.Sprint(t.Year),
		}, t.Keywords...), " ")
		entries = append(entries, Entry{
			ID:       t.Filename,
			Kind:     KindTournament,
			Name:     t.Title,
			Text:     text,
			Location: t.Location,
		})
	}
	return entries, nil
}

func (s *CatalogSource) fetchSchools(ctx context.Context) ([]Entry, error) {
	body, err := s.fetch(ctx, s.schoolsURL)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(string(body)))
	reader.FieldsPerRecord = -1

	var entries []Entry
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, rerrors.New(rerrors.ErrCodeCatalogMalformed,
				fmt.Sprintf("school directory is not valid CSV: %v", err), err)
		}
		if len(row) < 3 || row[0] == "" {
			continue
		}
		name, city, state := row[0], row[1], row[2]
		entries = append(entries, Entry{
			ID:       strings.Join([]string{name, city, state}, ","),
			Kind:     KindSchool,
			Name:     name,
			Text:     strings.Join([]string{name, city, state}, " "),
			Location: strings.TrimSpace(city + ", " + state),
		})
	}
	return entries, nil
}

func (s *CatalogSource) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, rerrors.Fetch(url, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, rerrors.Fetch(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, rerrors.Fetch(url, fmt.Errorf("unexpected status %s", resp.Status))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, rerrors.Fetch(url, err)
	}
	return body, nil
}
