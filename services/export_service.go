package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/metrics"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/Dosada05/swiss-tournament/storage"
)

type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
	ExportYAML ExportFormat = "yaml"
	ExportXLSX ExportFormat = "xlsx"
)

var exportContentTypes = map[ExportFormat]string{
	ExportJSON: "application/json",
	ExportCSV:  "text/csv",
	ExportYAML: "application/yaml",
	ExportXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ParseExportFormats turns "json, csv" into formats, dropping duplicates.
func ParseExportFormats(list string) ([]ExportFormat, error) {
	seen := make(map[ExportFormat]bool)
	formats := make([]ExportFormat, 0)
	for _, raw := range strings.Split(list, ",") {
		f := ExportFormat(strings.ToLower(strings.TrimSpace(raw)))
		if f == "" || seen[f] {
			continue
		}
		if _, ok := exportContentTypes[f]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedExportFormat, f)
		}
		seen[f] = true
		formats = append(formats, f)
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("%w: no format given", ErrUnsupportedExportFormat)
	}
	return formats, nil
}

// StandingsDocument is what every export format renders.
type StandingsDocument struct {
	GeneratedAt time.Time              `json:"generated_at" yaml:"generated_at"`
	Standings   []models.StandingEntry `json:"standings" yaml:"standings"`
	// Pairings is empty when the player count is odd; PairingError says why.
	Pairings     []models.Pairing `json:"pairings,omitempty" yaml:"pairings,omitempty"`
	PairingError string           `json:"pairing_error,omitempty" yaml:"pairing_error,omitempty"`
}

type ExportArtifact struct {
	Format   ExportFormat `json:"format"`
	Key      string       `json:"key"`
	Location string       `json:"location"`
	ETag     string       `json:"etag,omitempty"`
}

type ExportService interface {
	Export(ctx context.Context, formats []ExportFormat) ([]ExportArtifact, error)
}

type exportService struct {
	store    *repositories.Store
	uploader storage.FileUploader
	metrics  *metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

func NewExportService(store *repositories.Store, uploader storage.FileUploader, recorder *metrics.Recorder, logger *slog.Logger) ExportService {
	return &exportService{
		store:    store,
		uploader: uploader,
		metrics:  recorder,
		logger:   loggerOrDefault(logger),
		now:      time.Now,
	}
}

// Export renders the current standings in each format and uploads all of
// them concurrently. If any upload fails the ones that succeeded are deleted
// again and the first error is returned.
func (s *exportService) Export(ctx context.Context, formats []ExportFormat) ([]ExportArtifact, error) {
	for _, f := range formats {
		if _, ok := exportContentTypes[f]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedExportFormat, f)
		}
	}

	players, matches, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load standings for export: %w", err)
	}
	doc := StandingsDocument{
		GeneratedAt: s.now().UTC(),
		Standings:   brackets.ComputeStandings(players, matches),
	}
	if doc.Pairings, err = brackets.SwissPairings(doc.Standings); err != nil {
		doc.PairingError = err.Error()
	}

	stem := fmt.Sprintf("standings/%s-%s", doc.GeneratedAt.Format("20060102T150405Z"), uuid.NewString())
	artifacts := make([]ExportArtifact, len(formats))
	uploaded := make([]bool, len(formats))

	g, gCtx := errgroup.WithContext(ctx)
	for i, format := range formats {
		g.Go(func() error {
			body, err := renderStandings(doc, format)
			if err != nil {
				return fmt.Errorf("failed to render %s export: %w", format, err)
			}
			key := stem + "." + string(format)
			res, err := s.uploader.Upload(gCtx, key, exportContentTypes[format], bytes.NewReader(body))
			if err != nil {
				return fmt.Errorf("failed to upload %s export: %w", format, err)
			}
			artifacts[i] = ExportArtifact{Format: format, Key: res.Key, Location: res.Location, ETag: res.ETag}
			uploaded[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for i, ok := range uploaded {
			if !ok {
				continue
			}
			if delErr := s.uploader.Delete(context.WithoutCancel(ctx), artifacts[i].Key); delErr != nil {
				s.logger.Warn("failed to remove partial export", slog.String("key", artifacts[i].Key), slog.Any("error", delErr))
			}
		}
		return nil, err
	}

	for _, a := range artifacts {
		s.metrics.ExportUploaded(string(a.Format))
	}
	s.logger.Info("standings exported", slog.String("stem", stem), slog.Int("artifacts", len(artifacts)))
	return artifacts, nil
}

func renderStandings(doc StandingsDocument, format ExportFormat) ([]byte, error) {
	switch format {
	case ExportJSON:
		return json.MarshalIndent(doc, "", "\t")
	case ExportYAML:
		return yaml.Marshal(doc)
	case ExportCSV:
		return renderStandingsCSV(doc)
	case ExportXLSX:
		return renderStandingsXLSX(doc)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedExportFormat, format)
}

// renderStandingsCSV writes the standings table only; pairings do not fit a
// single-table format.
func renderStandingsCSV(doc StandingsDocument) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"rank", "id", "name", "wins", "matches"}); err != nil {
		return nil, err
	}
	for i, e := range doc.Standings {
		record := []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(e.ID),
			e.Name,
			strconv.Itoa(e.Wins),
			strconv.Itoa(e.Matches),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

const (
	standingsSheet = "Standings"
	pairingsSheet  = "Pairings"
)

func renderStandingsXLSX(doc StandingsDocument) (_ []byte, err error) {
	f := excelize.NewFile()
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if err := f.SetSheetName("Sheet1", standingsSheet); err != nil {
		return nil, err
	}
	rows := [][]interface{}{{"Rank", "ID", "Name", "Wins", "Matches"}}
	for i, e := range doc.Standings {
		rows = append(rows, []interface{}{i + 1, e.ID, e.Name, e.Wins, e.Matches})
	}
	if err := writeSheetRows(f, standingsSheet, rows); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(pairingsSheet); err != nil {
		return nil, err
	}
	rows = [][]interface{}{{"Table", "ID 1", "Name 1", "ID 2", "Name 2"}}
	for i, p := range doc.Pairings {
		rows = append(rows, []interface{}{i + 1, p.ID1, p.Name1, p.ID2, p.Name2})
	}
	if doc.PairingError != "" {
		rows = append(rows, []interface{}{doc.PairingError})
	}
	if err := writeSheetRows(f, pairingsSheet, rows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheetRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
