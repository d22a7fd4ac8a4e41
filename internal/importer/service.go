package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"locdir/internal/domain"
	"locdir/internal/repository"
)

// maxSkipReasons bounds the diagnostics list returned to the caller; the
// skipped count stays exact beyond it.
const maxSkipReasons = 5

const (
	reasonMissingName   = "missing name"
	reasonMissingType   = "missing type"
	reasonInvalidCoords = "invalid coords after parse"
)

// Service ingests delimited location exports into the store.
type Service struct {
	locationRepo repository.LocationRepository
	logRepo      repository.ImportLogRepository
}

// NewService creates a new import service. The log repository may be nil.
func NewService(locationRepo repository.LocationRepository, logRepo repository.ImportLogRepository) *Service {
	return &Service{
		locationRepo: locationRepo,
		logRepo:      logRepo,
	}
}

// Request describes the import input.
type Request struct {
	FileName string
	Data     io.Reader
}

// SkipReason records why one data row was rejected, with the raw values
// needed to find it in the source file.
type SkipReason struct {
	Idx      int    `json:"idx"`
	Reason   string `json:"reason"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Lat      string `json:"lat"`
	Lng      string `json:"lng"`
	SourceID string `json:"sourceid"`
}

// Summary returns import level metrics.
type Summary struct {
	Rows           int               `json:"rows"`
	Inserted       int               `json:"inserted"`
	Updated        int               `json:"updated"`
	Skipped        int               `json:"skipped"`
	Delimiter      string            `json:"delimiter"`
	FirstRowKeys   []string          `json:"firstRowKeys"`
	FirstRowSample map[string]string `json:"firstRowSample"`
	Reasons        []SkipReason      `json:"reasons"`
}

// Import reads the uploaded file, parses and validates every row, and
// upserts valid rows by their (source, sourceId) natural key. Row-level
// problems are absorbed into the summary; only whole-file failures return
// an error.
func (s *Service) Import(ctx context.Context, req Request) (Summary, error) {
	summary := Summary{
		FirstRowKeys:   []string{},
		FirstRowSample: map[string]string{},
		Reasons:        []SkipReason{},
	}

	if req.Data == nil {
		return summary, errors.New("data reader is required")
	}

	payload, err := io.ReadAll(req.Data)
	if err != nil {
		return summary, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(payload) == 0 {
		return summary, errors.New("file is empty")
	}

	lines, err := NormalizeText(payload)
	if err != nil {
		return summary, err
	}
	if len(lines) == 0 {
		return summary, errors.New("no header row detected")
	}

	delimiter := DetectDelimiter(lines[0])
	headers := NewHeaderMap(SplitFields(lines[0], delimiter))

	summary.Delimiter = string(delimiter)
	summary.FirstRowKeys = headers.Keys()

	dataLines := lines[1:]
	summary.Rows = len(dataLines)

	for idx, line := range dataLines {
		fields := SplitFields(line, delimiter)
		row := headers.BindRow(fields)

		if idx == 0 {
			summary.FirstRowSample = headers.Sample(fields)
		}

		name := CleanString(row[FieldName])
		if name == "" {
			s.skip(ctx, &summary, req, idx, reasonMissingName, row)
			continue
		}

		locationType := CleanString(row[FieldType])
		if locationType == "" {
			s.skip(ctx, &summary, req, idx, reasonMissingType, row)
			continue
		}

		lat, latOK := ToNumber(row[FieldLat])
		lng, lngOK := ToNumber(row[FieldLng])
		if !latOK || !lngOK {
			s.skip(ctx, &summary, req, idx, reasonInvalidCoords, row)
			continue
		}

		source := CleanString(row[FieldSource])
		if source == "" {
			source = domain.DefaultSource
		}

		loc := domain.Location{
			Name:     name,
			Type:     locationType,
			Eircode:  CleanString(row[FieldEircode]),
			Address:  CleanString(row[FieldAddress]),
			Email:    CleanString(row[FieldEmail]),
			Phone:    CleanString(row[FieldPhone]),
			Contact1: CleanString(row[FieldContact1]),
			Contact2: CleanString(row[FieldContact2]),
			Contact3: CleanString(row[FieldContact3]),
			Link:     CleanString(row[FieldLink]),
			Lat:      lat,
			Lng:      lng,
			// Imports never carry inactive rows.
			IsActive: true,
			Source:   source,
			SourceID: CleanString(row[FieldSourceID]),
		}

		if err := s.upsert(ctx, &summary, loc); err != nil {
			s.skip(ctx, &summary, req, idx, fmt.Sprintf("store error: %v", err), row)
		}
	}

	s.logSummary(ctx, req, summary)

	return summary, nil
}

// upsert decides create vs. update by the natural key and tallies the
// outcome. Rows without a sourceId are always created fresh, so re-imports
// of such files duplicate by design.
func (s *Service) upsert(ctx context.Context, summary *Summary, loc domain.Location) error {
	if !loc.HasSourceKey() {
		if _, err := s.locationRepo.Create(ctx, loc); err != nil {
			return err
		}
		summary.Inserted++
		return nil
	}

	existing, err := s.locationRepo.FindBySourceKey(ctx, loc.Source, loc.SourceID)
	switch {
	case err == nil:
		loc.ID = existing.ID
		if _, err := s.locationRepo.Update(ctx, loc); err != nil {
			return err
		}
		summary.Updated++
	case errors.Is(err, repository.ErrNotFound):
		if _, err := s.locationRepo.Create(ctx, loc); err != nil {
			return err
		}
		summary.Inserted++
	default:
		return err
	}
	return nil
}

func (s *Service) skip(ctx context.Context, summary *Summary, req Request, idx int, reason string, row map[Field]string) {
	summary.Skipped++
	if len(summary.Reasons) < maxSkipReasons {
		summary.Reasons = append(summary.Reasons, SkipReason{
			Idx:      idx,
			Reason:   reason,
			Name:     row[FieldName],
			Type:     row[FieldType],
			Lat:      row[FieldLat],
			Lng:      row[FieldLng],
			SourceID: row[FieldSourceID],
		})
	}
	s.logRowError(ctx, req, idx, reason)
}

func (s *Service) logRowError(ctx context.Context, req Request, idx int, reason string) {
	if s.logRepo == nil {
		return
	}
	rowIndex := idx
	_ = s.logRepo.Record(ctx, domain.ImportLogEntry{
		FileName: req.FileName,
		RowIndex: &rowIndex,
		Message:  reason,
	})
}

func (s *Service) logSummary(ctx context.Context, req Request, summary Summary) {
	if s.logRepo == nil {
		return
	}
	_ = s.logRepo.Record(ctx, domain.ImportLogEntry{
		FileName: req.FileName,
		Message: fmt.Sprintf("import finished: rows=%d inserted=%d updated=%d skipped=%d",
			summary.Rows, summary.Inserted, summary.Updated, summary.Skipped),
	})
}
