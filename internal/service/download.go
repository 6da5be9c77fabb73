package service

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oatlas/oatlas/internal/models"
	"github.com/oatlas/oatlas/internal/stats"
)

// DownloadService packages one entity's statistics as a zip archive with
// tabular exports and a generated README.
type DownloadService struct {
	source SnapshotSource
	build  string
	log    *logrus.Logger
}

// NewDownloadService creates a DownloadService. build is the dataset build
// token embedded in the README.
func NewDownloadService(source SnapshotSource, build string, log *logrus.Logger) *DownloadService {
	return &DownloadService{source: source, build: build, log: log}
}

// Archive builds the zip archive for one entity. The returned filename is
// derived from the entity id.
func (s *DownloadService) Archive(ctx context.Context, t models.EntityType, id string) (data []byte, filename string, err error) {
	snap, err := s.source.Snapshot()
	if err != nil {
		return nil, "", err
	}

	e, ok := snap.Get(t, id)
	if !ok {
		return nil, "", models.ErrEntityNotFound
	}

	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if err := writeYearsCSV(zw, e); err != nil {
		return nil, "", fmt.Errorf("writing years.csv: %w", err)
	}

	if len(e.Repositories) > 0 {
		if err := writeRepositoriesCSV(zw, e); err != nil {
			return nil, "", fmt.Errorf("writing repositories.csv: %w", err)
		}
	}

	if err := writeReadme(zw, e, s.build); err != nil {
		return nil, "", fmt.Errorf("writing README.md: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing archive: %w", err)
	}

	return buf.Bytes(), fmt.Sprintf("%s_%s.zip", e.EntityType, e.ID), nil
}

// writeYearsCSV exports one row per year between StartYear and EndYear,
// zero-filling years missing from the sparse series.
func writeYearsCSV(zw *zip.Writer, e *models.Entity) error {
	w, err := zw.Create("years.csv")
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"year", "n_outputs", "n_outputs_open", "p_outputs_open",
		"p_outputs_publisher_open_only", "p_outputs_both",
		"p_outputs_other_platform_open_only", "p_outputs_closed",
	}); err != nil {
		return err
	}

	for _, y := range stats.FillYearGaps(e.StartYear, e.EndYear, e.Years) {
		rec := []string{
			strconv.Itoa(y.Year),
			strconv.Itoa(y.Stats.NOutputs),
			strconv.Itoa(y.Stats.NOutputsOpen),
			strconv.FormatFloat(y.Stats.POutputsOpen, 'f', 2, 64),
			strconv.Itoa(y.Stats.POutputsPublisherOpenOnly),
			strconv.Itoa(y.Stats.POutputsBoth),
			strconv.Itoa(y.Stats.POutputsOtherPlatformOpenOnly),
			strconv.Itoa(y.Stats.POutputsClosed),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

func writeRepositoriesCSV(zw *zip.Writer, e *models.Entity) error {
	w, err := zw.Create("repositories.csv")
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "category", "total_outputs"}); err != nil {
		return err
	}

	for _, r := range e.Repositories {
		if err := cw.Write([]string{r.Name, r.Category, strconv.Itoa(r.TotalOutputs)}); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

func writeReadme(zw *zip.Writer, e *models.Entity, build string) error {
	w, err := zw.Create("README.md")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, `# %s

Open access publication statistics for %s (%s, id %s).

Files:

- years.csv: publication counts and open access percentages per year,
  %d to %d. Years with no recorded outputs are zero-filled.
- repositories.csv: output counts per repository (institutions only).

Dataset build: %s
Generated: %s
`,
		e.Name, e.Name, e.EntityType, e.ID,
		e.StartYear, e.EndYear,
		build, time.Now().UTC().Format(time.RFC3339))

	return err
}
