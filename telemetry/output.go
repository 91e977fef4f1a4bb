package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/configcam/config"
)

// OutputManager writes a run's trace, timing and config into a directory.
type OutputManager struct {
	dir   string
	trace *csvFile
	perf  *csvFile
}

// csvFile tracks whether the header row has been written.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

// NewOutputManager creates dir and opens trace.csv and perf.csv inside it.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	trace, err := os.Create(filepath.Join(dir, "trace.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating trace.csv: %w", err)
	}
	perf, err := os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		trace.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}

	return &OutputManager{
		dir:   dir,
		trace: &csvFile{f: trace},
		perf:  &csvFile{f: perf},
	}, nil
}

// WriteConfig saves the configuration used for the run.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTrace appends records to trace.csv.
func (om *OutputManager) WriteTrace(records ...TraceRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	if err := writeRows(om.trace.f, &om.trace.headerWritten, records); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// WritePerf appends a timing row to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, tick int64) error {
	if om == nil {
		return nil
	}
	if err := writeRows(om.perf.f, &om.perf.headerWritten, []PerfStatsCSV{stats.ToCSV(tick)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// writeRows includes the header only on the first call for a file.
func writeRows[T any](w io.Writer, headerWritten *bool, rows []T) error {
	if *headerWritten {
		return gocsv.MarshalWithoutHeaders(rows, w)
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return err
	}
	*headerWritten = true
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, cf := range []*csvFile{om.trace, om.perf} {
		if err := cf.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
