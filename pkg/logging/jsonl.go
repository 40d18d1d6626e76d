package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// JSONLOutput writes log entries as JSON lines to a file, with optional
// size-based rotation. Rotated files keep the base path plus a timestamp
// suffix; the newest maxFiles backups are retained.
type JSONLOutput struct {
	mu         sync.Mutex
	file       *os.File
	path       string
	rotateSize int64
	curSize    int64
	maxFiles   int
}

type JSONLOutputOption func(*JSONLOutput)

func WithRotation(maxSize int64, maxFiles int) JSONLOutputOption {
	return func(o *JSONLOutput) {
		o.rotateSize = maxSize
		o.maxFiles = maxFiles
	}
}

func NewJSONLOutput(path string, opts ...JSONLOutputOption) (*JSONLOutput, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	var curSize int64
	if info, err := file.Stat(); err == nil {
		curSize = info.Size()
	}

	output := &JSONLOutput{
		file:    file,
		path:    path,
		curSize: curSize,
	}

	for _, opt := range opts {
		opt(output)
	}

	return output, nil
}

type jsonlRecord struct {
	Time         string                 `json:"time"`
	Severity     string                 `json:"severity"`
	Message      string                 `json:"message"`
	File         string                 `json:"file,omitempty"`
	Line         int                    `json:"line,omitempty"`
	ManifestPath string                 `json:"manifest,omitempty"`
	RunID        string                 `json:"run_id,omitempty"`
	Fields       map[string]interface{} `json:"fields,omitempty"`
}

func (o *JSONLOutput) Write(e LogEntry) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	record := jsonlRecord{
		Time:         time.Unix(0, e.Time).Format(time.RFC3339Nano),
		Severity:     e.Severity.String(),
		Message:      e.Message,
		File:         e.File,
		Line:         e.Line,
		ManifestPath: e.ManifestPath,
		RunID:        e.RunID,
		Fields:       e.Fields,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal log record: %w", err)
	}
	data = append(data, '\n')

	entrySize := int64(len(data))
	if o.rotateSize > 0 && (o.curSize+entrySize) >= o.rotateSize {
		if err := o.rotate(); err != nil {
			return fmt.Errorf("failed to rotate log file: %w", err)
		}
	}

	n, err := o.file.Write(data)
	if err != nil {
		return fmt.Errorf("failed to write log record: %w", err)
	}

	o.curSize += int64(n)
	return nil
}

func (o *JSONLOutput) Sync() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.file.Sync()
}

func (o *JSONLOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.file.Close()
}

func (o *JSONLOutput) rotate() error {
	if err := o.file.Close(); err != nil {
		return err
	}

	backupPath := fmt.Sprintf("%s.%s", o.path, time.Now().Format("20060102-150405"))
	if err := os.Rename(o.path, backupPath); err != nil {
		return err
	}

	file, err := os.OpenFile(o.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	o.file = file
	o.curSize = 0

	if o.maxFiles > 0 {
		if err := o.cleanOldFiles(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to clean rotated log files: %v\n", err)
		}
	}

	return nil
}

func (o *JSONLOutput) cleanOldFiles() error {
	dir := filepath.Dir(o.path)
	base := filepath.Base(o.path)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var backups []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name != base && len(name) > len(base) && name[:len(base)] == base {
			backups = append(backups, filepath.Join(dir, name))
		}
	}

	if len(backups) > o.maxFiles {
		for i := 0; i < len(backups)-o.maxFiles; i++ {
			if err := os.Remove(backups[i]); err != nil {
				return err
			}
		}
	}

	return nil
}
