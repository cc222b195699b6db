package filestore

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/budget_approval_app/internal/apperrors"
	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_approval_app/internal/core/ports/repositories"
	"github.com/SscSPs/budget_approval_app/internal/models"
	"github.com/SscSPs/budget_approval_app/internal/utils/mapping"
)

// FileAuditLogRepository is an append-only approval log backed by a JSONL
// file: one entry per line, never rewritten. A mutex serializes appends so
// concurrent decisions cannot interleave partial lines.
type FileAuditLogRepository struct {
	path string

	mu      sync.Mutex
	loaded  bool
	corrupt bool
	index   map[string]domain.AuditLogEntry // dedupe key -> recorded entry
}

// NewFileAuditLogRepository creates a JSONL-backed audit log at path,
// creating parent directories as needed.
func NewFileAuditLogRepository(path string) (*FileAuditLogRepository, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: audit log path cannot be empty", apperrors.ErrConfiguration)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: failed to create audit log directory %s: %w", apperrors.ErrStorage, dir, err)
		}
	}
	return &FileAuditLogRepository{
		path:  path,
		index: make(map[string]domain.AuditLogEntry),
	}, nil
}

// Ensure implementation matches interface
var _ portsrepo.AuditLogRepositoryFacade = (*FileAuditLogRepository)(nil)

// AppendEntry appends one entry as a single JSON line and fsyncs before
// returning. Re-recording a decision identity already on the log returns the
// existing entry unchanged. A corrupt log file is rotated aside so the log
// can keep accepting entries.
func (r *FileAuditLogRepository) AppendEntry(ctx context.Context, entry domain.AuditLogEntry) (*domain.AuditLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	if r.corrupt {
		if err := r.rotateCorruptLocked(ctx); err != nil {
			return nil, err
		}
	}

	if existing, ok := r.index[entry.Decision.DedupeKey()]; ok {
		return &existing, nil
	}

	line, err := json.Marshal(mapping.ToModelAuditLogEntry(entry))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode audit entry: %w", apperrors.ErrStorage, err)
	}
	line = append(line, '\n')

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open audit log %s: %w", apperrors.ErrStorage, r.path, err)
	}
	defer f.Close()

	// Single write keeps the line atomic with respect to our own appends.
	if _, err := f.Write(line); err != nil {
		return nil, fmt.Errorf("%w: failed to append audit entry: %w", apperrors.ErrStorage, err)
	}
	if err := f.Sync(); err != nil {
		return nil, fmt.Errorf("%w: failed to sync audit log: %w", apperrors.ErrStorage, err)
	}

	r.index[entry.Decision.DedupeKey()] = entry
	return &entry, nil
}

// FindEntriesByBudgetID returns all entries for a budget, oldest first.
// An unreadable or corrupt log yields apperrors.ErrStorage rather than a
// partial history.
func (r *FileAuditLogRepository) FindEntriesByBudgetID(ctx context.Context, budgetID string) ([]domain.AuditLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	if r.corrupt {
		return nil, fmt.Errorf("%w: audit log %s contains undecodable entries", apperrors.ErrStorage, r.path)
	}

	entries := make([]domain.AuditLogEntry, 0)
	for _, entry := range r.index {
		if entry.Decision.BudgetID == budgetID {
			entries = append(entries, entry)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].RecordedAt.Equal(entries[j].RecordedAt) {
			return entries[i].EntryID < entries[j].EntryID
		}
		return entries[i].RecordedAt.Before(entries[j].RecordedAt)
	})
	return entries, nil
}

// ensureLoadedLocked reads the log file once and builds the dedupe index.
// The caller must hold r.mu.
func (r *FileAuditLogRepository) ensureLoadedLocked(ctx context.Context) error {
	if r.loaded {
		return nil
	}

	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.loaded = true
			return nil
		}
		return fmt.Errorf("%w: failed to open audit log %s: %w", apperrors.ErrStorage, r.path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var modelEntry models.AuditLogEntry
		if err := json.Unmarshal(raw, &modelEntry); err != nil {
			slog.WarnContext(ctx, "Audit log line is not valid JSON",
				slog.String("path", r.path), slog.Int("line", lineNo), slog.String("error", err.Error()))
			r.corrupt = true
			break
		}
		entry := mapping.ToDomainAuditLogEntry(modelEntry)
		r.index[entry.Decision.DedupeKey()] = entry
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: failed to read audit log %s: %w", apperrors.ErrStorage, r.path, err)
	}

	r.loaded = true
	return nil
}

// rotateCorruptLocked moves a corrupt log aside so appends can resume on a
// fresh file. Already-decoded entries stay in the index; the damaged file is
// kept for manual inspection. The caller must hold r.mu.
func (r *FileAuditLogRepository) rotateCorruptLocked(ctx context.Context) error {
	rotated := fmt.Sprintf("%s.corrupt-%s", r.path, time.Now().UTC().Format("20060102T150405Z"))
	if err := os.Rename(r.path, rotated); err != nil {
		return fmt.Errorf("%w: failed to rotate corrupt audit log %s: %w", apperrors.ErrStorage, r.path, err)
	}
	slog.WarnContext(ctx, "Rotated corrupt audit log aside; starting a fresh log file",
		slog.String("path", r.path), slog.String("rotated_to", rotated))
	r.corrupt = false
	return nil
}
