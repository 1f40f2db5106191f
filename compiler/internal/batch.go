package internal

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Unit is one source text to compile.
type Unit struct {
	Name   string
	Source []byte
}

// UnitResult holds either the Result of a unit or the fatal error that stopped it.
type UnitResult struct {
	Unit   string
	Result *Result
	Err    error
}

func (r *UnitResult) Failed() bool {
	return r.Err != nil || r.Result.HasErrors()
}

// BatchResult keeps the order of the units given to CompileBatch.
type BatchResult struct {
	RunID string
	Units []*UnitResult
}

func (b *BatchResult) Failed() bool {
	for _, u := range b.Units {
		if u.Failed() {
			return true
		}
	}
	return false
}

// CompileBatch compiles units with at most workers compilations in flight. A unit failing
// to tokenize or parse doesn't stop the others, its error is kept in its UnitResult. Only
// cancellation of ctx aborts the batch.
func CompileBatch(ctx context.Context, units []Unit, workers int, logger *slog.Logger) (*BatchResult, error) {
	if logger == nil {
		logger = discardLogger
	}
	if workers < 1 {
		workers = 1
	}
	batch := &BatchResult{RunID: uuid.NewString(), Units: make([]*UnitResult, len(units))}
	logger = logger.With("run_id", batch.RunID)
	logger.Debug("compiler: start batch", "units", len(units), "workers", workers)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, unit := range units {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := Compile(unit.Name, bytes.NewReader(unit.Source), logger)
			if err != nil {
				logger.Warn("compiler: unit failed", "unit", unit.Name, "err", err)
			}
			batch.Units[i] = &UnitResult{Unit: unit.Name, Result: result, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return batch, nil
}

// LoadUnits reads every path given. A directory contributes the files directly inside it
// whose name ends with extension, in name order.
func LoadUnits(paths []string, extension string) ([]Unit, error) {
	var units []Unit
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			unit, err := loadUnit(path)
			if err != nil {
				return nil, err
			}
			units = append(units, unit)
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			// Skip not-charon file.
			if entry.IsDir() || !isCharonFile(entry.Name(), extension) {
				continue
			}
			unit, err := loadUnit(filepath.Join(path, entry.Name()))
			if err != nil {
				return nil, err
			}
			units = append(units, unit)
		}
	}
	return units, nil
}

func loadUnit(path string) (Unit, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Unit{}, err
	}
	return Unit{Name: path, Source: src}, nil
}

func isCharonFile(fileName string, extension string) bool {
	return strings.HasSuffix(fileName, extension) && len(fileName) > len(extension)
}
