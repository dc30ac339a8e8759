package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"calcnote/internal/domain"
)

// BenchmarkSave measures writing a changed notebook of a few hundred lines
func BenchmarkSave(b *testing.B) {
	store, err := Open(filepath.Join(b.TempDir(), "bench.db"), "", nil)
	if err != nil {
		b.Fatalf("failed to open store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			b.Fatalf("failed to close store: %v", err)
		}
	}()

	snapshot := domain.EmptySnapshot()
	var lines []string
	for i := 0; i < 300; i++ {
		lines = append(lines, fmt.Sprintf("v%d = %d * 2", i, i))
		snapshot.IDMapping[i] = domain.NewLineID(i)
		snapshot.ReferenceLabels[domain.NewLineID(i)] = lines[i]
	}

	ctx := context.Background()
	n := 0
	for b.Loop() {
		n++
		snapshot.Content = strings.Join(lines, "\n") + fmt.Sprintf("\n%d", n)
		if err := store.Save(ctx, snapshot); err != nil {
			b.Fatalf("save failed: %v", err)
		}
	}
}

// BenchmarkSaveUnchanged measures the fingerprint short-circuit
func BenchmarkSaveUnchanged(b *testing.B) {
	store, err := Open(filepath.Join(b.TempDir(), "bench.db"), "", nil)
	if err != nil {
		b.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	snapshot := domain.EmptySnapshot()
	snapshot.Content = strings.Repeat("1 + 1\n", 300)

	ctx := context.Background()
	if err := store.Save(ctx, snapshot); err != nil {
		b.Fatalf("save failed: %v", err)
	}

	for b.Loop() {
		if err := store.Save(ctx, snapshot); err != nil {
			b.Fatalf("save failed: %v", err)
		}
	}
}
