package export

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avatar-combiner/internal/classify"
	"avatar-combiner/internal/combo"
	"avatar-combiner/internal/descriptor"
)

// fakeExporter records export calls and fails the names it is told to.
type fakeExporter struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (f *fakeExporter) Export(set combo.Named, destDir string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, set.Name)
	if f.fail[set.Name] {
		return "", fmt.Errorf("host: simulated failure")
	}
	return filepath.Join(destDir, set.Name+".glb"), nil
}

func buildGroups(t *testing.T, byCat map[string][]string) map[string]*classify.Group {
	t.Helper()
	var descs []descriptor.Descriptor
	for _, cat := range []string{"body", "top", "bottom"} {
		for _, stem := range byCat[cat] {
			d, err := descriptor.Parse(stem)
			require.NoError(t, err)
			d.Category = cat
			descs = append(descs, d)
		}
	}
	groups, rejected := classify.Classify(descs)
	require.Empty(t, rejected)
	return groups
}

func scenario(t *testing.T) map[string]*classify.Group {
	// Candidate space 2×1×2 = 4.
	return buildGroups(t, map[string][]string{
		"body":   {"skin-f-generic-01-v1-body", "skin-f-generic-02-v1-body"},
		"top":    {"outfit-f-casual-01-v1-top"},
		"bottom": {"outfit-f-casual-01-v1-bottom", "outfit-f-sporty-01-v1-bottom"},
	})
}

func TestRunExportsFullProduct(t *testing.T) {
	exporter := &fakeExporter{}
	report, err := Run(scenario(t), nil, exporter, Options{
		OutputDir:    t.TempDir(),
		Combinations: 10,
		Seed:         1,
		Seeded:       true,
		Workers:      2,
	})
	require.NoError(t, err)

	assert.Len(t, report.Exported, 4)
	assert.Empty(t, report.Failed)
	assert.Empty(t, report.Skipped)
	require.Len(t, report.Truncated, 1)
	assert.Equal(t, 10, report.Truncated[0].Requested)
	assert.Equal(t, 4, report.Truncated[0].Produced)
	assert.Len(t, exporter.calls, 4)

	seen := map[string]bool{}
	for _, e := range report.Exported {
		assert.Equal(t, "f", e.Skeleton)
		assert.False(t, seen[e.Name], "duplicate export %s", e.Name)
		seen[e.Name] = true
	}
}

func TestRunOneFailureDoesNotAbortBatch(t *testing.T) {
	// First run to learn the four names, then fail one of them.
	probe := &fakeExporter{}
	report, err := Run(scenario(t), nil, probe, Options{Combinations: 10, Seed: 1, Seeded: true})
	require.NoError(t, err)
	require.Len(t, report.Exported, 4)
	victim := report.Exported[2].Name

	exporter := &fakeExporter{fail: map[string]bool{victim: true}}
	report, err = Run(scenario(t), nil, exporter, Options{Combinations: 10, Seed: 1, Seeded: true})
	require.NoError(t, err)

	assert.Len(t, report.Exported, 3)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, victim, report.Failed[0].Name)
	assert.Contains(t, report.Failed[0].Reason, "simulated failure")
}

func TestRunSkipsGroupWithoutBody(t *testing.T) {
	groups := buildGroups(t, map[string][]string{
		"top": {"outfit-f-casual-01-v1-top"},
	})
	exporter := &fakeExporter{}
	report, err := Run(groups, nil, exporter, Options{Combinations: 10})
	require.NoError(t, err)

	assert.Empty(t, report.Exported)
	assert.Equal(t, []string{"f"}, report.Skipped)
	assert.Empty(t, exporter.calls)
}

func TestRunNegativeCountFailsFast(t *testing.T) {
	exporter := &fakeExporter{}
	_, err := Run(scenario(t), nil, exporter, Options{Combinations: -1})
	assert.ErrorIs(t, err, combo.ErrNegativeCount)
	assert.Empty(t, exporter.calls)
}

func TestRunSeededIsDeterministicAcrossWorkerCounts(t *testing.T) {
	groups := buildGroups(t, map[string][]string{
		"body":   {"skin-f-generic-01-v1-body", "skin-f-generic-02-v1-body", "skin-f-generic-03-v1-body"},
		"top":    {"outfit-f-casual-01-v1-top", "outfit-f-casual-02-v1-top"},
		"bottom": {"outfit-f-casual-01-v1-bottom", "outfit-f-sporty-01-v1-bottom"},
	})
	// Add a second skeleton group.
	more := buildGroups(t, map[string][]string{
		"body": {"skin-m-generic-01-v1-body", "skin-m-generic-02-v1-body"},
		"top":  {"outfit-m-casual-01-v1-top", "outfit-m-casual-02-v1-top"},
	})
	for s, g := range more {
		groups[s] = g
	}

	run := func(workers int) []string {
		report, err := Run(groups, nil, &fakeExporter{}, Options{
			Combinations: 3,
			Seed:         99,
			Seeded:       true,
			Workers:      workers,
		})
		require.NoError(t, err)
		names := make([]string, len(report.Exported))
		for i, e := range report.Exported {
			names[i] = e.Name
		}
		return names
	}

	assert.Equal(t, run(1), run(4))
}

func TestRunCarriesRejected(t *testing.T) {
	rejected := []classify.Rejected{{Name: "junk", Category: "top", Reason: "no skeleton tag in file name"}}
	report, err := Run(scenario(t), rejected, &fakeExporter{}, Options{Combinations: 1, Seed: 1, Seeded: true})
	require.NoError(t, err)
	assert.Equal(t, rejected, report.Rejected)
	assert.Len(t, report.Exported, 1)
	assert.Empty(t, report.Truncated)
}
