package export

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"

	"avatar-combiner/internal/classify"
	"avatar-combiner/internal/combo"
	"avatar-combiner/internal/host"
)

// Options configures one coordinator run.
type Options struct {
	OutputDir    string
	Combinations int
	Seed         int64
	Seeded       bool // false: draw from the process-wide random source
	Workers      int
}

// ExportedSet is one successfully written bundle.
type ExportedSet struct {
	Name     string `json:"name"`
	Skeleton string `json:"skeleton"`
	Path     string `json:"path"`
}

// FailedSet is one combination whose export failed.
type FailedSet struct {
	Name     string `json:"name"`
	Skeleton string `json:"skeleton"`
	Reason   string `json:"reason"`
}

// Truncation records a group whose candidate space was smaller than the
// requested number of combinations.
type Truncation struct {
	Skeleton  string `json:"skeleton"`
	Requested int    `json:"requested"`
	Produced  int    `json:"produced"`
}

// Report is the full outcome of a run: rejected inputs, exported bundles,
// failed exports, and truncated groups are always enumerated separately.
type Report struct {
	Exported  []ExportedSet       `json:"exported"`
	Failed    []FailedSet         `json:"failed"`
	Rejected  []classify.Rejected `json:"rejected"`
	Truncated []Truncation        `json:"truncated"`
	Skipped   []string            `json:"skipped"` // skeletons without a body category
}

// Run generates, names, and exports combinations for every skeleton group.
// Groups are processed by a worker pool; one combination's export failure
// never aborts the batch. Negative Combinations is rejected up front.
func Run(groups map[string]*classify.Group, rejected []classify.Rejected, exporter host.Exporter, opts Options) (Report, error) {
	if opts.Combinations < 0 {
		return Report{}, combo.ErrNegativeCount
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	skeletons := make([]string, 0, len(groups))
	for s := range groups {
		skeletons = append(skeletons, s)
	}
	sort.Strings(skeletons)

	results := make([]groupResult, len(skeletons))
	idxChan := make(chan int, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idxChan {
				results[i] = runGroup(groups[skeletons[i]], exporter, opts)
			}
		}()
	}
	for i := range skeletons {
		idxChan <- i
	}
	close(idxChan)
	wg.Wait()

	report := Report{Rejected: rejected}
	seen := make(map[string]bool)
	for i, res := range results {
		if res.skipped {
			report.Skipped = append(report.Skipped, skeletons[i])
			continue
		}
		if res.truncated != nil {
			report.Truncated = append(report.Truncated, *res.truncated)
		}
		for _, e := range res.exported {
			if seen[e.Name] {
				continue
			}
			seen[e.Name] = true
			report.Exported = append(report.Exported, e)
		}
		report.Failed = append(report.Failed, res.failed...)
	}
	return report, nil
}

type groupResult struct {
	skipped   bool
	truncated *Truncation
	exported  []ExportedSet
	failed    []FailedSet
}

func runGroup(group *classify.Group, exporter host.Exporter, opts Options) groupResult {
	if !group.HasBody() {
		fmt.Printf("  skeleton %q: no %s parts, skipped\n", group.Skeleton, classify.BodyCategory)
		return groupResult{skipped: true}
	}

	// Seeded runs derive one source per group so results do not depend on
	// the order groups are picked up by workers.
	var rng *rand.Rand
	if opts.Seeded {
		rng = rand.New(rand.NewSource(opts.Seed ^ int64(xxhash.Sum64String(group.Skeleton))))
	}

	combinations, err := combo.Generate(group, opts.Combinations, rng)
	if err != nil {
		return groupResult{failed: []FailedSet{{Skeleton: group.Skeleton, Reason: err.Error()}}}
	}

	var res groupResult
	if len(combinations) < opts.Combinations {
		res.truncated = &Truncation{
			Skeleton:  group.Skeleton,
			Requested: opts.Combinations,
			Produced:  len(combinations),
		}
	}

	for _, c := range combinations {
		set := combo.Named{Combination: c, Name: combo.Name(c)}
		path, err := exporter.Export(set, opts.OutputDir)
		if err != nil {
			res.failed = append(res.failed, FailedSet{
				Name:     set.Name,
				Skeleton: group.Skeleton,
				Reason:   err.Error(),
			})
			continue
		}
		res.exported = append(res.exported, ExportedSet{
			Name:     set.Name,
			Skeleton: group.Skeleton,
			Path:     path,
		})
	}
	return res
}
