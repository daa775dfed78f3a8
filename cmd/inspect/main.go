package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"avatar-combiner/internal/classify"
	"avatar-combiner/internal/scanner"
)

// Scans an import folder and prints how its components would classify,
// without importing or exporting anything.
func main() {
	importRoot := flag.String("import", "", "Root folder with per-category component subfolders")
	ext := flag.String("ext", "fbx", "Component file extension")
	flag.Parse()

	if *importRoot == "" {
		fmt.Fprintln(os.Stderr, "Usage: inspect -import <folder> [-ext fbx]")
		os.Exit(1)
	}

	sources, err := scanner.Scan(*importRoot, *ext)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	descs, parseRejects, mismatches := scanner.Describe(sources)
	groups, rejected := classify.Classify(descs)
	rejected = append(parseRejects, rejected...)

	fmt.Printf("Files: %d, Skeleton groups: %d\n\n", len(sources), len(groups))

	skeletons := make([]string, 0, len(groups))
	for s := range groups {
		skeletons = append(skeletons, s)
	}
	sort.Strings(skeletons)

	for _, s := range skeletons {
		g := groups[s]
		status := ""
		if !g.HasBody() {
			status = fmt.Sprintf("  (no %s parts, cannot combine)", classify.BodyCategory)
		}
		fmt.Printf("Skeleton %q: %d parts%s\n", s, g.Size(), status)
		size := 1
		for _, cat := range g.SortedCategories() {
			parts := g.Parts(cat)
			size *= len(parts)
			fmt.Printf("  %-10s %d\n", cat, len(parts))
			for _, p := range parts {
				fmt.Printf("    %s\n", p.Name())
			}
		}
		if g.HasBody() {
			fmt.Printf("  -> %d possible combinations\n", size)
		}
		fmt.Println()
	}

	if len(mismatches) > 0 {
		fmt.Printf("Region/category mismatches (%d):\n", len(mismatches))
		for _, m := range mismatches {
			if m.Suggestion != "" {
				fmt.Printf("  %s: region %q, folder %q (closest category: %q)\n",
					m.Name, m.Region, m.Category, m.Suggestion)
			} else {
				fmt.Printf("  %s: region %q, folder %q\n", m.Name, m.Region, m.Category)
			}
		}
		fmt.Println()
	}

	if len(rejected) > 0 {
		fmt.Printf("Rejected (%d):\n", len(rejected))
		for _, r := range rejected {
			fmt.Printf("  %s [%s]: %s\n", r.Name, r.Category, r.Reason)
		}
	}
}
