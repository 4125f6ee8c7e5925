// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package redactor plans image redaction: OCR fragments in, pixel regions
// out. It merges fragments into logical runs, analyzes each run as a
// standalone document and projects resolved spans back to pixel boxes.
package redactor

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/neednlab/cn-pii-anonymization/internal/analyzer"
	"github.com/neednlab/cn-pii-anonymization/internal/config"
	"github.com/neednlab/cn-pii-anonymization/internal/detector"
	"github.com/neednlab/cn-pii-anonymization/internal/extraction"
	"github.com/neednlab/cn-pii-anonymization/internal/observability"
	"github.com/neednlab/cn-pii-anonymization/internal/ocrmerge"
)

// Redactor holds the image-path pipeline configuration.
type Redactor struct {
	analyzer *analyzer.Analyzer
	merger   *ocrmerge.Merger
	padding  int
	obs      *observability.Observer
}

// New builds a redactor sharing the analyzer's configuration.
func New(cfg *config.Config, extract extraction.Func, obs *observability.Observer) (*Redactor, error) {
	a, err := analyzer.New(cfg, extract, obs)
	if err != nil {
		return nil, err
	}
	if obs == nil {
		obs = observability.Discard()
	}
	return &Redactor{
		analyzer: a,
		merger:   ocrmerge.NewMerger(cfg.Merge.LineTolerance, cfg.Merge.GapTolerance),
		padding:  cfg.Merge.RegionPadding,
		obs:      obs,
	}, nil
}

// Plan returns one finding per resolved span across all merged runs. Runs
// are independent documents and analyzed concurrently; findings keep run
// order. An empty fragment list yields an empty plan, never an error.
func (r *Redactor) Plan(ctx context.Context, fragments []detector.TextFragment) ([]detector.RegionFinding, error) {
	defer r.obs.StartTiming("redaction plan")()

	runs := r.merger.Merge(fragments)
	perRun := make([][]detector.RegionFinding, len(runs))

	g, _ := errgroup.WithContext(ctx)
	for i, run := range runs {
		i, run := i, run
		g.Go(func() error {
			spans, err := r.analyzer.Analyze(ctx, run.Text)
			if err != nil {
				return err
			}
			for _, s := range spans {
				region, ok := run.Region(s.Start, s.End)
				if !ok {
					continue
				}
				perRun[i] = append(perRun[i], detector.RegionFinding{
					Category: s.Category,
					Score:    s.Score,
					Text:     s.Text,
					Region:   region,
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var findings []detector.RegionFinding
	for _, f := range perRun {
		findings = append(findings, f...)
	}
	return findings, nil
}

// Regions merges the plan's boxes into disjoint redaction targets. Each
// box grows by the configured padding first, so boxes separated by less
// than twice the padding collapse into one region.
func (r *Redactor) Regions(findings []detector.RegionFinding) []detector.PixelRegion {
	regions := make([]detector.PixelRegion, 0, len(findings))
	for _, f := range findings {
		regions = append(regions, f.Region)
	}
	return MergeRegions(regions, r.padding)
}

// MergeRegions pads every region and merges intersecting ones via
// connected components. Transitive chains collapse into a single region
// even when the endpoints never touch directly.
func MergeRegions(regions []detector.PixelRegion, padding int) []detector.PixelRegion {
	if len(regions) == 0 {
		return nil
	}

	padded := make([]detector.PixelRegion, len(regions))
	for i, reg := range regions {
		padded[i] = reg.Pad(padding)
	}

	parent := make([]int, len(padded))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	for i := 0; i < len(padded); i++ {
		for j := i + 1; j < len(padded); j++ {
			if padded[i].Intersects(padded[j]) {
				ri, rj := find(i), find(j)
				if ri != rj {
					parent[rj] = ri
				}
			}
		}
	}

	merged := make(map[int]detector.PixelRegion)
	for i, reg := range padded {
		root := find(i)
		if m, ok := merged[root]; ok {
			merged[root] = m.Union(reg)
		} else {
			merged[root] = reg
		}
	}

	out := make([]detector.PixelRegion, 0, len(merged))
	for _, reg := range merged {
		out = append(out, reg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Top != out[j].Top {
			return out[i].Top < out[j].Top
		}
		return out[i].Left < out[j].Left
	})
	return out
}
