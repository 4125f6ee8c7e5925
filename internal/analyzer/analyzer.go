// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package analyzer wires recognizers, score thresholds and the priority
// resolver into the text analysis entry point.
package analyzer

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/neednlab/cn-pii-anonymization/internal/config"
	"github.com/neednlab/cn-pii-anonymization/internal/detector"
	"github.com/neednlab/cn-pii-anonymization/internal/extraction"
	"github.com/neednlab/cn-pii-anonymization/internal/observability"
	"github.com/neednlab/cn-pii-anonymization/internal/recognizers/bankcard"
	"github.com/neednlab/cn-pii-anonymization/internal/recognizers/email"
	"github.com/neednlab/cn-pii-anonymization/internal/recognizers/idcard"
	"github.com/neednlab/cn-pii-anonymization/internal/recognizers/passport"
	"github.com/neednlab/cn-pii-anonymization/internal/recognizers/passthrough"
	"github.com/neednlab/cn-pii-anonymization/internal/recognizers/phone"
	"github.com/neednlab/cn-pii-anonymization/internal/resolver"
)

// Analyzer holds the constructed-once analysis configuration. It carries
// no per-call state, so one analyzer may serve concurrent calls.
type Analyzer struct {
	cfg      *config.Config
	resolver *resolver.Resolver
	pattern  []detector.Recognizer
	extract  extraction.Func
	obs      *observability.Observer
}

// New validates configuration and builds an analyzer. The extract func may
// be nil when no extraction model is attached; NAME/ADDRESS findings then
// come only from the deny list.
func New(cfg *config.Config, extract extraction.Func, obs *observability.Observer) (*Analyzer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("analyzer: nil config")
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	res, err := resolver.New(cfg.CategoryPriorities())
	if err != nil {
		return nil, err
	}
	if obs == nil {
		obs = observability.Discard()
	}
	return &Analyzer{
		cfg:      cfg,
		resolver: res,
		pattern: []detector.Recognizer{
			phone.NewRecognizer(),
			idcard.NewRecognizer(),
			bankcard.NewRecognizer(),
			passport.NewRecognizer(),
			email.NewRecognizer(),
		},
		extract: extract,
		obs:     obs,
	}, nil
}

// Analyze runs every recognizer over the text, drops findings below their
// category threshold and resolves overlaps. Empty input yields an empty
// result, never an error.
func (a *Analyzer) Analyze(ctx context.Context, text string) ([]detector.Span, error) {
	if text == "" {
		return nil, nil
	}
	defer a.obs.StartTiming("analyze")()

	recs := make([]detector.Recognizer, 0, len(a.pattern)+2)
	recs = append(recs, a.pattern...)

	if a.extract != nil || len(a.cfg.Names.DenyList) > 0 {
		var entities []extraction.Entity
		if a.extract != nil {
			var err error
			entities, err = a.extract(text)
			if err != nil {
				return nil, fmt.Errorf("extraction model: %w", err)
			}
		}
		recs = append(recs,
			passthrough.New(detector.CategoryName, entities, passthrough.Options{
				DenyList:  a.cfg.Names.DenyList,
				AllowList: a.cfg.Names.AllowList,
			}),
			passthrough.New(detector.CategoryAddress, entities, passthrough.Options{
				MinLength: a.cfg.Address.MinLength,
			}),
		)
	}

	var (
		mu         sync.Mutex
		candidates []detector.Candidate
	)
	g, _ := errgroup.WithContext(ctx)
	for _, rec := range recs {
		rec := rec
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			found := rec.Recognize(text)
			mu.Lock()
			candidates = append(candidates, found...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	kept := candidates[:0]
	for _, c := range candidates {
		if c.Score < a.cfg.ThresholdFor(c.Category) {
			a.obs.Log().Debug().
				Str("category", string(c.Category)).
				Float64("score", c.Score).
				Msg("candidate below threshold")
			continue
		}
		kept = append(kept, c)
	}

	resolved := a.resolver.Resolve(kept)
	spans := make([]detector.Span, 0, len(resolved))
	for _, c := range resolved {
		spans = append(spans, detector.Span{
			Category: c.Category,
			Start:    c.Start,
			End:      c.End,
			Score:    c.Score,
			Source:   c.Source,
			Text:     text[c.Start:c.End],
		})
		a.obs.Log().Debug().
			Str("category", string(c.Category)).
			Int("start", c.Start).
			Int("end", c.End).
			Float64("score", c.Score).
			Msg("span resolved")
	}
	return spans, nil
}
