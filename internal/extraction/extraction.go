// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package extraction defines the input contract for the external
// name/address entity-extraction model. The analysis core never computes
// these spans itself; it consumes the model's output as one more source
// of raw candidates.
package extraction

import "github.com/neednlab/cn-pii-anonymization/internal/detector"

// Entity is one candidate reported by the extraction model.
type Entity struct {
	Category    detector.Category `json:"category"`
	Text        string            `json:"text"`
	Probability float64           `json:"probability"`
}

// Func produces extraction entities for a text. A nil Func means no model
// is attached and only deny-list names can surface for NAME/ADDRESS.
type Func func(text string) ([]Entity, error)

// entityAliases maps the model's entity keys to categories.
var entityAliases = map[string]detector.Category{
	"姓名":   detector.CategoryName,
	"人名":   detector.CategoryName,
	"NAME": detector.CategoryName,
	"地址":   detector.CategoryAddress,
	"具体地址": detector.CategoryAddress,
	"ADDRESS": detector.CategoryAddress,
}

// NormalizeKey resolves an extraction-model entity key to a category.
func NormalizeKey(key string) (detector.Category, bool) {
	c, ok := entityAliases[key]
	return c, ok
}

// Record is the raw wire shape the extraction model emits, before entity
// keys are normalized.
type Record struct {
	EntityKey   string  `json:"entity_key"`
	Text        string  `json:"text"`
	Probability float64 `json:"probability"`
}

// Normalize converts raw model records into entities. Records whose entity
// key is not a known alias are dropped rather than guessed at.
func Normalize(records []Record) []Entity {
	entities := make([]Entity, 0, len(records))
	for _, rec := range records {
		category, ok := NormalizeKey(rec.EntityKey)
		if !ok {
			continue
		}
		entities = append(entities, Entity{
			Category:    category,
			Text:        rec.Text,
			Probability: rec.Probability,
		})
	}
	return entities
}

// Static adapts pre-materialized model output into a Func. The model runs
// before the core is entered, so the same entity list serves every call.
func Static(entities []Entity) Func {
	return func(string) ([]Entity, error) { return entities, nil }
}
