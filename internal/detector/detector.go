// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import "fmt"

// Category identifies one of the supported Chinese-locale PII categories.
// The set is closed: it mirrors the regulatory list of PII types this
// system recognizes, and is not an extension point.
type Category string

const (
	CategoryIDCard   Category = "ID_CARD"
	CategoryBankCard Category = "BANK_CARD"
	CategoryPhone    Category = "PHONE"
	CategoryPassport Category = "PASSPORT"
	CategoryEmail    Category = "EMAIL"
	CategoryName     Category = "NAME"
	CategoryAddress  Category = "ADDRESS"
)

// Categories lists every supported category in priority order.
var Categories = []Category{
	CategoryIDCard,
	CategoryBankCard,
	CategoryPhone,
	CategoryPassport,
	CategoryEmail,
	CategoryName,
	CategoryAddress,
}

// DefaultPriorities returns the fixed category ranking used for overlap
// resolution. Lower numbers win. Callers may override the ranking through
// configuration, but every category must keep an entry.
func DefaultPriorities() map[Category]int {
	return map[Category]int{
		CategoryIDCard:   1,
		CategoryBankCard: 2,
		CategoryPhone:    3,
		CategoryPassport: 4,
		CategoryEmail:    5,
		CategoryName:     6,
		CategoryAddress:  7,
	}
}

// Valid reports whether c is one of the seven supported categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryIDCard, CategoryBankCard, CategoryPhone, CategoryPassport,
		CategoryEmail, CategoryName, CategoryAddress:
		return true
	}
	return false
}

// Source records how a candidate was produced.
type Source string

const (
	SourcePattern  Source = "pattern"
	SourceModel    Source = "model"
	SourceDenyList Source = "deny-list-override"
)

// Candidate is a raw span proposed by a single recognizer. Offsets are byte
// offsets into the UTF-8 text being analyzed; End is exclusive. Candidates
// are immutable once produced and never outlive the analysis call that
// created them.
type Candidate struct {
	Category Category
	Start    int
	End      int
	Score    float64
	Source   Source
}

// Overlaps reports whether two candidates claim at least one common byte.
func (c Candidate) Overlaps(other Candidate) bool {
	return c.Start < other.End && other.Start < c.End
}

// Span is a candidate that survived conflict resolution, carrying the
// matched text for downstream substitution.
type Span struct {
	Category Category `json:"category"`
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Score    float64  `json:"score"`
	Source   Source   `json:"source"`
	Text     string   `json:"text"`
}

// Recognizer produces raw candidates of a single category from text.
// Recognizers never see each other's output; reconciliation happens in the
// resolver.
type Recognizer interface {
	Category() Category
	Recognize(text string) []Candidate
}

// TextFragment is one OCR-recognized token with its pixel bounding box,
// produced by the OCR collaborator. It is read-only input to the merger.
type TextFragment struct {
	Text       string  `json:"text"`
	Left       int     `json:"left"`
	Top        int     `json:"top"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Confidence float64 `json:"confidence"`
}

// Box returns the fragment's bounding box as a PixelRegion.
func (f TextFragment) Box() PixelRegion {
	return PixelRegion{
		Left:   f.Left,
		Top:    f.Top,
		Right:  f.Left + f.Width,
		Bottom: f.Top + f.Height,
	}
}

// PixelRegion is an axis-aligned rectangle in source-image pixel
// coordinates, Right/Bottom exclusive in the usual image sense.
type PixelRegion struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Union returns the smallest region covering both r and other.
func (r PixelRegion) Union(other PixelRegion) PixelRegion {
	return PixelRegion{
		Left:   minInt(r.Left, other.Left),
		Top:    minInt(r.Top, other.Top),
		Right:  maxInt(r.Right, other.Right),
		Bottom: maxInt(r.Bottom, other.Bottom),
	}
}

// Intersects reports whether two regions overlap or touch.
func (r PixelRegion) Intersects(other PixelRegion) bool {
	return r.Left <= other.Right && other.Left <= r.Right &&
		r.Top <= other.Bottom && other.Top <= r.Bottom
}

// Pad grows the region by px on every side.
func (r PixelRegion) Pad(px int) PixelRegion {
	return PixelRegion{
		Left:   r.Left - px,
		Top:    r.Top - px,
		Right:  r.Right + px,
		Bottom: r.Bottom + px,
	}
}

func (r PixelRegion) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}

// RegionFinding pairs a resolved category with the pixel region it occupies,
// the final output of the image pipeline.
type RegionFinding struct {
	Category Category    `json:"category"`
	Score    float64     `json:"score"`
	Text     string      `json:"text"`
	Region   PixelRegion `json:"region"`
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
