// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// CheckInfo contains standardized information about a recognizer check
type CheckInfo struct {
	Name                string   // Name of the check (e.g., "ID_CARD")
	ShortDescription    string   // Short description for the checks list
	DetailedDescription string   // Detailed description of what the check does
	Patterns            []string // Patterns the check looks for
	Validation          []string // Validation steps applied to raw matches
	Suppressions        []string // Conditions under which a match is discarded
	ConfigurationInfo   string   // Information about how to configure the check
	Examples            []string // Usage examples
}

// Provider defines the interface for help content providers
type Provider interface {
	GetCheckInfo() CheckInfo
}

// System manages help content for the application
type System struct {
	providers map[string]Provider
	colors    map[string]*color.Color
}

// NewSystem creates a new help system
func NewSystem(noColor bool) *System {
	if noColor {
		color.NoColor = true
	}

	return &System{
		providers: make(map[string]Provider),
		colors: map[string]*color.Color{
			"title":    color.New(color.FgWhite, color.Bold),
			"header":   color.New(color.FgBlue, color.Bold),
			"item":     color.New(color.FgCyan),
			"emphasis": color.New(color.FgWhite, color.Bold),
			"negative": color.New(color.FgRed),
			"example":  color.New(color.FgMagenta),
		},
	}
}

// RegisterProvider adds a help provider to the system
func (h *System) RegisterProvider(provider Provider) {
	info := provider.GetCheckInfo()
	h.providers[strings.ToLower(info.Name)] = provider
}

// ShowGeneralHelp displays general help information
func (h *System) ShowGeneralHelp() {
	h.colors["title"].Println("cn-pii-scan - Chinese PII Detection and Anonymization")
	fmt.Println("=====================================================")
	fmt.Println()
	h.colors["header"].Println("USAGE:")
	fmt.Println("  cn-pii-scan --text <string> [options]")
	fmt.Println("  cn-pii-scan --file <path> [options]")
	fmt.Println("  cn-pii-scan --fragments <ocr.json> [--image <path>] [options]")
	fmt.Println()

	h.colors["header"].Println("OPTIONS:")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  --text\t<string>\tText to analyze")
	fmt.Fprintln(w, "  --file\t<path>\tPath to a UTF-8 text file to analyze")
	fmt.Fprintln(w, "  --fragments\t<path>\tPath to an OCR fragment JSON file (text plus pixel boxes)")
	fmt.Fprintln(w, "  --image\t<path>\tImage to redact; requires --fragments")
	fmt.Fprintln(w, "  --entities\t<path>\tExtraction-model output JSON (entity_key/text/probability records)")
	fmt.Fprintln(w, "  --config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  --format\t<format>\tOutput format: text, json (default: text)")
	fmt.Fprintln(w, "  --anonymize\t\tPrint the anonymized text after the findings")
	fmt.Fprintln(w, "  --redaction\t<style>\tImage redaction style: pixelate, blur, fill (default: pixelate)")
	fmt.Fprintln(w, "  --output\t<path>\tPath to output file (default: stdout; for --image, the redacted image)")
	fmt.Fprintln(w, "  --suppression-file\t<path>\tPath to suppression configuration file")
	fmt.Fprintln(w, "  --generate-suppressions\t\tGenerate suppression rules for all findings")
	fmt.Fprintln(w, "  --show-match\t\tDisplay the matched text in findings (otherwise shows the masked form)")
	fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  --debug\t\tEnable debug logging of recognizer and resolver decisions")
	fmt.Fprintln(w, "  --version\t\tShow version information")
	fmt.Fprintln(w, "  --help\t\tShow this help message")
	fmt.Fprintln(w, "  --help checks\t\tList all available checks")
	fmt.Fprintln(w, "  --help <check>\t\tShow detailed help for a specific check")
	w.Flush()

	fmt.Println()
	h.colors["header"].Println("EXAMPLES:")
	h.colors["example"].Println("  cn-pii-scan --text '联系电话13812345678' --format json")
	h.colors["example"].Println("  cn-pii-scan --file customer.txt --anonymize")
	h.colors["example"].Println("  cn-pii-scan --fragments ocr.json --image card.png --output redacted.png")
	fmt.Println()
	h.colors["header"].Println("CONFIGURATION:")
	fmt.Println("  Project config: cn-pii.yaml or .cn-pii.yaml (in current directory)")
	fmt.Println("  Environment: CN_PII_CONFIG - Override config file path")
}

// ShowChecksHelp displays information about all available checks
func (h *System) ShowChecksHelp() {
	h.colors["title"].Println("Available Checks")
	fmt.Println("================")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	h.colors["header"].Fprintln(w, "  CHECK\tDESCRIPTION")
	h.colors["header"].Fprintln(w, "  -----\t-----------")

	var checkNames []string
	for _, provider := range h.providers {
		checkNames = append(checkNames, provider.GetCheckInfo().Name)
	}
	sort.Strings(checkNames)

	for _, checkName := range checkNames {
		info := h.providers[strings.ToLower(checkName)].GetCheckInfo()
		fmt.Fprintf(w, "  ")
		h.colors["emphasis"].Fprintf(w, "%s", info.Name)
		fmt.Fprintf(w, "\t%s\n", info.ShortDescription)
	}
	w.Flush()

	fmt.Println()
	fmt.Println("For detailed information about a specific check, use:")
	h.colors["example"].Println("  cn-pii-scan --help <check>")
}

// ShowCheckHelp displays detailed help for a specific check
func (h *System) ShowCheckHelp(checkName string) bool {
	provider, exists := h.providers[strings.ToLower(checkName)]
	if !exists {
		h.colors["negative"].Printf("Error: Check '%s' not found.\n", checkName)
		fmt.Println("Use 'cn-pii-scan --help checks' to see a list of available checks.")
		return false
	}

	info := provider.GetCheckInfo()

	h.colors["title"].Printf("%s Check\n", info.Name)
	fmt.Println(strings.Repeat("=", len(info.Name)+6))
	fmt.Println()
	fmt.Println(info.DetailedDescription)
	fmt.Println()

	if len(info.Patterns) > 0 {
		h.colors["header"].Println("PATTERNS DETECTED:")
		for _, pattern := range info.Patterns {
			fmt.Print("  - ")
			h.colors["item"].Println(pattern)
		}
		fmt.Println()
	}

	if len(info.Validation) > 0 {
		h.colors["header"].Println("VALIDATION:")
		for _, step := range info.Validation {
			fmt.Print("  - ")
			h.colors["item"].Println(step)
		}
		fmt.Println()
	}

	if len(info.Suppressions) > 0 {
		h.colors["header"].Println("SUPPRESSED WHEN:")
		for _, cond := range info.Suppressions {
			fmt.Print("  - ")
			h.colors["item"].Println(cond)
		}
		fmt.Println()
	}

	if info.ConfigurationInfo != "" {
		h.colors["header"].Println("CONFIGURATION:")
		fmt.Println(info.ConfigurationInfo)
		fmt.Println()
	}

	if len(info.Examples) > 0 {
		h.colors["header"].Println("EXAMPLES:")
		for _, example := range info.Examples {
			fmt.Print("  ")
			h.colors["example"].Println(example)
		}
	}

	return true
}
