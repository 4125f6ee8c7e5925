// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/neednlab/cn-pii-anonymization/internal/analyzer"
	"github.com/neednlab/cn-pii-anonymization/internal/anonymizer"
	"github.com/neednlab/cn-pii-anonymization/internal/config"
	"github.com/neednlab/cn-pii-anonymization/internal/detector"
	"github.com/neednlab/cn-pii-anonymization/internal/extraction"
	"github.com/neednlab/cn-pii-anonymization/internal/formatters"
	_ "github.com/neednlab/cn-pii-anonymization/internal/formatters/json"
	_ "github.com/neednlab/cn-pii-anonymization/internal/formatters/text"
	"github.com/neednlab/cn-pii-anonymization/internal/help"
	"github.com/neednlab/cn-pii-anonymization/internal/observability"
	"github.com/neednlab/cn-pii-anonymization/internal/operators"
	"github.com/neednlab/cn-pii-anonymization/internal/recognizers/bankcard"
	"github.com/neednlab/cn-pii-anonymization/internal/recognizers/email"
	"github.com/neednlab/cn-pii-anonymization/internal/recognizers/idcard"
	"github.com/neednlab/cn-pii-anonymization/internal/recognizers/passport"
	"github.com/neednlab/cn-pii-anonymization/internal/recognizers/phone"
	"github.com/neednlab/cn-pii-anonymization/internal/redactor"
	"github.com/neednlab/cn-pii-anonymization/internal/suppressions"
)

const version = "1.0.0"

func main() {
	textInput := flag.String("text", "", "Text to analyze")
	fileInput := flag.String("file", "", "Path to a UTF-8 text file to analyze")
	fragmentsInput := flag.String("fragments", "", "Path to an OCR fragment JSON file")
	entitiesInput := flag.String("entities", "", "Path to extraction-model output JSON (entity_key/text/probability records)")
	imageInput := flag.String("image", "", "Image to redact (requires --fragments)")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	outputFormat := flag.String("format", "", "Output format: text, json (default: text)")
	anonymize := flag.Bool("anonymize", false, "Print the anonymized text after the findings")
	redactionStyle := flag.String("redaction", "", "Image redaction style: pixelate, blur, fill")
	outputFile := flag.String("output", "", "Path to output file (default: stdout; for --image, the redacted image)")
	suppressionFile := flag.String("suppression-file", "", "Path to suppression configuration file")
	generateSuppressions := flag.Bool("generate-suppressions", false, "Generate suppression rules for all findings")
	showMatch := flag.Bool("show-match", false, "Display the matched text in findings")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showHelp := flag.Bool("help", false, "Show help information")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("cn-pii-scan %s\n", version)
		return
	}

	// Disable colors when stdout is not a terminal.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		*noColor = true
	}

	helpSystem := buildHelpSystem(*noColor)
	if *showHelp || (flag.NArg() > 0 && flag.Arg(0) == "help") {
		topic := flag.Arg(0)
		if topic == "help" && flag.NArg() > 1 {
			topic = flag.Arg(1)
		}
		switch {
		case topic == "" || topic == "help":
			helpSystem.ShowGeneralHelp()
		case strings.EqualFold(topic, "checks"):
			helpSystem.ShowChecksHelp()
		default:
			if !helpSystem.ShowCheckHelp(topic) {
				os.Exit(1)
			}
		}
		return
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fatal(err)
	}
	if *outputFormat != "" {
		cfg.Defaults.Format = *outputFormat
	}
	if *noColor {
		cfg.Defaults.NoColor = true
	}
	if *debug {
		cfg.Defaults.Debug = true
	}
	if *showMatch {
		cfg.Defaults.ShowMatch = true
	}
	if *anonymize {
		cfg.Defaults.Anonymize = true
	}
	if *redactionStyle != "" {
		cfg.Redaction.Style = *redactionStyle
		if err := config.ValidateConfig(cfg); err != nil {
			fatal(err)
		}
	}
	if *suppressionFile != "" {
		cfg.Suppressions.File = *suppressionFile
	}

	formatter, ok := formatters.Get(cfg.Defaults.Format)
	if !ok {
		fatal(fmt.Errorf("unknown output format %q (available: %s)",
			cfg.Defaults.Format, strings.Join(formatters.List(), ", ")))
	}

	obs := observability.New(cfg.Defaults.Debug)
	suppressor := suppressions.NewManager(cfg.Suppressions.File)
	ctx := context.Background()

	extract, err := loadEntities(*entitiesInput)
	if err != nil {
		fatal(err)
	}

	var result *formatters.Result
	switch {
	case *fragmentsInput != "":
		result, err = runImageMode(ctx, cfg, extract, obs, suppressor, *fragmentsInput, *imageInput, *outputFile)
	case *textInput != "" || *fileInput != "":
		text := *textInput
		if *fileInput != "" {
			data, readErr := os.ReadFile(*fileInput)
			if readErr != nil {
				fatal(fmt.Errorf("reading input file: %w", readErr))
			}
			text = string(data)
		}
		result, err = runTextMode(ctx, cfg, extract, obs, suppressor, text)
	default:
		fmt.Fprintln(os.Stderr, "Error: one of --text, --file or --fragments is required")
		fmt.Fprintln(os.Stderr, "Use --help for usage information")
		os.Exit(1)
	}
	if err != nil {
		fatal(err)
	}

	if *generateSuppressions {
		added, genErr := suppressor.Generate(result.Spans, "generated by cn-pii-scan")
		if genErr != nil {
			fatal(genErr)
		}
		obs.Log().Info().Int("rules", added).Str("file", suppressor.Path()).
			Msg("suppression rules generated")
	}

	out, err := formatter.Format(result, formatters.FormatterOptions{
		NoColor:   cfg.Defaults.NoColor,
		ShowMatch: cfg.Defaults.ShowMatch,
	})
	if err != nil {
		fatal(err)
	}

	if *outputFile != "" && *imageInput == "" {
		if err := os.WriteFile(*outputFile, []byte(out), 0o644); err != nil {
			fatal(err)
		}
		return
	}
	fmt.Print(out)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		// An explicitly named config file must load, or we stop.
		return config.LoadConfig(path)
	}
	return config.LoadConfigOrDefault(""), nil
}

// loadEntities reads pre-materialized extraction-model output. The model is
// invoked by an external collaborator before this tool runs; its records
// arrive as a JSON array of {entity_key, text, probability}.
func loadEntities(path string) (extraction.Func, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading entities file: %w", err)
	}
	var records []extraction.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing entities file: %w", err)
	}
	return extraction.Static(extraction.Normalize(records)), nil
}

func runTextMode(ctx context.Context, cfg *config.Config, extract extraction.Func, obs *observability.Observer,
	suppressor *suppressions.Manager, text string) (*formatters.Result, error) {

	a, err := analyzer.New(cfg, extract, obs)
	if err != nil {
		return nil, err
	}
	spans, err := a.Analyze(ctx, text)
	if err != nil {
		return nil, err
	}

	total := len(spans)
	spans = suppressor.Filter(spans)

	result := &formatters.Result{
		Text:       text,
		Spans:      spans,
		Suppressed: total - len(spans),
	}
	if cfg.Defaults.Anonymize {
		result.Anonymized = anonymizer.New(nil).Anonymize(text, spans)
	}
	return result, nil
}

// fragmentFile is the wire shape of the OCR collaborator's output.
type fragmentFile struct {
	Fragments []detector.TextFragment `json:"fragments"`
}

func runImageMode(ctx context.Context, cfg *config.Config, extract extraction.Func, obs *observability.Observer,
	suppressor *suppressions.Manager, fragmentsPath, imagePath, outputPath string) (*formatters.Result, error) {

	data, err := os.ReadFile(fragmentsPath)
	if err != nil {
		return nil, fmt.Errorf("reading fragments file: %w", err)
	}
	var ff fragmentFile
	if err := json.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("parsing fragments file: %w", err)
	}

	r, err := redactor.New(cfg, extract, obs)
	if err != nil {
		return nil, err
	}
	findings, err := r.Plan(ctx, ff.Fragments)
	if err != nil {
		return nil, err
	}

	kept := findings[:0]
	for _, f := range findings {
		span := detector.Span{Category: f.Category, Score: f.Score, Text: f.Text}
		if ok, _ := suppressor.IsSuppressed(span); !ok {
			kept = append(kept, f)
		}
	}
	suppressed := len(findings) - len(kept)
	findings = kept

	if imagePath != "" {
		if err := redactImage(cfg, imagePath, outputPath, r.Regions(findings)); err != nil {
			return nil, err
		}
	}

	return &formatters.Result{Regions: findings, Suppressed: suppressed}, nil
}

func redactImage(cfg *config.Config, imagePath, outputPath string, regions []detector.PixelRegion) error {
	f, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	src, format, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decoding image: %w", err)
	}

	img, ok := src.(draw.Image)
	if !ok {
		rgba := image.NewRGBA(src.Bounds())
		draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)
		img = rgba
	}

	fillColor, err := operators.ParseHexColor(cfg.Redaction.FillColor)
	if err != nil {
		return err
	}
	opts := operators.Options{
		PixelSize: cfg.Redaction.PixelSize,
		BlurSigma: cfg.Redaction.BlurSigma,
		FillColor: fillColor,
	}
	for _, region := range regions {
		if err := operators.Apply(img, region, operators.Style(cfg.Redaction.Style), opts); err != nil {
			return err
		}
	}

	if outputPath == "" {
		ext := filepath.Ext(imagePath)
		outputPath = strings.TrimSuffix(imagePath, ext) + ".redacted" + ext
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output image: %w", err)
	}
	defer out.Close()

	switch format {
	case "jpeg":
		return jpeg.Encode(out, img, &jpeg.Options{Quality: 90})
	default:
		return png.Encode(out, img)
	}
}

func buildHelpSystem(noColor bool) *help.System {
	h := help.NewSystem(noColor)
	h.RegisterProvider(phone.NewRecognizer())
	h.RegisterProvider(idcard.NewRecognizer())
	h.RegisterProvider(bankcard.NewRecognizer())
	h.RegisterProvider(passport.NewRecognizer())
	h.RegisterProvider(email.NewRecognizer())
	return h
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
