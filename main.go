package main

import (
	"flag"
	"fmt"
	"image/draw"
	"os"
	"path/filepath"
	"time"

	"github.com/abehmiel/edgeon/internal/illusion"
	"github.com/abehmiel/edgeon/internal/output"
	"github.com/abehmiel/edgeon/internal/preview"
)

func main() {
	// Flags
	fontPath := flag.String("font", "", "TrueType font file (embedded Go Regular when empty)")
	outPath := flag.String("o", "", "output file path (derived from the text when empty)")
	outDir := flag.String("dir", ".", "output directory for derived file names")
	ext := flag.String("ext", ".png", "output extension for derived file names (.png, .jpg)")
	side := flag.Int("side", illusion.DefaultSide, "canvas side length in pixels")
	rotations := flag.Int("rotations", illusion.DefaultRotations, "number of stamped copies over a half turn")
	charMax := flag.Int("charmax", illusion.DefaultCharMax, "maximum text length before truncation")
	cropX := flag.Int("crop-x", illusion.DefaultCropX, "horizontal padding around the text ink box")
	cropY := flag.Int("crop-y", illusion.DefaultCropY, "vertical padding around the text ink box")
	threshold := flag.Int("threshold", illusion.DefaultDarknessThreshold, "green-channel darkness threshold (0-255)")
	textColor := flag.String("text-color", "#000000", "text color as hex")
	bgColor := flag.String("bg-color", "#ffffff", "background color as hex")
	noUpper := flag.Bool("no-upper", false, "keep the text's original case")
	qrStamp := flag.Bool("qr", false, "stamp an answer-key QR code in the corner")
	fbPreview := flag.Bool("fb", false, "preview the result on the Linux framebuffer")
	fbHold := flag.Duration("fb-hold", 5*time.Second, "how long to hold the framebuffer preview")
	debug := flag.Bool("debug", false, "enable debug logging to ./edgeon-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via EDGEON_STDIO_LOG")
	flag.Parse()

	// Best-effort: redirect all stdout/stderr output (including panic stack
	// traces) to a file so crashes are diagnosable in scripted use.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv("EDGEON_STDIO_LOG")
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	// Local file logger when debug enabled
	var logger illusion.Logger = illusion.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./edgeon-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			logger = illusion.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	cfg := illusion.DefaultConfig()
	cfg.FontPath = *fontPath
	cfg.Side = *side
	cfg.Rotations = *rotations
	cfg.CharMax = *charMax
	cfg.CropX = *cropX
	cfg.CropY = *cropY
	cfg.DarknessThreshold = *threshold
	cfg.UpperCase = !*noUpper

	var err error
	if cfg.TextColor, err = illusion.ParseColor(*textColor); err != nil {
		fatal(err)
	}
	if cfg.BackgroundColor, err = illusion.ParseColor(*bgColor); err != nil {
		fatal(err)
	}

	phrases := flag.Args()
	if len(phrases) == 0 {
		phrases = []string{cfg.Text}
	}
	if *outPath != "" && len(phrases) > 1 {
		fatal(fmt.Errorf("-o cannot be combined with multiple phrases"))
	}

	pipe, err := illusion.NewPipeline(cfg)
	if err != nil {
		fatal(err)
	}
	pipe.Logger = logger
	outExt := *ext
	if *outPath != "" {
		outExt = filepath.Ext(*outPath)
	}
	pipe.OutputAlpha = output.AlphaCapable(outExt)

	for _, phrase := range phrases {
		cfg.Text = phrase
		img, err := pipe.Render(cfg)
		if err != nil {
			fatal(fmt.Errorf("render %q: %w", phrase, err))
		}
		if *qrStamp {
			if err := output.StampAnswerKey(img.(draw.Image), phrase); err != nil {
				fatal(fmt.Errorf("qr stamp: %w", err))
			}
		}

		path := *outPath
		if path == "" {
			path = output.FileNameFor(phrase, *ext, *outDir)
		}
		if err := output.Save(img, path); err != nil {
			fatal(err)
		}
		fmt.Println("wrote", path)
		logger.Infof("main", "wrote %s", path)

		if *fbPreview {
			if err := preview.Show(img, *fbHold, logger); err != nil {
				logger.Errorf("main", "framebuffer preview failed: %v", err)
				fmt.Println("framebuffer preview error:", err)
			}
		}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "edgeon:", err)
	os.Exit(1)
}
