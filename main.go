package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"motioncam/broadcast"
	"motioncam/config"
	"motioncam/pipeline"
	"motioncam/records"
)

var (
	// Input and output
	inputPath   = flag.String("input", "", "Input video file (required)\n\t\tExample: -input=driveway.mp4")
	saveData    = flag.Bool("save-data", false, "Save per-frame detection records alongside the output video as JSON")
	dbPath      = flag.String("db", "", "SQLite database to persist detection records into (optional)\n\t\tExample: -db=detections.db")
	previewAddr = flag.String("preview", "", "Serve a live MJPEG preview of processed frames at this address (optional)\n\t\tExample: -preview=:8080")
	resize      = flag.Bool("resize", true, "Downscale frames before analysis and output")
	resizeScale = flag.Float64("resize-scale", 0.75, "Downscale factor when -resize is enabled (0.25-1.0)")

	// Detection
	minArea = flag.Int("min-area", 500, "Minimum contour area for a region to count as movement")

	// Bounding box
	boxStyle     = flag.String("box-style", "solid", "Box stroke style: solid, dashed, or dotted")
	boxThickness = flag.Int("box-thickness", 2, "Box stroke width in pixels")
	boxPadding   = flag.Int("box-padding", 0, "Expand boxes by this many pixels on all sides before clamping")
	boxCorners   = flag.Bool("box-corners", false, "Draw L-shaped corner accents on each box")
	boxColor     = flag.String("box-color", "000000", "Box color as RRGGBB hex")
	showBox      = flag.Bool("show-box", true, "Draw bounding boxes and labels")

	// Effects
	heatMap           = flag.Bool("heat", true, "Color boxes and overlays by speed relative to the frame maximum")
	heatIntensity     = flag.Int("heat-intensity", 50, "Heat overlay blend strength, 0-100")
	negativeEffect    = flag.Bool("negative", true, "Invert colors inside each detected region")
	negativeIntensity = flag.Int("negative-intensity", 100, "Inversion blend strength, 0-100")
	edgeDetection     = flag.Bool("edges", true, "Overlay detected edges inside each region")
	edgeIntensity     = flag.Int("edge-intensity", 50, "Edge overlay blend strength, 0-100")
	edgeColor         = flag.String("edge-color", "aaffff", "Edge overlay color as RRGGBB hex")

	// Label
	fontSize  = flag.Float64("font-size", 0.9, "Label font scale")
	fontColor = flag.String("font-color", "000000", "Label color as RRGGBB hex")

	// Proximity links
	showLines       = flag.Bool("lines", true, "Draw connector lines between nearby regions")
	lineDistance    = flag.Int("line-distance", 200, "Maximum distance in pixels for connector lines")
	lineColor       = flag.String("line-color", "ffc0cb", "Connector line color as RRGGBB hex")
	connectionPoint = flag.String("connection-point", "center", "Point used for proximity distance: center or corner")

	verbose = flag.Bool("verbose", false, "Enable verbose per-frame logging")
)

// logMsg prints a timestamped, component-tagged message.
func logMsg(component, message string) {
	fmt.Printf("[%s][%s] %s\n", time.Now().Format("15:04:05.000"), component, message)
}

func logVerbose(component, message string) {
	if *verbose {
		logMsg(component, message)
	}
}

// parseHexColor parses an RRGGBB hex string into a color.
func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q must be 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}

// settingsFromFlags assembles the run configuration from the command line.
func settingsFromFlags() (config.Settings, error) {
	settings := config.DefaultSettings()

	box, err := parseHexColor(*boxColor)
	if err != nil {
		return settings, err
	}
	edge, err := parseHexColor(*edgeColor)
	if err != nil {
		return settings, err
	}
	font, err := parseHexColor(*fontColor)
	if err != nil {
		return settings, err
	}
	line, err := parseHexColor(*lineColor)
	if err != nil {
		return settings, err
	}

	settings.MinArea = *minArea
	settings.BoxStyle = config.BoxStyle(*boxStyle)
	settings.BoxThickness = *boxThickness
	settings.BoxPadding = *boxPadding
	settings.BoxCorners = *boxCorners
	settings.BoxColor = box
	settings.ShowBox = *showBox
	settings.HeatMap = *heatMap
	settings.HeatIntensity = *heatIntensity
	settings.NegativeEffect = *negativeEffect
	settings.NegativeIntensity = *negativeIntensity
	settings.EdgeDetection = *edgeDetection
	settings.EdgeIntensity = *edgeIntensity
	settings.EdgeColor = edge
	settings.FontSize = *fontSize
	settings.FontColor = font
	settings.ShowLines = *showLines
	settings.LineDistance = *lineDistance
	settings.LineColor = line
	settings.ConnectionPoint = config.ConnectionPoint(*connectionPoint)
	settings.ResizeOutput = *resize
	settings.ResizeScale = *resizeScale
	settings.SaveData = *saveData

	return settings, settings.Validate()
}

func main() {
	flag.Parse()

	if *inputPath == "" {
		fmt.Println("Error: -input is required")
		flag.Usage()
		os.Exit(1)
	}

	settings, err := settingsFromFlags()
	if err != nil {
		logMsg("CONFIG", fmt.Sprintf("invalid configuration: %v", err))
		os.Exit(1)
	}

	annotator, err := pipeline.NewAnnotator(settings)
	if err != nil {
		logMsg("PIPELINE", err.Error())
		os.Exit(1)
	}
	defer annotator.Close()

	var preview *broadcast.Preview
	if *previewAddr != "" {
		preview = broadcast.NewPreview(*previewAddr)
		if err := preview.Start(); err != nil {
			logMsg("BROADCAST", err.Error())
			os.Exit(1)
		}
		defer preview.Stop()
		logMsg("BROADCAST", fmt.Sprintf("live preview at http://%s/", *previewAddr))
	}

	lastPercent := -1
	progress := func(done, total int) {
		if total <= 0 {
			return
		}
		percent := done * 100 / total
		if percent != lastPercent && percent%5 == 0 {
			logMsg("PROGRESS", fmt.Sprintf("%d%% (%d/%d frames)", percent, done, total))
			lastPercent = percent
		}
		logVerbose("PROCESS", fmt.Sprintf("frame %d done", done))
	}

	processor := NewVideoProcessor(*inputPath, annotator, preview, progress)

	// A stop request finishes the in-flight frame before taking effect.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logMsg("MAIN", fmt.Sprintf("received %v, stopping after current frame", sig))
		processor.Stop()
	}()

	outputPath, err := processor.Run()
	if err != nil {
		logMsg("PROCESS", err.Error())
		os.Exit(1)
	}
	logMsg("MAIN", fmt.Sprintf("processing complete: %s", outputPath))

	if settings.SaveData {
		if err := persistRecords(outputPath, processor.Frames()); err != nil {
			logMsg("RECORDS", err.Error())
			os.Exit(1)
		}
	}
}

// persistRecords writes the JSON sink next to the output video and, when
// -db is set, the SQLite store, then logs a run summary.
func persistRecords(outputPath string, frames [][]pipeline.DetectionRecord) error {
	dataPath := strings.TrimSuffix(outputPath, ".mp4") + "_data.json"
	if err := records.WriteJSON(dataPath, frames); err != nil {
		return err
	}
	logMsg("RECORDS", fmt.Sprintf("detection data saved to %s", dataPath))

	if *dbPath != "" {
		store, err := records.OpenStore(*dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		runID, err := store.BeginRun(*inputPath)
		if err != nil {
			return err
		}
		for i, recs := range frames {
			if err := store.RecordFrame(runID, i, recs); err != nil {
				return err
			}
		}
		if err := store.FinishRun(runID, len(frames)); err != nil {
			return err
		}
		logMsg("RECORDS", fmt.Sprintf("run %s stored in %s", runID, *dbPath))
	}

	summary := records.Summarize(frames)
	logMsg("SUMMARY", fmt.Sprintf(
		"%d frames, %d detections, mean area %.0f, mean speed %.2f px/frame (stddev %.2f, max %.2f)",
		summary.Frames, summary.Detections, summary.MeanArea,
		summary.MeanSpeed, summary.StdDevSpeed, summary.MaxSpeed))
	return nil
}
