package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/K2017/sdfmarch/internal/config"
	"github.com/K2017/sdfmarch/pkg/renderer"
	"github.com/K2017/sdfmarch/pkg/scene"
	"github.com/K2017/sdfmarch/pkg/sceneio"
)

var builtinSceneNames = []string{"spheres", "torus-union", "csg-demo", "refraction"}

func main() {
	sceneName := flag.String("scene", "spheres", "Built-in scene: "+strings.Join(builtinSceneNames, "|"))
	configPath := flag.String("config", "", "Path to a YAML scene description, overrides -scene")
	width := flag.Int("width", 720, "Frame width in pixels")
	height := flag.Int("height", 720, "Frame height in pixels")
	out := flag.String("out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	debugNormals := flag.Bool("debug-normals", false, "Visualize surface normals instead of shading")
	debugDepth := flag.Bool("debug-depth", false, "Visualize raymarch depth instead of shading")
	workers := flag.Int("workers", 0, "Worker goroutines, 0 = runtime.NumCPU() (env SDFMARCH_WORKERS)")
	tileSize := flag.Int("tile-size", 0, "Tile edge length in pixels, 0 = use configured default (env SDFMARCH_TILE_SIZE)")
	samples := flag.Int("samples", 8, "Final AA samples per pixel")
	passes := flag.Int("passes", 4, "Number of progressive AA passes")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("sdfmarch: offline CPU raymarching renderer for SDF/CSG scenes")
		fmt.Println("Usage: sdfmarch [options]")
		fmt.Println()
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Built-in scenes:", strings.Join(builtinSceneNames, ", "))
		return
	}

	logger := renderer.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *tileSize > 0 {
		cfg.TileSize = *tileSize
	}

	sc, resolvedName, err := loadScene(*configPath, *sceneName)
	if err != nil {
		logger.Printf("Error loading scene: %v\n", err)
		os.Exit(1)
	}
	if sc.GetActiveCamera() == nil {
		logger.Printf("Error: scene %q has no active camera\n", resolvedName)
		os.Exit(1)
	}
	sc.Debug.Normals = *debugNormals
	sc.Debug.Depth = *debugDepth

	outputDir := filepath.Join("output", resolvedName)
	if *out == "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			logger.Printf("Error creating output directory: %v\n", err)
			os.Exit(1)
		}
	}

	rc := renderer.DefaultProgressiveConfig()
	rc.TileSize = cfg.TileSize
	rc.NumWorkers = cfg.Workers
	rc.MaxSamplesPerPixel = *samples
	rc.MaxPasses = *passes

	logger.Printf("Rendering %q at %dx%d (%d passes, %d samples/pixel, %d tile)...\n",
		resolvedName, *width, *height, rc.MaxPasses, rc.MaxSamplesPerPixel, rc.TileSize)

	pr := renderer.NewProgressiveRenderer(sc, *width, *height, rc, logger)

	start := time.Now()
	passChan, errChan := pr.RenderProgressive(context.Background())

	var final *renderer.PassResult
	for result := range passChan {
		result := result
		final = &result
	}
	if err := <-errChan; err != nil {
		logger.Printf("Error during render: %v\n", err)
		os.Exit(1)
	}
	if final == nil {
		logger.Printf("Error: render produced no output\n")
		os.Exit(1)
	}

	logger.Printf("Render completed in %v (%.1f samples/pixel average)\n",
		time.Since(start), final.Stats.AverageSamples)

	outputPath := *out
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}

	file, err := os.Create(outputPath)
	if err != nil {
		logger.Printf("Error creating file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	if err := png.Encode(file, final.Sink.Image); err != nil {
		logger.Printf("Error saving PNG: %v\n", err)
		os.Exit(1)
	}

	logger.Printf("Render saved as %s\n", outputPath)
}

// loadScene resolves a scene either from a YAML file at configPath, or from
// a built-in scene constructor by name, returning the resolved name used for
// the default output directory.
func loadScene(configPath, sceneName string) (*scene.Scene, string, error) {
	if configPath != "" {
		sc, err := sceneio.Load(configPath)
		if err != nil {
			return nil, "", err
		}
		return sc, strings.TrimSuffix(filepath.Base(configPath), filepath.Ext(configPath)), nil
	}

	sc := scene.BuiltinScene(sceneName)
	if sc == nil {
		return nil, "", fmt.Errorf("unknown scene %q, available: %s", sceneName, strings.Join(builtinSceneNames, ", "))
	}
	return sc, sceneName, nil
}
