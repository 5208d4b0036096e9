package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/K2017/sdfmarch/pkg/renderer"
	"github.com/K2017/sdfmarch/pkg/scene"
	"github.com/K2017/sdfmarch/pkg/sceneio"
)

// RenderRequest is the POST /api/render body: either Scene names a
// built-in scene.BuiltinScene, or SceneYAML carries an inline scene
// description in sceneio's document format.
type RenderRequest struct {
	Scene     string `json:"scene,omitempty"`
	SceneYAML string `json:"sceneYaml,omitempty"`

	Width  int `json:"width"`
	Height int `json:"height"`

	MaxSamples int `json:"maxSamples"`
	MaxPasses  int `json:"maxPasses"`

	PropertyOverrides *PropertyOverrides `json:"propertyOverrides,omitempty"`
}

// PropertyOverrides patches scene.SceneProperties after the scene is
// resolved, letting a preview client tweak shading toggles without
// re-describing the whole scene.
type PropertyOverrides struct {
	Illumination *bool `json:"illumination,omitempty"`
	Shadowing    *bool `json:"shadowing,omitempty"`
	Fresnel      *bool `json:"fresnel,omitempty"`
	Absorption   *bool `json:"absorption,omitempty"`
	MaxDepth     *int  `json:"maxDepth,omitempty"`
}

// ProgressUpdate is one SSE "progress" payload: a base64-encoded PNG of the
// frame as it stands after a completed pass, plus the pass's stats.
type ProgressUpdate struct {
	PassNumber  int    `json:"passNumber"`
	TotalPasses int    `json:"totalPasses"`
	ImageData   string `json:"imageData"`
	Stats       Stats  `json:"stats"`
	IsComplete  bool   `json:"isComplete"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// Stats mirrors renderer.RenderStats for JSON transport.
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	TilesDone      int     `json:"tilesDone"`
	TotalTiles     int     `json:"totalTiles"`
}

const defaultTileSize = 32

// resolveScene builds a *scene.Scene from a RenderRequest, either from a
// built-in constructor or an inline YAML document, and applies any
// property overrides.
func resolveScene(req *RenderRequest) (*scene.Scene, error) {
	var sc *scene.Scene

	switch {
	case req.SceneYAML != "":
		var doc sceneio.Document
		if err := yaml.Unmarshal([]byte(req.SceneYAML), &doc); err != nil {
			return nil, fmt.Errorf("parsing sceneYaml: %w", err)
		}
		built, err := sceneio.Build(&doc)
		if err != nil {
			return nil, err
		}
		sc = built
	case req.Scene != "":
		sc = scene.BuiltinScene(req.Scene)
		if sc == nil {
			return nil, fmt.Errorf("unknown scene %q", req.Scene)
		}
	default:
		return nil, fmt.Errorf("request must set scene or sceneYaml")
	}

	if sc.GetActiveCamera() == nil {
		return nil, fmt.Errorf("scene has no active camera")
	}

	if ov := req.PropertyOverrides; ov != nil {
		if ov.Illumination != nil {
			sc.Properties.Illumination = *ov.Illumination
		}
		if ov.Shadowing != nil {
			sc.Properties.Shadowing = *ov.Shadowing
		}
		if ov.Fresnel != nil {
			sc.Properties.Fresnel = *ov.Fresnel
		}
		if ov.Absorption != nil {
			sc.Properties.Absorption = *ov.Absorption
		}
		if ov.MaxDepth != nil {
			sc.Properties.MaxDepth = *ov.MaxDepth
		}
	}

	return sc, nil
}

// startRender resolves req into a scene and runs a ProgressiveRenderer in a
// background goroutine, translating each renderer.PassResult (and any
// terminal error) into SSE events sent on j.events. ctx governs the whole
// render's lifetime; cancelling it stops the render early. handleStartRender
// passes a background context, so a render is not stopped when an HTTP
// request (the POST or the SSE subscription) ends.
func (s *Server) startRender(ctx context.Context, j *job, req *RenderRequest) {
	go func() {
		defer j.close()

		sc, err := resolveScene(req)
		if err != nil {
			j.send(errorEvent(fmt.Sprintf("invalid request: %v", err)))
			return
		}

		width, height := req.Width, req.Height
		if width <= 0 {
			width = 400
		}
		if height <= 0 {
			height = 400
		}

		rc := renderer.DefaultProgressiveConfig()
		rc.TileSize = defaultTileSize
		if req.MaxSamples > 0 {
			rc.MaxSamplesPerPixel = req.MaxSamples
		}
		if req.MaxPasses > 0 {
			rc.MaxPasses = req.MaxPasses
		}

		logger := NewWebLogger(j.id.String(), j)
		pr := renderer.NewProgressiveRenderer(sc, width, height, rc, logger)

		startTime := time.Now()
		passChan, errChan := pr.RenderProgressive(ctx)

		for result := range passChan {
			update, err := buildProgressUpdate(result, rc.MaxPasses, startTime)
			if err != nil {
				j.send(errorEvent(fmt.Sprintf("encoding frame: %v", err)))
				return
			}
			data, err := json.Marshal(update)
			if err != nil {
				j.send(errorEvent(fmt.Sprintf("marshaling update: %v", err)))
				return
			}
			j.send(sseEvent{Type: "progress", Data: string(data)})
		}

		if err := <-errChan; err != nil {
			j.send(errorEvent(fmt.Sprintf("render failed: %v", err)))
			return
		}

		j.send(sseEvent{Type: "complete", Data: "rendering completed"})
	}()
}

func buildProgressUpdate(result renderer.PassResult, totalPasses int, startTime time.Time) (ProgressUpdate, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, result.Sink.Image); err != nil {
		return ProgressUpdate{}, err
	}

	return ProgressUpdate{
		PassNumber:  result.PassNumber,
		TotalPasses: totalPasses,
		ImageData:   base64.StdEncoding.EncodeToString(buf.Bytes()),
		Stats: Stats{
			TotalPixels:    result.Stats.TotalPixels,
			TotalSamples:   result.Stats.TotalSamples,
			AverageSamples: result.Stats.AverageSamples,
			TilesDone:      result.Stats.TilesDone,
			TotalTiles:     result.Stats.TotalTiles,
		},
		IsComplete: result.IsLast,
		ElapsedMs:  time.Since(startTime).Milliseconds(),
	}, nil
}

func errorEvent(message string) sseEvent {
	return sseEvent{Type: "error", Data: message}
}
