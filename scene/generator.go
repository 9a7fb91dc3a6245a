package scene

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/creativemill/taskops/fallback"
	"github.com/creativemill/taskops/observe"
	"github.com/creativemill/taskops/provider"
	"github.com/creativemill/taskops/resume"
)

// Artifact is the persisted output of one generated scene.
type Artifact struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	TaskID   string `json:"taskId"`
	VideoURL string `json:"videoUrl"`
}

// videoURLFields is the ordered priority list for extracting the
// rendered video's URL from provider output.
var videoURLFields = []string{"video_url", "videoUrl", "url", "output_url"}

// GeneratorConfig configures a Generator.
type GeneratorConfig struct {
	// Chain generates individual scenes. Required.
	Chain *fallback.Chain

	// Store persists per-scene outcomes. Required.
	Store resume.Store

	// Force regenerates scenes that already carry a completion
	// marker.
	Force bool

	// Logger logs scene progress. Nil disables logging.
	Logger observe.Logger
}

// Generator renders the scenes of one video job in order.
type Generator struct {
	cfg GeneratorConfig
}

// NewGenerator creates a Generator.
func NewGenerator(cfg GeneratorConfig) *Generator {
	if cfg.Logger == nil {
		cfg.Logger = observe.NopLogger()
	}
	return &Generator{cfg: cfg}
}

// Run generates scenes strictly in ascending scene number, persisting
// each outcome before the next scene starts. It returns the number of
// scenes generated in this pass. On failure the returned error names
// the failing scene; outcomes persisted for earlier scenes remain.
func (g *Generator) Run(ctx context.Context, scenes []Task) (int, error) {
	ordered, err := sortByNumber(scenes)
	if err != nil {
		return 0, err
	}

	generated := 0
	for _, task := range ordered {
		done, err := g.alreadyDone(ctx, task)
		if err != nil {
			return generated, fmt.Errorf("scene %d: %w", task.Number, err)
		}
		if done && !g.cfg.Force {
			g.cfg.Logger.Debug(ctx, "scene already rendered, skipping",
				observe.Field{Key: "scene_id", Value: task.SceneID},
				observe.Field{Key: "scene_number", Value: task.Number})
			continue
		}

		res, genErr := g.cfg.Chain.Generate(ctx, task.Request())

		if err := g.persist(ctx, task, res, genErr); err != nil {
			return generated, fmt.Errorf("scene %d: %w", task.Number, err)
		}

		if genErr != nil {
			g.cfg.Logger.Error(ctx, "scene generation failed",
				observe.Field{Key: "scene_id", Value: task.SceneID},
				observe.Field{Key: "scene_number", Value: task.Number},
				observe.Field{Key: "error", Value: genErr.Error()})
			return generated, fmt.Errorf("scene %d: %w", task.Number, genErr)
		}

		generated++
		g.cfg.Logger.Info(ctx, "scene rendered",
			observe.Field{Key: "scene_id", Value: task.SceneID},
			observe.Field{Key: "scene_number", Value: task.Number},
			observe.Field{Key: "provider", Value: res.Provider},
			observe.Field{Key: "model", Value: res.Model})
	}
	return generated, nil
}

func (g *Generator) alreadyDone(ctx context.Context, task Task) (bool, error) {
	out, ok, err := g.cfg.Store.Load(ctx, task.SceneID)
	if err != nil {
		return false, err
	}
	return ok && out.Done, nil
}

// persist writes the scene's outcome immediately, success or failure,
// so a later crash or a failing sibling never loses a rendered scene.
func (g *Generator) persist(ctx context.Context, task Task, res fallback.Result, genErr error) error {
	out := resume.Outcome{UpdatedAt: time.Now()}
	if genErr != nil {
		out.Err = genErr.Error()
		return g.cfg.Store.Save(ctx, task.SceneID, out)
	}

	url, _ := provider.FirstString(res.Output, videoURLFields...)
	artifact, err := json.Marshal(Artifact{
		Provider: res.Provider,
		Model:    res.Model,
		TaskID:   res.TaskID,
		VideoURL: url,
	})
	if err != nil {
		return err
	}
	out.Done = true
	out.Output = artifact
	return g.cfg.Store.Save(ctx, task.SceneID, out)
}
