package session

import (
	"context"

	"github.com/aadikrishna04/Devfest-CU/pkg/types"
)

// sceneLoop periodically describes the buffered camera frame and
// injects the description upstream as passive context. Voice drives
// the conversation; vision only informs it, so no scene update ever
// requests a generated response.
func (o *Orchestrator) sceneLoop() {
	if !o.sleep(o.timing.SceneWarmup) {
		return
	}
	for {
		if !o.sleep(o.timing.SceneInterval) {
			return
		}
		o.sceneTick(context.Background())
	}
}

func (o *Orchestrator) sceneTick(ctx context.Context) {
	if o.analyzer == nil {
		// No vision backend configured; the session just loses scene
		// updates.
		return
	}
	frame, scenario, utterance, busy := o.state.SceneSnapshot()
	if frame == "" {
		return
	}
	if busy {
		// Don't contaminate a turn that is mid-generation.
		return
	}

	observation, err := o.analyzer.Analyze(ctx, frame, scenario, utterance)
	if err != nil {
		o.log.Warn("scene analysis failed", "error", err)
		return
	}
	if observation == "" {
		return
	}
	if !o.state.CommitObservation(observation) {
		// Unchanged scene; no reason to repeat ourselves.
		return
	}

	o.journal.LogSceneObservation(observation)
	o.count(o.metrics.SceneObservations)

	if err := o.up.CreateUserText("[SCENE UPDATE] " + observation); err != nil {
		o.log.Warn("scene update inject failed", "error", err)
		return
	}
	o.sendClient(types.SceneUpdate{Type: "scene_update", Observation: observation})
	o.log.Info("scene observation", "observation", clipLog(observation, 80))
}

func clipLog(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
