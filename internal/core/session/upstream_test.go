package session

import (
	"testing"
	"time"

	"github.com/aadikrishna04/Devfest-CU/internal/core/realtime"
	"github.com/aadikrishna04/Devfest-CU/pkg/types"
)

func TestAudioDeltaForwarded(t *testing.T) {
	rig := newTestRig(t)
	rig.orch.handleUpstreamEvent(&realtime.ServerEvent{Type: realtime.EventAudioDelta, Delta: "b64audio"})

	msgs := rig.client.sentMessages()
	if len(msgs) != 1 {
		t.Fatalf("client messages=%d, want 1", len(msgs))
	}
	chunk, ok := msgs[0].(types.AudioChunk)
	if !ok || chunk.Data != "b64audio" {
		t.Fatalf("unexpected message %+v", msgs[0])
	}
}

func TestResponseLifecycle(t *testing.T) {
	rig := newTestRig(t)

	rig.orch.handleUpstreamEvent(&realtime.ServerEvent{Type: realtime.EventResponseCreated})
	if _, _, _, busy := rig.orch.state.SceneSnapshot(); !busy {
		t.Fatal("responseInProgress should be true after response.created")
	}

	rig.clock.Advance(2 * time.Second)
	rig.orch.handleUpstreamEvent(&realtime.ServerEvent{Type: realtime.EventResponseDone})
	if _, _, _, busy := rig.orch.state.SceneSnapshot(); busy {
		t.Fatal("responseInProgress should be false after response.done")
	}
	if got := rig.orch.state.FollowUpView().LastAgentSpeechAt; !got.Equal(rig.clock.Now()) {
		t.Fatalf("lastAgentSpeechAt=%v, want %v", got, rig.clock.Now())
	}
}

func TestUserTranscriptionCompleted(t *testing.T) {
	rig := newTestRig(t)
	rig.orch.state.RecordFollowUp(rig.clock.Now())

	rig.orch.handleUpstreamEvent(&realtime.ServerEvent{
		Type:       realtime.EventInputTranscribed,
		Transcript: "my arm is bleeding",
	})

	if got := rig.orch.state.RecentUserUtterance(); got != "my arm is bleeding" {
		t.Fatalf("utterance=%q", got)
	}
	if got := rig.orch.state.FollowUpCount(); got != 0 {
		t.Fatalf("followUpCount=%d, want 0", got)
	}
	if len(rig.journal.userTexts) != 1 || rig.journal.userTexts[0] != "my arm is bleeding" {
		t.Fatalf("journal user texts=%v", rig.journal.userTexts)
	}

	msgs := rig.client.sentMessages()
	if len(msgs) != 1 {
		t.Fatalf("client messages=%d, want 1", len(msgs))
	}
	tr, ok := msgs[0].(types.Transcript)
	if !ok || tr.Role != "user" || tr.Text != "my arm is bleeding" {
		t.Fatalf("unexpected transcript %+v", msgs[0])
	}
}

func TestAssistantTranscriptFlow(t *testing.T) {
	rig := newTestRig(t)

	rig.orch.handleUpstreamEvent(&realtime.ServerEvent{Type: realtime.EventTranscriptDelta, Delta: "Press firmly "})
	rig.orch.handleUpstreamEvent(&realtime.ServerEvent{Type: realtime.EventTranscriptDelta, Delta: "on the wound."})
	rig.orch.handleUpstreamEvent(&realtime.ServerEvent{Type: realtime.EventTranscriptDone})

	if len(rig.journal.assistantTexts) != 1 || rig.journal.assistantTexts[0] != "Press firmly on the wound." {
		t.Fatalf("journal assistant texts=%v", rig.journal.assistantTexts)
	}

	msgs := rig.client.sentMessages()
	if len(msgs) != 3 {
		t.Fatalf("client messages=%d, want 3", len(msgs))
	}
	if _, ok := msgs[2].(types.TranscriptDone); !ok {
		t.Fatalf("last message should be transcript_done, got %+v", msgs[2])
	}

	// A second done without deltas flushes nothing.
	rig.orch.handleUpstreamEvent(&realtime.ServerEvent{Type: realtime.EventTranscriptDone})
	if len(rig.journal.assistantTexts) != 1 {
		t.Fatalf("empty pending buffer should not be journaled")
	}
}

func TestSpeechStartedInterrupts(t *testing.T) {
	rig := newTestRig(t)
	rig.orch.state.SetResponseInProgress(true)
	rig.orch.handleUpstreamEvent(&realtime.ServerEvent{Type: realtime.EventTranscriptDelta, Delta: "You should"})
	rig.clock.Advance(time.Second)

	rig.orch.handleUpstreamEvent(&realtime.ServerEvent{Type: realtime.EventSpeechStarted})

	if _, _, _, busy := rig.orch.state.SceneSnapshot(); busy {
		t.Fatal("barge-in should clear responseInProgress")
	}
	if text := rig.orch.state.TakePendingAssistant(); text != "" {
		t.Fatalf("pending text=%q, want cleared", text)
	}

	msgs := rig.client.sentMessages()
	if _, ok := msgs[len(msgs)-1].(types.Interrupt); !ok {
		t.Fatalf("client should get an interrupt, got %+v", msgs[len(msgs)-1])
	}
	if got := rig.orch.state.FollowUpView().LastUserSpeechAt; !got.Equal(rig.clock.Now()) {
		t.Fatalf("lastUserSpeechAt=%v, want %v", got, rig.clock.Now())
	}
}

func TestFunctionCallDispatch(t *testing.T) {
	rig := newTestRig(t)

	rig.orch.handleUpstreamEvent(&realtime.ServerEvent{
		Type: realtime.EventOutputItemDone,
		Item: &realtime.OutputItem{
			Type:      "function_call",
			CallID:    "call_9",
			Name:      "set_scenario",
			Arguments: `{"scenario":"choking","severity":"critical"}`,
		},
	})

	sc, sev := rig.orch.state.Scenario()
	if sc != types.ScenarioChoking || sev != types.SeverityCritical {
		t.Fatalf("got %s/%s", sc, sev)
	}
	if got := rig.up.sentResponses(); got != 1 {
		t.Fatalf("continuation requests=%d, want 1", got)
	}
}

func TestNonFunctionOutputItemIgnored(t *testing.T) {
	rig := newTestRig(t)
	rig.orch.handleUpstreamEvent(&realtime.ServerEvent{
		Type: realtime.EventOutputItemDone,
		Item: &realtime.OutputItem{Type: "message"},
	})
	if got := rig.up.sentResponses(); got != 0 {
		t.Fatalf("continuation requests=%d, want 0", got)
	}
}

func TestUnknownEventIgnored(t *testing.T) {
	rig := newTestRig(t)
	rig.orch.handleUpstreamEvent(&realtime.ServerEvent{Type: "rate_limits.updated"})
	rig.orch.handleUpstreamEvent(&realtime.ServerEvent{Type: realtime.EventError, Error: &realtime.ServerError{Code: realtime.ErrCodeActiveResponse}})
	if len(rig.client.sentMessages()) != 0 {
		t.Fatal("ignored events must not reach the client")
	}
}
