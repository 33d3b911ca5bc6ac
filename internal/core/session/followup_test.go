package session

import (
	"strings"
	"testing"
	"time"

	"github.com/aadikrishna04/Devfest-CU/pkg/types"
)

func TestFollowUpFiresAfterSilence(t *testing.T) {
	rig := newTestRig(t)
	rig.orch.state.SetScenario(types.ScenarioCPR, types.SeverityCritical)

	rig.clock.Advance(31 * time.Second)
	rig.orch.followUpTick()

	texts := rig.up.sentUserTexts()
	if len(texts) != 1 {
		t.Fatalf("injected texts=%d, want 1", len(texts))
	}
	if !strings.HasPrefix(texts[0], "[FOLLOW UP]") {
		t.Fatalf("text=%q", texts[0])
	}
	if !strings.Contains(texts[0], "CPR") {
		t.Fatalf("CPR ladder expected, got %q", texts[0])
	}
	// Follow-ups must produce audible output.
	if got := rig.up.sentResponses(); got != 1 {
		t.Fatalf("response requests=%d, want 1", got)
	}
	if got := rig.orch.state.FollowUpCount(); got != 1 {
		t.Fatalf("followUpCount=%d, want 1", got)
	}
}

func TestNoFollowUpWhenSeverityMinor(t *testing.T) {
	rig := newTestRig(t)
	rig.orch.state.SetScenario(types.ScenarioCPR, types.SeverityMinor)

	rig.clock.Advance(5 * time.Minute)
	rig.orch.followUpTick()

	if len(rig.up.sentUserTexts()) != 0 {
		t.Fatal("minor severity must not trigger follow-ups")
	}
}

func TestNoFollowUpForInactiveScenarios(t *testing.T) {
	for _, sc := range []types.Scenario{types.ScenarioNone, types.ScenarioResolved, types.ScenarioMinorInjury} {
		rig := newTestRig(t)
		rig.orch.state.SetScenario(sc, types.SeverityCritical)

		rig.clock.Advance(10 * time.Minute)
		rig.orch.followUpTick()

		if len(rig.up.sentUserTexts()) != 0 {
			t.Fatalf("scenario %s must not trigger follow-ups", sc)
		}
	}
}

func TestNoFollowUpWhileResponseInProgress(t *testing.T) {
	rig := newTestRig(t)
	rig.orch.state.SetScenario(types.ScenarioBleeding, types.SeverityCritical)
	rig.orch.state.SetResponseInProgress(true)

	rig.clock.Advance(time.Minute)
	rig.orch.followUpTick()

	if len(rig.up.sentUserTexts()) != 0 {
		t.Fatal("no follow-up while a response is mid-generation")
	}
}

func TestNoFollowUpRightAfterAgentSpoke(t *testing.T) {
	rig := newTestRig(t)
	rig.orch.state.SetScenario(types.ScenarioBleeding, types.SeverityCritical)

	rig.clock.Advance(31 * time.Second)
	// Agent just finished a turn 5s ago.
	rig.orch.state.FinishResponse(rig.clock.Now().Add(-5 * time.Second))
	rig.orch.followUpTick()

	if len(rig.up.sentUserTexts()) != 0 {
		t.Fatal("agent spoke within the quiet guard; no follow-up")
	}
}

func TestFollowUpEscalatingThresholdAndCap(t *testing.T) {
	rig := newTestRig(t)
	rig.orch.state.SetScenario(types.ScenarioCPR, types.SeverityCritical)

	// First follow-up at 30s.
	rig.clock.Advance(31 * time.Second)
	rig.orch.followUpTick()
	if got := rig.orch.state.FollowUpCount(); got != 1 {
		t.Fatalf("followUpCount=%d, want 1", got)
	}

	// 10s later: total silence is 41s, short of the 45s escalation,
	// and the nudge itself counts as agent speech 10s ago.
	rig.clock.Advance(10 * time.Second)
	rig.orch.followUpTick()
	if got := rig.orch.state.FollowUpCount(); got != 1 {
		t.Fatalf("followUpCount=%d, want still 1", got)
	}

	// Past 45s of silence and past the quiet guard: second fires.
	rig.clock.Advance(10 * time.Second)
	rig.orch.followUpTick()
	if got := rig.orch.state.FollowUpCount(); got != 2 {
		t.Fatalf("followUpCount=%d, want 2", got)
	}

	rig.clock.Advance(46 * time.Second)
	rig.orch.followUpTick()
	if got := rig.orch.state.FollowUpCount(); got != 3 {
		t.Fatalf("followUpCount=%d, want 3", got)
	}

	// Cap reached: silence forever, no fourth nudge.
	rig.clock.Advance(time.Hour)
	rig.orch.followUpTick()
	if got := rig.orch.state.FollowUpCount(); got != 3 {
		t.Fatalf("followUpCount=%d, want capped at 3", got)
	}
	if got := len(rig.up.sentUserTexts()); got != 3 {
		t.Fatalf("injected texts=%d, want 3", got)
	}
}

func TestFollowUpPromptLadders(t *testing.T) {
	silence := 45 * time.Second

	cpr0 := followUpPrompt(types.ScenarioCPR, 0, silence)
	cpr2 := followUpPrompt(types.ScenarioCPR, 2, silence)
	cpr9 := followUpPrompt(types.ScenarioCPR, 9, silence)
	if cpr0 == cpr2 {
		t.Fatal("ladder rungs should differ")
	}
	if cpr9 != cpr2 {
		t.Fatal("exhausted ladder should repeat its last rung")
	}

	burn := followUpPrompt(types.ScenarioBurn, 0, silence)
	if !strings.Contains(burn, "Check in briefly") {
		t.Fatalf("generic ladder expected for BURN, got %q", burn)
	}

	bleeding := followUpPrompt(types.ScenarioBleeding, 0, silence)
	if !strings.Contains(bleeding, "bleeding") {
		t.Fatalf("bleeding ladder expected, got %q", bleeding)
	}
	if !strings.Contains(bleeding, "quiet for 45s") {
		t.Fatalf("silence duration missing from %q", bleeding)
	}
}
