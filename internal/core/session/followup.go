package session

import (
	"fmt"
	"time"

	"github.com/aadikrishna04/Devfest-CU/pkg/types"
)

// Follow-up policy: first nudge after 30s of silence during an active
// scenario, later nudges after 45s, never while the agent just spoke,
// at most three without a user response.
const (
	firstFollowUpSilence = 30 * time.Second
	laterFollowUpSilence = 45 * time.Second
	agentQuietGuard      = 15 * time.Second
	maxFollowUps         = 3
)

// followUpLoop re-engages a user who has gone quiet during a real,
// ongoing, non-trivial incident. Unlike scene updates, a follow-up
// explicitly requests a generated response so it is actually spoken.
func (o *Orchestrator) followUpLoop() {
	if !o.sleep(o.timing.FollowUpWarmup) {
		return
	}
	for {
		if !o.sleep(o.timing.FollowUpPoll) {
			return
		}
		o.followUpTick()
	}
}

func (o *Orchestrator) followUpTick() {
	snap := o.state.FollowUpView()
	if snap.ResponseInProgress {
		return
	}
	if !snap.Scenario.Active() {
		return
	}
	if snap.Severity == types.SeverityMinor {
		return
	}
	if snap.FollowUpCount >= maxFollowUps {
		return
	}

	now := o.now()
	silence := now.Sub(snap.LastUserSpeechAt)
	sinceAgentSpoke := now.Sub(snap.LastAgentSpeechAt)

	threshold := firstFollowUpSilence
	if snap.FollowUpCount > 0 {
		threshold = laterFollowUpSilence
	}
	if silence < threshold {
		return
	}
	if sinceAgentSpoke < agentQuietGuard {
		return
	}

	prompt := followUpPrompt(snap.Scenario, snap.FollowUpCount, silence)
	o.log.Info("follow-up", "silence_sec", int(silence.Seconds()), "count", snap.FollowUpCount)

	if err := o.up.CreateUserText(prompt); err != nil {
		o.log.Warn("follow-up inject failed", "error", err)
		return
	}
	if err := o.up.CreateResponse(); err != nil {
		o.log.Warn("follow-up response request failed", "error", err)
	}

	o.state.RecordFollowUp(now)
	o.count(o.metrics.FollowUpsSent)
}

// followUpPrompt builds the contextual nudge for the model. Each
// scenario with distinct phrasing gets a ladder indexed by how many
// nudges have already gone unanswered; the last rung repeats.
func followUpPrompt(scenario types.Scenario, count int, silence time.Duration) string {
	base := fmt.Sprintf("[FOLLOW UP] The user has been quiet for %ds.", int(silence.Seconds()))

	var ladder []string
	switch scenario {
	case types.ScenarioCPR:
		ladder = []string{
			base + " They're doing CPR. Give a brief word of encouragement or ask if they need to switch.",
			base + " Check if they're still doing compressions and if someone else can take over.",
			base + " Ask if help has arrived or if they need anything.",
		}
	case types.ScenarioBleeding:
		ladder = []string{
			base + " They're applying pressure to a wound. Ask if the bleeding is slowing down.",
			base + " Check if they're still applying pressure and if help is on the way.",
			base + " Ask if the situation has changed.",
		}
	case types.ScenarioChoking:
		ladder = []string{
			base + " They're helping someone who was choking. Ask if the obstruction cleared.",
			base + " Check if the person can breathe now.",
			base + " Ask if the situation has changed.",
		}
	default:
		ladder = []string{
			base + " Check in briefly — ask if they need help with anything.",
		}
	}

	idx := count
	if idx > len(ladder)-1 {
		idx = len(ladder) - 1
	}
	return ladder[idx]
}
