package types

import "strings"

// Client → backend message kinds.
const (
	MsgAudio = "audio"
	MsgFrame = "frame"
)

// ClientMessage is one inbound message from the client socket.
// Data carries base64 audio or a base64 JPEG frame depending on Type.
type ClientMessage struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// Backend → client messages. Every outbound struct carries its own
// "type" tag so the client can switch on it.

type AudioChunk struct {
	Type string `json:"type"` // "audio"
	Data string `json:"data"`
}

type Transcript struct {
	Type  string `json:"type"` // "transcript"
	Role  string `json:"role"` // "user" | "assistant"
	Delta string `json:"delta,omitempty"`
	Text  string `json:"text,omitempty"`
}

type TranscriptDone struct {
	Type string `json:"type"` // "transcript_done"
	Role string `json:"role"`
}

type Interrupt struct {
	Type string `json:"type"` // "interrupt"
}

type SceneUpdate struct {
	Type        string `json:"type"` // "scene_update"
	Observation string `json:"observation"`
}

type ScenarioUpdate struct {
	Type       string `json:"type"` // "scenario_update"
	Scenario   string `json:"scenario"`
	Severity   string `json:"severity"`
	Summary    string `json:"summary"`
	BodyRegion string `json:"body_region"`
}

type ToolCommand struct {
	Type   string         `json:"type"` // "tool"
	Name   string         `json:"name"`
	Params map[string]any `json:"params"`
}

// Scenario is the classified incident type the assistant currently
// believes active. Values mirror the set_scenario tool enum.
type Scenario string

const (
	ScenarioNone             Scenario = "NONE"
	ScenarioCPR              Scenario = "CPR"
	ScenarioBleeding         Scenario = "BLEEDING"
	ScenarioChoking          Scenario = "CHOKING"
	ScenarioBurn             Scenario = "BURN"
	ScenarioFracture         Scenario = "FRACTURE"
	ScenarioAllergicReaction Scenario = "ALLERGIC_REACTION"
	ScenarioWoundCare        Scenario = "WOUND_CARE"
	ScenarioOtherEmergency   Scenario = "OTHER_EMERGENCY"
	ScenarioMinorInjury      Scenario = "MINOR_INJURY"
	ScenarioResolved         Scenario = "RESOLVED"
)

// ParseScenario normalizes a tool-provided scenario string. Unknown
// values are kept upper-cased rather than rejected; the model may be
// ahead of our enum.
func ParseScenario(s string) Scenario {
	if strings.TrimSpace(s) == "" {
		return ScenarioNone
	}
	return Scenario(strings.ToUpper(strings.TrimSpace(s)))
}

// Active reports whether the scenario should drive proactive
// follow-ups. NONE, RESOLVED and MINOR_INJURY never do.
func (s Scenario) Active() bool {
	switch s {
	case ScenarioNone, ScenarioResolved, ScenarioMinorInjury:
		return false
	}
	return true
}

// Severity is the urgency tier of the current scenario.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityModerate Severity = "moderate"
	SeverityMinor    Severity = "minor"
)

// ParseSeverity defaults to minor on empty or unrecognized input.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return SeverityCritical
	case "moderate":
		return SeverityModerate
	}
	return SeverityMinor
}

// SessionReport is the HTTP summary of a finished (or running) session.
type SessionReport struct {
	SessionID    string `json:"session_id"`
	StartedAt    string `json:"started_at"`
	Scenario     string `json:"scenario"`
	Severity     string `json:"severity"`
	Summary      string `json:"summary"`
	BodyRegion   string `json:"body_region"`
	Transcripts  int    `json:"transcript_entries"`
	Observations int    `json:"scene_observations"`
	ToolCalls    int    `json:"tool_calls"`
	Report       string `json:"report,omitempty"`
}
