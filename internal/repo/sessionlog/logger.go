package sessionlog

import (
	"log/slog"
	"sync"
	"time"
)

type TranscriptEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Role      string    `json:"role"` // "user" | "assistant"
	Text      string    `json:"text"`

	final bool
}

type Observation struct {
	Timestamp   time.Time `json:"timestamp"`
	Observation string    `json:"observation"`
}

type ScenarioEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	Scenario   string    `json:"scenario"`
	Severity   string    `json:"severity"`
	Summary    string    `json:"summary"`
	BodyRegion string    `json:"body_region"`
}

type ToolEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Tool      string         `json:"tool"`
	Params    map[string]any `json:"params"`
}

// Logger journals one session: transcripts, scene observations,
// scenario updates and tool calls. Safe for concurrent use; the four
// session activities all write here.
type Logger struct {
	mu sync.Mutex

	sessionID string
	startTime time.Time

	transcripts  []TranscriptEntry
	observations []Observation
	scenarios    []ScenarioEntry
	toolCalls    []ToolEntry

	current ScenarioEntry

	outDir string
	store  *Store
	now    func() time.Time
}

// New creates a journal for one session. outDir receives the JSON log
// and readable report at flush time; store may be nil to skip the
// database archive.
func New(sessionID, outDir string, store *Store) *Logger {
	return &Logger{
		sessionID: sessionID,
		startTime: time.Now(),
		current:   ScenarioEntry{Scenario: "none", Severity: "minor"},
		outDir:    outDir,
		store:     store,
		now:       time.Now,
	}
}

func (l *Logger) SessionID() string { return l.sessionID }

func (l *Logger) LogUserTranscript(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transcripts = append(l.transcripts, TranscriptEntry{Timestamp: l.now(), Role: "user", Text: text})
	slog.Info("user transcript", "session_id", l.sessionID, "text", clip(text, 50))
}

// LogAssistantDelta coalesces streamed deltas into the trailing
// assistant entry so the journal holds one row per spoken turn.
func (l *Logger) LogAssistantDelta(delta string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n := len(l.transcripts); n > 0 && l.transcripts[n-1].Role == "assistant" && !l.transcripts[n-1].final {
		l.transcripts[n-1].Text += delta
		return
	}
	l.transcripts = append(l.transcripts, TranscriptEntry{Timestamp: l.now(), Role: "assistant", Text: delta})
}

// LogAssistantFinal closes out the current assistant turn with its
// full text.
func (l *Logger) LogAssistantFinal(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n := len(l.transcripts); n > 0 && l.transcripts[n-1].Role == "assistant" && !l.transcripts[n-1].final {
		l.transcripts[n-1].Text = text
		l.transcripts[n-1].final = true
	} else {
		l.transcripts = append(l.transcripts, TranscriptEntry{Timestamp: l.now(), Role: "assistant", Text: text, final: true})
	}
	slog.Info("assistant transcript", "session_id", l.sessionID, "text", clip(text, 50))
}

func (l *Logger) LogSceneObservation(observation string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observations = append(l.observations, Observation{Timestamp: l.now(), Observation: observation})
}

func (l *Logger) LogScenarioUpdate(scenario, severity, summary, bodyRegion string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := ScenarioEntry{
		Timestamp:  l.now(),
		Scenario:   scenario,
		Severity:   severity,
		Summary:    summary,
		BodyRegion: bodyRegion,
	}
	l.current = e
	l.scenarios = append(l.scenarios, e)
	slog.Info("scenario update", "session_id", l.sessionID,
		"scenario", scenario, "severity", severity, "summary", summary, "body_region", bodyRegion)
}

func (l *Logger) LogToolCall(name string, params map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.toolCalls = append(l.toolCalls, ToolEntry{Timestamp: l.now(), Tool: name, Params: params})
	slog.Info("tool call", "session_id", l.sessionID, "tool", name)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
