package session

import (
	"strings"
	"sync"
	"time"

	"github.com/aadikrishna04/Devfest-CU/pkg/types"
)

// State is the session record shared by the four activities. Every
// read-modify-write happens under the mutex so concurrent loops never
// see a half-applied update.
type State struct {
	mu sync.Mutex

	latestFrame          string // base64 JPEG, single slot, overwrite
	recentUserUtterance  string
	scenario             types.Scenario
	severity             types.Severity
	responseInProgress   bool
	lastUserSpeechAt     time.Time
	lastAgentSpeechAt    time.Time
	followUpCount        int
	lastSceneObservation string
	pendingAssistantText string
	shuttingDown         bool
}

func NewState(start time.Time) *State {
	return &State{
		scenario:          types.ScenarioNone,
		severity:          types.SeverityMinor,
		lastUserSpeechAt:  start,
		lastAgentSpeechAt: start,
	}
}

// StoreFrame overwrites the buffered frame. Frames never queue.
func (s *State) StoreFrame(b64 string) {
	s.mu.Lock()
	s.latestFrame = b64
	s.mu.Unlock()
}

func (s *State) SetResponseInProgress(v bool) {
	s.mu.Lock()
	s.responseInProgress = v
	s.mu.Unlock()
}

// FinishResponse marks the upstream response done and stamps the
// agent-speech time.
func (s *State) FinishResponse(now time.Time) {
	s.mu.Lock()
	s.responseInProgress = false
	s.lastAgentSpeechAt = now
	s.mu.Unlock()
}

// NoteUserUtterance records a completed transcription: the user is
// engaged, so the follow-up counter resets.
func (s *State) NoteUserUtterance(text string, now time.Time) {
	s.mu.Lock()
	s.recentUserUtterance = text
	s.lastUserSpeechAt = now
	s.followUpCount = 0
	s.mu.Unlock()
}

// NoteBargeIn handles speech-started: the user interrupted, so any
// in-flight response is considered over and the pending assistant
// text is dropped.
func (s *State) NoteBargeIn(now time.Time) {
	s.mu.Lock()
	s.responseInProgress = false
	s.lastUserSpeechAt = now
	s.followUpCount = 0
	s.pendingAssistantText = ""
	s.mu.Unlock()
}

func (s *State) AppendPendingAssistant(delta string) {
	s.mu.Lock()
	s.pendingAssistantText += delta
	s.mu.Unlock()
}

// TakePendingAssistant returns and clears the accumulated assistant
// text for the turn.
func (s *State) TakePendingAssistant() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	text := s.pendingAssistantText
	s.pendingAssistantText = ""
	return text
}

func (s *State) SetScenario(sc types.Scenario, sev types.Severity) {
	s.mu.Lock()
	s.scenario = sc
	s.severity = sev
	s.mu.Unlock()
}

func (s *State) Scenario() (types.Scenario, types.Severity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scenario, s.severity
}

// SceneSnapshot captures the inputs a scene-analysis tick needs in one
// consistent read.
func (s *State) SceneSnapshot() (frame string, scenario types.Scenario, utterance string, busy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latestFrame, s.scenario, s.recentUserUtterance, s.responseInProgress
}

// CommitObservation stores a new scene observation unless it repeats
// the previous one. Two observations match when their first 50
// characters agree after trimming and lowercasing.
func (s *State) CommitObservation(obs string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastSceneObservation != "" && normalizeObservation(obs) == normalizeObservation(s.lastSceneObservation) {
		return false
	}
	s.lastSceneObservation = obs
	return true
}

func normalizeObservation(s string) string {
	if len(s) > 50 {
		s = s[:50]
	}
	return strings.TrimSpace(strings.ToLower(s))
}

// FollowUpSnapshot is the consistent view a scheduler tick decides on.
type FollowUpSnapshot struct {
	ResponseInProgress bool
	Scenario           types.Scenario
	Severity           types.Severity
	FollowUpCount      int
	LastUserSpeechAt   time.Time
	LastAgentSpeechAt  time.Time
}

func (s *State) FollowUpView() FollowUpSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FollowUpSnapshot{
		ResponseInProgress: s.responseInProgress,
		Scenario:           s.scenario,
		Severity:           s.severity,
		FollowUpCount:      s.followUpCount,
		LastUserSpeechAt:   s.lastUserSpeechAt,
		LastAgentSpeechAt:  s.lastAgentSpeechAt,
	}
}

// RecordFollowUp bumps the counter and stamps agent speech so the
// scheduler cannot re-trigger before the generated response starts.
func (s *State) RecordFollowUp(now time.Time) {
	s.mu.Lock()
	s.followUpCount++
	s.lastAgentSpeechAt = now
	s.mu.Unlock()
}

func (s *State) FollowUpCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.followUpCount
}

func (s *State) RecentUserUtterance() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recentUserUtterance
}

// BeginShutdown is one-way; nothing ever unsets it.
func (s *State) BeginShutdown() {
	s.mu.Lock()
	s.shuttingDown = true
	s.mu.Unlock()
}

func (s *State) ShuttingDown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shuttingDown
}
