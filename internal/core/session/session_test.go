package session

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/aadikrishna04/Devfest-CU/internal/core/realtime"
	"github.com/aadikrishna04/Devfest-CU/pkg/types"
)

type fakeUpstream struct {
	mu sync.Mutex

	events    chan *realtime.ServerEvent
	closeOnce sync.Once

	configured  int
	audio       []string
	userTexts   []string
	funcOutputs map[string]string
	responses   int
	closes      int
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{
		events:      make(chan *realtime.ServerEvent, 16),
		funcOutputs: map[string]string{},
	}
}

func (f *fakeUpstream) Configure(realtime.SessionConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.configured++
	return nil
}

func (f *fakeUpstream) AppendAudio(b64 string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.audio = append(f.audio, b64)
	return nil
}

func (f *fakeUpstream) CreateUserText(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userTexts = append(f.userTexts, text)
	return nil
}

func (f *fakeUpstream) CreateFunctionOutput(callID, output string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.funcOutputs[callID] = output
	return nil
}

func (f *fakeUpstream) CreateResponse() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses++
	return nil
}

func (f *fakeUpstream) ReadEvent() (*realtime.ServerEvent, error) {
	ev, ok := <-f.events
	if !ok {
		return nil, io.EOF
	}
	return ev, nil
}

func (f *fakeUpstream) Close() error {
	f.mu.Lock()
	f.closes++
	f.mu.Unlock()
	f.closeOnce.Do(func() { close(f.events) })
	return nil
}

func (f *fakeUpstream) sentResponses() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.responses
}

func (f *fakeUpstream) sentUserTexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.userTexts...)
}

type fakeClient struct {
	mu        sync.Mutex
	inbound   chan *types.ClientMessage
	sent      []any
	closeOnce sync.Once
	closes    int
}

func newFakeClient() *fakeClient {
	return &fakeClient{inbound: make(chan *types.ClientMessage, 16)}
}

func (f *fakeClient) ReadMessage() (*types.ClientMessage, error) {
	msg, ok := <-f.inbound
	if !ok {
		return nil, io.EOF
	}
	return msg, nil
}

func (f *fakeClient) Close() error {
	f.mu.Lock()
	f.closes++
	f.mu.Unlock()
	f.closeOnce.Do(func() { close(f.inbound) })
	return nil
}

func (f *fakeClient) Send(v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, v)
	return nil
}

func (f *fakeClient) sentMessages() []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]any(nil), f.sent...)
}

type fakeJournal struct {
	mu sync.Mutex

	userTexts      []string
	assistantTexts []string
	observations   []string
	scenarios      []string
	toolCalls      []string
	flushes        int
}

func (f *fakeJournal) LogUserTranscript(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userTexts = append(f.userTexts, text)
}

func (f *fakeJournal) LogAssistantDelta(string) {}

func (f *fakeJournal) LogAssistantFinal(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assistantTexts = append(f.assistantTexts, text)
}

func (f *fakeJournal) LogSceneObservation(observation string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observations = append(f.observations, observation)
}

func (f *fakeJournal) LogScenarioUpdate(scenario, severity, summary, bodyRegion string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scenarios = append(f.scenarios, scenario+"/"+severity)
}

func (f *fakeJournal) LogToolCall(name string, params map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toolCalls = append(f.toolCalls, name)
}

func (f *fakeJournal) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushes++
	return nil
}

type fakeAnalyzer struct {
	mu       sync.Mutex
	results  []string
	err      error
	frames   []string
	contexts []string
}

func (f *fakeAnalyzer) Analyze(_ context.Context, frameB64 string, scenario types.Scenario, recentUtterance string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, frameB64)
	f.contexts = append(f.contexts, string(scenario)+"|"+recentUtterance)
	if f.err != nil {
		return "", f.err
	}
	if len(f.results) == 0 {
		return "", nil
	}
	res := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return res, nil
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 11, 9, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type testRig struct {
	orch     *Orchestrator
	client   *fakeClient
	up       *fakeUpstream
	journal  *fakeJournal
	analyzer *fakeAnalyzer
	clock    *fakeClock
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()
	client := newFakeClient()
	up := newFakeUpstream()
	journal := &fakeJournal{}
	analyzer := &fakeAnalyzer{}
	clock := newFakeClock()
	orch := New("sess_test", client, up, analyzer, journal, Options{
		Now: clock.Now,
	})
	return &testRig{orch: orch, client: client, up: up, journal: journal, analyzer: analyzer, clock: clock}
}
