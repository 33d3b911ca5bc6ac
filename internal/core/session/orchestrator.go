// Package session holds the per-connection orchestrator: four
// concurrent loops bridging the client socket and the Realtime
// service, plus the shared state they coordinate through.
//
//  1. client inbound relay: audio/frames from the client
//  2. upstream event relay: Realtime events back to the client
//  3. scene analysis: periodic frame description as passive context
//  4. follow-up scheduler: proactive check-ins when the user goes quiet
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/aadikrishna04/Devfest-CU/internal/core/realtime"
	"github.com/aadikrishna04/Devfest-CU/internal/core/vision"
	"github.com/aadikrishna04/Devfest-CU/internal/telemetry"
	"github.com/aadikrishna04/Devfest-CU/pkg/types"
)

// ClientConn is the client side of the bridge. ReadMessage blocks for
// the next inbound message; Send must be safe for concurrent use
// because every loop can emit client messages. Close unblocks a
// pending ReadMessage.
type ClientConn interface {
	ReadMessage() (*types.ClientMessage, error)
	Send(v any) error
	Close() error
}

// Upstream is the Realtime side of the bridge. Implemented by
// *realtime.Conn; faked in tests.
type Upstream interface {
	Configure(realtime.SessionConfig) error
	AppendAudio(b64 string) error
	CreateUserText(text string) error
	CreateFunctionOutput(callID, output string) error
	CreateResponse() error
	ReadEvent() (*realtime.ServerEvent, error)
	Close() error
}

// Journal receives everything worth keeping for the post-session
// report. Flush is called exactly once, at shutdown.
type Journal interface {
	LogUserTranscript(text string)
	LogAssistantDelta(delta string)
	LogAssistantFinal(text string)
	LogSceneObservation(observation string)
	LogScenarioUpdate(scenario, severity, summary, bodyRegion string)
	LogToolCall(name string, params map[string]any)
	Flush() error
}

// Timing carries the loop intervals. Zero values fall back to the
// production defaults.
type Timing struct {
	SceneWarmup    time.Duration
	SceneInterval  time.Duration
	FollowUpWarmup time.Duration
	FollowUpPoll   time.Duration
}

func (t Timing) withDefaults() Timing {
	if t.SceneWarmup <= 0 {
		t.SceneWarmup = 3 * time.Second
	}
	if t.SceneInterval <= 0 {
		t.SceneInterval = 8 * time.Second
	}
	if t.FollowUpWarmup <= 0 {
		t.FollowUpWarmup = 5 * time.Second
	}
	if t.FollowUpPoll <= 0 {
		t.FollowUpPoll = 5 * time.Second
	}
	return t
}

// Orchestrator runs one session end to end.
type Orchestrator struct {
	id       string
	client   ClientConn
	up       Upstream
	analyzer vision.Analyzer
	journal  Journal
	state    *State
	timing   Timing
	voice    string

	log     *slog.Logger
	metrics *telemetry.Metrics
	now     func() time.Time

	done         chan struct{}
	shutdownOnce sync.Once
}

// Options configures an Orchestrator beyond its required
// collaborators.
type Options struct {
	Timing  Timing
	Voice   string
	Logger  *slog.Logger
	Metrics *telemetry.Metrics
	Now     func() time.Time
}

func New(id string, client ClientConn, up Upstream, analyzer vision.Analyzer, journal Journal, opts Options) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = &telemetry.Metrics{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Voice == "" {
		opts.Voice = "alloy"
	}
	return &Orchestrator{
		id:       id,
		client:   client,
		up:       up,
		analyzer: analyzer,
		journal:  journal,
		state:    NewState(opts.Now()),
		timing:   opts.Timing.withDefaults(),
		voice:    opts.Voice,
		log:      opts.Logger.With("session_id", id),
		metrics:  opts.Metrics,
		now:      opts.Now,
		done:     make(chan struct{}),
	}
}

// State exposes the session record; the HTTP layer reads it for live
// summaries.
func (o *Orchestrator) State() *State { return o.state }

// Report summarizes the running session for the HTTP surface.
func (o *Orchestrator) Report() types.SessionReport {
	scenario, severity := o.state.Scenario()
	return types.SessionReport{
		SessionID: o.id,
		Scenario:  string(scenario),
		Severity:  string(severity),
	}
}

// Run configures the upstream session and drives the four loops until
// shutdown. It returns once every loop has stopped.
func (o *Orchestrator) Run() error {
	if err := o.up.Configure(realtime.DefaultSessionConfig(o.voice)); err != nil {
		return fmt.Errorf("configure upstream session: %w", err)
	}
	o.log.Info("session configured")
	telemetry.Add(context.Background(), o.metrics.SessionsStarted, 1)

	var wg sync.WaitGroup
	for _, loop := range []func(){
		o.clientInboundLoop,
		o.upstreamRelayLoop,
		o.sceneLoop,
		o.followUpLoop,
	} {
		wg.Add(1)
		go func(run func()) {
			defer wg.Done()
			run()
		}(loop)
	}
	wg.Wait()
	return nil
}

// Shutdown stops the session: flags shuttingDown, wakes sleeping
// loops, closes both sockets exactly once, and flushes the journal.
// Flush failures are reported, never propagated. Closing the client
// connection unblocks the inbound loop when shutdown started on the
// upstream side.
func (o *Orchestrator) Shutdown() {
	o.shutdownOnce.Do(func() {
		o.state.BeginShutdown()
		close(o.done)
		if err := o.client.Close(); err != nil {
			o.log.Debug("client close", "error", err)
		}
		if err := o.up.Close(); err != nil {
			o.log.Warn("upstream close", "error", err)
		}
		if err := o.journal.Flush(); err != nil {
			o.log.Error("session log flush failed", "error", err)
		}
		o.log.Info("session shut down")
	})
}

// sleep waits d or until shutdown; false means the session is over.
func (o *Orchestrator) sleep(d time.Duration) bool {
	select {
	case <-o.done:
		return false
	case <-time.After(d):
		return true
	}
}

// sendClient forwards a message to the client, swallowing transport
// errors: a client that stopped reading ends the session through its
// own relay loop, not here.
func (o *Orchestrator) sendClient(v any) {
	if err := o.client.Send(v); err != nil && !o.state.ShuttingDown() {
		o.log.Debug("client send failed", "error", err)
	}
}

func (o *Orchestrator) count(c metric.Int64Counter) {
	telemetry.Add(context.Background(), c, 1)
}
