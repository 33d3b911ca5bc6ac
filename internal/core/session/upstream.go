package session

import (
	"errors"

	"github.com/aadikrishna04/Devfest-CU/internal/core/realtime"
	"github.com/aadikrishna04/Devfest-CU/pkg/types"
)

// upstreamRelayLoop consumes the Realtime event stream until the
// transport drops or shutdown is requested. Undecodable events are
// logged and skipped; only a transport failure ends the loop, and a
// lost upstream connection ends the session.
func (o *Orchestrator) upstreamRelayLoop() {
	for {
		ev, err := o.up.ReadEvent()
		if err != nil {
			if errors.Is(err, realtime.ErrDecode) {
				o.log.Warn("undecodable upstream event", "error", err)
				continue
			}
			if !o.state.ShuttingDown() {
				o.log.Error("upstream connection ended", "error", err)
			}
			o.Shutdown()
			return
		}
		if o.state.ShuttingDown() {
			o.Shutdown()
			return
		}
		o.handleUpstreamEvent(ev)
	}
}

func (o *Orchestrator) handleUpstreamEvent(ev *realtime.ServerEvent) {
	switch ev.Type {
	case realtime.EventAudioDelta:
		o.sendClient(types.AudioChunk{Type: "audio", Data: ev.Delta})

	case realtime.EventResponseCreated:
		o.state.SetResponseInProgress(true)

	case realtime.EventResponseDone:
		o.state.FinishResponse(o.now())

	case realtime.EventTranscriptDelta:
		o.state.AppendPendingAssistant(ev.Delta)
		o.journal.LogAssistantDelta(ev.Delta)
		o.sendClient(types.Transcript{Type: "transcript", Role: "assistant", Delta: ev.Delta})

	case realtime.EventTranscriptDone:
		if text := o.state.TakePendingAssistant(); text != "" {
			o.journal.LogAssistantFinal(text)
		}
		o.sendClient(types.TranscriptDone{Type: "transcript_done", Role: "assistant"})

	case realtime.EventInputTranscribed:
		o.state.NoteUserUtterance(ev.Transcript, o.now())
		o.journal.LogUserTranscript(ev.Transcript)
		o.sendClient(types.Transcript{Type: "transcript", Role: "user", Text: ev.Transcript})

	case realtime.EventSpeechStarted:
		// Barge-in: the user started talking over the assistant.
		o.state.NoteBargeIn(o.now())
		o.sendClient(types.Interrupt{Type: "interrupt"})

	case realtime.EventOutputItemDone:
		if ev.Item != nil && ev.Item.Type == "function_call" {
			o.handleToolCall(parseInvocation(ev.Item))
		}

	case realtime.EventError:
		if ev.Error != nil && ev.Error.Code != realtime.ErrCodeActiveResponse {
			o.log.Error("upstream error", "code", ev.Error.Code, "message", ev.Error.Message)
		}

	case realtime.EventSessionCreated, realtime.EventSessionUpdated:
		o.log.Info("upstream session event", "type", ev.Type)

	default:
		// unhandled event kinds are ignored
	}
}
