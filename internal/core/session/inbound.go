package session

import (
	"errors"

	"github.com/aadikrishna04/Devfest-CU/pkg/types"
	"github.com/aadikrishna04/Devfest-CU/pkg/ws"
)

// clientInboundLoop relays client messages upstream: audio goes into
// the input buffer, frames overwrite the single frame slot, anything
// else is ignored. A closed client connection ends the whole session;
// a failed upstream forward ends only this loop (the upstream relay
// notices the broken transport itself).
func (o *Orchestrator) clientInboundLoop() {
	for {
		msg, err := o.client.ReadMessage()
		if err != nil {
			if errors.Is(err, ws.ErrDecode) {
				// Bad payload, live socket. Skip it and keep reading.
				o.log.Warn("undecodable client message", "error", err)
				continue
			}
			if !o.state.ShuttingDown() {
				o.log.Info("client connection ended", "error", err)
			}
			o.Shutdown()
			return
		}
		if o.state.ShuttingDown() {
			return
		}

		switch msg.Type {
		case types.MsgAudio:
			if err := o.up.AppendAudio(msg.Data); err != nil {
				o.log.Warn("forward audio upstream", "error", err)
				return
			}
		case types.MsgFrame:
			o.state.StoreFrame(msg.Data)
			o.count(o.metrics.FramesBuffered)
		default:
			// unknown kinds are ignored
		}
	}
}
