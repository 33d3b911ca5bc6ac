package session

import (
	"encoding/json"

	"github.com/aadikrishna04/Devfest-CU/internal/core/realtime"
	"github.com/aadikrishna04/Devfest-CU/pkg/types"
)

// ToolInvocation is one parsed function call from the model.
type ToolInvocation struct {
	CallID string
	Name   string
	Args   map[string]any
}

// parseInvocation decodes the call's argument JSON. A malformed
// payload yields empty arguments, never a failed call.
func parseInvocation(item *realtime.OutputItem) ToolInvocation {
	args := map[string]any{}
	if item.Arguments != "" {
		if err := json.Unmarshal([]byte(item.Arguments), &args); err != nil {
			args = map[string]any{}
		}
	}
	return ToolInvocation{CallID: item.CallID, Name: item.Name, Args: args}
}

// handleToolCall routes one tool invocation. set_scenario updates our
// own state; everything else is executed by the client. Either way
// upstream gets exactly one acknowledgment and one continuation
// request, because the service stalls after a tool call until told to
// resume.
func (o *Orchestrator) handleToolCall(inv ToolInvocation) {
	o.log.Info("tool call", "name", inv.Name, "call_id", inv.CallID)
	o.count(o.metrics.ToolCalls)

	if inv.Name == realtime.ToolSetScenario {
		scenario := strArg(inv.Args, "scenario", "none")
		severity := strArg(inv.Args, "severity", "minor")
		summary := strArg(inv.Args, "summary", "")
		bodyRegion := strArg(inv.Args, "body_region", "")

		o.state.SetScenario(types.ParseScenario(scenario), types.ParseSeverity(severity))
		o.journal.LogScenarioUpdate(scenario, severity, summary, bodyRegion)
		o.sendClient(types.ScenarioUpdate{
			Type:       "scenario_update",
			Scenario:   scenario,
			Severity:   severity,
			Summary:    summary,
			BodyRegion: bodyRegion,
		})
	} else {
		o.journal.LogToolCall(inv.Name, inv.Args)
		o.sendClient(types.ToolCommand{Type: "tool", Name: inv.Name, Params: inv.Args})
	}

	if err := o.up.CreateFunctionOutput(inv.CallID, `{"status":"ok"}`); err != nil {
		o.log.Warn("tool acknowledgment failed", "error", err)
	}
	o.state.SetResponseInProgress(false)
	if err := o.up.CreateResponse(); err != nil {
		o.log.Warn("continuation request failed", "error", err)
	}
}

func strArg(args map[string]any, key, def string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return def
}
