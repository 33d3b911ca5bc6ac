package sessionlog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const rule = "--------------------------------------------------"
const band = "=================================================="

type sessionLogFile struct {
	SessionID       string            `json:"session_id"`
	StartTime       time.Time         `json:"start_time"`
	EndTime         time.Time         `json:"end_time"`
	DurationSeconds float64           `json:"duration_seconds"`
	Transcripts     []TranscriptEntry `json:"transcript_entries"`
	Observations    []Observation     `json:"scene_observations"`
	ScenarioUpdates []ScenarioEntry   `json:"scenario_updates"`
	ToolCalls       []ToolEntry       `json:"tool_calls"`
	CurrentScenario ScenarioEntry     `json:"current_scenario"`
}

// Flush persists the journal: JSON session log and EMS-ready text
// report under outDir, plus the database archive when a store is
// configured. Called once at session shutdown.
func (l *Logger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.outDir, 0755); err != nil {
		return fmt.Errorf("create session log dir: %w", err)
	}

	end := l.now()
	logData := sessionLogFile{
		SessionID:       l.sessionID,
		StartTime:       l.startTime,
		EndTime:         end,
		DurationSeconds: end.Sub(l.startTime).Seconds(),
		Transcripts:     l.transcripts,
		Observations:    l.observations,
		ScenarioUpdates: l.scenarios,
		ToolCalls:       l.toolCalls,
		CurrentScenario: l.current,
	}
	b, err := json.MarshalIndent(logData, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session log: %w", err)
	}
	logPath := filepath.Join(l.outDir, l.sessionID+"_session_log.json")
	if err := os.WriteFile(logPath, b, 0644); err != nil {
		return fmt.Errorf("write session log: %w", err)
	}

	report := l.renderReport(end)
	reportPath := filepath.Join(l.outDir, l.sessionID+"_EMS_Report.txt")
	if err := os.WriteFile(reportPath, []byte(report), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if l.store != nil {
		if err := l.store.Archive(logData, report); err != nil {
			return fmt.Errorf("archive session: %w", err)
		}
	}

	slog.Info("session log flushed", "session_id", l.sessionID, "path", logPath)
	return nil
}

// renderReport builds the handoff report for emergency responders.
// Caller holds l.mu.
func (l *Logger) renderReport(end time.Time) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line(band)
	line("EMS READY REPORT - FIRST AID SESSION")
	line(band)
	line("")
	line("SESSION INFORMATION")
	line(rule)
	line("Session ID: %s", l.sessionID)
	line("Start Time: %s", l.startTime.Format("2006-01-02 15:04:05"))
	line("End Time: %s", end.Format("2006-01-02 15:04:05"))
	line("Duration: %.1f seconds", end.Sub(l.startTime).Seconds())
	line("")

	if l.current.Scenario != "none" {
		line("SCENARIO DETAILS")
		line(rule)
		line("Type: %s", strings.ToUpper(l.current.Scenario))
		line("Severity: %s", strings.ToUpper(l.current.Severity))
		line("Body Region: %s", l.current.BodyRegion)
		line("Summary: %s", l.current.Summary)
		line("")
	}

	if len(l.observations) > 0 {
		line("SCENE OBSERVATIONS")
		line(rule)
		for i, obs := range l.observations {
			line("%d. [%s] %s", i+1, obs.Timestamp.Format("15:04:05"), obs.Observation)
		}
		line("")
	}

	line("CONVERSATION TRANSCRIPT")
	line(rule)
	for _, e := range l.transcripts {
		line("[%s] %s: %s", e.Timestamp.Format("15:04:05"), strings.ToUpper(e.Role), e.Text)
		line("")
	}

	line("")
	line("KEY INFORMATION SUMMARY")
	line(rule)

	var userStatements, assistantInstructions []string
	for _, e := range l.transcripts {
		if e.Role == "user" {
			userStatements = append(userStatements, e.Text)
		} else {
			assistantInstructions = append(assistantInstructions, e.Text)
		}
	}
	line("User Statements (%d total):", len(userStatements))
	for _, s := range userStatements {
		line("  - %s", s)
	}
	line("")
	line("Assistant Instructions (%d total):", len(assistantInstructions))
	for _, s := range assistantInstructions {
		line("  - %s", s)
	}

	if len(l.toolCalls) > 0 {
		line("")
		line("TOOL CALLS")
		line(rule)
		for _, call := range l.toolCalls {
			params, _ := json.Marshal(call.Params)
			line("[%s] %s: %s", call.Timestamp.Format("15:04:05"), call.Tool, params)
		}
	}

	line("")
	line(band)
	line("END OF REPORT")
	line(band)
	return b.String()
}
