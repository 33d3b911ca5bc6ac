package realtime

// ToolSetScenario is the only tool interpreted server-side; the rest
// are routed to the client for local execution.
const ToolSetScenario = "set_scenario"

// Tools is the catalog advertised in session.update. The model may
// call any of these during the conversation.
var Tools = []Tool{
	{
		Type:        "function",
		Name:        ToolSetScenario,
		Description: "Call this whenever you determine or update what situation you're dealing with. Call it as soon as you have a reasonable understanding from the conversation — don't wait for full certainty. Also call it with 'resolved' when the situation is handled, or 'none' if it turns out to not be an emergency.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"scenario": map[string]any{
					"type": "string",
					"enum": []string{
						"cpr", "bleeding", "choking", "burn", "fracture",
						"allergic_reaction", "wound_care", "other_emergency",
						"minor_injury", "resolved", "none",
					},
					"description": "The current situation type",
				},
				"severity": map[string]any{
					"type":        "string",
					"enum":        []string{"critical", "moderate", "minor"},
					"description": "How severe the situation is",
				},
				"summary": map[string]any{
					"type":        "string",
					"description": "Brief one-line summary of what's happening (e.g. 'adult not breathing, starting CPR')",
				},
				"body_region": map[string]any{
					"type": "string",
					"enum": []string{
						"head", "neck", "chest", "abdomen", "pelvis",
						"left_arm", "right_arm", "left_leg", "right_leg",
						"full_body",
					},
					"description": "Primary body region involved. E.g. 'chest' for CPR, 'left_arm' for a cut on left arm, 'abdomen' for choking/Heimlich, 'neck' for choking airway, 'full_body' for seizure/recovery position.",
				},
			},
			"required": []string{"scenario", "severity"},
		},
	},
	{
		Type:        "function",
		Name:        "start_metronome",
		Description: "Start a rhythmic metronome beep for CPR timing. Use 110 BPM for CPR compressions.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"bpm": map[string]any{
					"type":        "integer",
					"description": "Beats per minute (100-120 for CPR)",
				},
			},
			"required": []string{"bpm"},
		},
	},
	{
		Type:        "function",
		Name:        "stop_metronome",
		Description: "Stop the metronome.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	},
	{
		Type:        "function",
		Name:        "start_timer",
		Description: "Start a named countdown timer. Use for CPR switch reminders (120s) or pressure checks (120s).",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"label": map[string]any{
					"type":        "string",
					"description": "Timer label shown to user (e.g. 'switch_rescuer', 'pressure_check')",
				},
				"seconds": map[string]any{
					"type":        "integer",
					"description": "Countdown duration in seconds",
				},
			},
			"required": []string{"label", "seconds"},
		},
	},
	{
		Type:        "function",
		Name:        "stop_timer",
		Description: "Stop a specific named timer.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"label": map[string]any{
					"type":        "string",
					"description": "Timer label to stop",
				},
			},
			"required": []string{"label"},
		},
	},
	{
		Type:        "function",
		Name:        "show_ui",
		Description: "Display a UI card on the user's phone screen. Use for checklists of steps, banners for critical alerts, or informational cards.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"card_type": map[string]any{
					"type":        "string",
					"enum":        []string{"checklist", "banner", "alert"},
					"description": "Type of UI card",
				},
				"title": map[string]any{
					"type":        "string",
					"description": "Card title",
				},
				"items": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "List of items (for checklist) or single message (for banner/alert)",
				},
			},
			"required": []string{"card_type", "title", "items"},
		},
	},
}
