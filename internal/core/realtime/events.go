package realtime

// JSON structures for the Realtime API. Outbound events are what we
// send; ServerEvent is a superset decode target for everything the
// service streams back.

type sessionUpdateEvent struct {
	Type    string        `json:"type"` // "session.update"
	Session SessionConfig `json:"session"`
}

// SessionConfig is the initial session configuration sent right after
// the socket opens.
type SessionConfig struct {
	Modalities              []string            `json:"modalities"`
	Instructions            string              `json:"instructions"`
	Voice                   string              `json:"voice"`
	InputAudioFormat        string              `json:"input_audio_format"`
	OutputAudioFormat       string              `json:"output_audio_format"`
	InputAudioTranscription *AudioTranscription `json:"input_audio_transcription,omitempty"`
	TurnDetection           *TurnDetection      `json:"turn_detection,omitempty"`
	Tools                   []Tool              `json:"tools,omitempty"`
	ToolChoice              string              `json:"tool_choice,omitempty"`
}

type AudioTranscription struct {
	Model string `json:"model"`
}

type TurnDetection struct {
	Type              string  `json:"type"` // "server_vad"
	Threshold         float64 `json:"threshold"`
	PrefixPaddingMs   int     `json:"prefix_padding_ms"`
	SilenceDurationMs int     `json:"silence_duration_ms"`
}

// Tool declares one callable function to the model. Parameters is a
// JSON-schema object.
type Tool struct {
	Type        string         `json:"type"` // "function"
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

type audioAppendEvent struct {
	Type  string `json:"type"` // "input_audio_buffer.append"
	Audio string `json:"audio"`
}

type itemCreateEvent struct {
	Type string           `json:"type"` // "conversation.item.create"
	Item conversationItem `json:"item"`
}

type conversationItem struct {
	Type    string        `json:"type"` // "message" | "function_call_output"
	Role    string        `json:"role,omitempty"`
	Content []itemContent `json:"content,omitempty"`
	CallID  string        `json:"call_id,omitempty"`
	Output  string        `json:"output,omitempty"`
}

type itemContent struct {
	Type string `json:"type"` // "input_text"
	Text string `json:"text"`
}

type responseCreateEvent struct {
	Type string `json:"type"` // "response.create"
}

// Server event types the relay cares about. Anything else is ignored.
const (
	EventAudioDelta       = "response.audio.delta"
	EventResponseCreated  = "response.created"
	EventResponseDone     = "response.done"
	EventTranscriptDelta  = "response.audio_transcript.delta"
	EventTranscriptDone   = "response.audio_transcript.done"
	EventInputTranscribed = "conversation.item.input_audio_transcription.completed"
	EventSpeechStarted    = "input_audio_buffer.speech_started"
	EventOutputItemDone   = "response.output_item.done"
	EventError            = "error"
	EventSessionCreated   = "session.created"
	EventSessionUpdated   = "session.updated"
)

// ErrCodeActiveResponse is returned by the service when a
// response.create races an already-running response. Harmless.
const ErrCodeActiveResponse = "conversation_already_has_active_response"

// ServerEvent is one decoded event from the upstream stream.
type ServerEvent struct {
	Type       string       `json:"type"`
	Delta      string       `json:"delta,omitempty"`
	Transcript string       `json:"transcript,omitempty"`
	Item       *OutputItem  `json:"item,omitempty"`
	Error      *ServerError `json:"error,omitempty"`
}

// OutputItem carries a completed output item; function calls arrive
// here with Type "function_call".
type OutputItem struct {
	Type      string `json:"type"`
	CallID    string `json:"call_id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type ServerError struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
