package schema

// Messages is the ordered list of prompt messages sent to the LLM.
// It owns typed append methods so callers never construct raw maps.
type Messages struct {
	Messages []Message
}

// NewMessages returns a Messages initialised with the given messages.
// Called with no arguments it returns an empty Messages ready for use.
func NewMessages(msgs ...Message) Messages {
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return Messages{Messages: out}
}

// AddSystem appends a system message.
func (m *Messages) AddSystem(content string) {
	m.Messages = append(m.Messages, NewSystemMessage(content))
}

// AddUser appends a user message.
func (m *Messages) AddUser(content string) {
	m.Messages = append(m.Messages, NewUserMessage(content))
}

// AddAssistant appends an assistant message.
func (m *Messages) AddAssistant(content string) {
	m.Messages = append(m.Messages, NewAssistantMessage(content))
}

// Append returns a copy of m extended with extra. The receiver is not
// modified, so a cached prompt prefix can be reused across queries.
func (m Messages) Append(extra ...Message) Messages {
	out := make([]Message, 0, len(m.Messages)+len(extra))
	out = append(out, m.Messages...)
	out = append(out, extra...)
	return Messages{Messages: out}
}

// Len returns the number of messages.
func (m Messages) Len() int { return len(m.Messages) }
