package prompt

import (
	"strings"

	"retro-board-be/pkg/llm"
)

// MaxCandidates is the upper bound the model is asked to respect. It is not enforced.
const MaxCandidates = 7

const SystemInstruction = `
You are a team leader for an agile retrospective.
Based on cards created by the team, provide actionable insights to improve the team's performance.

Rules:
- Read the retro items provided.
- RetroItem is an object with the fields:
    content: string
    category: string
- category is always: 'actions'
- Output only valid JSON: an object {"retro_items": [RetroItem, ...]}.
- Output in the same language as the retro items.
- Group similar items together into a single item.
- Items MUST be based on the retro items provided. Do not invent topics.
- Limit output to maximum 7 items, but fewer are ok.
- Produce a list of new RetroItems.
`

// Note is the minimal view of a board note needed to render the prompt.
type Note struct {
	Category string
	Content  string
}

// Builder renders the system and user messages for action item generation.
type Builder struct {
	notes []Note
}

func NewBuilder(notes []Note) *Builder {
	return &Builder{notes: notes}
}

func (b *Builder) Build() []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: SystemInstruction},
		{Role: llm.RoleUser, Content: b.UserMessage()},
	}
}

func (b *Builder) UserMessage() string {
	var prompt strings.Builder

	prompt.WriteString("Here are the retrospective items:\n\n")
	b.writeNotes(&prompt)
	prompt.WriteString("\n\nPlease generate actionable items to improve team performance.")

	return prompt.String()
}

func (b *Builder) writeNotes(prompt *strings.Builder) {
	for i, n := range b.notes {
		if i > 0 {
			prompt.WriteString("\n")
		}
		prompt.WriteString(FormatNote(n))
	}
}

// FormatNote renders one note as "- <CATEGORY>: <content>".
func FormatNote(n Note) string {
	return "- " + strings.ToUpper(n.Category) + ": " + n.Content
}
