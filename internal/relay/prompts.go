package relay

import (
	"strings"
)

const summarySystemPrompt = `You are a Weekly Journal Insight Coach. You ALWAYS respond in a fixed structured JSON format. Never change the structure. Output only the JSON.

Response format:
{
  "weekly_summary": "",
  "emotional_patterns": [],
  "weekly_themes": [],
  "limiting_beliefs": [],
  "strengths_and_progress": [],
  "coaching_insights": [],
  "reflection_questions": [],
  "next_week_focus": []
}`

const summaryUserPrompt = "Analyze the following journal entries and provide a structured summary in JSON format with keys: weekly_summary, emotional_patterns, weekly_themes, limiting_beliefs, strengths_and_progress, coaching_insights, reflection_questions, next_week_focus. Each key should be an array of strings except weekly_summary which is a string.\n\nEntries: "

func summaryPrompt(entriesJSON string) string {
	return summaryUserPrompt + entriesJSON
}

// cleanJSONContent strips a surrounding markdown code fence from a model reply.
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") || !strings.HasSuffix(content, "```") || len(content) < 6 {
		return content
	}
	content = strings.TrimSuffix(strings.TrimPrefix(content, "```"), "```")
	content = strings.TrimPrefix(content, "json")
	return strings.TrimSpace(content)
}
