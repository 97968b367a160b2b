package llm

import (
	"fmt"
	"strings"

	"github.com/BuggyOpenSouce/Buggy-AI/internal/model"
)

// maxJournalDays bounds how many recent day buckets go into the prompt.
const maxJournalDays = 7

// BuildSystemPrompt assembles the system prompt from the user profile, the
// AI settings and the journal, giving the assistant its persona and its
// contextual memory of past interactions.
func BuildSystemPrompt(profile *model.UserProfile, settings model.AISettings, journal []model.DailyJournalEntry) string {
	var b strings.Builder

	company := settings.CompanyName
	if company == "" {
		company = model.DefaultAISettings().CompanyName
	}
	fmt.Fprintf(&b, "You are a helpful assistant made by %s.\n", company)

	if profile != nil {
		if profile.Nickname != "" && profile.Nickname != model.GuestNickname {
			fmt.Fprintf(&b, "The user's name is %s.\n", profile.Nickname)
		}
		if len(profile.Interests) > 0 {
			fmt.Fprintf(&b, "The user's interests: %s.\n", strings.Join(profile.Interests, ", "))
		}
	}

	if len(settings.ImportantPoints) > 0 {
		b.WriteString("Important points to remember:\n")
		for _, point := range settings.ImportantPoints {
			fmt.Fprintf(&b, "- %s\n", point)
		}
	}

	if len(journal) > 0 {
		b.WriteString("Journal of recent interactions:\n")
		entries := journal
		if len(entries) > maxJournalDays {
			entries = entries[len(entries)-maxJournalDays:]
		}
		for _, entry := range entries {
			fmt.Fprintf(&b, "%s:\n", entry.Date)
			for _, item := range entry.Logs {
				fmt.Fprintf(&b, "  [%s] %s\n", item.Type, item.Content)
			}
		}
	}

	return b.String()
}

// ToChatMessages converts conversation messages into the provider format.
// Image attachments are not forwarded; the text content carries the request.
func ToChatMessages(messages []model.Message) []ChatMessage {
	out := make([]ChatMessage, len(messages))
	for i, msg := range messages {
		out[i] = ChatMessage{Role: string(msg.Role), Content: msg.Content}
	}
	return out
}
