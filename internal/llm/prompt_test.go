package llm

import (
	"strings"
	"testing"

	"github.com/BuggyOpenSouce/Buggy-AI/internal/model"
)

func TestBuildSystemPromptPersona(t *testing.T) {
	settings := model.DefaultAISettings()
	prompt := BuildSystemPrompt(nil, settings, nil)

	if !strings.Contains(prompt, "BuggyCompany") {
		t.Errorf("prompt missing company persona: %q", prompt)
	}
}

func TestBuildSystemPromptIncludesProfileAndPoints(t *testing.T) {
	profile := &model.UserProfile{Nickname: "ada", Interests: []string{"chess", "astronomy"}}
	settings := model.DefaultAISettings()
	settings.ImportantPoints = []string{"prefers short answers"}

	prompt := BuildSystemPrompt(profile, settings, nil)

	if !strings.Contains(prompt, "ada") {
		t.Error("prompt missing nickname")
	}
	if !strings.Contains(prompt, "chess, astronomy") {
		t.Error("prompt missing interests")
	}
	if !strings.Contains(prompt, "prefers short answers") {
		t.Error("prompt missing important points")
	}
}

func TestBuildSystemPromptSkipsGuestNickname(t *testing.T) {
	profile := &model.UserProfile{Nickname: model.GuestNickname}
	prompt := BuildSystemPrompt(profile, model.DefaultAISettings(), nil)
	if strings.Contains(prompt, "name is Guest") {
		t.Error("guest placeholder nickname leaked into the prompt")
	}
}

func TestBuildSystemPromptLimitsJournalDays(t *testing.T) {
	journal := make([]model.DailyJournalEntry, 10)
	for i := range journal {
		journal[i] = model.DailyJournalEntry{
			Date: "2024-06-0" + string(rune('0'+i)),
			Logs: []model.JournalLogItem{{Type: model.RoleUser, Content: "day"}},
		}
	}
	journal[0].Date = "2024-05-01"
	journal[1].Date = "2024-05-02"
	journal[2].Date = "2024-05-03"

	prompt := BuildSystemPrompt(nil, model.DefaultAISettings(), journal)

	if strings.Contains(prompt, "2024-05-01") {
		t.Error("prompt includes entries beyond the recent-day window")
	}
	if !strings.Contains(prompt, journal[len(journal)-1].Date) {
		t.Error("prompt missing the most recent entry")
	}
}

func TestToChatMessages(t *testing.T) {
	out := ToChatMessages([]model.Message{
		{Role: model.RoleUser, Content: "hi", Images: []string{"data"}},
		{Role: model.RoleAssistant, Content: "hello"},
	})
	if len(out) != 2 || out[0].Role != "user" || out[1].Content != "hello" {
		t.Errorf("converted = %+v", out)
	}
}
