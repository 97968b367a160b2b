package model

import "encoding/json"

// DiscussedTopic tracks a conversation topic derived from profile interests.
type DiscussedTopic struct {
	Topic                  string `json:"topic"`
	Discussed              bool   `json:"discussed"`
	LastDiscussedTimestamp int64  `json:"lastDiscussedTimestamp"`
}

// AISettings holds model-behavior options. Persisted values may predate newer
// fields, so decoding always merges the stored value over the defaults.
type AISettings struct {
	MaxTokens       int              `json:"maxTokens"`
	Temperature     float64          `json:"temperature"`
	ImportantPoints []string         `json:"importantPoints"`
	DiscussedTopics []DiscussedTopic `json:"discussedTopics"`
	CompanyName     string           `json:"companyName"`
}

// DefaultAISettings returns the schema defaults.
func DefaultAISettings() AISettings {
	return AISettings{
		MaxTokens:       2048,
		Temperature:     0.7,
		ImportantPoints: []string{},
		DiscussedTopics: []DiscussedTopic{},
		CompanyName:     "BuggyCompany",
	}
}

// UnmarshalJSON decodes a possibly-partial saved value, keeping defaults for
// any absent field. Unknown fields in the payload are discarded.
func (s *AISettings) UnmarshalJSON(data []byte) error {
	type raw struct {
		MaxTokens       *int             `json:"maxTokens"`
		Temperature     *float64         `json:"temperature"`
		ImportantPoints []string         `json:"importantPoints"`
		DiscussedTopics []DiscussedTopic `json:"discussedTopics"`
		CompanyName     *string          `json:"companyName"`
	}
	*s = DefaultAISettings()
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	if r.MaxTokens != nil {
		s.MaxTokens = *r.MaxTokens
	}
	if r.Temperature != nil {
		s.Temperature = *r.Temperature
	}
	if r.ImportantPoints != nil {
		s.ImportantPoints = r.ImportantPoints
	}
	if r.DiscussedTopics != nil {
		s.DiscussedTopics = r.DiscussedTopics
	}
	if r.CompanyName != nil {
		s.CompanyName = *r.CompanyName
	}
	return nil
}

// UISettings holds interface toggles.
type UISettings struct {
	ShowButtonBacklight          bool `json:"showButtonBacklight"`
	ShowFullName                 bool `json:"showFullName"`
	ShowProfileNameInSidebar     bool `json:"showProfileNameInSidebar"`
	DeveloperShowButtonBacklight bool `json:"developerShowButtonBacklight"`
}

// DefaultUISettings returns the schema defaults.
func DefaultUISettings() UISettings {
	return UISettings{
		ShowButtonBacklight:          true,
		ShowFullName:                 false,
		ShowProfileNameInSidebar:     true,
		DeveloperShowButtonBacklight: true,
	}
}

// UnmarshalJSON merges a possibly-partial saved value over the defaults.
func (s *UISettings) UnmarshalJSON(data []byte) error {
	type raw struct {
		ShowButtonBacklight          *bool `json:"showButtonBacklight"`
		ShowFullName                 *bool `json:"showFullName"`
		ShowProfileNameInSidebar     *bool `json:"showProfileNameInSidebar"`
		DeveloperShowButtonBacklight *bool `json:"developerShowButtonBacklight"`
	}
	*s = DefaultUISettings()
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	if r.ShowButtonBacklight != nil {
		s.ShowButtonBacklight = *r.ShowButtonBacklight
	}
	if r.ShowFullName != nil {
		s.ShowFullName = *r.ShowFullName
	}
	if r.ShowProfileNameInSidebar != nil {
		s.ShowProfileNameInSidebar = *r.ShowProfileNameInSidebar
	}
	if r.DeveloperShowButtonBacklight != nil {
		s.DeveloperShowButtonBacklight = *r.DeveloperShowButtonBacklight
	}
	return nil
}

// SidebarSettings holds sidebar presentation options.
type SidebarSettings struct {
	BackgroundImage string `json:"backgroundImage,omitempty"`
}
