package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	maxTitleLength   = 256
	maxContentLength = 100000 // ~100KB
)

// Validate checks a create request.
func (r CreateChatRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(0, maxTitleLength)),
	)
}

// Validate checks a rename request.
func (r RenameChatRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, maxTitleLength)),
	)
}

// Validate checks a save-feature-chat request.
func (r SaveChatRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, maxTitleLength)),
		validation.Field(&r.Messages, validation.Required),
	)
}

// Validate checks a send request. Content may be empty when images are
// attached, mirroring the input flow's accept rule.
func (r SendMessageRequest) Validate() error {
	if r.Content == "" && len(r.Images) == 0 {
		return validation.NewError("validation_empty_message", "message must have content or images")
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Length(0, maxContentLength)),
	)
}
