package chat

import (
	"encoding/json"
	"strings"

	"chainboard/pkg/errors"
)

// FallbackReply is returned when the upstream responds with a shape we do not
// recognize, so the UI always has something to render.
const FallbackReply = "Sorry, I could not process that. Please try again."

// NormalizeReply decodes an upstream chat response into plain reply text.
//
// Bot backends disagree on the envelope, so the accepted shapes are enumerated
// explicitly instead of probing optional properties:
//
//	{"message": "..."}    {"response": "..."}    {"output": "..."}
//	["...", ...]          "..."
//
// Anything else decodes to FallbackReply with an ErrInvalidInput so callers
// can log the unrecognized shape.
func NormalizeReply(raw []byte) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return FallbackReply, errors.Wrap(errors.ErrInvalidInput, "empty chat response body")
	}

	var envelope struct {
		Message  string `json:"message"`
		Response string `json:"response"`
		Output   string `json:"output"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		switch {
		case envelope.Message != "":
			return envelope.Message, nil
		case envelope.Response != "":
			return envelope.Response, nil
		case envelope.Output != "":
			return envelope.Output, nil
		}
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 && list[0] != "" {
		return list[0], nil
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil && plain != "" {
		return plain, nil
	}

	return FallbackReply, errors.Wrapf(errors.ErrInvalidInput, "unrecognized chat response shape: %.80s", trimmed)
}
