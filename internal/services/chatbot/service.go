package chatbot

import (
	"context"

	"chainboard/pkg/errors"
	"chainboard/pkg/logger"
)

// offlineReply is served when the upstream bot cannot be reached at all
const offlineReply = "The assistant is offline right now. On-chain charts and market data are still live."

// Asker is the slice of the chat client the service needs
type Asker interface {
	Ask(ctx context.Context, message string) (string, error)
}

// Service fronts the chatbot upstream with the dashboard's degrade-don't-fail policy
type Service struct {
	client Asker
	log    *logger.Logger
}

// New creates a new chatbot service
func New(client Asker, log *logger.Logger) *Service {
	return &Service{client: client, log: log}
}

// Reply is the normalized chat answer
type Reply struct {
	Message string `json:"message"`
	Sample  bool   `json:"sample"`
}

// Ask forwards the user message. Invalid input surfaces as an error; upstream
// trouble degrades to the offline reply so the widget always renders.
func (s *Service) Ask(ctx context.Context, message string) (Reply, error) {
	answer, err := s.client.Ask(ctx, message)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidInput) && answer == "" {
			return Reply{}, err
		}
		s.log.Warnf("chat upstream failed: %v", err)
		if answer == "" {
			answer = offlineReply
		}
		return Reply{Message: answer, Sample: true}, nil
	}
	return Reply{Message: answer}, nil
}
