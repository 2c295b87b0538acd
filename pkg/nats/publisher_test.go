package nats

import (
	"testing"

	"alkulous-relay/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "events.CHAT_EXCHANGED", Subject(events.TypeChatExchanged))
}

func TestCloseNilPublisher(t *testing.T) {
	var p *Publisher
	assert.NotPanics(t, p.Close)
}
