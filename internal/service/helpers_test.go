package service

import (
	"context"
	"sync"

	"alkulous-relay/internal/pkg/logger"
	"alkulous-relay/internal/repository/memory"
	"alkulous-relay/internal/repository/unitofwork"
	"alkulous-relay/pkg/events"
	"alkulous-relay/pkg/llm"
	"alkulous-relay/pkg/llm/backend"
)

type fakeProvider struct {
	mu    sync.Mutex
	reply string
	err   error
	calls [][]llm.Message
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, history)
	return f.reply, f.err
}

func (f *fakeProvider) lastCall() []llm.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

type fixture struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  *recordingPublisher
	localBrain *fakeProvider
	ollama     *fakeProvider
	log        logger.ILogger
}

func newFixture() *fixture {
	return &fixture{
		uowFactory: memory.NewStore().NewRepositoryFactory(),
		publisher:  &recordingPublisher{},
		localBrain: &fakeProvider{reply: "brain says hi"},
		ollama:     &fakeProvider{reply: "ollama says hi"},
		log:        logger.NewNopLogger(),
	}
}

// selector builds a selector whose configured backends are backed by fakes.
func (f *fixture) selector(withLocalBrain, withOllama bool) *backend.Selector {
	cfg := backend.Config{}
	if withLocalBrain {
		cfg.LocalBrainURL = "http://brain.test"
	}
	if withOllama {
		cfg.OllamaURL = "http://ollama.test"
	}
	return backend.NewSelector(cfg).WithProviders(f.localBrain, f.ollama)
}

func (f *fixture) count() int64 {
	ctx := context.Background()
	n, _ := f.uowFactory.NewUnitOfWork(ctx).MessageRepository().Count(ctx)
	return n
}
