package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-screener/internal/pipeline"
)

func TestBroker_FanOut(t *testing.T) {
	b := newBroker()
	a, unsubA := b.subscribe()
	c, unsubC := b.subscribe()
	defer unsubC()

	b.publish(pipeline.ProgressEvent{Kind: pipeline.EventRunStarted})
	assert.Equal(t, pipeline.EventRunStarted, (<-a).Kind)
	assert.Equal(t, pipeline.EventRunStarted, (<-c).Kind)

	unsubA()
	unsubA()
	_, ok := <-a
	assert.False(t, ok)
	assert.Equal(t, 1, b.len())
}

func TestBroker_DropsWhenFull(t *testing.T) {
	b := newBroker()
	ch, unsub := b.subscribe()
	defer unsub()

	for i := 0; i < subscriberBuffer+10; i++ {
		b.publish(pipeline.ProgressEvent{Index: i})
	}
	assert.Len(t, ch, subscriberBuffer)
}
