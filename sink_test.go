package streamstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSinkSet_FansOutInOrder(t *testing.T) {
	var order []string

	set := newSinkSet(NewLogger("test"),
		RenderSinkFunc(func(id, title, value string) { order = append(order, "first:"+id) }),
		nil,
		RenderSinkFunc(func(id, title, value string) { order = append(order, "second:"+id) }),
	)

	set.Notify("a", "A", "1")

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"first:a", "second:a"}, order)
}

func TestSinkSet_RecoversPanickingSink(t *testing.T) {
	sink := NewRecordingSink()
	set := newSinkSet(NewLogger("test"),
		RenderSinkFunc(func(id, title, value string) { panic("boom") }),
		sink,
	)

	assert.NotPanics(t, func() {
		set.Notify("a", "A", "1")
	})
	assert.Equal(t, 1, sink.CalledTimes())
}

func TestSinkSet_ResetsResettableSinks(t *testing.T) {
	sink := NewRecordingSink()
	set := newSinkSet(NewLogger("test"), sink, NewLogSink(NewLogger("test")))

	set.Notify("a", "A", "1")
	set.Reset()

	assert.Equal(t, 1, sink.Resets())
	assert.Empty(t, sink.Stats())
}
