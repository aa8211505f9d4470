package streamstats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type EngineTestingSuite struct {
	TestingSuite
	sink   *RecordingSink
	engine *Engine
}

func (suite *EngineTestingSuite) SetupTest() {
	suite.sink = suite.Sink()
	suite.engine = NewEngine(WithSink(suite.sink), WithLocale("en-US"))
}

func (suite *EngineTestingSuite) TestHandleStats() {
	suite.engine.HandleStats(fullSnapshot())

	entries := suite.engine.Entries()
	suite.Len(entries, 14)
	suite.Equal(StatInboundData, entries[0].Id)
	suite.Equal(StatQuantizationParameter, entries[13].Id)
	suite.Equal(statIds(entries), suite.sink.Ids())
}

func (suite *EngineTestingSuite) TestOrderIsStableAcrossUpdates() {
	suite.engine.HandlePlayerCount(1)
	suite.engine.HandleStats(&AggregatedStats{})
	suite.engine.HandleLatencyInfo(&LatencyBreakdown{AverageE2ELatencyMs: Some(20.0)})

	first := statIds(suite.engine.Entries())

	suite.engine.HandleStats(fullSnapshot())
	suite.engine.HandlePlayerCount(2)

	entries := suite.engine.Entries()
	suite.Equal(first, statIds(entries)[:len(first)])
	suite.Equal(StatPlayers, entries[0].Id)
	suite.Equal("2", entries[0].Value)
}

func (suite *EngineTestingSuite) TestBitrateKeepsLastValue() {
	suite.engine.HandleStats(fullSnapshot())

	snapshot := fullSnapshot()
	snapshot.InboundVideo.Bitrate = Some(0.0)
	suite.engine.HandleStats(snapshot)

	values := statValues(suite.engine.Entries())
	suite.Equal("2500.5", values[StatVideoBitrate])
}

func (suite *EngineTestingSuite) TestLatencyNonPositiveKeepsLastValue() {
	suite.engine.HandleLatencyInfo(&LatencyBreakdown{AverageDecodeLatencyMs: Some(7.5)})
	calls := suite.sink.CalledTimes()

	suite.engine.HandleLatencyInfo(&LatencyBreakdown{AverageDecodeLatencyMs: Some(0.0)})

	suite.Equal(calls, suite.sink.CalledTimes())
	suite.Equal("8", statValues(suite.engine.Entries())[StatDecodeDelay])
}

func (suite *EngineTestingSuite) TestNewSession() {
	suite.engine.HandlePlayerCount(4)
	sessionId := suite.engine.SessionId()

	newId := suite.engine.NewSession()

	suite.NotEqual(sessionId, newId)
	suite.Equal(newId, suite.engine.SessionId())
	suite.Empty(suite.engine.Entries())
	suite.Equal(1, suite.sink.Resets())

	suite.engine.HandlePlayerCount(5)
	suite.Equal([]Stat{{Id: StatPlayers, Title: "Players", Value: "5"}}, suite.engine.Entries())
}

func (suite *EngineTestingSuite) TestAddSink() {
	late := NewRecordingSink()

	suite.engine.HandlePlayerCount(1)
	suite.engine.AddSink(late)
	suite.engine.HandlePlayerCount(2)

	suite.Equal(2, suite.sink.CalledTimes())
	suite.Equal([]Stat{{Id: StatPlayers, Title: "Players", Value: "2"}}, late.Stats())
}

func (suite *EngineTestingSuite) TestConcurrentDeliveries() {
	wg := sync.WaitGroup{}

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			suite.engine.HandleStats(fullSnapshot())
			suite.engine.HandlePlayerCount(uint32(i))
		}(i)
	}
	wg.Wait()

	suite.Len(suite.engine.Entries(), 15)
	suite.Equal(50*15, suite.sink.CalledTimes())
}

func (suite *EngineTestingSuite) TestSinkReadsEngineFromNotify() {
	var (
		seen       [][]Stat
		sessionIds []string
	)

	suite.engine.AddSink(RenderSinkFunc(func(id, title, value string) {
		sessionIds = append(sessionIds, suite.engine.SessionId())
		seen = append(seen, suite.engine.Entries())
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		suite.engine.HandlePlayerCount(1)
		suite.engine.HandleLatencyInfo(&LatencyBreakdown{AverageE2ELatencyMs: Some(20.0)})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		suite.FailNow("delivery blocked by a sink reading the engine")
	}

	suite.Require().Len(seen, 2)
	suite.Equal([]string{suite.engine.SessionId(), suite.engine.SessionId()}, sessionIds)
	suite.Equal([]string{StatPlayers}, statIds(seen[0]))
	suite.Equal([]string{StatPlayers, StatEndToEndLatency}, statIds(seen[1]))
}

func TestEngineTestingSuite(t *testing.T) {
	suite.Run(t, new(EngineTestingSuite))
}

func TestEngine_SectionGate(t *testing.T) {
	sink := NewRecordingSink()
	engine := NewEngine(WithSink(sink), WithSections(NewSectionConfig()))

	engine.HandleStats(fullSnapshot())
	engine.HandleLatencyInfo(&LatencyBreakdown{AverageE2ELatencyMs: Some(10.0)})
	engine.HandlePlayerCount(2)

	if got := sink.Ids(); len(got) != 1 || got[0] != StatPlayers {
		t.Fatalf("expected only the players stat, got %v", got)
	}
}

func TestEngine_NumberFormatterOption(t *testing.T) {
	engine := NewEngine(WithNumberFormatter(NumberFormatterFunc(func(n int64) string { return "#" })))

	engine.HandleStats(fullSnapshot())

	if v := statValues(engine.Entries())[StatPacketsLost]; v != "#" {
		t.Fatalf("packets lost = %q", v)
	}
}
