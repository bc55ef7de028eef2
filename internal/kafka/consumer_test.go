package kafka

import (
	"context"
	"testing"

	"skywatch/internal/models"
	"skywatch/internal/store/storetest"
)

type fakeSubmitter struct {
	stored   []models.Reading
	rejected int
}

func (s *fakeSubmitter) Submit(ctx context.Context, in models.ReadingInput) (models.Reading, error) {
	if err := in.Validate(); err != nil {
		s.rejected++
		return models.Reading{}, err
	}
	r := models.Reading{ID: int64(len(s.stored) + 1), Temperature: *in.Temperature, Humidity: *in.Humidity}
	s.stored = append(s.stored, r)
	return r, nil
}

func TestHandleValidMessage(t *testing.T) {
	sub := &fakeSubmitter{}
	c := &Consumer{submitter: sub}

	c.handle(context.Background(), []byte(`{"temperature": 22.5, "humidity": 55}`))

	if len(sub.stored) != 1 {
		t.Fatalf("stored = %d, want 1", len(sub.stored))
	}
	if sub.stored[0].Temperature != 22.5 || sub.stored[0].Humidity != 55 {
		t.Errorf("unexpected reading: %+v", sub.stored[0])
	}
}

func TestHandleMalformedMessage(t *testing.T) {
	sub := &fakeSubmitter{}
	c := &Consumer{submitter: sub}

	c.handle(context.Background(), []byte(`not json`))

	if len(sub.stored) != 0 || sub.rejected != 0 {
		t.Error("malformed message reached the submitter")
	}
}

func TestHandleRejectedReading(t *testing.T) {
	sub := &fakeSubmitter{}
	c := &Consumer{submitter: sub}

	c.handle(context.Background(), []byte(`{"temperature": 150, "humidity": 55}`))

	if len(sub.stored) != 0 {
		t.Error("out-of-range reading was stored")
	}
	if sub.rejected != 1 {
		t.Errorf("rejected = %d, want 1", sub.rejected)
	}
}

// The consumer path and the HTTP path share the same ingestion service, so
// an in-range message ends up in the store like any other reading.
func TestHandleThroughRealService(t *testing.T) {
	st := storetest.New()
	c := &Consumer{submitter: passthrough{st}}

	c.handle(context.Background(), []byte(`{"temperature": 20, "humidity": 50}`))

	if len(st.Readings) != 1 {
		t.Fatalf("readings = %d, want 1", len(st.Readings))
	}
}

type passthrough struct{ st *storetest.Fake }

func (p passthrough) Submit(ctx context.Context, in models.ReadingInput) (models.Reading, error) {
	if err := in.Validate(); err != nil {
		return models.Reading{}, err
	}
	return p.st.InsertReading(ctx, *in.Temperature, *in.Humidity)
}
