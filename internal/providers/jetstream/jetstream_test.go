package jetstream_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-infusion/internal/adapter"
	"github.com/feral-file/ff-infusion/internal/domain"
	"github.com/feral-file/ff-infusion/internal/logger"
	"github.com/feral-file/ff-infusion/internal/mocks"
	js "github.com/feral-file/ff-infusion/internal/providers/jetstream"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testJetStreamMocks contains all the mocks needed for testing the provider
type testJetStreamMocks struct {
	ctrl      *gomock.Controller
	natsJS    *mocks.MockNatsJetStream
	natsConn  *mocks.MockNatsConn
	jetStream *mocks.MockJetStream
	json      *mocks.MockJSON
}

func setupTestJetStream(t *testing.T) *testJetStreamMocks {
	ctrl := gomock.NewController(t)
	return &testJetStreamMocks{
		ctrl:      ctrl,
		natsJS:    mocks.NewMockNatsJetStream(ctrl),
		natsConn:  mocks.NewMockNatsConn(ctrl),
		jetStream: mocks.NewMockJetStream(ctrl),
		json:      mocks.NewMockJSON(ctrl),
	}
}

func testConfig() js.Config {
	return js.Config{
		URL:             "nats://localhost:4222",
		StreamName:      "INFUSION",
		SubjectPrefix:   "infusion",
		ConsumerName:    "realmctl",
		MaxReconnects:   10,
		ReconnectWait:   time.Second,
		ConnectionName:  "test",
		AckWait:         30 * time.Second,
		MaxDeliver:      5,
		DuplicateWindow: 2 * time.Minute,
	}
}

func testEvent() domain.Event {
	return domain.Event{
		ID:         "01HQ3Z8Y9W6X5V4T3S2R1Q0P9N",
		Type:       domain.EventTypeClaimed,
		RealmID:    1,
		Collection: "0x0000000000000000000000000000000000000721",
		TokenID:    "420",
		Amount:     "1000",
		OccurredAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

// =============================================================================
// Publisher
// =============================================================================

func newTestPublisher(t *testing.T, tm *testJetStreamMocks) *testJetStreamMocks {
	cfg := testConfig()
	tm.natsJS.EXPECT().Connect(cfg.URL, gomock.Any()).Return(tm.natsConn, tm.jetStream, nil)
	tm.jetStream.EXPECT().EnsureStream(gomock.Any(), jetstream.StreamConfig{
		Name:       "INFUSION",
		Subjects:   []string{"infusion.>"},
		Storage:    jetstream.FileStorage,
		Retention:  jetstream.LimitsPolicy,
		Duplicates: 2 * time.Minute,
	}).Return(nil)
	return tm
}

func TestNewPublisher(t *testing.T) {
	tm := newTestPublisher(t, setupTestJetStream(t))

	p, err := js.NewPublisher(context.Background(), testConfig(), tm.natsJS, tm.json)
	require.NoError(t, err)
	assert.NotNil(t, p)

	tm.natsConn.EXPECT().Close()
	p.Close()
}

func TestNewPublisher_ConnectError(t *testing.T) {
	tm := setupTestJetStream(t)
	tm.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nil, nil, assert.AnError)

	p, err := js.NewPublisher(context.Background(), testConfig(), tm.natsJS, tm.json)
	assert.Error(t, err)
	assert.Nil(t, p)
	assert.Contains(t, err.Error(), "failed to connect to NATS")
}

func TestNewPublisher_EnsureStreamError(t *testing.T) {
	tm := setupTestJetStream(t)
	tm.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(tm.natsConn, tm.jetStream, nil)
	tm.jetStream.EXPECT().EnsureStream(gomock.Any(), gomock.Any()).Return(assert.AnError)
	tm.natsConn.EXPECT().Close()

	p, err := js.NewPublisher(context.Background(), testConfig(), tm.natsJS, tm.json)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, p)
}

func TestNewPublisher_InvalidConfig(t *testing.T) {
	tm := setupTestJetStream(t)
	cfg := testConfig()
	cfg.SubjectPrefix = ""

	p, err := js.NewPublisher(context.Background(), cfg, tm.natsJS, tm.json)
	assert.Error(t, err)
	assert.Nil(t, p)
}

func TestPublisher_Publish(t *testing.T) {
	tests := []struct {
		name    string
		event   domain.Event
		setup   func(tm *testJetStreamMocks, event domain.Event)
		wantErr bool
	}{
		{
			name:  "published with the event id as message id",
			event: testEvent(),
			setup: func(tm *testJetStreamMocks, event domain.Event) {
				tm.json.EXPECT().Marshal(event).Return([]byte(`{}`), nil)
				tm.jetStream.EXPECT().
					Publish(gomock.Any(), "infusion.claimed", []byte(`{}`), gomock.Any()).
					Return(&jetstream.PubAck{Stream: "INFUSION", Sequence: 1}, nil)
			},
		},
		{
			name:  "duplicate acknowledged",
			event: testEvent(),
			setup: func(tm *testJetStreamMocks, event domain.Event) {
				tm.json.EXPECT().Marshal(event).Return([]byte(`{}`), nil)
				tm.jetStream.EXPECT().
					Publish(gomock.Any(), "infusion.claimed", gomock.Any(), gomock.Any()).
					Return(&jetstream.PubAck{Stream: "INFUSION", Sequence: 1, Duplicate: true}, nil)
			},
		},
		{
			name:  "marshal error",
			event: testEvent(),
			setup: func(tm *testJetStreamMocks, event domain.Event) {
				tm.json.EXPECT().Marshal(event).Return(nil, assert.AnError)
			},
			wantErr: true,
		},
		{
			name:  "publish error",
			event: testEvent(),
			setup: func(tm *testJetStreamMocks, event domain.Event) {
				tm.json.EXPECT().Marshal(event).Return([]byte(`{}`), nil)
				tm.jetStream.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, assert.AnError)
			},
			wantErr: true,
		},
		{
			name:    "missing id",
			event:   domain.Event{Type: domain.EventTypeInfused},
			setup:   func(tm *testJetStreamMocks, event domain.Event) {},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := newTestPublisher(t, setupTestJetStream(t))
			p, err := js.NewPublisher(context.Background(), testConfig(), tm.natsJS, tm.json)
			require.NoError(t, err)

			tt.setup(tm, tt.event)
			err = p.Publish(context.Background(), tt.event)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "infusion.infused", js.Subject("infusion", domain.EventTypeInfused))
	assert.Equal(t, "test.infusion_proxy_added", js.Subject("test", domain.EventTypeInfusionProxyAdded))
}

// =============================================================================
// Subscriber
// =============================================================================

func TestSubscriber_CreateConsumerError(t *testing.T) {
	tm := setupTestJetStream(t)
	cfg := testConfig()
	tm.natsJS.EXPECT().Connect(cfg.URL, gomock.Any()).Return(tm.natsConn, tm.jetStream, nil)

	s, err := js.NewSubscriber(cfg, domain.EventTypeInfused, tm.natsJS, tm.json)
	require.NoError(t, err)

	tm.jetStream.EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), "INFUSION", jetstream.ConsumerConfig{
			Durable:       "realmctl",
			AckPolicy:     jetstream.AckExplicitPolicy,
			AckWait:       30 * time.Second,
			MaxDeliver:    5,
			FilterSubject: "infusion.infused",
		}).
		Return(nil, assert.AnError)

	err = s.Subscribe(context.Background(), func(ctx context.Context, event domain.Event) error { return nil })
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create/update consumer")
}

func TestSubscriber_Subscribe(t *testing.T) {
	tm := setupTestJetStream(t)
	cfg := testConfig()
	tm.natsJS.EXPECT().Connect(cfg.URL, gomock.Any()).Return(tm.natsConn, tm.jetStream, nil)

	s, err := js.NewSubscriber(cfg, "", tm.natsJS, tm.json)
	require.NoError(t, err)

	consumer := mocks.NewMockNatsConsumer(tm.ctrl)
	consumeCtx := mocks.NewMockConsumeContext(tm.ctrl)
	good := mocks.NewMockJetStreamMessage(tm.ctrl)
	failing := mocks.NewMockJetStreamMessage(tm.ctrl)
	garbage := mocks.NewMockJetStreamMessage(tm.ctrl)

	tm.jetStream.EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), "INFUSION", gomock.Any()).
		DoAndReturn(func(ctx context.Context, stream string, c jetstream.ConsumerConfig) (adapter.Consumer, error) {
			assert.Equal(t, "infusion.>", c.FilterSubject)
			return consumer, nil
		})
	consumer.EXPECT().Info(gomock.Any()).Return(&jetstream.ConsumerInfo{Name: "realmctl"}, nil)
	consumer.EXPECT().Consume(gomock.Any()).DoAndReturn(
		func(handler adapter.MessageHandler, _ ...jetstream.PullConsumeOpt) (adapter.ConsumeContext, error) {
			go func() {
				handler(garbage)
				handler(failing)
				handler(good)
			}()
			return consumeCtx, nil
		})
	consumeCtx.EXPECT().Stop()

	event := testEvent()
	garbage.EXPECT().Data().Return([]byte("not json"))
	garbage.EXPECT().Subject().Return("infusion.claimed")
	tm.json.EXPECT().Unmarshal([]byte("not json"), gomock.Any()).Return(assert.AnError)
	garbage.EXPECT().Term().Return(nil)

	decode := func(data []byte, v interface{}) error {
		*(v.(*domain.Event)) = event
		return nil
	}
	failing.EXPECT().Data().Return([]byte("failing"))
	tm.json.EXPECT().Unmarshal([]byte("failing"), gomock.Any()).DoAndReturn(decode)
	failing.EXPECT().Metadata().Return(&jetstream.MsgMetadata{NumDelivered: 1}, nil)
	failing.EXPECT().Nak().Return(nil)

	good.EXPECT().Data().Return([]byte("good"))
	tm.json.EXPECT().Unmarshal([]byte("good"), gomock.Any()).DoAndReturn(decode)
	good.EXPECT().Metadata().Return(&jetstream.MsgMetadata{NumDelivered: 2}, nil)
	good.EXPECT().Ack().Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	err = s.Subscribe(ctx, func(ctx context.Context, got domain.Event) error {
		calls++
		assert.Equal(t, event.ID, got.ID)
		if calls == 1 {
			return errors.New("handler failed")
		}
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, calls)
}
