package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-infusion/internal/domain"
	"github.com/feral-file/ff-infusion/internal/messaging"
	"github.com/feral-file/ff-infusion/internal/mocks"
)

func TestFormatEvent(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name  string
		event domain.Event
		want  string
	}{
		{
			name:  "realm created",
			event: domain.Event{Type: domain.EventTypeRealmCreated, RealmID: 1, Name: "Genesis", OccurredAt: at},
			want:  `2024-01-02T03:04:05Z realm_created          realm=1 name="Genesis"`,
		},
		{
			name: "infused",
			event: domain.Event{
				Type: domain.EventTypeInfused, RealmID: 2, Collection: "0xc", TokenID: "7",
				Infuser: "0xa", Amount: "1500000000000000000", Comment: "gm", OccurredAt: at,
			},
			want: `2024-01-02T03:04:05Z infused                realm=2 token=0xc/7 infuser=0xa amount=1.5 comment="gm"`,
		},
		{
			name:  "claimed",
			event: domain.Event{Type: domain.EventTypeClaimed, RealmID: 2, Collection: "0xc", TokenID: "7", Amount: "5", OccurredAt: at},
			want:  `2024-01-02T03:04:05Z claimed                realm=2 token=0xc/7 amount=0.000000000000000005`,
		},
		{
			name:  "membership",
			event: domain.Event{Type: domain.EventTypeInfuserAdded, RealmID: 3, Account: "0xb", OccurredAt: at},
			want:  `2024-01-02T03:04:05Z infuser_added          realm=3 account=0xb`,
		},
	}

	decimals = 18
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatEvent(tt.event))
		})
	}
}

func TestTailEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	sub := mocks.NewMockSubscriber(ctrl)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	sub.EXPECT().Subscribe(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, handler messaging.EventHandler) error {
			require.NoError(t, handler(ctx, domain.Event{Type: domain.EventTypeAdminAdded, RealmID: 1, Account: "0x1", OccurredAt: at}))
			require.NoError(t, handler(ctx, domain.Event{Type: domain.EventTypeAdminAdded, RealmID: 2, Account: "0x2", OccurredAt: at}))
			return context.Canceled
		})

	var out bytes.Buffer
	err := tailEvents(context.Background(), sub, &out, 2)
	require.NoError(t, err, "cancellation ends the tail cleanly")
	assert.Equal(t, "2024-01-02T03:04:05Z admin_added            realm=2 account=0x2\n", out.String())
}

func TestTailEvents_JSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	sub := mocks.NewMockSubscriber(ctrl)

	outputJSON = true
	defer func() { outputJSON = false }()

	sub.EXPECT().Subscribe(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, handler messaging.EventHandler) error {
			require.NoError(t, handler(ctx, domain.Event{ID: "01J", Type: domain.EventTypeClaimed, RealmID: 1, Amount: "10"}))
			return nil
		})

	var out bytes.Buffer
	require.NoError(t, tailEvents(context.Background(), sub, &out, 0))
	assert.Contains(t, out.String(), `"id":"01J"`)
	assert.Contains(t, out.String(), `"type":"claimed"`)
	assert.Contains(t, out.String(), `"amount":"10"`)
}

func TestTailEvents_SubscribeFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	sub := mocks.NewMockSubscriber(ctrl)

	boom := errors.New("stream not found")
	sub.EXPECT().Subscribe(gomock.Any(), gomock.Any()).Return(boom)

	err := tailEvents(context.Background(), sub, &bytes.Buffer{}, 0)
	assert.ErrorIs(t, err, boom)
}
