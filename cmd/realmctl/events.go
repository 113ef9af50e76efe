package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/feral-file/ff-infusion/internal/adapter"
	"github.com/feral-file/ff-infusion/internal/domain"
	"github.com/feral-file/ff-infusion/internal/messaging"
	"github.com/feral-file/ff-infusion/internal/providers/jetstream"
)

var tailFlags struct {
	eventType string
	consumer  string
	realmID   uint64
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Follow engine events published to NATS JetStream",
}

var eventsTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print events as they are published",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		consumer := tailFlags.consumer
		if consumer == "" {
			consumer = cfg.NATS.ConsumerName
		}

		sub, err := jetstream.NewSubscriber(jetstream.Config{
			URL:             cfg.NATS.URL,
			StreamName:      cfg.NATS.StreamName,
			SubjectPrefix:   cfg.NATS.SubjectPrefix,
			ConsumerName:    consumer,
			MaxReconnects:   cfg.NATS.MaxReconnects,
			ReconnectWait:   cfg.NATS.ReconnectWait,
			ConnectionName:  cfg.NATS.ConnectionName,
			AckWait:         cfg.NATS.AckWait,
			MaxDeliver:      cfg.NATS.MaxDeliver,
			DuplicateWindow: cfg.NATS.DuplicateWindow,
		}, domain.EventType(tailFlags.eventType), adapter.NewNatsJetStream(), adapter.NewJSON())
		if err != nil {
			return err
		}
		defer sub.Close()

		return tailEvents(cmd.Context(), sub, cmd.OutOrStdout(), tailFlags.realmID)
	},
}

// tailEvents prints events from sub until ctx is cancelled
func tailEvents(ctx context.Context, sub messaging.Subscriber, w io.Writer, realmID uint64) error {
	enc := json.NewEncoder(w)
	err := sub.Subscribe(ctx, func(_ context.Context, event domain.Event) error {
		if realmID != 0 && event.RealmID != realmID {
			return nil
		}
		if outputJSON {
			return enc.Encode(event)
		}
		_, err := fmt.Fprintln(w, formatEvent(event))
		return err
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func init() {
	f := eventsTailCmd.Flags()
	f.StringVar(&tailFlags.eventType, "type", "", "Only events of this type, e.g. infused")
	f.StringVar(&tailFlags.consumer, "consumer", "", "Durable consumer name, defaults to nats.consumer_name")
	f.Uint64Var(&tailFlags.realmID, "realm", 0, "Only events of this realm")

	eventsCmd.AddCommand(eventsTailCmd)
	rootCmd.AddCommand(eventsCmd)
}

// formatEvent renders an event on a single line
func formatEvent(e domain.Event) string {
	line := fmt.Sprintf("%s %-22s realm=%d", e.OccurredAt.UTC().Format("2006-01-02T15:04:05Z"), e.Type, e.RealmID)
	switch e.Type {
	case domain.EventTypeRealmCreated:
		line += fmt.Sprintf(" name=%q", e.Name)
	case domain.EventTypeInfused:
		line += fmt.Sprintf(" token=%s/%s infuser=%s amount=%s", e.Collection, e.TokenID, e.Infuser, formatEventAmount(e.Amount))
		if e.Comment != "" {
			line += fmt.Sprintf(" comment=%q", e.Comment)
		}
	case domain.EventTypeClaimed:
		line += fmt.Sprintf(" token=%s/%s amount=%s", e.Collection, e.TokenID, formatEventAmount(e.Amount))
	default:
		line += fmt.Sprintf(" account=%s", e.Account)
	}
	return line
}

func formatEventAmount(raw string) string {
	v, err := domain.ParseAmount(raw)
	if err != nil {
		return raw
	}
	return amountString(v)
}
