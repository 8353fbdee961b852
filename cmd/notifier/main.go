package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	bookingservice "roamify/internal/bookings/service"
	"roamify/pkg/config"
	"roamify/pkg/kafka"
)

const ServiceName = "roamify-notifier"

// The notifier consumes booking events and emits structured notification
// lines. A real deployment would fan these out to email or push; the log
// stream is the integration point.
func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Fatal("Notifier requires Kafka brokers; set " + config.EnvKafkaBrokers)
	}

	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroup)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		sig := <-shutdown
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	cfg.Log.Info("Notifier started", "topic", cfg.KafkaTopic, "group", cfg.KafkaGroup)
	err = consumer.Run(ctx, func(_ context.Context, msg kafka.Message) error {
		var event bookingservice.BookingEvent
		if err := msg.DecodeValue(&event); err != nil {
			cfg.Log.Error("Failed to decode booking event",
				"event_id", msg.EventID(),
				"error", err,
			)
			return err
		}

		cfg.Log.Info("Booking notification",
			"event_type", msg.EventType(),
			"event_id", msg.EventID(),
			"booking_id", event.BookingID,
			"property_id", event.PropertyID,
			"guest_id", event.GuestID,
			"status", event.Status,
			"check_in", event.CheckInDate,
			"check_out", event.CheckOutDate,
		)
		return nil
	})
	if err != nil {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	cfg.Log.Info("Notifier stopped")
}
