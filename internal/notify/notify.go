// README: Booking event publishing over MQTT.
package notify

import (
	"encoding/json"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"cabway/internal/modules/booking"
)

const bookingCreatedTopic = "cabway/bookings/created"

// MQTTNotifier publishes booking-created events. Publishing is best
// effort: failures are logged and never surfaced to the caller, so a
// broker outage cannot fail a booking.
type MQTTNotifier struct {
	client mqtt.Client
	log    *logrus.Logger
}

func NewMQTTNotifier(client mqtt.Client, log *logrus.Logger) *MQTTNotifier {
	return &MQTTNotifier{client: client, log: log}
}

type bookingCreatedEvent struct {
	BookingID   string    `json:"bookingId"`
	UserEmail   string    `json:"userEmail"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	CabName     string    `json:"cabName"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Cost        float64   `json:"cost"`
}

func (n *MQTTNotifier) BookingCreated(b booking.Booking) {
	payload, err := json.Marshal(bookingCreatedEvent{
		BookingID:   string(b.ID),
		UserEmail:   b.UserEmail,
		Source:      b.SourceName,
		Destination: b.DestinationName,
		CabName:     b.CabName,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Cost:        b.Cost,
	})
	if err != nil {
		n.log.WithError(err).Error("marshal booking-created event")
		return
	}

	token := n.client.Publish(bookingCreatedTopic, 1, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		n.log.WithField("booking_id", b.ID).Warn("booking-created publish timed out")
		return
	}
	if err := token.Error(); err != nil {
		n.log.WithError(err).WithField("booking_id", b.ID).Warn("booking-created publish failed")
	}
}

// NopNotifier is used when no broker is configured.
type NopNotifier struct{}

func (NopNotifier) BookingCreated(booking.Booking) {}
