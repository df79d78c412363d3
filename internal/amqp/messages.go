package amqp

import (
	"encoding/json"
	"time"
)

// RecordChangeMessage announces a mutation of a ledger collection.
// Consumers re-read the collection; the message carries identity only.
type RecordChangeMessage struct {
	Collection string    `json:"collection"`
	Op         string    `json:"op"`
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewRecordChangeMessage creates a change message for one record.
func NewRecordChangeMessage(collection, op string, id int64) *RecordChangeMessage {
	return &RecordChangeMessage{
		Collection: collection,
		Op:         op,
		ID:         id,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *RecordChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordChangeMessageFromJSON creates a message from JSON bytes.
func RecordChangeMessageFromJSON(data []byte) (*RecordChangeMessage, error) {
	var msg RecordChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
