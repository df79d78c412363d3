package amqp

import (
	"testing"
	"time"
)

func TestRecordChangeMessageJSON(t *testing.T) {
	msg := NewRecordChangeMessage("incomes", "add", 42)
	if msg.Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	decoded, err := RecordChangeMessageFromJSON(data)
	if err != nil {
		t.Fatalf("RecordChangeMessageFromJSON() error = %v", err)
	}
	if decoded.Collection != "incomes" || decoded.Op != "add" || decoded.ID != 42 {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
	if !decoded.Timestamp.Truncate(time.Second).Equal(msg.Timestamp.Truncate(time.Second)) {
		t.Fatalf("timestamp mismatch: %v != %v", decoded.Timestamp, msg.Timestamp)
	}
}

func TestRecordChangeMessageFromJSONInvalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte("")},
		{"not json", []byte("{invalid")},
		{"wrong type", []byte(`{"id":"not-a-number"}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RecordChangeMessageFromJSON(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}
