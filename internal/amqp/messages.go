package amqp

import (
	"encoding/json"
	"time"
)

// DatasetReseededMessage announces a completed wipe-and-reload of the
// transaction dataset. Consumers only get the record count; anything else
// they need comes from the database.
type DatasetReseededMessage struct {
	Count     int64     `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

func NewDatasetReseededMessage(count int64) *DatasetReseededMessage {
	return &DatasetReseededMessage{
		Count:     count,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *DatasetReseededMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DatasetReseededMessageFromJSON creates a message from JSON bytes.
func DatasetReseededMessageFromJSON(data []byte) (*DatasetReseededMessage, error) {
	var msg DatasetReseededMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
