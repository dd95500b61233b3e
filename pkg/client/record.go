package client

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Record is one entry of the remote collection.
type Record struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// wireRecord mirrors the JSON shape. Pointers distinguish a missing field
// from a zero value.
type wireRecord struct {
	ID    *int    `json:"id" validate:"required"`
	Name  *string `json:"name" validate:"required"`
	Email *string `json:"email" validate:"required"`
}

var validate = validator.New()

// DecodeRecords parses a JSON array of records.
//
// Every element must carry an integer id, a string name and a string email.
// Unknown fields are ignored. Order is preserved.
func DecodeRecords(data []byte) ([]Record, error) {
	var wire []wireRecord
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("unmarshal records: %w", err)
	}
	if wire == nil {
		return nil, fmt.Errorf("expected a JSON array, got null")
	}

	records := make([]Record, 0, len(wire))
	for i, w := range wire {
		if err := validate.Struct(w); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, Record{
			ID:    *w.ID,
			Name:  *w.Name,
			Email: *w.Email,
		})
	}

	return records, nil
}
