package pricing

import (
	"bytes"
	"encoding/json"
	"strings"
)

// TierRef decodes a tier given either as a bare id ("pro") or as a tier
// object ({"id":"pro",...}). Only the id is kept.
type TierRef string

func (r *TierRef) UnmarshalJSON(data []byte) error {
	id, err := decodeRef(data)
	if err != nil {
		return err
	}
	*r = TierRef(id)
	return nil
}

func (r TierRef) String() string { return string(r) }

// AddOnRefs decodes a list whose elements are ids or add-on objects.
type AddOnRefs []string

func (r *AddOnRefs) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*r = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrInvalidReference
	}
	ids := make([]string, 0, len(raw))
	for _, item := range raw {
		id, err := decodeRef(item)
		if err != nil {
			return err
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	*r = ids
	return nil
}

func decodeRef(data []byte) (string, error) {
	if isNull(data) {
		return "", nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		return strings.TrimSpace(id), nil
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", ErrInvalidReference
	}
	return strings.TrimSpace(obj.ID), nil
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
