package raddec

import (
	"encoding/json"
	"errors"
	"fmt"
)

// IdentifierType describes the format of a transmitter or receiver identifier.
type IdentifierType int

const (
	IdentifierTypeUnknown IdentifierType = iota
	IdentifierTypeEUI64
	IdentifierTypeEUI48
	IdentifierTypeRND48
	IdentifierTypeTID96
	IdentifierTypeEPC96
	IdentifierTypeUUID16
	IdentifierTypeUUID32
	IdentifierTypeUUID128
	IdentifierTypeEURID32
)

var identifierTypeNames = []string{
	"Unknown",
	"EUI-64",
	"EUI-48",
	"RND-48",
	"TID-96",
	"EPC-96",
	"UUID-16",
	"UUID-32",
	"UUID-128",
	"EURID-32",
}

func (t IdentifierType) String() string {
	if t < 0 || int(t) >= len(identifierTypeNames) {
		return fmt.Sprintf("IdentifierType(%d)", int(t))
	}
	return identifierTypeNames[t]
}

type EventType int

const (
	EventAppearance EventType = iota
	EventDisplacement
	EventPackets
	EventKeepAlive
	EventDisappearance
)

var eventTypeNames = []string{
	"appearance",
	"displacement",
	"packets",
	"keep-alive",
	"disappearance",
}

func (e EventType) String() string {
	if e < 0 || int(e) >= len(eventTypeNames) {
		return fmt.Sprintf("EventType(%d)", int(e))
	}
	return eventTypeNames[e]
}

type RssiSignatureEntry struct {
	ReceiverID        string         `json:"receiverId"`
	ReceiverIDType    IdentifierType `json:"receiverIdType"`
	ReceiverAntenna   *int           `json:"receiverAntenna,omitempty"`
	Rssi              int            `json:"rssi"`
	NumberOfDecodings int            `json:"numberOfDecodings"`
}

// Raddec is a radio decoding: one transmitter as seen by one or more receivers.
// Timestamp is milliseconds since the Unix epoch.
type Raddec struct {
	TransmitterID     string               `json:"transmitterId"`
	TransmitterIDType IdentifierType       `json:"transmitterIdType"`
	RssiSignature     []RssiSignatureEntry `json:"rssiSignature,omitempty"`
	Packets           []string             `json:"packets,omitempty"`
	Events            []EventType          `json:"events,omitempty"`
	Timestamp         int64                `json:"timestamp"`
}

var ErrMissingTransmitterID = errors.New("raddec is missing transmitterId")

// Decode parses a single raddec in its JSON representation.
func Decode(data []byte) (*Raddec, error) {
	var r Raddec
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode raddec: %w", err)
	}
	if r.TransmitterID == "" {
		return nil, ErrMissingTransmitterID
	}
	return &r, nil
}

// DecodeMany accepts either a single raddec object or an array of them.
func DecodeMany(data []byte) ([]*Raddec, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode raddec: %w", err)
	}

	trimmed := firstNonSpace(raw)
	if trimmed != '[' {
		r, err := Decode(raw)
		if err != nil {
			return nil, err
		}
		return []*Raddec{r}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode raddec list: %w", err)
	}

	raddecs := make([]*Raddec, 0, len(items))
	for i, item := range items {
		r, err := Decode(item)
		if err != nil {
			return nil, fmt.Errorf("raddec at index %d: %w", i, err)
		}
		raddecs = append(raddecs, r)
	}
	return raddecs, nil
}

func firstNonSpace(b []byte) byte {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return c
	}
	return 0
}
