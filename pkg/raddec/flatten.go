package raddec

// FlattenOptions controls which fields end up in a flattened raddec.
// The zero value leaves packets out.
type FlattenOptions struct {
	IncludePackets bool `json:"includePackets" mapstructure:"includePackets"`
}

// Flattened is the single-level view of a raddec, keeping only the
// strongest receiver of the rssi signature.
type Flattened struct {
	TransmitterID     string         `json:"transmitterId"`
	TransmitterIDType IdentifierType `json:"transmitterIdType"`
	ReceiverID        string         `json:"receiverId,omitempty"`
	ReceiverIDType    IdentifierType `json:"receiverIdType,omitempty"`
	ReceiverAntenna   *int           `json:"receiverAntenna,omitempty"`
	Rssi              *int           `json:"rssi,omitempty"`
	NumberOfReceivers int            `json:"numberOfReceivers"`
	NumberOfDecodings int            `json:"numberOfDecodings"`
	NumberOfPackets   int            `json:"numberOfPackets"`
	Events            []EventType    `json:"events,omitempty"`
	Packets           []string       `json:"packets,omitempty"`
	Timestamp         int64          `json:"timestamp"`
}

// ToFlattened builds the flattened view. The raddec itself is left untouched,
// slices in the result are copies.
func (r *Raddec) ToFlattened(options FlattenOptions) Flattened {
	flat := Flattened{
		TransmitterID:     r.TransmitterID,
		TransmitterIDType: r.TransmitterIDType,
		NumberOfReceivers: len(r.RssiSignature),
		NumberOfPackets:   len(r.Packets),
		Timestamp:         r.Timestamp,
	}

	if strongest := r.strongest(); strongest != nil {
		rssi := strongest.Rssi
		flat.ReceiverID = strongest.ReceiverID
		flat.ReceiverIDType = strongest.ReceiverIDType
		flat.Rssi = &rssi
		if strongest.ReceiverAntenna != nil {
			antenna := *strongest.ReceiverAntenna
			flat.ReceiverAntenna = &antenna
		}
	}

	for _, entry := range r.RssiSignature {
		flat.NumberOfDecodings += entry.NumberOfDecodings
	}

	if len(r.Events) > 0 {
		flat.Events = append([]EventType(nil), r.Events...)
	}

	if options.IncludePackets && len(r.Packets) > 0 {
		flat.Packets = append([]string(nil), r.Packets...)
	}

	return flat
}

func (r *Raddec) strongest() *RssiSignatureEntry {
	var best *RssiSignatureEntry
	for i := range r.RssiSignature {
		if best == nil || r.RssiSignature[i].Rssi > best.Rssi {
			best = &r.RssiSignature[i]
		}
	}
	return best
}
