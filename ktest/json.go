package ktest

import "encoding/json"

// descriptorJSON is the wire shape of a Descriptor: four sorted factor
// slices plus the window size. Stdlib encoding/json is used rather
// than a third-party codec because the shape is flat and already
// map-like; nothing in the example pack's codecs (CUE's internal
// encoders, protobuf) is aimed at this kind of small ad-hoc struct.
type descriptorJSON struct {
	K        int      `json:"k"`
	Prefixes []string `json:"prefixes"`
	Suffixes []string `json:"suffixes"`
	Infixes  []string `json:"infixes"`
	Shorts   []string `json:"shorts"`
}

// MarshalJSON renders the descriptor as its four sorted factor slices
// plus k, suitable for the CLI's --format=json output.
func (d *Descriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(descriptorJSON{
		K:        d.k,
		Prefixes: d.Prefixes(),
		Suffixes: d.Suffixes(),
		Infixes:  d.Infixes(),
		Shorts:   d.Shorts(),
	})
}

// UnmarshalJSON reconstructs a descriptor from its wire shape and
// re-validates the invariant, since the bytes may come from outside
// this process.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var wire descriptorJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	built, err := New(wire.Prefixes, wire.Suffixes, wire.Infixes, wire.Shorts, wire.K)
	if err != nil {
		return err
	}
	*d = *built
	return nil
}
