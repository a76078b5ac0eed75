package badger

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
)

var (
	errAlreadyExists   = errors.New("badger: key already exists")
	errNotFound        = errors.New("badger: key not found")
	errVersionConflict = errors.New("badger: version conflict")
)

func encodeEntry(e entry) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&e); err != nil {
		return nil, fmt.Errorf("badger: encode entry: %w", err)
	}
	return buf.Bytes(), nil
}

func persistDecodeEntry(b []byte) (entry, error) {
	var e entry
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&e); err != nil {
		return entry{}, fmt.Errorf("badger: decode entry: %w", err)
	}
	return e, nil
}
