package ber

import "bufio"

// Decode decodes the first element of data. It returns the value and the
// number of bytes the element occupied, so consecutive elements can be
// decoded by slicing data and calling Decode again.
//
// syntax interprets APPLICATION, CONTEXT and PRIVATE tags; nil applies the
// universal defaults only.
func Decode(data []byte, syntax *Syntax) (Value, int, error) {
	d := NewBERDecoder(data)
	v, err := d.ReadValue(syntax)
	if err != nil {
		return nil, 0, err
	}
	return v, d.Offset(), nil
}

// DecodeAll decodes data as a run of back-to-back elements and fails if the
// last one is incomplete.
func DecodeAll(data []byte, syntax *Syntax) ([]Value, error) {
	d := NewBERDecoder(data)
	var values []Value
	for d.Remaining() > 0 {
		v, err := d.ReadValue(syntax)
		if err != nil {
			return values, err
		}
		values = append(values, v)
	}
	return values, nil
}

// ScanElements is a bufio.SplitFunc yielding one complete TLV element per
// token. It asks for more data while an element is truncated and reports
// any other framing error.
func ScanElements(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if len(data) == 0 {
		return 0, nil, nil
	}

	h, err := NewBERDecoder(data).ReadHeader()
	if err != nil {
		if IsTruncated(err) && !atEOF {
			return 0, nil, nil
		}
		return 0, nil, err
	}
	return h.End(), data[:h.End()], nil
}

var _ bufio.SplitFunc = ScanElements
