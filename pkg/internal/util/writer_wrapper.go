package util

import "github.com/bsv-blockchain/go-sdk/util"

// WrappedSdkWriter extends the go-sdk binary writer with the framing used for digest input.
// Empty values are written as a zero length instead of the sdk's negative one marker,
// so an absent optional field and an empty one hash identically.
type WrappedSdkWriter struct {
	*util.Writer
}

func NewWriter() *WrappedSdkWriter {
	return &WrappedSdkWriter{
		Writer: util.NewWriter(),
	}
}

func (w *WrappedSdkWriter) WriteOptionalString(s string) {
	if s == "" {
		w.writeZero()
		return
	}
	w.WriteString(s)
}

// WriteStrings writes the count of values followed by every value length-prefixed.
func (w *WrappedSdkWriter) WriteStrings(values ...string) {
	w.WriteVarInt(uint64(len(values)))
	for _, v := range values {
		w.WriteOptionalString(v)
	}
}

// Bytes returns the written buffer.
func (w *WrappedSdkWriter) Bytes() []byte {
	return w.Buf
}

func (w *WrappedSdkWriter) writeZero() {
	w.Writer.WriteVarInt(0)
}
