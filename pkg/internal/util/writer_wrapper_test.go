package util_test

import (
	"testing"

	"github.com/bsv-blockchain/go-gateway-verifier/pkg/internal/util"
	"github.com/stretchr/testify/assert"
)

func TestWriteOptionalStringWritesZeroForEmpty(t *testing.T) {
	// given:
	w := util.NewWriter()

	// when:
	w.WriteOptionalString("")

	// then:
	assert.Equal(t, []byte{0x00}, w.Bytes())
}

func TestWriteStringsFramesEveryValue(t *testing.T) {
	// given:
	w := util.NewWriter()

	// when:
	w.WriteStrings("ab", "", "c")

	// then:
	assert.Equal(t, []byte{0x03, 0x02, 'a', 'b', 0x00, 0x01, 'c'}, w.Bytes())
}

func TestWriteStringsKeepsBoundariesApart(t *testing.T) {
	// given:
	first := util.NewWriter()
	second := util.NewWriter()

	// when:
	first.WriteStrings("a;b", "c")
	second.WriteStrings("a", "b;c")

	// then:
	assert.NotEqual(t, first.Bytes(), second.Bytes())
}
