package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryBufferAppendAndDelete(t *testing.T) {
	b := NewEntryBuffer(CodeLength)

	b.Append('4')
	b.Append('2')
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, "42", b.String())

	b.DeleteLast()
	assert.Equal(t, "4", b.String())
}

func TestEntryBufferDeleteOnEmptyIsNoop(t *testing.T) {
	b := NewEntryBuffer(CodeLength)
	b.DeleteLast()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, "", b.String())
}

func TestEntryBufferRejectsNonDigits(t *testing.T) {
	b := NewEntryBuffer(CodeLength)
	b.Append('a')
	b.Append(' ')
	b.Append('#')
	assert.Equal(t, 0, b.Len())
}

func TestEntryBufferIgnoresDigitsWhenFull(t *testing.T) {
	b := NewEntryBuffer(CodeLength)
	for _, d := range []byte("428915") {
		b.Append(d)
	}
	assert.True(t, b.Full())

	// a seventh digit changes nothing
	b.Append('7')
	assert.Equal(t, "428915", b.String())
}

func TestEntryBufferFullEventFiresOncePerFill(t *testing.T) {
	b := NewEntryBuffer(CodeLength)
	var got []string
	b.OnFull(func(code string) { got = append(got, code) })

	for _, d := range []byte("123456") {
		b.Append(d)
	}
	b.Append('7')
	assert.Equal(t, []string{"123456"}, got)
}

func TestEntryBufferClearRaisesErrorFlag(t *testing.T) {
	b := NewEntryBuffer(CodeLength)
	b.Append('1')
	b.Clear()
	assert.Equal(t, 0, b.Len())
	assert.True(t, b.Errored())

	// next digit clears the error
	b.Append('2')
	assert.False(t, b.Errored())
}

func TestEntryBufferResetDoesNotFlagError(t *testing.T) {
	b := NewEntryBuffer(CodeLength)
	b.Append('1')
	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.False(t, b.Errored())
}
