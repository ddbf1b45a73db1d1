package access

// CodeLength - all booking access codes are 6 decimal digits.
const CodeLength = 6

// EntryBuffer holds the digits entered so far, bounded at the target length.
// When the buffer fills it emits a single full event through the callback
// registered with OnFull; the flow controller consumes that event instead of
// polling the buffer.
type EntryBuffer struct {
	digits  []byte
	target  int
	errored bool
	onFull  func(code string)
}

func NewEntryBuffer(target int) *EntryBuffer {
	if target <= 0 {
		target = CodeLength
	}
	return &EntryBuffer{digits: make([]byte, 0, target), target: target}
}

// OnFull registers the auto-submit callback. It fires exactly once per full
// entry, from inside the Append that completed the code.
func (b *EntryBuffer) OnFull(fn func(code string)) {
	b.onFull = fn
}

// Append adds one digit. No-op if the buffer is already full or d is not a
// decimal digit. A new digit clears any prior error flag.
func (b *EntryBuffer) Append(d byte) {
	if b.Full() || d < '0' || d > '9' {
		return
	}
	b.errored = false
	b.digits = append(b.digits, d)
	if b.Full() && b.onFull != nil {
		b.onFull(b.String())
	}
}

// DeleteLast removes the most recent digit. No-op on an empty buffer.
func (b *EntryBuffer) DeleteLast() {
	if len(b.digits) == 0 {
		return
	}
	b.digits = b.digits[:len(b.digits)-1]
}

func (b *EntryBuffer) Full() bool { return len(b.digits) == b.target }

func (b *EntryBuffer) Len() int { return len(b.digits) }

func (b *EntryBuffer) String() string { return string(b.digits) }

// Clear empties the buffer and raises the error flag; used after a mismatch.
func (b *EntryBuffer) Clear() {
	b.digits = b.digits[:0]
	b.errored = true
}

// Reset empties the buffer without flagging an error.
func (b *EntryBuffer) Reset() {
	b.digits = b.digits[:0]
	b.errored = false
}

func (b *EntryBuffer) Errored() bool { return b.errored }
