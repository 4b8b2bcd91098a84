/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package message

import "sync/atomic"

// Buffer is the storage backing a Message body. A Buffer is owned by
// exactly one Message until Clone is called, at which point ownership
// becomes shared and is only released once every clone has called Free.
type Buffer interface {
	// Bytes returns the buffer's current content. The slice is only
	// valid until the next Free.
	Bytes() []byte
	// Len returns len(Bytes()).
	Len() int
	// Clone marks the buffer as shared and returns the Buffer the
	// caller's Message should now hold (possibly a different
	// concrete value than the receiver, if this is the first Clone).
	Clone() Buffer
	// Free releases the buffer's share. Storage is only returned to
	// its allocator once every outstanding share has called Free.
	Free()
}

// heapBuffer is a Buffer over a plain Go-allocated slice. Free is a
// no-op: the backing array is reclaimed by the garbage collector once
// unreferenced.
type heapBuffer struct {
	b []byte
}

func newHeapBuffer(b []byte) *heapBuffer {
	return &heapBuffer{b: b}
}

func (h *heapBuffer) Bytes() []byte {
	return h.b
}

func (h *heapBuffer) Len() int {
	return len(h.b)
}

func (h *heapBuffer) Clone() Buffer {
	return newSharedBuffer(h)
}

func (h *heapBuffer) Free() {}

// userBuffer wraps a slice the caller owns (e.g. a buffer handed to
// usock's recvmsg/sendmsg path) together with the function that must
// run to return it to its allocator. Used for zero-copy I/O paths.
type userBuffer struct {
	b    []byte
	free func()
}

func newUserBuffer(b []byte, free func()) *userBuffer {
	return &userBuffer{b: b, free: free}
}

func (u *userBuffer) Bytes() []byte {
	return u.b
}

func (u *userBuffer) Len() int {
	return len(u.b)
}

func (u *userBuffer) Clone() Buffer {
	return newSharedBuffer(u)
}

func (u *userBuffer) Free() {
	if u.free != nil {
		u.free()
	}
}

// sharedBuffer wraps a heapBuffer or userBuffer once a Message carrying
// it has been cloned across more than one pipe (e.g. PUB distribution).
// refcount starts at 2: one share for the clone's caller, one for the
// Message that already held the wrapped buffer.
type sharedBuffer struct {
	ref *int32
	buf Buffer
}

func newSharedBuffer(buf Buffer) *sharedBuffer {
	ref := int32(2)
	return &sharedBuffer{ref: &ref, buf: buf}
}

func (s *sharedBuffer) Bytes() []byte {
	return s.buf.Bytes()
}

func (s *sharedBuffer) Len() int {
	return s.buf.Len()
}

func (s *sharedBuffer) Clone() Buffer {
	atomic.AddInt32(s.ref, 1)
	return s
}

func (s *sharedBuffer) Free() {
	if atomic.AddInt32(s.ref, -1) == 0 {
		s.buf.Free()
	}
}
