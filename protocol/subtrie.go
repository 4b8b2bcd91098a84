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

package protocol

// SubTrie indexes a SUB socket's subscribed topic prefixes so Matches
// can decide, in O(len(topic)), whether an incoming message's leading
// header bytes satisfy at least one active subscription, per spec.md
// §4.8 "SUB". An empty-string subscription matches every topic.
//
// Subscriptions are reference counted: the same topic may be
// subscribed more than once (e.g. by independent callers sharing a
// socket handle) and only stops matching once every subscription to it
// has been removed.
type subNode struct {
	children map[byte]*subNode
	count    int
}

func newSubNode() *subNode {
	return &subNode{children: make(map[byte]*subNode)}
}

type SubTrie struct {
	root *subNode
}

// NewSubTrie returns an empty trie.
func NewSubTrie() *SubTrie {
	return &SubTrie{root: newSubNode()}
}

// Subscribe adds topic as a matching prefix.
func (t *SubTrie) Subscribe(topic []byte) {
	if t.root == nil {
		t.root = newSubNode()
	}
	n := t.root
	for _, b := range topic {
		c, ok := n.children[b]
		if !ok {
			c = newSubNode()
			n.children[b] = c
		}
		n = c
	}
	n.count++
}

// Unsubscribe removes one reference to topic. Reports whether the
// topic was found at all (mirrors nanomsg's NNG_EINVAL on a bad
// unsubscribe).
func (t *SubTrie) Unsubscribe(topic []byte) bool {
	if t.root == nil {
		return false
	}
	n := t.root
	for _, b := range topic {
		c, ok := n.children[b]
		if !ok {
			return false
		}
		n = c
	}
	if n.count == 0 {
		return false
	}
	n.count--
	return true
}

// Matches reports whether any subscribed prefix is a prefix of msg.
func (t *SubTrie) Matches(msg []byte) bool {
	if t.root == nil {
		return false
	}
	n := t.root
	if n.count > 0 {
		return true
	}
	for _, b := range msg {
		c, ok := n.children[b]
		if !ok {
			return false
		}
		n = c
		if n.count > 0 {
			return true
		}
	}
	return false
}

// Empty reports whether the root has no children and no subscription
// of its own. Sub does not call it; Matches alone decides delivery.
func (t *SubTrie) Empty() bool {
	if t.root == nil {
		return true
	}
	return len(t.root.children) == 0 && t.root.count == 0
}
