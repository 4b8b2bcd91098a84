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

package core_test

import (
	"github.com/nabbar/scalesock/config"
	"github.com/nabbar/scalesock/core"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Core lifecycle", func() {
	AfterEach(func() {
		core.Term()
	})

	It("returns nil from Get before Init", func() {
		core.Term()
		Expect(core.Get()).To(BeNil())
	})

	It("rejects a second Init with ErrorAlreadyInitialized", func() {
		_, err := core.Init(config.Defaults())
		Expect(err).ToNot(HaveOccurred())

		_, err = core.Init(config.Defaults())
		Expect(err).To(HaveOccurred())
	})

	It("falls back to config.Defaults() when Init is given nil options", func() {
		c, err := core.Init(nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(c.Options()).ToNot(BeNil())
	})

	It("exposes a non-nil Stats collector once initialized", func() {
		c, err := core.Init(config.Defaults())
		Expect(err).ToNot(HaveOccurred())
		Expect(c.Stats()).ToNot(BeNil())
		Expect(c.Stats().Registry()).ToNot(BeNil())
	})

	It("allows Term to run twice without a live Core", func() {
		_, err := core.Init(config.Defaults())
		Expect(err).ToNot(HaveOccurred())

		core.Term()
		Expect(core.Get()).To(BeNil())
		core.Term()
	})
})
