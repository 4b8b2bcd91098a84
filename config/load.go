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

package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the environment-variable prefix viper binds against
// (SCALESOCK_WORKER_COUNT, SCALESOCK_LINGER, ...), letting an operator
// override any Options field without a config file.
const EnvPrefix = "SCALESOCK"

// Load reads path (any format viper supports: yaml, toml, json, ...)
// layered over Defaults(), and environment variables prefixed
// EnvPrefix. An empty path skips the file read and returns the
// env-overridden defaults.
func Load(path string) (*Options, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Defaults()
	v.SetDefault("worker_count", def.WorkerCount)
	v.SetDefault("socket_table_capacity", def.SocketTableCapacity)
	v.SetDefault("linger", def.Linger)
	v.SetDefault("snd_timeout", def.SndTimeout)
	v.SetDefault("rcv_timeout", def.RcvTimeout)
	v.SetDefault("reconnect_ivl", def.ReconnectIvl)
	v.SetDefault("reconnect_ivl_max", def.ReconnectIvlMax)
	v.SetDefault("rcv_max_size", def.RcvMaxSize)
	v.SetDefault("snd_buf", def.SndBuf)
	v.SetDefault("rcv_buf", def.RcvBuf)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, ErrorLoadFailed.Error(err)
		}
	}

	out := &Options{}
	if err := v.Unmarshal(out); err != nil {
		return nil, ErrorLoadFailed.Error(err)
	}

	return out, nil
}
