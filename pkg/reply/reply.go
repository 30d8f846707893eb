// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package reply routes chat messages through substitution commands.
//
// A message whose text is a substitution command is applied either to the
// message it replies to or, when it replies to nothing, to the last message
// seen that was not a command. Messages that are not commands are never
// answered. The package knows nothing about any particular chat transport.
package reply

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/sedboy/pkg/sed"
	"gitlab.com/tozd/go/errors"
)

// 💬 Message is an inbound chat message
type Message struct {
	ID      string
	Text    string
	ReplyTo *Message // message being replied to, if any
}

// 📤 Reply is the answer to a command message
type Reply struct {
	To   *Message // message the command was applied to
	Text string
}

// 🎯 Router turns command messages into replies
type Router struct {
	mu       sync.Mutex
	previous *Message
}

// 🏭 NewRouter creates a new router with no message history
func NewRouter() *Router {
	return &Router{}
}

// Handle processes msg. ok is false when there is nothing to reply, which
// includes messages that are not commands and commands with no target
// text. Pattern errors are returned as errors.
func (r *Router) Handle(ctx context.Context, msg *Message) (reply Reply, ok bool, err error) {
	logger := zerolog.Ctx(ctx).With().Str("message", msg.ID).Logger()

	cmd, err := sed.Parse(msg.Text)
	if err != nil {
		logger.Trace().Msg("not a substitution command")
		r.remember(msg)
		return Reply{}, false, nil
	}

	target := msg.ReplyTo
	if target == nil {
		target = r.last()
	}
	if target == nil || target.Text == "" {
		logger.Debug().Msg("no message to apply command to")
		return Reply{}, false, nil
	}

	out, err := cmd.Execute(target.Text)
	if err != nil {
		return Reply{}, false, errors.Errorf("applying %s to message %s: %w", cmd, target.ID, err)
	}

	logger.Debug().
		Str("target", target.ID).
		Str("scope", cmd.Scope.String()).
		Msg("applied substitution")

	return Reply{To: target, Text: out}, true, nil
}

func (r *Router) remember(msg *Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.previous = msg
}

func (r *Router) last() *Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.previous
}
