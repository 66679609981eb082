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

package operation

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/hooksplit/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Runner executes operations one after another
type Runner struct{}

// 🏗️ NewRunner creates a new runner
func NewRunner() *Runner {
	return &Runner{}
}

// 🏃 Run executes the operations in order and stops at the first failure
func (r *Runner) Run(ctx context.Context, ops ...Operation) error {
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("operation cancelled: %w", err)
		}

		ctx := zerolog.Ctx(ctx).With().Str("operation", op.Name()).Logger().WithContext(ctx)
		log.FromContext(ctx).Header(op.Name())

		start := time.Now()
		if err := op.Execute(ctx); err != nil {
			return errors.Errorf("%s: %w", op.Name(), err)
		}

		zerolog.Ctx(ctx).Debug().Dur("elapsed", time.Since(start)).Msg("operation complete")
	}
	return nil
}
