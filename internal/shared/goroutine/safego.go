// Package goroutine launches goroutines that log panics instead of crashing
// the process.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/orris-inc/momogate/internal/shared/logger"
)

// SafeGo runs fn in a goroutine. A panic is logged with its stack and, when
// onPanic is non-nil, reported to it.
func SafeGo(log logger.Interface, name string, fn func(), onPanic ...func(recovered any)) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
				for _, f := range onPanic {
					f(r)
				}
			}
		}()
		fn()
	}()
}
