package rxprovider

import (
	"github.com/code-100-precent/lingrx/pkg/reactive"
	"go.uber.org/zap"
)

// InstallDropLogging reports signals that reach no observer to lg: errors
// at warn level and values at debug level. It replaces any hooks already
// installed. A nil lg removes them.
func InstallDropLogging(lg *zap.Logger) {
	if lg == nil {
		reactive.OnErrorDropped(nil)
		reactive.OnNextDropped(nil)
		return
	}
	lg = lg.Named("reactive")
	reactive.OnErrorDropped(func(err error) {
		lg.Warn("dropped error", zap.Error(err))
	})
	reactive.OnNextDropped(func(v any) {
		lg.Debug("dropped value", zap.Any("value", v))
	})
}
