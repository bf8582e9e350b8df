package observability

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Flush syncs the logger and, when w is non-nil, writes the metric registry to it.
// Call once before process exit.
func Flush(logger *zap.Logger, w io.Writer) error {
	if w != nil {
		if err := WriteMetrics(w); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	if logger != nil {
		if err := logger.Sync(); err != nil {
			return fmt.Errorf("flush logs: %w", err)
		}
	}
	return nil
}
