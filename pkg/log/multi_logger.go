package log

// MultiLogger fans each event out to several loggers in order, typically
// a SlogAdapter for the console and a FileLogger for the .tlog file.
type MultiLogger []Logger

// NewMultiLogger combines loggers, dropping nil entries.
func NewMultiLogger(loggers ...Logger) MultiLogger {
	m := make(MultiLogger, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			m = append(m, l)
		}
	}
	return m
}

// Log forwards event to every logger.
func (m MultiLogger) Log(event Event) {
	for _, l := range m {
		l.Log(event)
	}
}

var _ Logger = MultiLogger(nil)
