package delete_rule

import "context"

type ScheduleService interface {
	DeleteRule(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
