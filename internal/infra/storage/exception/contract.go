package exception

import "github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"

// DBExecutor интерфейс для выполнения запросов (соединение или транзакция)
type DBExecutor = dbmetrics.DBExecutor
