package booking

import "github.com/m4rkov/CSI-SalesService/pkg/txmanager"

// DBExecutor интерфейс для работы с БД (*sql.DB или *sql.Tx из контекста)
type DBExecutor = txmanager.DBExecutor
