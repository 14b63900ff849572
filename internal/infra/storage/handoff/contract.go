package handoff

import "github.com/m04kA/SMC-BookingPortal/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
