package notification

import "github.com/m04kA/SMC-MarketplaceBooking/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
