// Package di contains dependency injection tokens for the report context.
package di

import (
	arbApp "github.com/fd1az/eco-market-bot/business/arbitrage/app"
	"github.com/fd1az/eco-market-bot/business/report/app"
	"github.com/fd1az/eco-market-bot/internal/di"
)

// Public service tokens - exposed to other modules
var (
	ReportService = di.NewToken[*app.Service]("report.ReportService")
	Formatter     = di.NewToken[*app.Formatter]("report.Formatter")
	DealMonitor   = di.NewToken[*arbApp.Detector]("report.DealMonitor")
)

func GetReportService(c di.ServiceRegistry) *app.Service {
	return di.GetToken(c, ReportService)
}

func GetFormatter(c di.ServiceRegistry) *app.Formatter {
	return di.GetToken(c, Formatter)
}

func GetDealMonitor(c di.ServiceRegistry) *arbApp.Detector {
	return di.GetToken(c, DealMonitor)
}
