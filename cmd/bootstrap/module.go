package bootstrap

import (
	"commerce-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MetricsModule,
	DBModule,
	JWTModule,
	MessagingModule,
	components.UseCaseModule,
	components.HandlerModule,
)
