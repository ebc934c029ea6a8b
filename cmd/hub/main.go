package main

import (
	"CollegeHub/internal/bootstrap"
	"CollegeHub/pkg/routes"

	"go.uber.org/fx"
)

func main() {
	bootstrap.Loadenv()

	app := fx.New(
		routes.EchoModules,
	)

	app.Run()
}
