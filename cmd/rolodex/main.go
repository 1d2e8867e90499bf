package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/rolodex/internal/config"
	"github.com/smallbiznis/rolodex/internal/customer"
	"github.com/smallbiznis/rolodex/internal/migration"
	"github.com/smallbiznis/rolodex/internal/server"
	"github.com/smallbiznis/rolodex/pkg/db"
	"github.com/smallbiznis/rolodex/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		customer.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
