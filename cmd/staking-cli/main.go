package main

import (
	"staking-client/cmd/staking-cli/cmd"

	_ "staking-client/docs/swagger"
)

// @title Staking Client Dashboard API
// @version 1.0
// @description Live reward estimate, pool details and health of a staking client

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
func main() {
	cmd.Execute()
}
