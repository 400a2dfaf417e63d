// roster is the student roster editor.
//
// RUNNING:
//
//	go run ./cmd/roster --config=config/local.yaml serve
//	go run ./cmd/roster add --id SV01 --name "Nguyen Van A" --birth-date 2003-04-05 --class K1 --gpa 3.5
//	go run ./cmd/roster list
//	go run ./cmd/roster shell
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/roster serve
package main

import (
	"os"

	"github.com/aanand-mishra/student-roster/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
