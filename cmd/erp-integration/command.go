package main

import "fmt"

const (
	cmdRun         = "run"
	cmdServe       = "serve"
	cmdCancelOrder = "cancel-order"
)

const usage = `uso:
  erp-integration [run] [archivo]             importa productos (por defecto ERP_PRODUCTS_JSON_PATH)
  erp-integration serve                       expone la importación por HTTP
  erp-integration cancel-order <increment_id> marca el pedido como cancelado en el export`

type command struct {
	name string
	arg  string
}

// parseCommand interpreta los argumentos. Sin subcomando conocido se asume run con el
// primer argumento como archivo.
func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{name: cmdRun}, nil
	}
	switch args[0] {
	case cmdRun:
		if len(args) > 2 {
			return command{}, fmt.Errorf("run: demasiados argumentos")
		}
		c := command{name: cmdRun}
		if len(args) == 2 {
			c.arg = args[1]
		}
		return c, nil
	case cmdServe:
		if len(args) > 1 {
			return command{}, fmt.Errorf("serve: no recibe argumentos")
		}
		return command{name: cmdServe}, nil
	case cmdCancelOrder:
		if len(args) != 2 {
			return command{}, fmt.Errorf("cancel-order: se requiere increment_id")
		}
		return command{name: cmdCancelOrder, arg: args[1]}, nil
	case "-h", "--help", "help":
		return command{}, fmt.Errorf("ayuda solicitada")
	}
	if len(args) > 1 {
		return command{}, fmt.Errorf("comando desconocido: %s", args[0])
	}
	return command{name: cmdRun, arg: args[0]}, nil
}
