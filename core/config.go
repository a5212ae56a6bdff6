package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config gearbox config
type Config struct {
	App         App         `json:"app"`
	DB          db.Config   `json:"db"`
	PriceOracle PriceOracle `json:"price_oracle"`
	Admins      []string    `json:"admins"`
}

// App app config
type App struct {
	Genesis int64 `json:"genesis"`
	// Liquidator wallet funding forced closes
	Liquidator string `json:"liquidator"`
	Location   string `json:"location"`
}

// PriceOracle price oracle config
type PriceOracle struct {
	EndPoint string `json:"end_point"`
}
